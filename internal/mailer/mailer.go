package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/inc-tasks/task-api/internal/config"
	"github.com/wneessen/go-mail"
)

// Sender delivers password reset codes
type Sender interface {
	SendOTP(ctx context.Context, to, name, otp string) error
}

const otpSubject = "Password Reset OTP"

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>Password Reset Request</h2>
    <p>Hello {{.Name}},</p>
    <p>Use the following code to reset your password:</p>
    <p style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">{{.OTP}}</p>
    <p>This code expires in {{.ValidFor}}.</p>
    <p>If you did not request a password reset, you can ignore this email.</p>
  </body>
</html>
`))

type otpView struct {
	Name     string
	OTP      string
	ValidFor string
}

// RenderOTP builds the HTML body of the reset email
func RenderOTP(name, otp string, validFor time.Duration) (string, error) {
	if name == "" {
		name = "there"
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, otpView{Name: name, OTP: otp, ValidFor: formatTTL(validFor)}); err != nil {
		return "", fmt.Errorf("render otp email: %w", err)
	}
	return buf.String(), nil
}

func formatTTL(d time.Duration) string {
	if minutes := int(d.Minutes()); minutes > 0 && d%time.Minute == 0 {
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	client *mail.Client
	from   string
	ttl    time.Duration
}

// NewSMTPSender configures an SMTP client from the EMAIL_* settings
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.EmailPort),
		mail.WithTimeout(15 * time.Second),
	}
	if cfg.EmailSecure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.EmailUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.EmailUser),
			mail.WithPassword(cfg.EmailPass),
		)
	}

	client, err := mail.NewClient(cfg.EmailHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.EmailFrom, ttl: cfg.OTPTTL}, nil
}

// SendOTP renders and sends the reset email
func (s *SMTPSender) SendOTP(ctx context.Context, to, name, otp string) error {
	body, err := RenderOTP(name, otp, s.ttl)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(otpSubject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	msg.AddAlternativeString(mail.TypeTextPlain, fmt.Sprintf("Your password reset code is %s", otp))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

// LogSender stands in for SMTP when no relay is configured
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendOTP logs the delivery. The code itself is only logged at debug level.
func (s *LogSender) SendOTP(ctx context.Context, to, name, otp string) error {
	s.logger.InfoContext(ctx, "smtp not configured, otp email not sent", slog.String("to", to))
	s.logger.DebugContext(ctx, "otp issued", slog.String("to", to), slog.String("otp", otp))
	return nil
}

// New picks the SMTP sender when EMAIL_HOST is set and the log sender otherwise
func New(cfg *config.Config, logger *slog.Logger) (Sender, error) {
	if cfg.EmailHost == "" {
		return NewLogSender(logger), nil
	}
	return NewSMTPSender(cfg)
}
