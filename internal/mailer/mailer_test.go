package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/inc-tasks/task-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTP(t *testing.T) {
	body, err := RenderOTP("Alice Liddell", "123456", 10*time.Minute)
	require.NoError(t, err)

	assert.Contains(t, body, "Hello Alice Liddell,")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "10 minutes")
}

func TestRenderOTP_EscapesName(t *testing.T) {
	body, err := RenderOTP("<script>alert(1)</script>", "123456", time.Minute)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "1 minute")
}

func TestNew_FallsBackToLogSender(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	sender, err := New(&config.Config{}, logger)
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, sender)

	require.NoError(t, sender.SendOTP(context.Background(), "alice@example.com", "Alice", "123456"))
	assert.Contains(t, buf.String(), "alice@example.com")
	assert.NotContains(t, buf.String(), "123456")
}

func TestNew_SMTPSender(t *testing.T) {
	sender, err := New(&config.Config{
		EmailHost: "smtp.example.com",
		EmailPort: 587,
		EmailUser: "mailer",
		EmailPass: "secret",
		EmailFrom: "no-reply@example.com",
		OTPTTL:    10 * time.Minute,
	}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}
