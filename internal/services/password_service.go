package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/inc-tasks/task-api/internal/mailer"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/inc-tasks/task-api/internal/utils"
	"gorm.io/gorm"
)

// ErrSendOTP is returned when the reset code was stored but could not be delivered.
var ErrSendOTP = errors.New("failed to send OTP email")

// PasswordService runs the OTP based password reset flow.
//
// An OTP stays valid until it expires or the password is replaced; verification does not
// consume it. UpdatePassword does not require a verified OTP.
type PasswordService struct {
	userRepo repository.UserRepository
	hasher   *PasswordHasher
	sender   mailer.Sender
	logger   *slog.Logger
	otpTTL   time.Duration
	now      func() time.Time
}

// NewPasswordService creates a new PasswordService.
func NewPasswordService(userRepo repository.UserRepository, hasher *PasswordHasher, sender mailer.Sender, otpTTL time.Duration, logger *slog.Logger) *PasswordService {
	if otpTTL <= 0 {
		otpTTL = constants.DefaultOTPTTL
	}
	return &PasswordService{
		userRepo: userRepo,
		hasher:   hasher,
		sender:   sender,
		logger:   logger,
		otpTTL:   otpTTL,
		now:      time.Now,
	}
}

// ForgotPassword issues a reset code for email and mails it.
func (s *PasswordService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoUserWithEmail
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetOTP(ctx, user.ID, otp, s.now().Add(s.otpTTL)); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	name := user.FullName()
	if name == "" {
		name = user.Username
	}
	if err := s.sender.SendOTP(ctx, user.Email, name, otp); err != nil {
		s.logger.ErrorContext(ctx, "failed to send otp email",
			slog.Uint64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %v", ErrSendOTP, err)
	}

	s.logger.InfoContext(ctx, "password reset otp issued", slog.Uint64("user_id", user.ID))
	return nil
}

// VerifyOTP succeeds iff otp matches the stored code for email and has not expired.
func (s *PasswordService) VerifyOTP(ctx context.Context, email, otp string) error {
	email = strings.TrimSpace(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return ErrEmailAndOTPRequired
	}

	if _, err := s.userRepo.FindByEmailAndOTP(ctx, email, otp, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	return nil
}

// UpdatePassword replaces the password for email and always clears any pending code.
func (s *PasswordService) UpdatePassword(ctx context.Context, email, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return ErrEmailAndPasswordNeeded
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password updated", slog.Uint64("user_id", user.ID))
	return nil
}
