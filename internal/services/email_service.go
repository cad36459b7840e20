package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/justsurfingit/job-board/internal/mailer"
)

type EmailService struct {
	Mailer   mailer.Mailer
	Logger   *slog.Logger
	Attempts int
	Backoff  time.Duration
}

func NewEmailService(m mailer.Mailer, logger *slog.Logger) *EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailService{
		Mailer:   m,
		Logger:   logger,
		Attempts: 3,
		Backoff:  500 * time.Millisecond,
	}
}

// SendPasswordResetOTP mails the one-time code a user needs to reset their
// password.
func (s *EmailService) SendPasswordResetOTP(ctx context.Context, to, otp string, ttl time.Duration) error {
	msg := mailer.Message{
		To:      to,
		Subject: "Password Reset OTP",
		HTML: fmt.Sprintf("<p>Your OTP for password reset is <strong>%s</strong>. It will expire in %d minutes.</p>",
			otp, int(ttl.Minutes())),
	}
	err := retry(ctx, s.Attempts, s.Backoff, s.Logger, func() error {
		return s.Mailer.Send(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("send reset otp: %w", err)
	}
	s.Logger.Info("password reset otp sent", "to", to)
	return nil
}

// retry executes a function with exponential backoff
func retry(ctx context.Context, attempts int, sleep time.Duration, logger *slog.Logger, f func() error) error {
	attempts = max(attempts, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		logger.Warn("mail delivery failed, retrying", "error", err, "in", sleep)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}
