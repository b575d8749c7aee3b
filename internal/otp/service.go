// Package otp implements the rate-limited one-time-password request flow.
package otp

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shopadmin/internal/email"
	"shopadmin/internal/models"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/repository"
)

// ErrCodeInvalid is returned when no live code matches the submission
var ErrCodeInvalid = errors.New("invalid or expired code")

// RequestInput carries one OTP request
type RequestInput struct {
	Phone     string
	Email     string
	Name      string
	IPAddress string
}

// Service issues and verifies one-time passwords
type Service struct {
	codes   repository.OTPCodeRepository
	limiter *ratelimit.Limiter
	sender  email.Sender
	expiry  time.Duration
}

// NewService creates an OTP service
func NewService(codes repository.OTPCodeRepository, limiter *ratelimit.Limiter, sender email.Sender, expiry time.Duration) *Service {
	return &Service{
		codes:   codes,
		limiter: limiter,
		sender:  sender,
		expiry:  expiry,
	}
}

// RequestCode generates a code for the caller and queues its delivery.
// Over-limit requests fail with *ratelimit.ThrottleError carrying the
// remaining wait. Delivery is fire-and-forget: send failures are logged but
// the request still succeeds.
func (s *Service) RequestCode(ctx context.Context, in RequestInput) error {
	key := ratelimit.OTPKey(in.Phone, in.IPAddress)

	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		return err
	}
	if !allowed {
		remaining, err := s.limiter.TimeRemaining(ctx, key)
		if err != nil {
			return err
		}
		return &ratelimit.ThrottleError{RetryAfter: remaining}
	}
	if _, err := s.limiter.RecordAttempt(ctx, key); err != nil {
		return err
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	record := &models.OTPCode{
		Key:       key,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().Add(s.expiry),
	}
	if err := s.codes.Create(ctx, record); err != nil {
		return err
	}

	expiryMinutes := int(s.expiry.Minutes())
	go func() {
		if err := s.sender.SendOTPEmail(in.Email, in.Name, code, expiryMinutes); err != nil {
			log.Printf("Failed to send OTP email: %v", err)
		}
	}()

	return nil
}

// VerifyCode checks a submitted code against the newest live code for the
// phone's throttle key and consumes it on match.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) error {
	key := ratelimit.OTPKey(phone, "")

	record, err := s.codes.GetActiveByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return ErrCodeInvalid
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)); err != nil {
		return ErrCodeInvalid
	}

	return s.codes.MarkConsumed(ctx, record.ID)
}
