package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "souq/internal/errors"
	"souq/internal/otp"
)

// EmailSender delivers an OTP to an email address.
type EmailSender interface {
	SendOTP(email, code string) error
}

// SMSSender delivers an OTP to a phone number.
type SMSSender interface {
	SendOTP(phone, code string) error
}

// OTPResult reports the outcome of issuing a code. Code is populated
// only when delivery fell back to surfacing the code in the response.
type OTPResult struct {
	Delivered bool
	Code      string
}

// OTPService issues and verifies one-time codes.
type OTPService interface {
	SendEmailOTP(ctx context.Context, email string) (*OTPResult, error)
	SendPhoneOTP(ctx context.Context, phone string) (*OTPResult, error)
	Verify(ctx context.Context, destination, code string, channel otp.Channel) error
}

type otpService struct {
	store   otp.Store
	mailer  EmailSender
	sms     SMSSender
	devMode bool
}

// NewOTPService creates an OTP service. In development mode delivery
// failures degrade to returning the code in the result instead of
// failing the request.
func NewOTPService(store otp.Store, mailer EmailSender, sms SMSSender, devMode bool) OTPService {
	return &otpService{
		store:   store,
		mailer:  mailer,
		sms:     sms,
		devMode: devMode,
	}
}

// SendEmailOTP generates a code for the email address, stores it with
// the validity TTL, and attempts delivery.
func (s *otpService) SendEmailOTP(ctx context.Context, email string) (*OTPResult, error) {
	code, err := s.issue(ctx, email, otp.ChannelEmail)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		log.Printf("email otp delivery failed for %s: %v", email, err)
		if s.devMode {
			return &OTPResult{Delivered: false, Code: code}, nil
		}
		return nil, fmt.Errorf("send email otp: %w", err)
	}

	return &OTPResult{Delivered: true}, nil
}

// SendPhoneOTP generates a code for the phone number, stores it with
// the validity TTL, and attempts SMS delivery. SMS failures always fall
// back to surfacing the code: trial accounts hit daily message limits.
func (s *otpService) SendPhoneOTP(ctx context.Context, phone string) (*OTPResult, error) {
	code, err := s.issue(ctx, phone, otp.ChannelPhone)
	if err != nil {
		return nil, err
	}

	if s.devMode {
		log.Printf("development mode: otp for %s is %s", phone, code)
		return &OTPResult{Delivered: false, Code: code}, nil
	}

	if err := s.sms.SendOTP(phone, code); err != nil {
		log.Printf("sms otp delivery failed for %s: %v", phone, err)
		return &OTPResult{Delivered: false, Code: code}, nil
	}

	return &OTPResult{Delivered: true}, nil
}

// Verify consumes the stored code for the destination. A record is
// deleted on success and on expiry, so each issued code verifies at
// most once.
func (s *otpService) Verify(ctx context.Context, destination, code string, channel otp.Channel) error {
	rec, err := s.store.Get(ctx, destination)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return apperrors.ErrOTPNotFound
		}
		return fmt.Errorf("load otp: %w", err)
	}

	if rec.Channel != channel {
		return apperrors.ErrOTPNotFound
	}

	if time.Since(rec.IssuedAt) > otp.Validity {
		_ = s.store.Delete(ctx, destination)
		return apperrors.ErrOTPExpired
	}

	if rec.Code != code {
		return apperrors.ErrOTPMismatch
	}

	if err := s.store.Delete(ctx, destination); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}

func (s *otpService) issue(ctx context.Context, destination string, channel otp.Channel) (string, error) {
	code, err := otp.GenerateCode()
	if err != nil {
		return "", err
	}

	rec := otp.Record{
		Code:     code,
		Channel:  channel,
		IssuedAt: time.Now(),
	}
	if err := s.store.Save(ctx, destination, rec, otp.Validity); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}
