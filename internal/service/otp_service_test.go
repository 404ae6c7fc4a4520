package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "souq/internal/errors"
	"souq/internal/otp"
)

func newTestOTPService(store otp.Store, emailFail, smsFail, devMode bool) (OTPService, *stubEmailSender, *stubSMSSender) {
	mailer := newStubEmailSender(emailFail)
	sms := newStubSMSSender(smsFail)
	return NewOTPService(store, mailer, sms, devMode), mailer, sms
}

func TestOTPService_VerifyConsumesCode(t *testing.T) {
	ctx := context.Background()
	store := otp.NewMemoryStore()
	svc, mailer, _ := newTestOTPService(store, false, false, false)

	result, err := svc.SendEmailOTP(ctx, "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Empty(t, result.Code)

	code := mailer.sent["buyer@example.com"]
	require.Len(t, code, 6)

	// First verification succeeds and deletes the record.
	err = svc.Verify(ctx, "buyer@example.com", code, otp.ChannelEmail)
	assert.NoError(t, err)

	// Second attempt with the same code fails: at most one successful
	// verification per issued code.
	err = svc.Verify(ctx, "buyer@example.com", code, otp.ChannelEmail)
	assert.ErrorIs(t, err, apperrors.ErrOTPNotFound)
}

func TestOTPService_VerifyExpired(t *testing.T) {
	ctx := context.Background()
	store := otp.NewMemoryStore()
	svc, _, _ := newTestOTPService(store, false, false, false)

	// Plant a record issued beyond the validity window; the code still
	// matches but verification must reject it.
	rec := otp.Record{
		Code:     "123456",
		Channel:  otp.ChannelEmail,
		IssuedAt: time.Now().Add(-11 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, "old@example.com", rec, time.Hour))

	err := svc.Verify(ctx, "old@example.com", "123456", otp.ChannelEmail)
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)

	// The expired record is consumed too.
	err = svc.Verify(ctx, "old@example.com", "123456", otp.ChannelEmail)
	assert.ErrorIs(t, err, apperrors.ErrOTPNotFound)
}

func TestOTPService_VerifyMismatch(t *testing.T) {
	ctx := context.Background()
	store := otp.NewMemoryStore()
	svc, mailer, _ := newTestOTPService(store, false, false, false)

	_, err := svc.SendEmailOTP(ctx, "buyer@example.com")
	require.NoError(t, err)
	code := mailer.sent["buyer@example.com"]

	err = svc.Verify(ctx, "buyer@example.com", "000000", otp.ChannelEmail)
	assert.ErrorIs(t, err, apperrors.ErrOTPMismatch)

	// A mismatch does not consume the record; the right code still works.
	err = svc.Verify(ctx, "buyer@example.com", code, otp.ChannelEmail)
	assert.NoError(t, err)
}

func TestOTPService_VerifyChannelMismatch(t *testing.T) {
	ctx := context.Background()
	store := otp.NewMemoryStore()
	svc, mailer, _ := newTestOTPService(store, false, false, false)

	_, err := svc.SendEmailOTP(ctx, "buyer@example.com")
	require.NoError(t, err)
	code := mailer.sent["buyer@example.com"]

	err = svc.Verify(ctx, "buyer@example.com", code, otp.ChannelPhone)
	assert.ErrorIs(t, err, apperrors.ErrOTPNotFound)
}

func TestOTPService_EmailDeliveryFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("development mode falls back to surfacing the code", func(t *testing.T) {
		store := otp.NewMemoryStore()
		svc, _, _ := newTestOTPService(store, true, false, true)

		result, err := svc.SendEmailOTP(ctx, "buyer@example.com")
		require.NoError(t, err)
		assert.False(t, result.Delivered)
		assert.Len(t, result.Code, 6)

		// The surfaced code is the stored one.
		err = svc.Verify(ctx, "buyer@example.com", result.Code, otp.ChannelEmail)
		assert.NoError(t, err)
	})

	t.Run("production surfaces the failure", func(t *testing.T) {
		store := otp.NewMemoryStore()
		svc, _, _ := newTestOTPService(store, true, false, false)

		_, err := svc.SendEmailOTP(ctx, "buyer@example.com")
		assert.Error(t, err)
	})
}

func TestOTPService_PhoneDeliveryFallback(t *testing.T) {
	ctx := context.Background()
	store := otp.NewMemoryStore()
	svc, _, _ := newTestOTPService(store, false, true, false)

	// SMS failures always fall back rather than hard-failing.
	result, err := svc.SendPhoneOTP(ctx, "03001234567")
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	assert.Len(t, result.Code, 6)
}
