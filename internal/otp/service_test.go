package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shopadmin/internal/ratelimit"
	"shopadmin/internal/testutil"
)

type otpFixture struct {
	service *Service
	codes   *testutil.FakeOTPCodeRepository
	sender  *testutil.FakeEmailSender
}

func newOTPFixture(t *testing.T, maxRequests int) *otpFixture {
	t.Helper()

	codes := testutil.NewFakeOTPCodeRepository()
	sender := testutil.NewFakeEmailSender()

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)
	limiter := ratelimit.NewLimiter(store, maxRequests, 5*time.Minute)

	return &otpFixture{
		service: NewService(codes, limiter, sender, 5*time.Minute),
		codes:   codes,
		sender:  sender,
	}
}

func waitForEmail(t *testing.T, sender *testutil.FakeEmailSender) testutil.SentEmail {
	t.Helper()
	select {
	case sent := <-sender.Sent:
		return sent
	case <-time.After(2 * time.Second):
		t.Fatal("OTP email was never sent")
		return testutil.SentEmail{}
	}
}

func TestRequestCodeSendsEmail(t *testing.T) {
	f := newOTPFixture(t, 3)

	err := f.service.RequestCode(context.Background(), RequestInput{
		Phone: "+46 70 123 45 67",
		Email: "customer@example.com",
		Name:  "Customer",
	})
	require.NoError(t, err)

	sent := waitForEmail(t, f.sender)
	require.Equal(t, "customer@example.com", sent.To)
	require.Equal(t, "Customer", sent.Name)
	require.Len(t, sent.Code, 6)
	require.Equal(t, 5, sent.ExpiryMinutes)
}

func TestRequestCodeThrottledAfterBudget(t *testing.T) {
	f := newOTPFixture(t, 3)
	ctx := context.Background()
	in := RequestInput{Phone: "+46701234567", Email: "customer@example.com"}

	for i := 0; i < 3; i++ {
		require.NoError(t, f.service.RequestCode(ctx, in), "request %d should pass", i+1)
	}

	err := f.service.RequestCode(ctx, in)
	var throttled *ratelimit.ThrottleError
	require.ErrorAs(t, err, &throttled)
	require.Greater(t, throttled.RetryAfterSeconds(), 0)
	require.LessOrEqual(t, throttled.RetryAfterSeconds(), 300)
}

// Different textual forms of the same phone number share one budget.
func TestRequestCodePhoneFormatsShareBudget(t *testing.T) {
	f := newOTPFixture(t, 3)
	ctx := context.Background()

	forms := []string{"+46701234567", "46701234567", "+46 70 123 45 67"}
	for i, phone := range forms {
		err := f.service.RequestCode(ctx, RequestInput{Phone: phone, Email: "c@example.com"})
		require.NoError(t, err, "request %d should pass", i+1)
	}

	err := f.service.RequestCode(ctx, RequestInput{Phone: "46 701 234 567", Email: "c@example.com"})
	var throttled *ratelimit.ThrottleError
	require.ErrorAs(t, err, &throttled)
}

func TestRequestCodeFallsBackToIP(t *testing.T) {
	f := newOTPFixture(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := f.service.RequestCode(ctx, RequestInput{Email: "c@example.com", IPAddress: "10.0.0.1"})
		require.NoError(t, err)
	}

	// Same address is throttled, a different one is not
	err := f.service.RequestCode(ctx, RequestInput{Email: "c@example.com", IPAddress: "10.0.0.1"})
	var throttled *ratelimit.ThrottleError
	require.ErrorAs(t, err, &throttled)

	err = f.service.RequestCode(ctx, RequestInput{Email: "c@example.com", IPAddress: "10.0.0.2"})
	require.NoError(t, err)
}

// A failed delivery never fails the request: the code is stored and the
// attempt is counted regardless.
func TestRequestCodeSucceedsWhenSendFails(t *testing.T) {
	f := newOTPFixture(t, 3)
	f.sender.SetSendErr(context.DeadlineExceeded)

	err := f.service.RequestCode(context.Background(), RequestInput{
		Phone: "+46701234567",
		Email: "customer@example.com",
	})
	require.NoError(t, err)
}

func TestVerifyCode(t *testing.T) {
	f := newOTPFixture(t, 3)
	ctx := context.Background()

	require.NoError(t, f.service.RequestCode(ctx, RequestInput{
		Phone: "+46701234567",
		Email: "customer@example.com",
	}))
	code := waitForEmail(t, f.sender).Code

	t.Run("wrong code", func(t *testing.T) {
		err := f.service.VerifyCode(ctx, "+46701234567", "000000")
		require.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("correct code", func(t *testing.T) {
		require.NoError(t, f.service.VerifyCode(ctx, "+46701234567", code))
	})

	t.Run("code is consumed", func(t *testing.T) {
		err := f.service.VerifyCode(ctx, "+46701234567", code)
		require.ErrorIs(t, err, ErrCodeInvalid)
	})
}

func TestVerifyCodeAcceptsNormalizedPhone(t *testing.T) {
	f := newOTPFixture(t, 3)
	ctx := context.Background()

	require.NoError(t, f.service.RequestCode(ctx, RequestInput{
		Phone: "+46 70 123 45 67",
		Email: "customer@example.com",
	}))
	code := waitForEmail(t, f.sender).Code

	// Submission uses a different format of the same number
	require.NoError(t, f.service.VerifyCode(ctx, "46701234567", code))
}

func TestVerifyCodeUnknownKey(t *testing.T) {
	f := newOTPFixture(t, 3)
	err := f.service.VerifyCode(context.Background(), "+46700000000", "123456")
	require.ErrorIs(t, err, ErrCodeInvalid)
}
