package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shopadmin/internal/audit"
	"shopadmin/internal/models"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/testutil"
)

type flowFixture struct {
	flow      *LoginFlow
	service   *Service
	userRepo  *testutil.FakeUserRepository
	tokenRepo *testutil.FakeRefreshTokenRepository
	history   *testutil.FakeLoginHistoryRepository
	recorder  *audit.Recorder
	limiter   *ratelimit.Limiter
}

func newFlowFixture(t *testing.T, maxAttempts int) *flowFixture {
	t.Helper()

	userRepo := testutil.NewFakeUserRepository()
	tokenRepo := testutil.NewFakeRefreshTokenRepository()
	history := testutil.NewFakeLoginHistoryRepository()
	recorder := audit.NewRecorder(history, 16)
	t.Cleanup(recorder.Close)

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)
	limiter := ratelimit.NewLimiter(store, maxAttempts, 5*time.Minute)

	service := NewService(testConfig(), userRepo, tokenRepo)
	flow := NewLoginFlow(service, userRepo, limiter, recorder, "/")

	return &flowFixture{
		flow:      flow,
		service:   service,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		history:   history,
		recorder:  recorder,
		limiter:   limiter,
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newFlowFixture(t, 5)
	user := seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)
	ctx := context.Background()

	result, err := f.flow.Login(ctx, LoginInput{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
		IPAddress:  "10.0.0.1",
		UserAgent:  "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Equal(t, "/", result.RedirectTo)

	stored, err := f.userRepo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLoginRecordsAudit(t *testing.T) {
	f := newFlowFixture(t, 5)
	user := seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)
	ctx := context.Background()

	_, err := f.flow.Login(ctx, LoginInput{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
		IPAddress:  "10.0.0.1",
		UserAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Version/17.0 Mobile Safari/604.1",
	})
	require.NoError(t, err)

	select {
	case record := <-f.history.Created:
		require.Equal(t, user.ID, record.UserID)
		require.Equal(t, "10.0.0.1", record.IPAddress)
		require.Equal(t, models.DeviceMobile, record.DeviceType)
		require.Equal(t, "Safari", record.Browser)
		require.Equal(t, "iOS", record.Platform)
	case <-time.After(2 * time.Second):
		t.Fatal("audit record was never written")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newFlowFixture(t, 5)
	seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)

	_, err := f.flow.Login(context.Background(), LoginInput{
		Identifier: "admin@example.com",
		Password:   "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// No audit record for a failed attempt
	select {
	case <-f.history.Created:
		t.Fatal("failed login must not be audited")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoginThrottledAfterMaxAttempts(t *testing.T) {
	f := newFlowFixture(t, 5)
	seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.flow.Login(ctx, LoginInput{
			Identifier: "admin@example.com",
			Password:   "wrong",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d should reach verification", i+1)
	}

	// The sixth attempt is rejected before credentials are checked, even with
	// the right password.
	_, err := f.flow.Login(ctx, LoginInput{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
	})
	var throttled *ratelimit.ThrottleError
	require.ErrorAs(t, err, &throttled)
	require.Greater(t, throttled.RetryAfterSeconds(), 0)
	require.LessOrEqual(t, throttled.RetryAfterSeconds(), 300)
}

func TestLoginThrottleIsPerIdentifier(t *testing.T) {
	f := newFlowFixture(t, 2)
	seedUser(t, f.userRepo, "a@example.com", "pw-a", true)
	seedUser(t, f.userRepo, "b@example.com", "pw-b", true)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.flow.Login(ctx, LoginInput{Identifier: "a@example.com", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err := f.flow.Login(ctx, LoginInput{Identifier: "a@example.com", Password: "pw-a"})
	var throttled *ratelimit.ThrottleError
	require.ErrorAs(t, err, &throttled)

	// The other account is unaffected
	_, err = f.flow.Login(ctx, LoginInput{Identifier: "b@example.com", Password: "pw-b"})
	require.NoError(t, err)
}

func TestLoginSuccessResetsThrottle(t *testing.T) {
	f := newFlowFixture(t, 3)
	seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.flow.Login(ctx, LoginInput{Identifier: "admin@example.com", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := f.flow.Login(ctx, LoginInput{Identifier: "admin@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	// The counter was cleared, so the full budget is available again
	for i := 0; i < 2; i++ {
		_, err := f.flow.Login(ctx, LoginInput{Identifier: "admin@example.com", Password: "wrong"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestLoginRevokesPriorSessions(t *testing.T) {
	f := newFlowFixture(t, 5)
	user := seedUser(t, f.userRepo, "admin@example.com", "correct-horse", true)
	ctx := context.Background()

	// A pre-existing session token, as if captured before this login
	staleToken, err := f.service.GenerateRefreshToken(ctx, user.ID, false)
	require.NoError(t, err)

	result, err := f.flow.Login(ctx, LoginInput{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
	})
	require.NoError(t, err)

	_, err = f.service.ValidateRefreshToken(ctx, staleToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.service.ValidateRefreshToken(ctx, result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, 1, f.tokenRepo.CountForUser(user.ID))
}
