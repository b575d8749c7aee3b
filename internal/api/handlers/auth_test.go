package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopadmin/internal/audit"
	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	"shopadmin/internal/models"
	"shopadmin/internal/otp"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/testutil"
	"shopadmin/internal/validation"
)

type authTestEnv struct {
	router    *gin.Engine
	userRepo  *testutil.FakeUserRepository
	tokenRepo *testutil.FakeRefreshTokenRepository
	history   *testutil.FakeLoginHistoryRepository
	sender    *testutil.FakeEmailSender
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Initialize()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test_secret_key",
			AccessTokenDuration:   15 * time.Minute,
			RefreshTokenDuration:  24 * time.Hour,
			RememberTokenDuration: 720 * time.Hour,
			HomePath:              "/",
			OTPExpiry:             5 * time.Minute,
		},
		RateLimit: config.RateLimitConfig{
			LoginMax:    5,
			LoginWindow: 300,
			OTPMax:      3,
			OTPWindow:   300,
		},
	}

	userRepo := testutil.NewFakeUserRepository()
	tokenRepo := testutil.NewFakeRefreshTokenRepository()
	history := testutil.NewFakeLoginHistoryRepository()
	sender := testutil.NewFakeEmailSender()
	otpCodes := testutil.NewFakeOTPCodeRepository()

	recorder := audit.NewRecorder(history, 16)
	t.Cleanup(recorder.Close)

	store := ratelimit.NewMemoryStore()
	t.Cleanup(store.Close)
	loginLimiter := ratelimit.NewLimiter(store, cfg.RateLimit.LoginMax, time.Duration(cfg.RateLimit.LoginWindow)*time.Second)
	otpLimiter := ratelimit.NewLimiter(store, cfg.RateLimit.OTPMax, time.Duration(cfg.RateLimit.OTPWindow)*time.Second)

	authService := auth.NewService(cfg, userRepo, tokenRepo)
	flow := auth.NewLoginFlow(authService, userRepo, loginLimiter, recorder, cfg.Auth.HomePath)
	otpService := otp.NewService(otpCodes, otpLimiter, sender, cfg.Auth.OTPExpiry)

	handler := NewAuthHandler(flow, authService, otpService, userRepo)

	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/otp", handler.RequestOTP)
	r.POST("/auth/otp/verify", handler.VerifyOTP)
	r.POST("/auth/refresh", handler.Refresh)
	r.POST("/auth/logout", handler.Logout)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), &models.User{
		Email:       "admin@example.com",
		Password:    string(hash),
		DisplayName: "Admin",
		Active:      true,
	}))

	return &authTestEnv{
		router:    r,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		history:   history,
		sender:    sender,
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpointSuccess(t *testing.T) {
	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "/", resp.RedirectTo)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "admin@example.com",
		Password:   "wrong",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.JSONEq(t, `{"errors": {"identifier": "These credentials do not match our records"}}`, w.Body.String())
}

// Unknown accounts produce byte-identical responses to wrong passwords.
func TestLoginEndpointFailureShapeIsUniform(t *testing.T) {
	env := newAuthTestEnv(t)

	wrongPassword := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "admin@example.com",
		Password:   "wrong",
	})
	unknownUser := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "ghost@example.com",
		Password:   "wrong",
	})

	require.Equal(t, wrongPassword.Code, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginEndpointThrottled(t *testing.T) {
	env := newAuthTestEnv(t)

	for i := 0; i < 5; i++ {
		w := postJSON(t, env.router, "/auth/login", models.LoginRequest{
			Identifier: "admin@example.com",
			Password:   "wrong",
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	}

	w := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
	})
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp models.ThrottleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Greater(t, resp.RetryAfter, 0)
	require.LessOrEqual(t, resp.RetryAfter, 300)
}

func TestLoginEndpointRejectsMalformedBody(t *testing.T) {
	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/login", gin.H{"identifier": "not-an-email", "password": "x"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOTPEndpointFlow(t *testing.T) {
	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/otp", models.OTPRequest{
		Phone: "+46 70 123 45 67",
		Email: "customer@example.com",
		Name:  "Customer",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sent testutil.SentEmail
	select {
	case sent = <-env.sender.Sent:
	case <-time.After(2 * time.Second):
		t.Fatal("OTP email was never sent")
	}
	require.Len(t, sent.Code, 6)

	w = postJSON(t, env.router, "/auth/otp/verify", models.OTPVerifyRequest{
		Phone: "+46701234567",
		Code:  sent.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Replay of the consumed code fails
	w = postJSON(t, env.router, "/auth/otp/verify", models.OTPVerifyRequest{
		Phone: "+46701234567",
		Code:  sent.Code,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOTPEndpointThrottled(t *testing.T) {
	env := newAuthTestEnv(t)
	req := models.OTPRequest{Phone: "+46701234567", Email: "customer@example.com"}

	for i := 0; i < 3; i++ {
		w := postJSON(t, env.router, "/auth/otp", req)
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}

	w := postJSON(t, env.router, "/auth/otp", req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp models.ThrottleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Greater(t, resp.RetryAfter, 0)
	require.LessOrEqual(t, resp.RetryAfter, 300)
}

func TestRefreshAndLogoutEndpoints(t *testing.T) {
	env := newAuthTestEnv(t)

	w := postJSON(t, env.router, "/auth/login", models.LoginRequest{
		Identifier: "admin@example.com",
		Password:   "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = postJSON(t, env.router, "/auth/refresh", models.RefreshRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	var refresh models.RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refresh))
	require.NotEmpty(t, refresh.AccessToken)

	w = postJSON(t, env.router, "/auth/logout", models.LogoutRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer refreshes
	w = postJSON(t, env.router, "/auth/refresh", models.RefreshRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
