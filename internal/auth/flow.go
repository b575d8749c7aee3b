package auth

import (
	"context"
	"time"

	"shopadmin/internal/audit"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/repository"
)

// LoginInput carries one authentication attempt
type LoginInput struct {
	Identifier string
	Password   string
	Remember   bool
	IPAddress  string
	UserAgent  string
}

// LoginResult is returned on a successful authentication
type LoginResult struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	RedirectTo   string
}

// LoginFlow orchestrates a login attempt: throttle check, credential
// verification, session establishment and the audit handoff.
type LoginFlow struct {
	service  *Service
	userRepo repository.UserRepository
	limiter  *ratelimit.Limiter
	recorder *audit.Recorder
	home     string
}

// NewLoginFlow creates a login flow orchestrator
func NewLoginFlow(service *Service, userRepo repository.UserRepository, limiter *ratelimit.Limiter, recorder *audit.Recorder, home string) *LoginFlow {
	return &LoginFlow{
		service:  service,
		userRepo: userRepo,
		limiter:  limiter,
		recorder: recorder,
		home:     home,
	}
}

// Login runs one authentication attempt. Expected outcomes are a result, a
// *ratelimit.ThrottleError or ErrInvalidCredentials; anything else is an
// infrastructure failure.
func (f *LoginFlow) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	key := ratelimit.LoginKey(in.Identifier)

	allowed, err := f.limiter.Allow(ctx, key)
	if err != nil {
		return nil, err
	}
	if !allowed {
		remaining, err := f.limiter.TimeRemaining(ctx, key)
		if err != nil {
			return nil, err
		}
		return nil, &ratelimit.ThrottleError{RetryAfter: remaining}
	}

	if _, err := f.limiter.RecordAttempt(ctx, key); err != nil {
		return nil, err
	}

	user, err := f.service.VerifyCredentials(ctx, in.Identifier, in.Password)
	if err != nil {
		return nil, err
	}

	// Session establishment. Prior refresh tokens are revoked first so a
	// token captured before this login cannot continue the new session.
	if err := f.service.RevokeAllRefreshTokens(ctx, user.ID); err != nil {
		return nil, err
	}

	accessToken, err := f.service.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := f.service.GenerateRefreshToken(ctx, user.ID, in.Remember)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.Reset(ctx, key); err != nil {
		return nil, err
	}
	if err := f.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}

	// Fire-and-forget: the audit write happens on the recorder's worker and
	// never gates the response.
	f.recorder.Record(audit.Entry{
		UserID:    user.ID,
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		At:        time.Now(),
	})

	return &LoginResult{
		UserID:       user.ID.String(),
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RedirectTo:   f.home,
	}, nil
}
