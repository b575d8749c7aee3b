// Package auth provides credential verification, token issuance and the
// login flow orchestration.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopadmin/internal/config"
	"shopadmin/internal/models"
	"shopadmin/internal/repository"
)

var (
	// ErrInvalidCredentials is returned for any verification failure. Unknown
	// email, inactive account and wrong password are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token has expired
	ErrTokenExpired = errors.New("token expired")
)

// Service provides authentication functionality
type Service struct {
	config           *config.Config
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

// NewService creates a new authentication service
func NewService(cfg *config.Config, userRepo repository.UserRepository, refreshTokenRepo repository.RefreshTokenRepository) *Service {
	return &Service{
		config:           cfg,
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// VerifyCredentials validates an email/password pair against the user store.
// All failure modes collapse into ErrInvalidCredentials; only infrastructure
// errors are returned as-is.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GenerateToken generates a new JWT access token for the user
func (s *Service) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.config.Auth.AccessTokenDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Auth.JWTSecret))
}

// GenerateRefreshToken issues and persists a new opaque refresh token. With
// remember set the token lives for the extended remember duration.
func (s *Service) GenerateRefreshToken(ctx context.Context, userID uuid.UUID, remember bool) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(b)

	duration := s.config.Auth.RefreshTokenDuration
	if remember {
		duration = s.config.Auth.RememberTokenDuration
	}
	expiresAt := time.Now().Add(duration)

	if err := s.refreshTokenRepo.Create(ctx, userID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateRefreshToken validates a refresh token and returns the associated user ID
func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (uuid.UUID, error) {
	refreshToken, err := s.refreshTokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		if errors.Is(err, repository.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, err
	}
	return refreshToken.UserID, nil
}

// RevokeRefreshToken removes a single refresh token
func (s *Service) RevokeRefreshToken(ctx context.Context, token string) error {
	return s.refreshTokenRepo.DeleteByToken(ctx, token)
}

// RevokeAllRefreshTokens removes every refresh token belonging to a user,
// invalidating any previously established session.
func (s *Service) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return s.refreshTokenRepo.DeleteByUserID(ctx, userID)
}

// HashPassword hashes a password using bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// ValidateToken validates a JWT access token and returns the claims
func (s *Service) ValidateToken(tokenString string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}
	return nil, ErrInvalidToken
}

// GetUserFromContext retrieves the authenticated user from the gin context
func GetUserFromContext(c *gin.Context) *models.User {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	if u, ok := user.(*models.User); ok {
		return u
	}
	return nil
}
