package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/auth"
	"shopadmin/internal/models"
	"shopadmin/internal/otp"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/repository"
)

// InvalidCredentialsMessage is the field-scoped message shown for any
// credential failure. It never discloses which field was wrong.
const InvalidCredentialsMessage = "These credentials do not match our records"

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	flow        *auth.LoginFlow
	authService *auth.Service
	otpService  *otp.Service
	userRepo    repository.UserRepository
}

// NewAuthHandler creates a new authentication handler with the given dependencies
func NewAuthHandler(flow *auth.LoginFlow, authService *auth.Service, otpService *otp.Service, userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		flow:        flow,
		authService: authService,
		otpService:  otpService,
		userRepo:    userRepo,
	}
}

// Login godoc
// @Summary User login
// @Description Authenticate user, establish a session and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 422 {object} models.ValidationErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ThrottleResponse "Too many attempts"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.flow.Login(c.Request.Context(), auth.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
		Remember:   req.Remember,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})

	var throttled *ratelimit.ThrottleError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.LoginResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			RedirectTo:   result.RedirectTo,
		})
	case errors.As(err, &throttled):
		c.Header("Retry-After", fmt.Sprintf("%d", throttled.RetryAfterSeconds()))
		c.JSON(http.StatusTooManyRequests, models.ThrottleResponse{
			Status:     "error",
			Message:    fmt.Sprintf("Too many login attempts. Please try again in %d minute(s).", throttled.RetryAfterMinutes()),
			RetryAfter: throttled.RetryAfterSeconds(),
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Errors: map[string]string{"identifier": InvalidCredentialsMessage},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process login"})
	}
}

// RequestOTP godoc
// @Summary Request a one-time password
// @Description Issue a one-time password and send it out-of-band. Limited to 3 requests per key per 5 minutes.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPRequest true "OTP request"
// @Success 200 {object} models.SuccessResponse "Code sent"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 429 {object} models.ThrottleResponse "Too many requests"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/otp [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.otpService.RequestCode(c.Request.Context(), otp.RequestInput{
		Phone:     req.Phone,
		Email:     req.Email,
		Name:      req.Name,
		IPAddress: c.ClientIP(),
	})

	var throttled *ratelimit.ThrottleError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.SuccessResponse{Message: "verification code sent"})
	case errors.As(err, &throttled):
		c.Header("Retry-After", fmt.Sprintf("%d", throttled.RetryAfterSeconds()))
		c.JSON(http.StatusTooManyRequests, models.ThrottleResponse{
			Status:     "error",
			Message:    fmt.Sprintf("Too many requests. Please try again in %d minute(s).", throttled.RetryAfterMinutes()),
			RetryAfter: throttled.RetryAfterSeconds(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process request"})
	}
}

// VerifyOTP godoc
// @Summary Verify a one-time password
// @Description Check a previously issued one-time password and consume it
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPVerifyRequest true "OTP verification"
// @Success 200 {object} models.SuccessResponse "Code accepted"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 422 {object} models.ValidationErrorResponse "Invalid or expired code"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.otpService.VerifyCode(c.Request.Context(), req.Phone, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, models.SuccessResponse{Message: "code verified"})
	case errors.Is(err, otp.ErrCodeInvalid):
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Errors: map[string]string{"code": "The provided code is invalid or has expired"},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify code"})
	}
}

// Refresh godoc
// @Summary Refresh access token
// @Description Get a new access token using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.RefreshResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Invalid or expired refresh token"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	userID, err := h.authService.ValidateRefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid or expired refresh token"})
		return
	}

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get user"})
		return
	}

	accessToken, err := h.authService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, models.RefreshResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Log out
// @Description Revoke the presented refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LogoutRequest true "Refresh token"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.authService.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to log out"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "logged out"})
}
