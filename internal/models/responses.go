package models

import "time"

// ErrorResponse represents a generic error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries field-scoped validation messages
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// ThrottleResponse is returned when a rate limit has been exceeded
type ThrottleResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// AccessDeniedResponse is the fixed-shape body returned on permission failures
type AccessDeniedResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}
