package repository

import "errors"

var (
	// Common errors
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")

	// Role errors
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleExists    = errors.New("role already exists")
	ErrRoleInUse     = errors.New("role is in use")
	ErrRoleProtected = errors.New("cannot modify protected role")

	// Token errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// OTP errors
	ErrCodeNotFound = errors.New("code not found")
)
