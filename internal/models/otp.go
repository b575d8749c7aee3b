package models

import (
	"time"

	"github.com/google/uuid"
)

// OTPCode stores the hash of an issued one-time password. The plain code is
// only ever sent out-of-band and never persisted.
type OTPCode struct {
	ID         uuid.UUID  `json:"id"`
	Key        string     `json:"key"`
	CodeHash   string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
