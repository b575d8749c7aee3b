package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceType is the device category derived from a user-agent string
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceUnknown DeviceType = "unknown"
)

// LoginHistory is an append-only record of a successful authentication.
// Records are immutable once written.
type LoginHistory struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	IPAddress  string     `json:"ip_address"`
	UserAgent  string     `json:"user_agent"`
	DeviceType DeviceType `json:"device_type"`
	Browser    string     `json:"browser"`
	Platform   string     `json:"platform"`
	CreatedAt  time.Time  `json:"created_at"`
}
