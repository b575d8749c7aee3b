// Package useragent classifies raw user-agent strings for login auditing.
package useragent

import (
	"strings"

	"shopadmin/internal/models"
)

// Info is the parsed summary of a user-agent string
type Info struct {
	Device   models.DeviceType
	Browser  string
	Platform string
}

var desktopTokens = []string{"windows nt", "macintosh", "cros", "x11"}

var mobileTokens = []string{"iphone", "ipod", "windows phone", "mobile", "mobi"}

var tabletTokens = []string{"ipad", "tablet", "kindle", "silk", "android"}

// Parse extracts the device category, browser name and platform name from a
// raw user-agent string. Device classification priority is desktop, then
// mobile, then tablet; anything unrecognized is unknown.
func Parse(ua string) Info {
	lower := strings.ToLower(ua)
	return Info{
		Device:   classifyDevice(lower),
		Browser:  detectBrowser(lower),
		Platform: detectPlatform(lower),
	}
}

func classifyDevice(lower string) models.DeviceType {
	if containsAny(lower, desktopTokens) {
		return models.DeviceDesktop
	}
	if containsAny(lower, mobileTokens) {
		return models.DeviceMobile
	}
	if containsAny(lower, tabletTokens) {
		return models.DeviceTablet
	}
	return models.DeviceUnknown
}

func detectBrowser(lower string) string {
	// Order matters: Chrome-derived browsers also advertise "chrome" and
	// "safari", and Chrome itself advertises "safari".
	switch {
	case strings.Contains(lower, "edg"):
		return "Edge"
	case strings.Contains(lower, "opr/"), strings.Contains(lower, "opera"):
		return "Opera"
	case strings.Contains(lower, "chrome"), strings.Contains(lower, "crios"):
		return "Chrome"
	case strings.Contains(lower, "firefox"), strings.Contains(lower, "fxios"):
		return "Firefox"
	case strings.Contains(lower, "safari"):
		return "Safari"
	case strings.Contains(lower, "msie"), strings.Contains(lower, "trident"):
		return "Internet Explorer"
	default:
		return "unknown"
	}
}

func detectPlatform(lower string) string {
	switch {
	case strings.Contains(lower, "windows phone"):
		return "Windows Phone"
	case strings.Contains(lower, "windows"):
		return "Windows"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ipod"):
		return "iOS"
	case strings.Contains(lower, "android"):
		return "Android"
	case strings.Contains(lower, "macintosh"), strings.Contains(lower, "mac os x"):
		return "macOS"
	case strings.Contains(lower, "cros"):
		return "ChromeOS"
	case strings.Contains(lower, "linux"), strings.Contains(lower, "x11"):
		return "Linux"
	default:
		return "unknown"
	}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
