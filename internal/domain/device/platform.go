package device

import (
	"fmt"
	"strings"
)

// Platform is the target the classifier branches on.
type Platform int

const (
	// PlatformDesktop covers every target that is not iOS or Android.
	PlatformDesktop Platform = iota
	// PlatformIOS is Apple mobile hardware.
	PlatformIOS
	// PlatformAndroid is the open mobile ecosystem.
	PlatformAndroid
)

// PlatformAuto asks for detection from the running binary.
const PlatformAuto = "auto"

func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	case PlatformAndroid:
		return "android"
	default:
		return "desktop"
	}
}

// MarshalText renders the platform name.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PlatformFromGOOS maps a GOOS value to a platform.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "ios":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	default:
		return PlatformDesktop
	}
}

// ParsePlatform parses a platform name (case-insensitive).
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop", "other", "standalone":
		return PlatformDesktop, nil
	case "ios", "iphone":
		return PlatformIOS, nil
	case "android":
		return PlatformAndroid, nil
	default:
		return PlatformDesktop, fmt.Errorf("unknown platform: %q", s)
	}
}
