package host

import (
	"context"

	"github.com/okian/devprobe/internal/domain/device"
)

// Static reports a fixed platform and attribute set. It is used to simulate
// devices from configuration.
type Static struct {
	platform device.Platform
	attrs    device.Attributes
}

// NewStatic creates a provider that always reports attrs on platform.
func NewStatic(platform device.Platform, attrs device.Attributes) *Static {
	return &Static{platform: platform, attrs: attrs}
}

// Platform implements device.Provider.
func (s *Static) Platform() device.Platform {
	return s.platform
}

// Snapshot implements device.Provider.
func (s *Static) Snapshot(_ context.Context) device.Attributes {
	return s.attrs
}
