// Package device contains the host attribute model and the provider contract.
package device

import (
	"context"
	"strings"
)

// openGLESMarker identifies an OpenGL ES graphics context.
const openGLESMarker = "OpenGL ES"

// NoGraphicsAPIVersion is returned when the context is not OpenGL ES.
const NoGraphicsAPIVersion = "0"

// Attributes is a point-in-time view of host-reported hardware values.
type Attributes struct {
	DeviceModel   string
	DeviceName    string
	ProcessorType string
	// ProcessorCount is the number of logical processors.
	ProcessorCount int
	// SystemMemoryMB is the total system memory in megabytes.
	SystemMemoryMB int

	GraphicsDeviceVendor  string
	GraphicsDeviceName    string
	GraphicsDeviceVersion string
	// GraphicsMemoryMB is the dedicated graphics memory in megabytes.
	GraphicsMemoryMB     int
	GraphicsShaderLevel  int
	MaxTextureSize       int
	SupportsImageEffects bool

	// Generation is only meaningful on iOS.
	Generation Generation
}

// Provider supplies host attributes. Implementations must not fail: any
// probe error is replaced with a fallback value.
type Provider interface {
	// Platform reports the target platform.
	Platform() Platform
	// Snapshot samples the current attributes.
	Snapshot(ctx context.Context) Attributes
}

// OpenGLESVersion returns version when it names an OpenGL ES context and
// NoGraphicsAPIVersion otherwise.
func OpenGLESVersion(version string) string {
	if strings.Contains(version, openGLESMarker) {
		return version
	}
	return NoGraphicsAPIVersion
}
