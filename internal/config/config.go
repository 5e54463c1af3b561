// Package config defines probe configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
)

// Provider sources.
const (
	SourceSystem = "system"
	SourceStatic = "static"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Source selects the host provider: "system" samples the machine,
	// "static" reports the Device section verbatim.
	Source string `koanf:"source"`

	// Platform forces the classifier branch: auto, desktop, ios, android.
	Platform string `koanf:"platform"`

	// MetricsTextfile, when set, receives the Prometheus exposition after a probe.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// GenerationScores overrides entries of the iOS generation table,
	// keyed by generation name (e.g. "iPhone6").
	GenerationScores map[string]int `koanf:"generation_scores"`

	// Device supplies attributes the host cannot report (graphics) and the
	// full attribute set for the static source.
	Device Device `koanf:"device"`
}

// Device mirrors device.Attributes for configuration files.
type Device struct {
	Model                string `koanf:"model"`
	Name                 string `koanf:"name"`
	ProcessorType        string `koanf:"processor_type"`
	ProcessorCount       int    `koanf:"processor_count"`
	SystemMemoryMB       int    `koanf:"system_memory_mb"`
	GraphicsVendor       string `koanf:"graphics_vendor"`
	GraphicsName         string `koanf:"graphics_name"`
	GraphicsVersion      string `koanf:"graphics_version"`
	GraphicsMemoryMB     int    `koanf:"graphics_memory_mb"`
	ShaderLevel          int    `koanf:"shader_level"`
	MaxTextureSize       int    `koanf:"max_texture_size"`
	SupportsImageEffects bool   `koanf:"supports_image_effects"`
	// Generation is an iOS generation name; empty means detect.
	Generation string `koanf:"generation"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Source:           SourceSystem,
		Platform:         "auto",
		GenerationScores: map[string]int{},
		Device: Device{
			GraphicsVendor:  "unknown",
			GraphicsName:    "unknown",
			GraphicsVersion: "unknown",
		},
	}
}
