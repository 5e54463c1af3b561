// Package host provides device.Provider implementations backed by the
// running machine or by fixed configuration.
package host

import (
	"github.com/okian/devprobe/internal/domain/device"
	"github.com/okian/devprobe/pkg/logger"
)

// Graphics describes the graphics device. Go has no portable GPU query, so
// these values are supplied by the embedding engine or by configuration.
type Graphics struct {
	Vendor               string
	Name                 string
	Version              string
	MemoryMB             int
	ShaderLevel          int
	MaxTextureSize       int
	SupportsImageEffects bool
}

// Option applies a configuration option to the System provider.
type Option func(*System)

// WithPlatform forces the reported platform instead of deriving it from GOOS.
func WithPlatform(p device.Platform) Option {
	return func(s *System) {
		s.platform = p
	}
}

// WithGraphics sets the graphics device values reported in snapshots.
func WithGraphics(g Graphics) Option {
	return func(s *System) {
		s.graphics = g
	}
}

// WithGeneration forces the device generation. GenerationUnknown keeps
// detection from the hardware identifier.
func WithGeneration(g device.Generation) Option {
	return func(s *System) {
		if g != device.GenerationUnknown {
			s.generation = g
		}
	}
}

// WithLogger sets a custom logger for probe failures.
func WithLogger(l logger.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.logger = l
		}
	}
}
