package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/devprobe/internal/domain/device"
)

// Environment variables understood by Load.
const (
	EnvPrefix = "DEVPROBE_"
	EnvConfig = EnvPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if DEVPROBE_CONFIG is set
//  3. env (prefix DEVPROBE_)
func Load(ctx context.Context) (*Config, error) {
	return LoadFile(ctx, os.Getenv(EnvConfig))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file layer.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// DEVPROBE_LOG_LEVEL -> log_level; a double underscore nests, so
	// DEVPROBE_DEVICE__GRAPHICS_VENDOR -> device.graphics_vendor.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and generation names.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSystem, SourceStatic:
	default:
		return fmt.Errorf("%w: source must be %q or %q, got %q", ErrInvalidConfig, SourceSystem, SourceStatic, c.Source)
	}

	if !strings.EqualFold(strings.TrimSpace(c.Platform), device.PlatformAuto) {
		if _, err := device.ParsePlatform(c.Platform); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if c.Device.Generation != "" {
		if _, err := device.ParseGeneration(c.Device.Generation); err != nil {
			return fmt.Errorf("%w: device: %w", ErrInvalidConfig, err)
		}
	}

	if _, err := c.ParsedGenerationScores(); err != nil {
		return err
	}
	return nil
}

// ResolvedPlatform returns the configured platform, or the one implied by
// goos when the setting is "auto".
func (c *Config) ResolvedPlatform(goos string) (device.Platform, error) {
	if strings.EqualFold(strings.TrimSpace(c.Platform), device.PlatformAuto) {
		return device.PlatformFromGOOS(goos), nil
	}
	p, err := device.ParsePlatform(c.Platform)
	if err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}

// ParsedGenerationScores converts GenerationScores keys to generations.
func (c *Config) ParsedGenerationScores() (map[device.Generation]int, error) {
	out := make(map[device.Generation]int, len(c.GenerationScores))
	for name, score := range c.GenerationScores {
		g, err := device.ParseGeneration(name)
		if err != nil || g == device.GenerationUnknown {
			return nil, fmt.Errorf("%w: generation_scores: unknown generation %q", ErrInvalidConfig, name)
		}
		out[g] = score
	}
	return out, nil
}

// DeviceGeneration parses Device.Generation; empty yields GenerationUnknown.
func (c *Config) DeviceGeneration() device.Generation {
	g, err := device.ParseGeneration(c.Device.Generation)
	if err != nil {
		return device.GenerationUnknown
	}
	return g
}

// Attributes converts the Device section to device attributes.
func (c *Config) Attributes() device.Attributes {
	d := c.Device
	return device.Attributes{
		DeviceModel:           d.Model,
		DeviceName:            d.Name,
		ProcessorType:         d.ProcessorType,
		ProcessorCount:        d.ProcessorCount,
		SystemMemoryMB:        d.SystemMemoryMB,
		GraphicsDeviceVendor:  d.GraphicsVendor,
		GraphicsDeviceName:    d.GraphicsName,
		GraphicsDeviceVersion: d.GraphicsVersion,
		GraphicsMemoryMB:      d.GraphicsMemoryMB,
		GraphicsShaderLevel:   d.ShaderLevel,
		MaxTextureSize:        d.MaxTextureSize,
		SupportsImageEffects:  d.SupportsImageEffects,
		Generation:            c.DeviceGeneration(),
	}
}
