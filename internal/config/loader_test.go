package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/devprobe/internal/config"
	"github.com/okian/devprobe/internal/domain/device"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Source, convey.ShouldEqual, config.SourceSystem)
			convey.So(cfg.Platform, convey.ShouldEqual, "auto")
			convey.So(cfg.MetricsTextfile, convey.ShouldBeEmpty)
			convey.So(cfg.GenerationScores, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceSystem)
				convey.So(cfg.Device.GraphicsVendor, convey.ShouldEqual, "unknown")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("DEVPROBE_LOG_LEVEL", "debug")
			_ = os.Setenv("DEVPROBE_PLATFORM", "android")
			_ = os.Setenv("DEVPROBE_METRICS_TEXTFILE", "/tmp/devprobe.prom")
			_ = os.Setenv("DEVPROBE_DEVICE__GRAPHICS_VENDOR", "ARM")
			_ = os.Setenv("DEVPROBE_DEVICE__PROCESSOR_COUNT", "8")
			_ = os.Setenv("DEVPROBE_GENERATION_SCORES__IPHONE6", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Platform, convey.ShouldEqual, "android")
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "/tmp/devprobe.prom")
				convey.So(cfg.Device.GraphicsVendor, convey.ShouldEqual, "ARM")
				convey.So(cfg.Device.ProcessorCount, convey.ShouldEqual, 8)

				scores, err := cfg.ParsedGenerationScores()
				convey.So(err, convey.ShouldBeNil)
				convey.So(scores[device.GenerationIPhone6], convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
source: static
platform: ios
log_format: json
generation_scores:
  iPhone6: 7
  iPadAir2: 8
device:
  model: "iPhone7,2"
  name: "QA iPhone"
  processor_count: 2
  system_memory_mb: 1000
  graphics_vendor: Apple
  graphics_name: "Apple A8 GPU"
  graphics_version: "Metal"
  supports_image_effects: true
  generation: iPhone6
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("DEVPROBE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceStatic)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")

				p, err := cfg.ResolvedPlatform("linux")
				convey.So(err, convey.ShouldBeNil)
				convey.So(p, convey.ShouldEqual, device.PlatformIOS)

				attrs := cfg.Attributes()
				convey.So(attrs.DeviceModel, convey.ShouldEqual, "iPhone7,2")
				convey.So(attrs.DeviceName, convey.ShouldEqual, "QA iPhone")
				convey.So(attrs.ProcessorCount, convey.ShouldEqual, 2)
				convey.So(attrs.SystemMemoryMB, convey.ShouldEqual, 1000)
				convey.So(attrs.GraphicsDeviceVersion, convey.ShouldEqual, "Metal")
				convey.So(attrs.SupportsImageEffects, convey.ShouldBeTrue)
				convey.So(attrs.Generation, convey.ShouldEqual, device.GenerationIPhone6)

				scores, err := cfg.ParsedGenerationScores()
				convey.So(err, convey.ShouldBeNil)
				convey.So(scores, convey.ShouldResemble, map[device.Generation]int{
					device.GenerationIPhone6:  7,
					device.GenerationIPadAir2: 8,
				})
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
platform: ios
log_level: warn
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("DEVPROBE_CONFIG", tmpFile)
			_ = os.Setenv("DEVPROBE_PLATFORM", "desktop")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Platform, convey.ShouldEqual, "desktop") // Overridden by env
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")    // From file
			})
		})

		convey.Convey("When loading an explicit file path", func() {
			tmpFile := createTempConfigFile("source: static\n")
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.LoadFile(ctx, tmpFile)

			convey.Convey("Then the file is used without DEVPROBE_CONFIG", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Source, convey.ShouldEqual, config.SourceStatic)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("DEVPROBE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("DEVPROBE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("DEVPROBE_DEVICE__PROCESSOR_COUNT", "many")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given invalid values", t, func() {
		ctx := context.Background()
		defer clearConfigEnvVars()

		cases := []struct {
			name  string
			key   string
			value string
		}{
			{"unknown source", "DEVPROBE_SOURCE", "registry"},
			{"unknown platform", "DEVPROBE_PLATFORM", "switch"},
			{"empty platform", "DEVPROBE_PLATFORM", ""},
			{"unknown device generation", "DEVPROBE_DEVICE__GENERATION", "iPhone99"},
			{"unknown score generation", "DEVPROBE_GENERATION_SCORES__IPHONE99", "5"},
		}

		for _, tc := range cases {
			convey.Convey("When the config has an "+tc.name, func() {
				clearConfigEnvVars()
				_ = os.Setenv(tc.key, tc.value)

				cfg, err := config.Load(ctx)

				convey.Convey("Then it should return a validation error", func() {
					convey.So(cfg, convey.ShouldBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})

	convey.Convey("Given the auto platform", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it resolves from GOOS", func() {
			p, err := cfg.ResolvedPlatform("android")
			convey.So(err, convey.ShouldBeNil)
			convey.So(p, convey.ShouldEqual, device.PlatformAndroid)

			p, err = cfg.ResolvedPlatform("windows")
			convey.So(err, convey.ShouldBeNil)
			convey.So(p, convey.ShouldEqual, device.PlatformDesktop)
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			_ = os.Unsetenv(name)
		}
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "devprobe-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
