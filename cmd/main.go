package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/okian/devprobe/internal/adapters/host"
	service "github.com/okian/devprobe/internal/app"
	"github.com/okian/devprobe/internal/config"
	"github.com/okian/devprobe/internal/domain/device"
	"github.com/okian/devprobe/internal/domain/scoring"
	"github.com/okian/devprobe/pkg/logger"
	"github.com/okian/devprobe/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("devprobe: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

// flags holds command-line overrides. Only flags that were set override config.
type flags struct {
	set             *pflag.FlagSet
	configPath      string
	platform        string
	source          string
	logLevel        string
	metricsTextfile string
	asJSON          bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: pflag.NewFlagSet("devprobe", pflag.ContinueOnError)}
	f.set.SetOutput(stderr)
	f.set.StringVarP(&f.configPath, "config", "c", os.Getenv(config.EnvConfig), "YAML config file")
	f.set.StringVar(&f.platform, "platform", "", "force platform: auto, desktop, ios, android")
	f.set.StringVar(&f.source, "source", "", "host provider: system or static")
	f.set.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.set.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	f.set.BoolVar(&f.asJSON, "json", false, "print a JSON report instead of the summary line")
	if err := f.set.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *flags) apply(cfg *config.Config) error {
	if f.set.Changed("platform") {
		cfg.Platform = f.platform
	}
	if f.set.Changed("source") {
		cfg.Source = f.source
	}
	if f.set.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.set.Changed("metrics-textfile") {
		cfg.MetricsTextfile = f.metricsTextfile
	}
	return cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.LoadFile(ctx, f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := f.apply(cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithOutput(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	scores, err := cfg.ParsedGenerationScores()
	if err != nil {
		return err
	}

	profiler := service.New(
		service.WithLogger(log.Named("profiler")),
		service.WithProvider(provider),
		service.WithClassifier(scoring.NewClassifier(scoring.WithGenerationScores(scores))),
	)
	profiler.ClassifyPerformance(ctx)

	if f.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(profiler.Report(ctx)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	} else if _, err := fmt.Fprintln(stdout, profiler.Summary(ctx)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
		log.Debug(ctx, "metrics written", logger.String("path", cfg.MetricsTextfile))
	}
	return nil
}

// newProvider builds the host provider selected by configuration.
func newProvider(cfg *config.Config) (device.Provider, error) {
	platform, err := cfg.ResolvedPlatform(runtime.GOOS)
	if err != nil {
		return nil, err
	}

	if cfg.Source == config.SourceStatic {
		return host.NewStatic(platform, cfg.Attributes()), nil
	}

	d := cfg.Device
	return host.NewSystem(
		host.WithPlatform(platform),
		host.WithGeneration(cfg.DeviceGeneration()),
		host.WithLogger(logger.Named("host")),
		host.WithGraphics(host.Graphics{
			Vendor:               d.GraphicsVendor,
			Name:                 d.GraphicsName,
			Version:              d.GraphicsVersion,
			MemoryMB:             d.GraphicsMemoryMB,
			ShaderLevel:          d.ShaderLevel,
			MaxTextureSize:       d.MaxTextureSize,
			SupportsImageEffects: d.SupportsImageEffects,
		}),
	), nil
}
