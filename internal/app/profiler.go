// Package service provides the device profiler: it classifies the host's
// performance once and renders diagnostic summaries on demand.
package service

import (
	"context"
	"sync"

	"github.com/okian/devprobe/internal/domain/device"
	"github.com/okian/devprobe/internal/domain/kv"
	"github.com/okian/devprobe/internal/domain/scoring"
	"github.com/okian/devprobe/pkg/logger"
	"github.com/okian/devprobe/pkg/metrics"
)

// Profiler holds the latched performance classification of one device.
//
// A new Profiler reports score 0 and rating Low until ClassifyPerformance
// has run; use Classified to tell the two apart.
type Profiler struct {
	mu sync.RWMutex

	provider   device.Provider
	classifier *scoring.Classifier

	score      int
	rating     scoring.Rating
	classified bool

	logger logger.Logger
}

// Option applies a configuration option to the Profiler.
type Option func(*Profiler)

// WithProvider sets the host attribute provider.
func WithProvider(p device.Provider) Option {
	return func(pr *Profiler) {
		if p != nil {
			pr.provider = p
		}
	}
}

// WithClassifier sets the score classifier.
func WithClassifier(c *scoring.Classifier) Option {
	return func(pr *Profiler) {
		if c != nil {
			pr.classifier = c
		}
	}
}

// WithLogger sets a custom logger for the profiler.
func WithLogger(l logger.Logger) Option {
	return func(pr *Profiler) {
		if l != nil {
			pr.logger = l
		}
	}
}

// New constructs a Profiler. Without WithProvider it reports an empty
// desktop device.
func New(opts ...Option) *Profiler {
	p := &Profiler{
		provider:   emptyProvider{},
		classifier: scoring.NewClassifier(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Named("profiler")
	}
	return p
}

// ClassifyPerformance samples the provider and overwrites the score and
// rating. It is meant to run once at startup; later calls replace the result.
func (p *Profiler) ClassifyPerformance(ctx context.Context) {
	platform := p.provider.Platform()
	attrs := p.provider.Snapshot(ctx)

	res := p.classifier.Classify(scoring.Input{
		Platform:       platform,
		Generation:     attrs.Generation,
		ProcessorCount: attrs.ProcessorCount,
		SystemMemoryMB: attrs.SystemMemoryMB,
	})

	p.mu.Lock()
	p.score = res.Score
	p.rating = res.Rating
	p.classified = true
	p.mu.Unlock()

	metrics.RecordClassification(platform.String(), res.Score, res.Rating.String())
	p.logger.Info(ctx, "performance classified",
		logger.String("platform", platform.String()),
		logger.String("generation", attrs.Generation.String()),
		logger.Int("processorCount", attrs.ProcessorCount),
		logger.Int("systemMemorySize", attrs.SystemMemoryMB),
		logger.Int("score", res.Score),
		logger.String("rating", res.Rating.String()),
	)
}

// PerformanceScore returns the latched score.
func (p *Profiler) PerformanceScore() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.score
}

// PerformanceRating returns the latched rating.
func (p *Profiler) PerformanceRating() scoring.Rating {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rating
}

// Classified reports whether ClassifyPerformance has run.
func (p *Profiler) Classified() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.classified
}

// GraphicsAPIVersion returns the graphics device version when it is an
// OpenGL ES context, and "0" otherwise.
func (p *Profiler) GraphicsAPIVersion(ctx context.Context) string {
	return device.OpenGLESVersion(p.provider.Snapshot(ctx).GraphicsDeviceVersion)
}

// Summary renders live host attributes and the latched classification as
// one "name = value, ..." line.
func (p *Profiler) Summary(ctx context.Context) string {
	attrs := p.provider.Snapshot(ctx)

	p.mu.RLock()
	score, rating := p.score, p.rating
	p.mu.RUnlock()

	metrics.RecordSummaryRendered()
	return summarize(attrs, score, rating)
}

func summarize(attrs device.Attributes, score int, rating scoring.Rating) string {
	return kv.New("deviceModel", attrs.DeviceModel).
		And("deviceName", attrs.DeviceName).
		And("processorType", attrs.ProcessorType).
		And("processorCount", attrs.ProcessorCount).
		And("systemMemorySize", attrs.SystemMemoryMB).
		And("graphicsDeviceVendor", attrs.GraphicsDeviceVendor).
		And("graphicsDeviceName", attrs.GraphicsDeviceName).
		And("graphicsDeviceVersion", attrs.GraphicsDeviceVersion).
		And("graphicsMemorySize", attrs.GraphicsMemoryMB).
		And("graphicsShaderLevel", attrs.GraphicsShaderLevel).
		And("maxTextureSize", attrs.MaxTextureSize).
		And("PerformanceScore", score).
		And("PerformanceRating", rating).
		And("supportsImageEffects", attrs.SupportsImageEffects).
		Render()
}

type emptyProvider struct{}

func (emptyProvider) Platform() device.Platform { return device.PlatformDesktop }

func (emptyProvider) Snapshot(context.Context) device.Attributes { return device.Attributes{} }
