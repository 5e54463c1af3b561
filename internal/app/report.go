package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/devprobe/internal/domain/device"
	"github.com/okian/devprobe/internal/domain/scoring"
)

// Report is a diagnostic snapshot attached to bug reports. The ID lets a
// report be matched with the log lines written while producing it.
type Report struct {
	ID                 string            `json:"id"`
	TakenAt            time.Time         `json:"taken_at"`
	Platform           device.Platform   `json:"platform"`
	Generation         device.Generation `json:"generation"`
	Classified         bool              `json:"classified"`
	PerformanceScore   int               `json:"performance_score"`
	PerformanceRating  scoring.Rating    `json:"performance_rating"`
	GraphicsAPIVersion string            `json:"graphics_api_version"`
	Summary            string            `json:"summary"`
}

// Report samples the host once and bundles it with the latched
// classification.
func (p *Profiler) Report(ctx context.Context) Report {
	attrs := p.provider.Snapshot(ctx)

	p.mu.RLock()
	score, rating, classified := p.score, p.rating, p.classified
	p.mu.RUnlock()

	return Report{
		ID:                 uuid.NewString(),
		TakenAt:            time.Now().UTC(),
		Platform:           p.provider.Platform(),
		Generation:         attrs.Generation,
		Classified:         classified,
		PerformanceScore:   score,
		PerformanceRating:  rating,
		GraphicsAPIVersion: device.OpenGLESVersion(attrs.GraphicsDeviceVersion),
		Summary:            summarize(attrs, score, rating),
	}
}
