package host

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	gohost "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/okian/devprobe/internal/domain/device"
	"github.com/okian/devprobe/pkg/logger"
	"github.com/okian/devprobe/pkg/metrics"
)

const (
	unknownValue   = "unknown"
	bytesPerMB     = 1 << 20
	microsPerMilli = 1000.0
)

// Probe sources, used as metric labels and log fields.
const (
	sourceCPUInfo  = "cpu_info"
	sourceCPUCount = "cpu_count"
	sourceMemory   = "memory"
	sourceHost     = "host"
	sourceModel    = "model"
)

// System samples the running machine through gopsutil.
type System struct {
	platform   device.Platform
	generation device.Generation
	graphics   Graphics
	logger     logger.Logger
}

// NewSystem creates a provider for the current machine. The platform
// defaults to the one implied by runtime.GOOS.
func NewSystem(opts ...Option) *System {
	s := &System{
		platform: device.PlatformFromGOOS(runtime.GOOS),
		graphics: Graphics{
			Vendor:  unknownValue,
			Name:    unknownValue,
			Version: unknownValue,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("host")
	}
	return s
}

// Platform implements device.Provider.
func (s *System) Platform() device.Platform {
	return s.platform
}

// Snapshot implements device.Provider. Probe failures are logged and
// replaced with fallbacks.
func (s *System) Snapshot(ctx context.Context) device.Attributes {
	start := time.Now()
	defer func() {
		elapsed := float64(time.Since(start).Microseconds()) / microsPerMilli
		metrics.RecordProbeDuration(elapsed)
		s.logger.Debug(ctx, "host sampled", logger.Float64("durationMs", elapsed))
	}()

	attrs := device.Attributes{
		DeviceModel:           unknownValue,
		DeviceName:            unknownValue,
		ProcessorType:         unknownValue,
		GraphicsDeviceVendor:  s.graphics.Vendor,
		GraphicsDeviceName:    s.graphics.Name,
		GraphicsDeviceVersion: s.graphics.Version,
		GraphicsMemoryMB:      s.graphics.MemoryMB,
		GraphicsShaderLevel:   s.graphics.ShaderLevel,
		MaxTextureSize:        s.graphics.MaxTextureSize,
		SupportsImageEffects:  s.graphics.SupportsImageEffects,
		Generation:            s.generation,
	}

	if infos, err := cpu.InfoWithContext(ctx); err != nil {
		s.probeFailed(ctx, sourceCPUInfo, err)
	} else if len(infos) > 0 && strings.TrimSpace(infos[0].ModelName) != "" {
		attrs.ProcessorType = strings.TrimSpace(infos[0].ModelName)
	}

	attrs.ProcessorCount = runtime.NumCPU()
	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		s.probeFailed(ctx, sourceCPUCount, err)
	} else if n > 0 {
		attrs.ProcessorCount = n
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		s.probeFailed(ctx, sourceMemory, err)
	} else {
		attrs.SystemMemoryMB = int(vm.Total / bytesPerMB)
	}

	info, err := gohost.InfoWithContext(ctx)
	if err != nil {
		s.probeFailed(ctx, sourceHost, err)
		info = nil
	}
	attrs.DeviceName = deviceName(info)

	model, err := machineModel()
	switch {
	case err == nil && model != "":
		attrs.DeviceModel = model
	case info != nil && info.Platform != "":
		attrs.DeviceModel = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}
	if err != nil {
		s.logger.Debug(ctx, "hardware model unavailable", logger.String("probe", sourceModel), logger.Error(err))
	}

	if s.platform == device.PlatformIOS && attrs.Generation == device.GenerationUnknown {
		attrs.Generation = device.GenerationFromModel(model)
	}

	return attrs
}

func (s *System) probeFailed(ctx context.Context, source string, err error) {
	metrics.RecordProbeError(source)
	s.logger.Warn(ctx, "host probe failed; using fallback",
		logger.String("probe", source),
		logger.Error(err),
	)
}

func deviceName(info *gohost.InfoStat) string {
	if info != nil && info.Hostname != "" {
		return info.Hostname
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return unknownValue
}
