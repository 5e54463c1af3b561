package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "devprobe")
				So(manager.subsystem, ShouldEqual, "profiler")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("game"),
				WithSubsystem("device"),
				WithHistogramBuckets([]float64{1, 10}),
				WithCustomLabels(map[string]string{"build": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordClassification("android", 6, "Middle")

			Convey("Then metric names and labels follow the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "game_device_performance_score")
				So(names, ShouldContain, "game_device_classifications_total")

				count, err := testutil.GatherAndCount(registry, "game_device_performance_score")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording two classifications", func() {
			manager.RecordClassification("android", 4, "Low")
			manager.RecordClassification("android", 9, "High")

			Convey("Then the score gauge holds the latest value", func() {
				So(testutil.ToFloat64(manager.performanceScore), ShouldEqual, 9)
			})

			Convey("And only the latest rating is present", func() {
				So(testutil.CollectAndCount(manager.performanceRating), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.performanceRating.WithLabelValues("High")), ShouldEqual, 1)
			})

			Convey("And the runs are counted per platform", func() {
				So(testutil.ToFloat64(manager.classifications.WithLabelValues("android")), ShouldEqual, 2)
			})
		})

		Convey("When recording probe activity", func() {
			manager.RecordProbeError("memory")
			manager.RecordProbeError("memory")
			manager.RecordProbeDuration(3.5)
			manager.RecordSummaryRendered()

			Convey("Then counters reflect it", func() {
				So(testutil.ToFloat64(manager.probeErrors.WithLabelValues("memory")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.summariesRendered), ShouldEqual, 1)
				So(testutil.CollectAndCount(manager.probeDuration), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		manager := NewManager(
			WithPrometheusRegistry(prometheus.NewRegistry()),
			WithMetricsEnabled(false),
		)
		manager.RecordClassification("desktop", 10, "High")
		manager.RecordSummaryRendered()

		Convey("Then nothing is recorded", func() {
			So(testutil.ToFloat64(manager.performanceScore), ShouldEqual, 0)
			So(testutil.ToFloat64(manager.summariesRendered), ShouldEqual, 0)
		})
	})

	Convey("Given the global helpers", t, func() {
		Convey("Then they should not panic", func() {
			So(func() {
				RecordClassification("desktop", 10, "High")
				RecordProbeError("cpu")
				RecordProbeDuration(1)
				RecordSummaryRendered()
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a recorded classification", t, func() {
		RecordClassification("desktop", 10, "High")

		Convey("When writing the textfile", func() {
			path := filepath.Join(t.TempDir(), "devprobe.prom")
			err := WriteTextfile(path)

			Convey("Then the file contains the exposition", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "devprobe_profiler_performance_score 10")
				So(strings.Contains(string(data), `devprobe_profiler_performance_rating{rating="High"} 1`), ShouldBeTrue)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "devprobe.prom"))

			Convey("Then an export error is returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			})
		})
	})
}
