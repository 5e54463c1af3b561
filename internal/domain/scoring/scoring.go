// Package scoring derives a performance score and rating from device facts.
package scoring

import (
	"maps"

	"github.com/okian/devprobe/internal/domain/device"
)

// Score thresholds and platform defaults.
const (
	middleThreshold = 6
	highThreshold   = 9

	// unknownGenerationScore treats unrecognised (usually newer) iOS
	// hardware as high-end.
	unknownGenerationScore = 10
	desktopScore           = 10

	androidMinCores     = 4
	androidMinMemoryMB  = 1500
	androidHighCores    = 8
	androidHighMemoryMB = 5000
	androidHighScore    = 9
	androidMidScore     = 6
	androidLowScore     = 4
)

// Hand-tuned iOS scores. Geekbench single-core figures:
// https://browser.geekbench.com/ios-benchmarks
var defaultGenerationScores = map[device.Generation]int{
	device.GenerationIPhone5S:      5, // 1268 A7
	device.GenerationIPadMini3Gen:  5, // 1247 A7
	device.GenerationIPadAir1:      5, // 1328 A7
	device.GenerationIPhone6:       6, // 1422 A8
	device.GenerationIPhone6Plus:   6, // 1460 A8
	device.GenerationIPodTouch6Gen: 6, // 1330 A8
	device.GenerationIPadMini4Gen:  7, // 1658 A8
	device.GenerationIPadAir2:      7, // 1795 A8X
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithGenerationScores overrides entries of the iOS generation table.
// Generations not present keep their built-in score. Unknown generations
// always score unknownGenerationScore.
func WithGenerationScores(scores map[device.Generation]int) Option {
	return func(c *Classifier) {
		for g, score := range scores {
			if g == device.GenerationUnknown {
				continue
			}
			c.generationScores[g] = score
		}
	}
}

// Input holds the device facts the classifier needs.
type Input struct {
	Platform       device.Platform
	Generation     device.Generation
	ProcessorCount int
	SystemMemoryMB int
}

// Result is a score and the rating derived from it.
type Result struct {
	Score  int
	Rating Rating
}

// Classifier maps device facts to a performance score.
type Classifier struct {
	generationScores map[device.Generation]int
}

// NewClassifier creates a classifier with the built-in tuning table.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		generationScores: maps.Clone(defaultGenerationScores),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify computes the score for in. It never fails.
func (c *Classifier) Classify(in Input) Result {
	var score int
	switch in.Platform {
	case device.PlatformIOS:
		score = c.generationScore(in.Generation)
	case device.PlatformAndroid:
		score = androidScore(in.ProcessorCount, in.SystemMemoryMB)
	default:
		score = desktopScore
	}
	return Result{Score: score, Rating: RatingFor(score)}
}

func (c *Classifier) generationScore(g device.Generation) int {
	if score, ok := c.generationScores[g]; ok {
		return score
	}
	return unknownGenerationScore
}

func androidScore(cores, memoryMB int) int {
	if cores >= androidMinCores && memoryMB >= androidMinMemoryMB {
		if cores >= androidHighCores || memoryMB >= androidHighMemoryMB {
			return androidHighScore
		}
		return androidMidScore
	}
	return androidLowScore
}
