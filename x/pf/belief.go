// Package pf implements weighted-sample Monte Carlo localization: the
// particle belief shared by the 3-DOF and 6-DOF filters, and the
// range-finder and landmark observation models that feed it.
package pf

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/RoboticsTeam4904/global-robot-localization/pkg/logger"
	"github.com/RoboticsTeam4904/global-robot-localization/pkg/metrics"
)

var log = logger.Component("pf")

// particle is the constraint every pose type the belief can hold must
// satisfy: componentwise addition (for control updates and summation)
// and scalar division (for the mean-pose readout).
type particle[T any] interface {
	Add(T) T
	DivScalar(float64) T
}

// belief owns a weighted particle cloud. It is shared machinery between
// the 3-DOF and 6-DOF filters; the concrete filters own the
// observation models and wire this type's exported methods into the
// spec's control_update/observation_update/get_prediction API.
type belief[T particle[T]] struct {
	particles          []T
	rng                *rand.Rand
	maxParticleCount   int
	weightSumThreshold float64
	resamplingNoise    func(*rand.Rand) T
	// family is the filter family this belief belongs to ("pf3dof" or
	// "pf6dof"), used only to label its metrics and log entries.
	family string
}

func newBelief[T particle[T]](initial []T, rng *rand.Rand, maxParticleCount int, weightSumThreshold float64, resamplingNoise func(*rand.Rand) T, family string) *belief[T] {
	if maxParticleCount < 1 {
		panic("pf: max particle count must be at least 1")
	}
	return &belief[T]{
		particles:          initial,
		rng:                rng,
		maxParticleCount:   maxParticleCount,
		weightSumThreshold: weightSumThreshold,
		resamplingNoise:    resamplingNoise,
		family:             family,
	}
}

// Len returns the current particle count.
func (b *belief[T]) Len() int { return len(b.particles) }

// Particles returns a read-only view of the current particle cloud,
// for diagnostics and rendering.
func (b *belief[T]) Particles() []T {
	out := make([]T, len(b.particles))
	copy(out, b.particles)
	return out
}

// controlUpdate increments every particle by u, the single sampled
// pose increment reported by the motion sensor. Motion noise lives in
// the sensor's own distribution, so the filter does not resample the
// increment per particle.
func (b *belief[T]) controlUpdate(u T) {
	for i, p := range b.particles {
		b.particles[i] = p.Add(u)
	}
}

// getPrediction returns the arithmetic mean of every particle. Angle
// averaging is linear; callers whose belief straddles the 0/2*pi wrap
// boundary are responsible for unwrapping before averaging. Each
// particle is divided by the count before it is summed, so the running
// angle sum stays below 2*pi and Add's angle folding never wraps it.
func (b *belief[T]) getPrediction() T {
	var sum T
	n := float64(len(b.particles))
	for _, p := range b.particles {
		sum = sum.Add(p.DivScalar(n))
	}
	return sum
}

// observationUpdate performs the resample shared by every PF
// observation model. errs must have one entry per current particle.
// degenerateMultiplier is the observation model's constant applied to
// the all-zero-error fallback (2 for the range-finder model, 1 for the
// object-detector model, at either pose dimensionality).
func (b *belief[T]) observationUpdate(errs []float64, weightFromError func(float64) float64, degenerateMultiplier float64, resamplingNoise func(*rand.Rand) T) error {
	n := len(b.particles)
	weights := make([]float64, n)

	degenerate := allZero(errs) || allNaN(errs)
	if degenerate {
		log.Debug().Int("particles", n).Str("filter", b.family).Msg("degenerate observation error (all zero or all NaN), falling back to uniform weights")
		uniform := degenerateMultiplier * b.weightSumThreshold / float64(n)
		for i := range weights {
			weights[i] = uniform
		}
	} else {
		for i, e := range errs {
			if math.IsNaN(e) {
				e = math.Inf(1)
			}
			weights[i] = weightFromError(e)
		}
		if err := validateWeights(weights); err != nil {
			return err
		}
	}

	noise := resamplingNoise
	if noise == nil {
		noise = b.resamplingNoise
	}

	drawn, err := resample(b.particles, weights, b.rng, b.maxParticleCount, b.weightSumThreshold, noise)
	if err != nil {
		return err
	}
	b.particles = drawn

	metrics.ResampleTotal.WithLabelValues(strconv.FormatBool(degenerate)).Inc()
	metrics.BeliefSize.WithLabelValues(b.family).Set(float64(len(drawn)))
	return nil
}

func allZero(errs []float64) bool {
	for _, e := range errs {
		if e != 0 {
			return false
		}
	}
	return true
}

func allNaN(errs []float64) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if !math.IsNaN(e) {
			return false
		}
	}
	return true
}

func validateWeights(weights []float64) error {
	sum := 0.0
	for _, w := range weights {
		if math.IsNaN(w) || w < 0 {
			return ErrInvalidWeights
		}
		sum += w
	}
	if sum <= 0 {
		return ErrInvalidWeights
	}
	return nil
}

// resample draws indices from the weighted discrete distribution over
// particles until either the running sum of drawn weights reaches
// threshold or maxCount particles have been produced. Each drawn
// particle is perturbed by resamplingNoise, giving the belief an
// adaptive size: high-entropy beliefs keep drawing, sharply peaked
// ones stop early.
func resample[T particle[T]](particles []T, weights []float64, rng *rand.Rand, maxCount int, threshold float64, noise func(*rand.Rand) T) ([]T, error) {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, ErrInvalidWeights
	}

	out := make([]T, 0, maxCount)
	drawnSum := 0.0
	for drawnSum < threshold && len(out) < maxCount {
		idx := sampleIndex(cum, total, rng)
		drawnSum += weights[idx]
		p := particles[idx]
		if noise != nil {
			p = p.Add(noise(rng))
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, ErrEmptyBelief
	}
	return out, nil
}

// sampleIndex draws a weighted-random index via binary search over the
// cumulative weight array.
func sampleIndex(cum []float64, total float64, rng *rand.Rand) int {
	target := rng.Float64() * total
	lo, hi := 0, len(cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cum[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
