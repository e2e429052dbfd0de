package pf

import (
	"math/rand"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
)

// weightSumThresholdDivisor6 is D in maxParticleCount/D for both 6-DOF
// filter families; unlike the 3-DOF family the range-finder and
// landmark variants share the same divisor.
const weightSumThresholdDivisor6 = 60

// PF6RangeFinder is the 6-DOF particle filter scored against a bank of
// range-finder sensors.
type PF6RangeFinder struct {
	belief *belief[geo.ExtendedPose]
	model  RangeFinderModel[geo.ExtendedPose]
	weight func(float64) float64
}

// NewPF6RangeFinder seeds maxParticleCount particles uniformly over
// bounds, with zero initial velocity.
func NewPF6RangeFinder(maxParticleCount int, bounds geo.Bounds, rng *rand.Rand, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6RangeFinder {
	initial := make([]geo.ExtendedPose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomExtendedPose(rng, bounds)
	}
	return newPF6RangeFinder(initial, rng, maxParticleCount, m, sensors, penalty, resamplingNoise, weightFromError)
}

// FromDistributionsPF6RangeFinder seeds maxParticleCount particles from
// caller-supplied per-component distributions, with zero initial
// velocity.
func FromDistributionsPF6RangeFinder(maxParticleCount int, angle, x, y geo.Distribution, rng *rand.Rand, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6RangeFinder {
	initial := make([]geo.ExtendedPose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomExtendedPoseFrom(angle, x, y)
	}
	return newPF6RangeFinder(initial, rng, maxParticleCount, m, sensors, penalty, resamplingNoise, weightFromError)
}

func newPF6RangeFinder(initial []geo.ExtendedPose, rng *rand.Rand, maxParticleCount int, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6RangeFinder {
	model := RangeFinderModel[geo.ExtendedPose]{Map: m, Sensors: sensors, Penalty: penalty}
	threshold := float64(maxParticleCount) / weightSumThresholdDivisor6
	return &PF6RangeFinder{
		belief: newBelief(initial, rng, maxParticleCount, threshold, resamplingNoise.sample, "pf6dof"),
		model:  model,
		weight: weightFromError,
	}
}

// ControlUpdate advances every particle by the motion sensor's latest
// reading, then clamps each particle into bounds, zeroing the velocity
// component along any clipped axis.
func (f *PF6RangeFinder) ControlUpdate(s sensor.ExtendedMotionSensor, bounds geo.Bounds) {
	u := s.Sense()
	f.belief.controlUpdate(u)
	for i, p := range f.belief.particles {
		f.belief.particles[i] = p.ClampControlUpdate(bounds)
	}
}

// ObservationUpdate scores every particle against readings and
// resamples.
func (f *PF6RangeFinder) ObservationUpdate(readings []sensor.DistanceReading) error {
	errs := make([]float64, f.belief.Len())
	for i, p := range f.belief.particles {
		errs[i] = f.model.Error(p, readings)
	}
	return f.belief.observationUpdate(errs, f.weight, f.model.DegenerateMultiplier(), nil)
}

// GetPrediction returns the belief's mean extended pose.
func (f *PF6RangeFinder) GetPrediction() geo.ExtendedPose { return f.belief.getPrediction() }

// Belief returns a read-only view of the particle cloud.
func (f *PF6RangeFinder) Belief() []geo.ExtendedPose { return f.belief.Particles() }

// PF6Landmark is the 6-DOF particle filter scored against an object
// detector's landmark observations.
type PF6Landmark struct {
	belief *belief[geo.ExtendedPose]
	model  LandmarkModel[geo.ExtendedPose]
	weight func(float64) float64
}

// NewPF6Landmark seeds maxParticleCount particles uniformly over
// bounds, with zero initial velocity.
func NewPF6Landmark(maxParticleCount int, bounds geo.Bounds, rng *rand.Rand, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6Landmark {
	initial := make([]geo.ExtendedPose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomExtendedPose(rng, bounds)
	}
	return newPF6Landmark(initial, rng, maxParticleCount, m, detector, mismatchPenalty, resamplingNoise, weightFromError)
}

// FromDistributionsPF6Landmark seeds maxParticleCount particles from
// caller-supplied per-component distributions, with zero initial
// velocity.
func FromDistributionsPF6Landmark(maxParticleCount int, angle, x, y geo.Distribution, rng *rand.Rand, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6Landmark {
	initial := make([]geo.ExtendedPose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomExtendedPoseFrom(angle, x, y)
	}
	return newPF6Landmark(initial, rng, maxParticleCount, m, detector, mismatchPenalty, resamplingNoise, weightFromError)
}

func newPF6Landmark(initial []geo.ExtendedPose, rng *rand.Rand, maxParticleCount int, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise6, weightFromError func(float64) float64) *PF6Landmark {
	model := LandmarkModel[geo.ExtendedPose]{Map: m, Detector: detector, MismatchPenalty: mismatchPenalty}
	threshold := float64(maxParticleCount) / weightSumThresholdDivisor6
	return &PF6Landmark{
		belief: newBelief(initial, rng, maxParticleCount, threshold, resamplingNoise.sample, "pf6dof"),
		model:  model,
		weight: weightFromError,
	}
}

// ControlUpdate advances every particle by the motion sensor's latest
// reading, then clamps each particle into bounds.
func (f *PF6Landmark) ControlUpdate(s sensor.ExtendedMotionSensor, bounds geo.Bounds) {
	u := s.Sense()
	f.belief.controlUpdate(u)
	for i, p := range f.belief.particles {
		f.belief.particles[i] = p.ClampControlUpdate(bounds)
	}
}

// ObservationUpdate scores every particle against detection and
// resamples.
func (f *PF6Landmark) ObservationUpdate(detection sensor.Detection) error {
	errs := make([]float64, f.belief.Len())
	for i, p := range f.belief.particles {
		errs[i] = f.model.Error(p, detection)
	}
	return f.belief.observationUpdate(errs, f.weight, f.model.DegenerateMultiplier(), nil)
}

// GetPrediction returns the belief's mean extended pose.
func (f *PF6Landmark) GetPrediction() geo.ExtendedPose { return f.belief.getPrediction() }

// Belief returns a read-only view of the particle cloud.
func (f *PF6Landmark) Belief() []geo.ExtendedPose { return f.belief.Particles() }
