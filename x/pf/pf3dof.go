package pf

import (
	"math/rand"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
)

// weightSumThresholdDivisor3RangeFinder is D in maxParticleCount/D for the
// 3-DOF range-finder family's adaptive resampling stop.
const weightSumThresholdDivisor3RangeFinder = 50

// weightSumThresholdDivisor3Landmark is D for the 3-DOF landmark family.
const weightSumThresholdDivisor3Landmark = 60

// PF3RangeFinder is the 3-DOF particle filter scored against a bank of
// range-finder sensors.
type PF3RangeFinder struct {
	belief *belief[geo.Pose]
	model  RangeFinderModel[geo.Pose]
	weight func(float64) float64
}

// NewPF3RangeFinder seeds maxParticleCount particles uniformly over
// bounds.
func NewPF3RangeFinder(maxParticleCount int, bounds geo.Bounds, rng *rand.Rand, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3RangeFinder {
	initial := make([]geo.Pose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomPose(rng, bounds)
	}
	return newPF3RangeFinder(initial, rng, maxParticleCount, m, sensors, penalty, resamplingNoise, weightFromError)
}

// FromDistributionsPF3RangeFinder seeds maxParticleCount particles from
// caller-supplied per-component distributions.
func FromDistributionsPF3RangeFinder(maxParticleCount int, angle, x, y geo.Distribution, rng *rand.Rand, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3RangeFinder {
	initial := make([]geo.Pose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomPoseFrom(angle, x, y)
	}
	return newPF3RangeFinder(initial, rng, maxParticleCount, m, sensors, penalty, resamplingNoise, weightFromError)
}

func newPF3RangeFinder(initial []geo.Pose, rng *rand.Rand, maxParticleCount int, m *worldmap.Map2D, sensors []sensor.DistanceSensor, penalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3RangeFinder {
	model := RangeFinderModel[geo.Pose]{Map: m, Sensors: sensors, Penalty: penalty}
	threshold := float64(maxParticleCount) / weightSumThresholdDivisor3RangeFinder
	return &PF3RangeFinder{
		belief: newBelief(initial, rng, maxParticleCount, threshold, resamplingNoise.sample, "pf3dof"),
		model:  model,
		weight: weightFromError,
	}
}

// ControlUpdate advances every particle by the motion sensor's latest
// reading.
func (f *PF3RangeFinder) ControlUpdate(s sensor.MotionSensor) {
	f.belief.controlUpdate(s.Sense())
}

// ObservationUpdate scores every particle against readings (one per
// sensor in the model, in the same order) and resamples.
func (f *PF3RangeFinder) ObservationUpdate(readings []sensor.DistanceReading) error {
	errs := make([]float64, f.belief.Len())
	for i, p := range f.belief.particles {
		errs[i] = f.model.Error(p, readings)
	}
	return f.belief.observationUpdate(errs, f.weight, f.model.DegenerateMultiplier(), nil)
}

// GetPrediction returns the belief's mean pose.
func (f *PF3RangeFinder) GetPrediction() geo.Pose { return f.belief.getPrediction() }

// Belief returns a read-only view of the particle cloud.
func (f *PF3RangeFinder) Belief() []geo.Pose { return f.belief.Particles() }

// PF3Landmark is the 3-DOF particle filter scored against an object
// detector's landmark observations.
type PF3Landmark struct {
	belief *belief[geo.Pose]
	model  LandmarkModel[geo.Pose]
	weight func(float64) float64
}

// NewPF3Landmark seeds maxParticleCount particles uniformly over bounds.
func NewPF3Landmark(maxParticleCount int, bounds geo.Bounds, rng *rand.Rand, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3Landmark {
	initial := make([]geo.Pose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomPose(rng, bounds)
	}
	return newPF3Landmark(initial, rng, maxParticleCount, m, detector, mismatchPenalty, resamplingNoise, weightFromError)
}

// FromDistributionsPF3Landmark seeds maxParticleCount particles from
// caller-supplied per-component distributions.
func FromDistributionsPF3Landmark(maxParticleCount int, angle, x, y geo.Distribution, rng *rand.Rand, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3Landmark {
	initial := make([]geo.Pose, maxParticleCount)
	for i := range initial {
		initial[i] = geo.RandomPoseFrom(angle, x, y)
	}
	return newPF3Landmark(initial, rng, maxParticleCount, m, detector, mismatchPenalty, resamplingNoise, weightFromError)
}

func newPF3Landmark(initial []geo.Pose, rng *rand.Rand, maxParticleCount int, m *worldmap.Map2D, detector sensor.ObjectDetector, mismatchPenalty float64, resamplingNoise ResamplingNoise3, weightFromError func(float64) float64) *PF3Landmark {
	model := LandmarkModel[geo.Pose]{Map: m, Detector: detector, MismatchPenalty: mismatchPenalty}
	threshold := float64(maxParticleCount) / weightSumThresholdDivisor3Landmark
	return &PF3Landmark{
		belief: newBelief(initial, rng, maxParticleCount, threshold, resamplingNoise.sample, "pf3dof"),
		model:  model,
		weight: weightFromError,
	}
}

// ControlUpdate advances every particle by the motion sensor's latest
// reading.
func (f *PF3Landmark) ControlUpdate(s sensor.MotionSensor) {
	f.belief.controlUpdate(s.Sense())
}

// ObservationUpdate scores every particle against detection and
// resamples.
func (f *PF3Landmark) ObservationUpdate(detection sensor.Detection) error {
	errs := make([]float64, f.belief.Len())
	for i, p := range f.belief.particles {
		errs[i] = f.model.Error(p, detection)
	}
	return f.belief.observationUpdate(errs, f.weight, f.model.DegenerateMultiplier(), nil)
}

// GetPrediction returns the belief's mean pose.
func (f *PF3Landmark) GetPrediction() geo.Pose { return f.belief.getPrediction() }

// Belief returns a read-only view of the particle cloud.
func (f *PF3Landmark) Belief() []geo.Pose { return f.belief.Particles() }
