package pf

import (
	"math"
	"math/rand"
	"testing"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square10Map(t *testing.T) *worldmap.Map2D {
	t.Helper()
	verts := []geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	lines := []worldmap.Segment{{A: 0, B: 1}, {A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 0}}
	m, err := worldmap.New(10, 10, verts, lines, nil)
	require.NoError(t, err)
	return m
}

type stubDistanceSensor struct {
	relative geo.Pose
	reading  sensor.DistanceReading
	maxRange float64
	ranged   bool
}

func (s stubDistanceSensor) Sense() sensor.DistanceReading { return s.reading }
func (s stubDistanceSensor) Range() (float64, bool)        { return s.maxRange, s.ranged }
func (s stubDistanceSensor) RelativePose() geo.Pose        { return s.relative }

type stubMotionSensor struct{ delta geo.Pose }

func (s stubMotionSensor) Sense() geo.Pose { return s.delta }

func invError(e float64) float64 {
	if math.IsInf(e, 1) {
		return 0
	}
	return 1 / (1 + e)
}

func TestPF3RangeFinderBeliefLenWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := square10Map(t)
	bounds := geo.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	noise := ResamplingNoise3{
		Angle: geo.UniformRange{Min: -0.01, Max: 0.01},
		X:     geo.UniformRange{Min: -0.01, Max: 0.01},
		Y:     geo.UniformRange{Min: -0.01, Max: 0.01},
	}
	sensors := []sensor.DistanceSensor{
		stubDistanceSensor{relative: geo.Pose{}, reading: sensor.DistanceReading{Distance: 5, Ok: true}},
	}
	f := NewPF3RangeFinder(200, bounds, rng, m, sensors, 5.0, noise, invError)

	require.NoError(t, f.ObservationUpdate([]sensor.DistanceReading{{Distance: 5, Ok: true}}))
	assert.True(t, f.belief.Len() >= 1 && f.belief.Len() <= 200)
}

func TestPF3RangeFinderDegenerateWeightsAreUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := square10Map(t)
	bounds := geo.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	noise := ResamplingNoise3{}
	sensors := []sensor.DistanceSensor{}
	f := NewPF3RangeFinder(50, bounds, rng, m, sensors, 5.0, noise, invError)

	require.NoError(t, f.ObservationUpdate(nil))
	assert.True(t, f.belief.Len() >= 1 && f.belief.Len() <= 50)
}

func TestPF3RangeFinderControlUpdateAppliesIncrement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := square10Map(t)
	bounds := geo.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	noise := ResamplingNoise3{}
	f := NewPF3RangeFinder(10, bounds, rng, m, nil, 5.0, noise, invError)

	before := f.GetPrediction()
	f.ControlUpdate(stubMotionSensor{delta: geo.Pose{Position: geo.Point{X: 1, Y: 0}}})
	after := f.GetPrediction()

	assert.InDelta(t, before.Position.X+1, after.Position.X, 1e-9)
}

type stubDetector struct {
	relative  geo.Pose
	detection sensor.Detection
}

func (s stubDetector) Sense() sensor.Detection { return s.detection }
func (s stubDetector) RelativePose() geo.Pose  { return s.relative }

func TestPF3LandmarkGetPredictionIsComponentwiseMean(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := square10Map(t)
	bounds := geo.Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	noise := ResamplingNoise3{}
	detector := stubDetector{detection: sensor.Detection{Fov: 2 * math.Pi}}
	f := NewPF3Landmark(3, bounds, rng, m, detector, 6.0, noise, invError)

	sum := geo.Pose{}
	for _, p := range f.Belief() {
		sum = sum.Add(p)
	}
	want := sum.DivScalar(float64(len(f.Belief())))
	got := f.GetPrediction()
	assert.InDelta(t, want.Position.X, got.Position.X, 1e-9)
	assert.InDelta(t, want.Position.Y, got.Position.Y, 1e-9)
}
