package sensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/stretchr/testify/assert"
)

func TestDummyMotionSensorFirstCallIsZero(t *testing.T) {
	truth := geo.Pose{Angle: 0.1, Position: geo.Point{1, 1}}
	s := NewDummyMotionSensor(func() geo.Pose { return truth })
	got := s.Sense()
	assert.Equal(t, geo.Pose{}, got)
}

func TestDummyMotionSensorReportsIncrement(t *testing.T) {
	poses := []geo.Pose{
		{Angle: 0, Position: geo.Point{0, 0}},
		{Angle: 0, Position: geo.Point{1, 0}},
	}
	i := 0
	s := NewDummyMotionSensor(func() geo.Pose {
		p := poses[i]
		if i < len(poses)-1 {
			i++
		}
		return p
	})
	s.Sense()
	got := s.Sense()
	assert.InDelta(t, 1.0, got.Position.X, 1e-9)
}

func TestDummyDistanceSensorNoiseWithinMargin(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewDummyDistanceSensor(geo.Pose{}, 10, true,
		func(geo.Pose) (float64, bool) { return 5.0, true },
		WithRand(rng), WithNoiseMargin(0.3))

	for i := 0; i < 1000; i++ {
		r := s.Sense()
		assert.True(t, r.Ok)
		assert.InDelta(t, 5.0, r.Distance, 2.0, "noise should stay roughly within a handful of margins")
	}
}

func TestDummyDistanceSensorOutOfRangeStaysOutOfRange(t *testing.T) {
	s := NewDummyDistanceSensor(geo.Pose{}, 10, true, func(geo.Pose) (float64, bool) { return 0, false })
	r := s.Sense()
	assert.False(t, r.Ok)
}

func TestDummyObjectDetectorZeroMarginPassesLandmarksThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	landmarks := []geo.Point{{2, 2}, {8, 2}}
	s := NewDummyObjectDetector(geo.Pose{}, 2*math.Pi, func(geo.Pose, float64) []geo.Point {
		return landmarks
	}, WithRand(rng), WithNoiseMargin(0))

	got := s.Sense()
	assert.Len(t, got.Points, 2)
	assert.Equal(t, landmarks[0], got.Points[0])
}
