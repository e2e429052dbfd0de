package geo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoseAddSubRoundTrip(t *testing.T) {
	a := Pose{Angle: 1.2, Position: Point{3, 4}}
	b := Pose{Angle: 0.4, Position: Point{-1, 2}}

	got := a.Add(b).Sub(b)
	assert.InDelta(t, a.Position.X, got.Position.X, 1e-12)
	assert.InDelta(t, a.Position.Y, got.Position.Y, 1e-12)
	assert.InDelta(t, a.Angle, got.Angle, 1e-12)
}

func TestClampControlUpdateZeroesVelocityOnClip(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	e := ExtendedPose{
		Pose:           Pose{Position: Point{12, 5}},
		LinearVelocity: Point{3, -2},
	}

	clamped := e.ClampControlUpdate(bounds)
	assert.Equal(t, 10.0, clamped.Position.X)
	assert.Equal(t, 0.0, clamped.LinearVelocity.X)
	assert.Equal(t, -2.0, clamped.LinearVelocity.Y, "Y was untouched, its velocity survives")
}

func TestClampControlUpdateIdempotent(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	e := ExtendedPose{
		Pose:           Pose{Position: Point{-5, 20}},
		LinearVelocity: Point{1, 1},
	}

	once := e.ClampControlUpdate(bounds)
	twice := once.ClampControlUpdate(bounds)
	require.Equal(t, once, twice)
}

func TestClampControlUpdateBoundaryDoesNotZeroVelocity(t *testing.T) {
	bounds := Bounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	e := ExtendedPose{
		Pose:           Pose{Position: Point{10, 5}},
		LinearVelocity: Point{3, -2},
	}

	clamped := e.ClampControlUpdate(bounds)
	assert.Equal(t, 3.0, clamped.LinearVelocity.X, "exactly on the boundary is not a clip")
}

func TestRandomPoseWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bounds := Bounds{MinX: 1, MaxX: 9, MinY: 2, MaxY: 8}
	for i := 0; i < 200; i++ {
		p := RandomPose(rng, bounds)
		assert.GreaterOrEqual(t, p.Position.X, bounds.MinX)
		assert.Less(t, p.Position.X, bounds.MaxX)
		assert.GreaterOrEqual(t, p.Angle, 0.0)
		assert.Less(t, p.Angle, 2*math.Pi)
	}
}

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0.0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeAngle(-math.Pi), 1e-9)
}
