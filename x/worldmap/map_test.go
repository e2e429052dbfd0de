package worldmap

import (
	"math"
	"testing"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square10() *Map2D {
	verts := []geo.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	lines := []Segment{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	m, err := New(10, 10, verts, lines, nil)
	if err != nil {
		panic(err)
	}
	return m
}

func TestNewRejectsBadIndex(t *testing.T) {
	verts := []geo.Point{{0, 0}, {1, 1}}
	_, err := New(1, 1, verts, []Segment{{0, 5}}, nil)
	require.ErrorIs(t, err, ErrMapIndexOutOfRange)
}

func TestNewRejectsSelfLoop(t *testing.T) {
	verts := []geo.Point{{0, 0}, {1, 1}}
	_, err := New(1, 1, verts, []Segment{{0, 0}}, nil)
	require.ErrorIs(t, err, ErrMapIndexOutOfRange)
}

func TestRaycastHitsNearestWall(t *testing.T) {
	m := square10()
	pt, ok := m.Raycast(geo.Pose{Angle: 0, Position: geo.Point{5, 5}})
	require.True(t, ok)
	assert.InDelta(t, 10.0, pt.X, 1e-9)
	assert.InDelta(t, 5.0, pt.Y, 1e-9)
}

func TestRaycastMissWhenNoWallAhead(t *testing.T) {
	verts := []geo.Point{{0, 0}, {10, 0}}
	m, err := New(10, 10, verts, []Segment{{0, 1}}, nil)
	require.NoError(t, err)

	_, ok := m.Raycast(geo.Pose{Angle: math.Pi / 2, Position: geo.Point{5, 1}})
	assert.False(t, ok)
}

func TestCullPointsFullCircleReturnsEveryLandmarkOnce(t *testing.T) {
	verts := []geo.Point{{2, 2}, {8, 2}, {2, 8}, {8, 8}}
	m, err := New(10, 10, verts, nil, []int{0, 1, 2, 3})
	require.NoError(t, err)

	got := m.CullPoints(geo.Pose{Angle: 0, Position: geo.Point{5, 5}}, 2*math.Pi)
	assert.Len(t, got, 4)
}

func TestCullPointsNarrowFovExcludesBehind(t *testing.T) {
	verts := []geo.Point{{10, 5}, {0, 5}}
	m, err := New(10, 10, verts, nil, []int{0, 1})
	require.NoError(t, err)

	got := m.CullPoints(geo.Pose{Angle: 0, Position: geo.Point{5, 5}}, math.Pi/2)
	require.Len(t, got, 1)
	assert.InDelta(t, 5.0, got[0].X, 1e-9)
}
