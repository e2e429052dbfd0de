package pf

import (
	"math"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
)

// poseLike is satisfied by both geo.Pose and geo.ExtendedPose (which
// embeds Pose), letting the observation models work against either
// particle dimensionality.
type poseLike interface {
	ToPose() geo.Pose
}

// RangeFinderModel is the §4.3 observation model: it scores a
// hypothesized particle against a bank of distance sensors by
// raycasting against the map from each sensor's mounted pose.
type RangeFinderModel[T poseLike] struct {
	Map     *worldmap.Map2D
	Sensors []sensor.DistanceSensor
	// Penalty is the fixed cost assigned to a real/predicted in-range
	// vs out-of-range mismatch: 5.0 for the 3-DOF family, 6.0 for the
	// 6-DOF family.
	Penalty float64
}

// DegenerateMultiplier is the range-finder model's constant (2x),
// applied when every particle scores a zero error. Both the 3-DOF and
// the 6-DOF range-finder filters use it.
func (RangeFinderModel[T]) DegenerateMultiplier() float64 { return 2.0 }

// Error returns the mean per-sensor error for particle against the
// given real readings, one per sensor in m.Sensors.
func (m RangeFinderModel[T]) Error(particle T, readings []sensor.DistanceReading) float64 {
	if len(m.Sensors) == 0 {
		return 0
	}
	pose := particle.ToPose()

	total := 0.0
	for i, s := range m.Sensors {
		hypPose := pose.Add(s.RelativePose())
		predDist, predInRange := m.predict(hypPose, s)
		real := readings[i]

		var e float64
		switch {
		case real.Ok && predInRange:
			e = math.Abs(real.Distance - predDist)
		case real.Ok && !predInRange:
			e = m.Penalty
		case !real.Ok && predInRange:
			e = m.Penalty
		default:
			e = 0
		}
		total += e
	}
	return total / float64(len(m.Sensors))
}

func (m RangeFinderModel[T]) predict(hypPose geo.Pose, s sensor.DistanceSensor) (float64, bool) {
	hit, ok := m.Map.Raycast(hypPose)
	if !ok {
		return 0, false
	}
	dist := hypPose.Position.Distance(hit)
	if maxRange, has := s.Range(); has && dist > maxRange {
		return dist, false
	}
	return dist, true
}
