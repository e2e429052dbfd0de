package ukf

import (
	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
)

// MapRangeSensorModel predicts a scalar distance sensor's reading by
// raycasting the sensor's mounted pose against the map. Out-of-range
// hits saturate at the sensor's maximum range rather than producing a
// discontinuity across sigma rows.
type MapRangeSensorModel struct {
	Map    *worldmap.Map2D
	Sensor sensor.DistanceSensor
}

// Predict implements ScalarSensorModel.
func (m MapRangeSensorModel) Predict(pose geo.ExtendedPose) float64 {
	hypPose := pose.ToPose().Add(m.Sensor.RelativePose())
	hit, ok := m.Map.Raycast(hypPose)
	if !ok {
		if maxRange, has := m.Sensor.Range(); has {
			return maxRange
		}
		return 0
	}
	dist := hypPose.Position.Distance(hit)
	if maxRange, has := m.Sensor.Range(); has && dist > maxRange {
		return maxRange
	}
	return dist
}
