// Package sensor defines the polymorphic capability contracts the
// localization filters consume: motion sensors, distance sensors and
// object detectors. Every sensor is a thin wrapper; the filter never
// knows whether a reading came from hardware or, as in the dummy
// sensors below, from a simulated ground truth plus injected noise.
package sensor

import "github.com/RoboticsTeam4904/global-robot-localization/x/geo"

// Sensor is the base capability: a pure, idempotent-per-step reading.
type Sensor[T any] interface {
	Sense() T
}

// LimitedSensor extends Sensor with an optional operating range or
// field of view, reported as (value, ok) in place of an Option type.
type LimitedSensor[R, T any] interface {
	Sensor[T]
	Range() (R, bool)
}

// MotionSensor reports the pose increment sensed since the last call,
// already noise-injected by the sensor itself. Filters apply the
// increment to every particle without resampling it per particle.
type MotionSensor = Sensor[geo.Pose]

// ExtendedMotionSensor is MotionSensor's 6-DOF counterpart, used by the
// 6-DOF particle filter.
type ExtendedMotionSensor = Sensor[geo.ExtendedPose]

// DistanceReading is a single range-finder reading. Ok is false when
// the sensor reports "out of range" rather than a distance.
type DistanceReading struct {
	Distance float64
	Ok       bool
}

// DistanceSensor is a single ray-aligned range finder mounted at a
// fixed pose relative to the robot, with an optional maximum range.
type DistanceSensor interface {
	LimitedSensor[float64, DistanceReading]
	RelativePose() geo.Pose
}

// Detection is a single object-detector reading: landmark positions in
// the sensor's own frame, plus the field of view they were gathered
// over.
type Detection struct {
	Points []geo.Point
	Fov    float64
}

// ObjectDetector reports landmark detections in its own frame.
type ObjectDetector interface {
	Sensor[Detection]
	RelativePose() geo.Pose
}

// AccelReading pairs the true (ground-truth) and estimated (noisy)
// linear acceleration the UKF's simulation harness needs: the runtime
// simulates diverging noise between the ground-truth and filter
// branches of prediction_update.
type AccelReading struct {
	TrueAccel      geo.Point
	EstimatedAccel geo.Point
}

// AccelSensor is the motion sensor consumed by the UKF's prediction
// step.
type AccelSensor interface {
	Sense() AccelReading
}
