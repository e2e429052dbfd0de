package pf

import (
	"math"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/RoboticsTeam4904/global-robot-localization/x/worldmap"
)

// LandmarkModel is the §4.4 observation model: it culls the map's
// landmarks into the hypothesized sensor's field of view and pairs
// them against the real detections by rank (both lists sorted
// ascending by magnitude), which is correct as long as detections are
// unambiguous and ordered by distance.
type LandmarkModel[T poseLike] struct {
	Map      *worldmap.Map2D
	Detector sensor.ObjectDetector
	// MismatchPenalty weights the size-mismatch term that penalizes
	// missing or spurious detections (6.0 in the standard tuning). The
	// constructors take it as a parameter and apply no default: a zero
	// value disables the term.
	MismatchPenalty float64
}

// DegenerateMultiplier is the PF object-detector family's constant
// (1x) applied when every particle scores a zero error.
func (LandmarkModel[T]) DegenerateMultiplier() float64 { return 1.0 }

// Error scores particle against a real detection reading already
// obtained from m.Detector.
func (m LandmarkModel[T]) Error(particle T, detection sensor.Detection) float64 {
	pose := particle.ToPose()
	hypPose := pose.Add(m.Detector.RelativePose())
	predicted := m.Map.CullPoints(hypPose, detection.Fov)

	realSorted := make([]geo.Point, len(detection.Points))
	copy(realSorted, detection.Points)
	worldmap.SortByMagnitude(realSorted)
	worldmap.SortByMagnitude(predicted)

	pairs := len(realSorted)
	if len(predicted) < pairs {
		pairs = len(predicted)
	}

	sum := 0.0
	for k := 0; k < pairs; k++ {
		sum += realSorted[k].Distance(predicted[k])
	}

	mismatch := math.Abs(float64(len(realSorted) - len(predicted)))
	return sum + m.MismatchPenalty*mismatch
}
