package pf

import (
	"math/rand"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
)

// ResamplingNoise3 is the per-component axis-aligned resampling noise
// applied to a freshly-drawn 3-DOF particle.
type ResamplingNoise3 struct {
	Angle, X, Y geo.UniformRange
}

func (n ResamplingNoise3) sample(rng *rand.Rand) geo.Pose {
	return geo.Pose{
		Angle: n.Angle.Rand(rng),
		Position: geo.Point{
			X: n.X.Rand(rng),
			Y: n.Y.Rand(rng),
		},
	}
}

// ResamplingNoise6 is ResamplingNoise3 extended with velocity
// components for the 6-DOF particle filter.
type ResamplingNoise6 struct {
	Angle, X, Y             geo.UniformRange
	AngularVelocity, VX, VY geo.UniformRange
}

func (n ResamplingNoise6) sample(rng *rand.Rand) geo.ExtendedPose {
	return geo.ExtendedPose{
		Pose: geo.Pose{
			Angle: n.Angle.Rand(rng),
			Position: geo.Point{
				X: n.X.Rand(rng),
				Y: n.Y.Rand(rng),
			},
		},
		AngularVelocity: n.AngularVelocity.Rand(rng),
		LinearVelocity: geo.Point{
			X: n.VX.Rand(rng),
			Y: n.VY.Rand(rng),
		},
	}
}
