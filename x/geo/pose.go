package geo

import "math"

// Pose is a 3-DOF robot pose in the map frame: heading plus position.
// The zero value is the origin facing angle 0, which is the default
// pose used wherever a filter needs a neutral starting point.
type Pose struct {
	Angle    float64
	Position Point
}

// Add returns the componentwise sum of p and p1, with the resulting
// angle folded back into [0, 2*pi). This is how a sensed motion
// increment is applied to a particle.
func (p Pose) Add(p1 Pose) Pose {
	return Pose{
		Angle:    NormalizeAngle(p.Angle + p1.Angle),
		Position: p.Position.Add(p1.Position),
	}
}

// Sub returns the componentwise difference p-p1.
func (p Pose) Sub(p1 Pose) Pose {
	return Pose{
		Angle:    NormalizeAngle(p.Angle - p1.Angle),
		Position: p.Position.Sub(p1.Position),
	}
}

// DivScalar divides every component of p by c.
func (p Pose) DivScalar(c float64) Pose {
	return Pose{
		Angle:    p.Angle / c,
		Position: p.Position.DivScalar(c),
	}
}

// ToPose returns p itself, so both Pose and ExtendedPose (which embeds
// Pose) satisfy the same "has a pose" constraint used by the
// observation models.
func (p Pose) ToPose() Pose { return p }

// Bounds describes the axis-aligned rectangle used both for uniform
// pose sampling over a map and for clamping a pose to stay inside it.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// RandomPose draws a pose with angle ~ U[0, 2*pi) and position uniform
// over bounds.
func RandomPose(rng Rand, bounds Bounds) Pose {
	return Pose{
		Angle: UniformRange{0, 2 * math.Pi}.Rand(rng),
		Position: Point{
			X: UniformRange{bounds.MinX, bounds.MaxX}.Rand(rng),
			Y: UniformRange{bounds.MinY, bounds.MaxY}.Rand(rng),
		},
	}
}

// RandomPoseFrom draws a pose from caller-supplied per-component
// distributions, as used by the particle belief's from-distributions
// constructor.
func RandomPoseFrom(angle, x, y Distribution) Pose {
	return Pose{
		Angle:    NormalizeAngle(angle.Rand()),
		Position: Point{X: x.Rand(), Y: y.Rand()},
	}
}

// RandomExtendedPoseFrom draws angle and position from caller-supplied
// distributions and leaves velocity at zero.
func RandomExtendedPoseFrom(angle, x, y Distribution) ExtendedPose {
	return ExtendedPose{Pose: RandomPoseFrom(angle, x, y)}
}

// ExtendedPose is the 6-DOF pose used by the 6-DOF particle filter and
// the UKF: a Pose plus angular velocity and 2D linear velocity.
type ExtendedPose struct {
	Pose
	AngularVelocity float64
	LinearVelocity  Point
}

// Add returns the componentwise sum of e and e1.
func (e ExtendedPose) Add(e1 ExtendedPose) ExtendedPose {
	return ExtendedPose{
		Pose:            e.Pose.Add(e1.Pose),
		AngularVelocity: e.AngularVelocity + e1.AngularVelocity,
		LinearVelocity:  e.LinearVelocity.Add(e1.LinearVelocity),
	}
}

// Sub returns the componentwise difference e-e1.
func (e ExtendedPose) Sub(e1 ExtendedPose) ExtendedPose {
	return ExtendedPose{
		Pose:            e.Pose.Sub(e1.Pose),
		AngularVelocity: e.AngularVelocity - e1.AngularVelocity,
		LinearVelocity:  e.LinearVelocity.Sub(e1.LinearVelocity),
	}
}

// DivScalar divides every component of e by c.
func (e ExtendedPose) DivScalar(c float64) ExtendedPose {
	return ExtendedPose{
		Pose:            e.Pose.DivScalar(c),
		AngularVelocity: e.AngularVelocity / c,
		LinearVelocity:  e.LinearVelocity.DivScalar(c),
	}
}

// RandomExtendedPose draws angle and position uniformly over bounds and
// leaves both velocity components at zero, matching the spec's uniform
// 6-DOF construction (velocities sampled from zero-width ranges).
func RandomExtendedPose(rng Rand, bounds Bounds) ExtendedPose {
	return ExtendedPose{Pose: RandomPose(rng, bounds)}
}

// ClampControlUpdate clips the position into bounds and zeroes the
// velocity component along any axis that was clipped: a wall stops
// motion along its normal. Clamping at exactly the boundary is not a
// clip (strict interior test), so grazing a wall does not kill velocity.
func (e ExtendedPose) ClampControlUpdate(bounds Bounds) ExtendedPose {
	out := e
	if out.Position.X < bounds.MinX {
		out.Position.X = bounds.MinX
		out.LinearVelocity.X = 0
	} else if out.Position.X > bounds.MaxX {
		out.Position.X = bounds.MaxX
		out.LinearVelocity.X = 0
	}
	if out.Position.Y < bounds.MinY {
		out.Position.Y = bounds.MinY
		out.LinearVelocity.Y = 0
	} else if out.Position.Y > bounds.MaxY {
		out.Position.Y = bounds.MaxY
		out.LinearVelocity.Y = 0
	}
	return out
}
