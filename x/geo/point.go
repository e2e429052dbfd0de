// Package geo implements the 2D geometric primitives shared by every
// localization estimator: points, poses and the random sampling helpers
// used to seed and perturb particle clouds.
package geo

import "math"

// Point is a 2D map-frame coordinate.
type Point struct {
	X, Y float64
}

// Add returns p+p1.
func (p Point) Add(p1 Point) Point {
	return Point{p.X + p1.X, p.Y + p1.Y}
}

// Sub returns p-p1.
func (p Point) Sub(p1 Point) Point {
	return Point{p.X - p1.X, p.Y - p1.Y}
}

// Scale returns p scaled by c.
func (p Point) Scale(c float64) Point {
	return Point{p.X * c, p.Y * c}
}

// DivScalar returns p divided componentwise by c.
func (p Point) DivScalar(c float64) Point {
	return Point{p.X / c, p.Y / c}
}

// Magnitude returns the Euclidean norm of p.
func (p Point) Magnitude() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the Euclidean distance between p and p1.
func (p Point) Distance(p1 Point) float64 {
	return p.Sub(p1).Magnitude()
}

// Rotate returns p rotated by angle radians about the origin.
func (p Point) Rotate(angle float64) Point {
	s, c := math.Sincos(angle)
	return Point{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
	}
}

// Distribution is satisfied by gonum.org/v1/gonum/stat/distuv's Normal,
// Uniform and similar samplers, plus anything else exposing Rand().
type Distribution interface {
	Rand() float64
}

// UniformRange is an axis-aligned half-open sampling range [Min, Max),
// used for sampling over map bounds and for resampling noise alike.
type UniformRange struct {
	Min, Max float64
}

// Rand draws a uniform sample in [r.Min, r.Max) using rng. A zero-width
// range (Min == Max) always returns Min, which is how zero-velocity
// components are "sampled" during uniform particle construction.
func (r UniformRange) Rand(rng Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Rand is the minimal random source every stochastic operation in this
// module routes through, so tests can inject a seeded *math/rand.Rand.
type Rand interface {
	Float64() float64
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle reduces a to the canonical range [0, 2*pi).
func NormalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
