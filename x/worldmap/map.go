// Package worldmap implements the static 2D polyline map queried by the
// localization filters: wall segments for raycasting and landmark
// points for field-of-view culling. A Map2D is immutable after
// construction and safe to share by reference across filters.
package worldmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/RoboticsTeam4904/global-robot-localization/pkg/logger"
	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
)

var log = logger.Component("worldmap")

// Segment is an unordered pair of vertex indices denoting a wall.
type Segment struct {
	A, B int
}

// Map2D is the read-only geometric map shared by every filter in a run.
type Map2D struct {
	width, height float64
	vertices      []geo.Point
	lines         []Segment
	points        []int
}

// New builds a Map2D from vertices, wall segments (as vertex index
// pairs) and landmark indices. It validates every index eagerly so a
// bad map fails at construction rather than mid-raycast.
func New(width, height float64, vertices []geo.Point, lines []Segment, landmarkIndices []int) (*Map2D, error) {
	n := len(vertices)
	for _, s := range lines {
		if s.A < 0 || s.A >= n || s.B < 0 || s.B >= n {
			return nil, fmt.Errorf("worldmap: line segment (%d,%d) out of range for %d vertices: %w", s.A, s.B, n, ErrMapIndexOutOfRange)
		}
		if s.A == s.B {
			return nil, fmt.Errorf("worldmap: line segment (%d,%d) is a self-loop: %w", s.A, s.B, ErrMapIndexOutOfRange)
		}
	}
	for _, idx := range landmarkIndices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("worldmap: landmark index %d out of range for %d vertices: %w", idx, n, ErrMapIndexOutOfRange)
		}
	}

	vtxCopy := make([]geo.Point, n)
	copy(vtxCopy, vertices)
	linesCopy := make([]Segment, len(lines))
	copy(linesCopy, lines)
	pointsCopy := make([]int, len(landmarkIndices))
	copy(pointsCopy, landmarkIndices)

	log.Debug().Int("vertices", n).Int("lines", len(linesCopy)).Int("landmarks", len(pointsCopy)).Msg("map constructed")

	return &Map2D{
		width:    width,
		height:   height,
		vertices: vtxCopy,
		lines:    linesCopy,
		points:   pointsCopy,
	}, nil
}

// Width returns the map's horizontal extent.
func (m *Map2D) Width() float64 { return m.width }

// Height returns the map's vertical extent.
func (m *Map2D) Height() float64 { return m.height }

// Bounds returns the map's axis-aligned extent, (0,0) to (width,height).
func (m *Map2D) Bounds() geo.Bounds {
	return geo.Bounds{MinX: 0, MaxX: m.width, MinY: 0, MaxY: m.height}
}

// Vertex returns the vertex at the given stable index.
func (m *Map2D) Vertex(i int) geo.Point { return m.vertices[i] }

// Landmarks returns the map-frame positions of every landmark point.
func (m *Map2D) Landmarks() []geo.Point {
	out := make([]geo.Point, len(m.points))
	for i, idx := range m.points {
		out[i] = m.vertices[idx]
	}
	return out
}

// Raycast casts a half-line from from.Position along from.Angle and
// returns the closest intersection with any wall segment. ok is false
// if no segment is hit. Ties are broken arbitrarily by iteration order.
func (m *Map2D) Raycast(from geo.Pose) (pt geo.Point, ok bool) {
	dir := geo.Point{X: math.Cos(from.Angle), Y: math.Sin(from.Angle)}
	best := math.Inf(1)
	var bestPt geo.Point
	found := false

	for _, seg := range m.lines {
		p, t, hit := raySegmentIntersection(from.Position, dir, m.vertices[seg.A], m.vertices[seg.B])
		if hit && t < best {
			best = t
			bestPt = p
			found = true
		}
	}
	return bestPt, found
}

// raySegmentIntersection intersects the half-line origin+t*dir (t>=0)
// with the closed segment [a,b]. Returns the intersection point, the
// ray parameter t, and whether an intersection exists.
func raySegmentIntersection(origin, dir, a, b geo.Point) (geo.Point, float64, bool) {
	edge := b.Sub(a)
	denom := dir.X*edge.Y - dir.Y*edge.X
	const eps = 1e-12
	if math.Abs(denom) < eps {
		return geo.Point{}, 0, false
	}

	diff := a.Sub(origin)
	t := (diff.X*edge.Y - diff.Y*edge.X) / denom
	u := (diff.X*dir.Y - diff.Y*dir.X) / denom

	if t < 0 || u < 0 || u > 1 {
		return geo.Point{}, 0, false
	}

	return geo.Point{X: origin.X + t*dir.X, Y: origin.Y + t*dir.Y}, t, true
}

// CullPoints returns every landmark that lies within a symmetric
// angular window of width fov centered on from.Angle, expressed in
// from's frame (map point minus from.Position, rotated by -from.Angle).
// fov >= 2*pi degenerates to "all landmarks".
func (m *Map2D) CullPoints(from geo.Pose, fov float64) []geo.Point {
	all := fov >= 2*math.Pi
	half := fov / 2
	out := make([]geo.Point, 0, len(m.points))

	for _, idx := range m.points {
		rel := m.vertices[idx].Sub(from.Position).Rotate(-from.Angle)
		if all {
			out = append(out, rel)
			continue
		}
		bearing := math.Atan2(rel.Y, rel.X)
		if math.Abs(angleDiff(bearing, 0)) <= half {
			out = append(out, rel)
		}
	}
	return out
}

// angleDiff returns the signed difference a-b folded into [-pi, pi).
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b+math.Pi, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

// SortByMagnitude sorts points ascending by distance from the origin,
// the ordering the observation models use to pair real and predicted
// landmark detections by rank.
func SortByMagnitude(points []geo.Point) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Magnitude() < points[j].Magnitude()
	})
}
