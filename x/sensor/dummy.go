package sensor

import (
	"math/rand"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/options"
	"gonum.org/v1/gonum/stat/distuv"
)

// DummyConfig configures a simulated sensor's noise model. NoiseMargin
// is the configured "noise margin": it equals three standard
// deviations of the underlying Gaussian, so ~99.7% of samples land
// within +/- NoiseMargin of the true reading.
type DummyConfig struct {
	Rng         *rand.Rand
	NoiseMargin float64
}

func defaultDummyConfig() *DummyConfig {
	return &DummyConfig{
		Rng:         rand.New(rand.NewSource(1)),
		NoiseMargin: 0,
	}
}

// WithRand injects a seedable RNG so simulated sensors produce
// deterministic readings in tests.
func WithRand(rng *rand.Rand) options.Option {
	return func(cfg interface{}) { cfg.(*DummyConfig).Rng = rng }
}

// WithNoiseMargin sets the sensor's 3-sigma noise margin.
func WithNoiseMargin(margin float64) options.Option {
	return func(cfg interface{}) { cfg.(*DummyConfig).NoiseMargin = margin }
}

func (c *DummyConfig) sigma() float64 {
	return c.NoiseMargin / 3
}

func (c *DummyConfig) normal() distuv.Normal {
	return distuv.Normal{Mu: 0, Sigma: c.sigma(), Src: c.Rng}
}

// DummyMotionSensor reports the increment between successive calls to
// a ground-truth pose function, perturbed by zero-mean Gaussian noise
// on each component.
type DummyMotionSensor struct {
	cfg         *DummyConfig
	groundTruth func() geo.Pose
	last        geo.Pose
	primed      bool
}

// NewDummyMotionSensor builds a simulated motion sensor around a
// ground-truth pose source.
func NewDummyMotionSensor(groundTruth func() geo.Pose, opts ...options.Option) *DummyMotionSensor {
	cfg := defaultDummyConfig()
	options.ApplyOptions(cfg, opts...)
	return &DummyMotionSensor{cfg: cfg, groundTruth: groundTruth}
}

// Sense returns the noise-injected pose increment since the previous
// call. The first call has no prior reading to diff against, so it
// returns the zero increment.
func (s *DummyMotionSensor) Sense() geo.Pose {
	current := s.groundTruth()
	if !s.primed {
		s.primed = true
		s.last = current
		return geo.Pose{}
	}

	delta := current.Sub(s.last)
	s.last = current

	n := s.cfg.normal()
	return geo.Pose{
		Angle: delta.Angle + n.Rand(),
		Position: geo.Point{
			X: delta.Position.X + n.Rand(),
			Y: delta.Position.Y + n.Rand(),
		},
	}
}

// DummyDistanceSensor simulates a single range finder mounted at a
// fixed relative pose, with a maximum range and Gaussian noise.
type DummyDistanceSensor struct {
	cfg      *DummyConfig
	relative geo.Pose
	maxRange float64
	hasRange bool
	measure  func(relativePose geo.Pose) (float64, bool)
}

// NewDummyDistanceSensor builds a simulated range finder. measure is
// called with the sensor's pose relative to the robot and must return
// the true distance and whether it is in range.
func NewDummyDistanceSensor(relative geo.Pose, maxRange float64, hasRange bool, measure func(geo.Pose) (float64, bool), opts ...options.Option) *DummyDistanceSensor {
	cfg := defaultDummyConfig()
	options.ApplyOptions(cfg, opts...)
	return &DummyDistanceSensor{cfg: cfg, relative: relative, maxRange: maxRange, hasRange: hasRange, measure: measure}
}

func (s *DummyDistanceSensor) RelativePose() geo.Pose { return s.relative }

func (s *DummyDistanceSensor) Range() (float64, bool) { return s.maxRange, s.hasRange }

// Sense evaluates the wrapped measurement function and injects noise
// onto in-range readings. Out-of-range stays out-of-range: noise never
// manufactures a spurious in-range reading.
func (s *DummyDistanceSensor) Sense() DistanceReading {
	d, ok := s.measure(s.relative)
	if !ok {
		return DistanceReading{Ok: false}
	}
	return DistanceReading{Distance: d + s.cfg.normal().Rand(), Ok: true}
}

// DummyObjectDetector simulates a bearing/range landmark detector.
type DummyObjectDetector struct {
	cfg      *DummyConfig
	relative geo.Pose
	fov      float64
	detect   func(relativePose geo.Pose, fov float64) []geo.Point
}

// NewDummyObjectDetector builds a simulated object detector. detect is
// called with the sensor's pose relative to the robot and its field of
// view.
func NewDummyObjectDetector(relative geo.Pose, fov float64, detect func(geo.Pose, float64) []geo.Point, opts ...options.Option) *DummyObjectDetector {
	cfg := defaultDummyConfig()
	options.ApplyOptions(cfg, opts...)
	return &DummyObjectDetector{cfg: cfg, relative: relative, fov: fov, detect: detect}
}

func (s *DummyObjectDetector) RelativePose() geo.Pose { return s.relative }

// Sense returns the detected landmarks with independent Gaussian noise
// on each component.
func (s *DummyObjectDetector) Sense() Detection {
	raw := s.detect(s.relative, s.fov)
	out := make([]geo.Point, len(raw))
	n := s.cfg.normal()
	for i, p := range raw {
		out[i] = geo.Point{X: p.X + n.Rand(), Y: p.Y + n.Rand()}
	}
	return Detection{Points: out, Fov: s.fov}
}

// DummyAccelSensor simulates the UKF's motion input: a true
// acceleration (used to propagate the ground-truth branch) and an
// independently-noised estimated acceleration (used to propagate the
// filter's sigma points), so the two branches diverge the way real
// process noise would cause them to.
type DummyAccelSensor struct {
	trueCfg, estCfg *DummyConfig
	trueAccel       func() geo.Point
}

// NewDummyAccelSensor builds a simulated UKF motion sensor.
func NewDummyAccelSensor(trueAccel func() geo.Point, trueNoiseMargin, estNoiseMargin float64, rng *rand.Rand) *DummyAccelSensor {
	return &DummyAccelSensor{
		trueCfg:   &DummyConfig{Rng: rng, NoiseMargin: trueNoiseMargin},
		estCfg:    &DummyConfig{Rng: rng, NoiseMargin: estNoiseMargin},
		trueAccel: trueAccel,
	}
}

func (s *DummyAccelSensor) Sense() AccelReading {
	base := s.trueAccel()
	tn := s.trueCfg.normal()
	en := s.estCfg.normal()
	return AccelReading{
		TrueAccel:      geo.Point{X: base.X + tn.Rand(), Y: base.Y + tn.Rand()},
		EstimatedAccel: geo.Point{X: base.X + en.Rand(), Y: base.Y + en.Rand()},
	}
}
