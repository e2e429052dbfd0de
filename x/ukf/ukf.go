// Package ukf implements the sigma-point Unscented Kalman Filter used
// to track the 6-DOF extended pose from a noisy accelerometer and a
// scalar range measurement.
package ukf

import (
	"math"

	"github.com/RoboticsTeam4904/global-robot-localization/pkg/logger"
	"github.com/RoboticsTeam4904/global-robot-localization/pkg/metrics"
	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"gonum.org/v1/gonum/mat"
)

var log = logger.Component("ukf")

const stateDim = 6
const sigmaRows = 2*stateDim + 1

// ScalarSensorModel predicts the scalar reading a range sensor would
// report from a hypothesized extended pose, used to evaluate the
// sigma matrix during the measurement step.
type ScalarSensorModel interface {
	Predict(geo.ExtendedPose) float64
}

// Config bundles the UKF's tuning parameters and noise covariances.
// Q must be 6x6 and R is the scalar (1x1) measurement noise variance.
type Config struct {
	Alpha, Beta, Kappa float64
	Q                  *mat.Dense
	R                  float64
}

func (c Config) lambda() float64 {
	n := float64(stateDim)
	return c.Alpha*c.Alpha*(n+c.Kappa) - n
}

// Filter is the 6-DOF Unscented Kalman Filter. KnownState is the
// filter's best estimate; RealState is a parallel ground-truth vector
// maintained only so simulation harnesses can score tracking error —
// production consumers read KnownState and Covariance only.
type Filter struct {
	cfg Config

	knownState *mat.VecDense
	realState  *mat.VecDense
	covariance *mat.Dense
	sigma      *mat.Dense
	bounds     geo.Bounds
}

// New constructs a filter seeded at initial with the given covariance,
// operating within bounds for ground-truth and sigma-row velocity
// clamping.
func New(initial geo.ExtendedPose, covariance *mat.Dense, bounds geo.Bounds, cfg Config) *Filter {
	v := vectorize(initial)
	known := make([]float64, stateDim)
	real := make([]float64, stateDim)
	copy(known, v[:])
	copy(real, v[:])
	return &Filter{
		cfg:        cfg,
		knownState: mat.NewVecDense(stateDim, known),
		realState:  mat.NewVecDense(stateDim, real),
		covariance: covariance,
		bounds:     bounds,
	}
}

// KnownState returns the filter's current mean extended pose.
func (f *Filter) KnownState() geo.ExtendedPose {
	return devectorize(f.knownState.RawVector().Data)
}

// RealState returns the parallel ground-truth extended pose. Out of
// scope for production consumers; kept so test fixtures can compare
// tracking error deterministically.
func (f *Filter) RealState() geo.ExtendedPose {
	return devectorize(f.realState.RawVector().Data)
}

// Covariance returns the filter's current 6x6 state covariance.
func (f *Filter) Covariance() *mat.Dense {
	out := mat.NewDense(stateDim, stateDim, nil)
	out.Copy(f.covariance)
	return out
}

func round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}

// genSigmaMatrix builds the 13x6 sigma matrix around the current mean:
// round the covariance to 5 decimals, scale by (n+lambda), take a
// symmetric eigendecomposition, clamp eigenvalues to >=0 and
// reconstruct the scaled square root S. Row 0 is the mean; rows 1..n
// are mean+S_row(i); rows n+1..2n are mean-S_row(i).
func (f *Filter) genSigmaMatrix() *mat.Dense {
	n := stateDim
	lambda := f.cfg.lambda()
	scale := float64(n) + lambda

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, round5(f.covariance.At(i, j))*scale)
		}
	}

	var eig mat.EigenSym
	eig.Factorize(sym, true)
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	sqrtDiag := mat.NewDiagDense(n, nil)
	for i, lam := range values {
		if lam < 0 {
			lam = 0
		}
		sqrtDiag.SetDiag(i, math.Sqrt(lam))
	}

	var scaled mat.Dense
	scaled.Mul(&vectors, sqrtDiag)
	var s mat.Dense
	s.Mul(&scaled, vectors.T())

	mean := f.knownState.RawVector().Data
	sigma := mat.NewDense(sigmaRows, n, nil)
	sigma.SetRow(0, mean)
	for i := 0; i < n; i++ {
		plus := make([]float64, n)
		minus := make([]float64, n)
		for j := 0; j < n; j++ {
			plus[j] = mean[j] + s.At(i, j)
			minus[j] = mean[j] - s.At(i, j)
		}
		sigma.SetRow(1+i, plus)
		sigma.SetRow(1+n+i, minus)
	}
	return sigma
}

// weightMean returns w_mean_i for sigma row i.
func (f *Filter) weightMean(i int) float64 {
	n := float64(stateDim)
	lambda := f.cfg.lambda()
	if i == 0 {
		return lambda / (n + lambda)
	}
	return 1 / (2 * (n + lambda))
}

// weightCov returns w_cov_i for sigma row i.
func (f *Filter) weightCov(i int) float64 {
	if i == 0 {
		n := float64(stateDim)
		lambda := f.cfg.lambda()
		return lambda/(n+lambda) + (1 - f.cfg.Alpha*f.cfg.Alpha + f.cfg.Beta)
	}
	return f.weightMean(i)
}

// advance propagates a single 6-vector row by dt under acceleration
// accel, then clamps the resulting extended pose into bounds.
// normalizeAngle wraps the propagated angle into [0, 2*pi); sigma rows
// must NOT be wrapped, since a weighted mean across wrapped rows with
// the near-zero UKF weight spread blows the angle component up across
// the wrap boundary. Only the ground-truth row normalizes its angle.
func advance(row []float64, dt float64, accel geo.Point, bounds geo.Bounds, normalizeAngle bool) []float64 {
	e := devectorize(row)
	angle := e.Angle + e.AngularVelocity*dt
	if normalizeAngle {
		angle = geo.NormalizeAngle(angle)
	}
	e.Angle = angle
	e.Position = e.Position.Add(e.LinearVelocity.Scale(dt))
	e.LinearVelocity = e.LinearVelocity.Add(accel.Scale(dt))
	e = e.ClampControlUpdate(bounds)
	v := vectorize(e)
	return v[:]
}

// PredictionUpdate regenerates the sigma matrix, advances the
// ground-truth and sigma rows by dt under the motion sensor's reported
// acceleration pair, and recombines the mean and covariance.
func (f *Filter) PredictionUpdate(dt float64, motion sensor.AccelSensor) {
	n := stateDim
	f.sigma = f.genSigmaMatrix()

	reading := motion.Sense()

	realRow := advance(f.realState.RawVector().Data, dt, reading.TrueAccel, f.bounds, true)
	f.realState = mat.NewVecDense(n, realRow)

	advanced := mat.NewDense(sigmaRows, n, nil)
	for i := 0; i < sigmaRows; i++ {
		row := make([]float64, n)
		mat.Row(row, i, f.sigma)
		advanced.SetRow(i, advance(row, dt, reading.EstimatedAccel, f.bounds, false))
	}

	mean := make([]float64, n)
	for i := 0; i < sigmaRows; i++ {
		w := f.weightMean(i)
		row := make([]float64, n)
		mat.Row(row, i, advanced)
		for j := range mean {
			mean[j] += w * row[j]
		}
	}

	y := mat.NewDense(sigmaRows, n, nil)
	for i := 0; i < sigmaRows; i++ {
		for j := 0; j < n; j++ {
			y.Set(i, j, advanced.At(i, j)-mean[j])
		}
	}

	p := mat.NewDense(n, n, nil)
	for i := 0; i < sigmaRows; i++ {
		w := f.weightCov(i)
		for a := 0; a < n; a++ {
			yia := y.At(i, a)
			for b := 0; b < n; b++ {
				p.Set(a, b, p.At(a, b)+w*yia*y.At(i, b))
			}
		}
	}
	if f.cfg.Q != nil {
		p.Add(p, f.cfg.Q)
	}

	f.knownState = mat.NewVecDense(n, mean)
	f.covariance = p
	f.sigma = advanced
}

// MeasurementUpdate folds a scalar range reading z, predicted from
// each sigma row via model, into the state and covariance. If the
// resulting innovation covariance is singular the state is left
// unchanged and ErrSingularInnovation is returned.
func (f *Filter) MeasurementUpdate(z float64, model ScalarSensorModel) error {
	n := stateDim
	sensorSigma := make([]float64, sigmaRows)
	for i := 0; i < sigmaRows; i++ {
		row := make([]float64, n)
		mat.Row(row, i, f.sigma)
		sensorSigma[i] = model.Predict(devectorize(row))
	}

	zhat := 0.0
	for i, s := range sensorSigma {
		zhat += f.weightMean(i) * s
	}

	pzz := f.cfg.R
	for i, s := range sensorSigma {
		d := s - zhat
		pzz += f.weightCov(i) * d * d
	}

	mean := f.knownState.RawVector().Data
	pxz := make([]float64, n)
	for i := 0; i < sigmaRows; i++ {
		w := f.weightCov(i)
		d := sensorSigma[i] - zhat
		row := make([]float64, n)
		mat.Row(row, i, f.sigma)
		for j := 0; j < n; j++ {
			pxz[j] += w * (row[j] - mean[j]) * d
		}
	}

	if math.Abs(pzz) < 1e-12 {
		log.Warn().Float64("p_zz", pzz).Msg("singular innovation covariance, skipping measurement update")
		metrics.UKFSingularInnovations.Inc()
		return ErrSingularInnovation
	}

	k := make([]float64, n)
	for j := range k {
		k[j] = pxz[j] / pzz
	}

	innovation := z - zhat
	newMean := make([]float64, n)
	for j := range newMean {
		newMean[j] = mean[j] + k[j]*innovation
	}

	newCov := mat.NewDense(n, n, nil)
	newCov.Copy(f.covariance)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			newCov.Set(a, b, newCov.At(a, b)-pzz*k[a]*k[b])
		}
	}

	f.knownState = mat.NewVecDense(n, newMean)
	f.covariance = newCov
	return nil
}

// vectorize maps an extended pose to the spec's (x, y, theta, omega,
// vx, vy) state ordering.
func vectorize(e geo.ExtendedPose) [stateDim]float64 {
	return [stateDim]float64{
		e.Position.X, e.Position.Y, e.Angle, e.AngularVelocity,
		e.LinearVelocity.X, e.LinearVelocity.Y,
	}
}

func devectorize(v []float64) geo.ExtendedPose {
	return geo.ExtendedPose{
		Pose: geo.Pose{
			Angle:    v[2],
			Position: geo.Point{X: v[0], Y: v[1]},
		},
		AngularVelocity: v[3],
		LinearVelocity:  geo.Point{X: v[4], Y: v[5]},
	}
}
