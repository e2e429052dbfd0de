package ukf

import (
	"math"
	"testing"

	"github.com/RoboticsTeam4904/global-robot-localization/x/geo"
	"github.com/RoboticsTeam4904/global-robot-localization/x/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type zeroAccelSensor struct{}

func (zeroAccelSensor) Sense() sensor.AccelReading { return sensor.AccelReading{} }

type constantScalarSensor struct{ value float64 }

func (s constantScalarSensor) Predict(geo.ExtendedPose) float64 { return s.value }

func identity6() *mat.Dense {
	return mat.NewDense(6, 6, []float64{
		1, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0,
		0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1,
	})
}

func TestPredictionUpdateZeroControlLeavesStateUnchanged(t *testing.T) {
	cfg := Config{Alpha: 1e-3, Beta: 2, Kappa: 0, Q: mat.NewDense(6, 6, nil), R: 0}
	f := New(geo.ExtendedPose{}, identity6(), geo.Bounds{MinX: -1e6, MaxX: 1e6, MinY: -1e6, MaxY: 1e6}, cfg)

	f.PredictionUpdate(1.0, zeroAccelSensor{})

	got := f.KnownState()
	assert.InDelta(t, 0, got.Position.X, 1e-9)
	assert.InDelta(t, 0, got.Position.Y, 1e-9)
	assert.InDelta(t, 0, got.Angle, 1e-9)
	assert.InDelta(t, 0, got.AngularVelocity, 1e-9)
	assert.InDelta(t, 0, got.LinearVelocity.X, 1e-9)
	assert.InDelta(t, 0, got.LinearVelocity.Y, 1e-9)

	cov := f.Covariance()
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			assert.InDelta(t, cov.At(i, j), cov.At(j, i), 1e-9)
		}
	}
}

func trace(m *mat.Dense) float64 {
	n, _ := m.Dims()
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += m.At(i, i)
	}
	return sum
}

func TestMeasurementUpdateReducesCovarianceTrace(t *testing.T) {
	// A constant sensor gives every sigma row the same reading, so P_zz
	// is just R; R must be non-zero for the innovation to be invertible.
	cfg := Config{Alpha: 1e-3, Beta: 2, Kappa: 0, Q: mat.NewDense(6, 6, nil), R: 1}
	bounds := geo.Bounds{MinX: -1e6, MaxX: 1e6, MinY: -1e6, MaxY: 1e6}
	f := New(geo.ExtendedPose{}, identity6(), bounds, cfg)

	f.PredictionUpdate(1.0, zeroAccelSensor{})
	before := trace(f.Covariance())

	err := f.MeasurementUpdate(0, constantScalarSensor{value: 0})
	require.NoError(t, err)

	after := trace(f.Covariance())
	assert.LessOrEqual(t, after, before+1e-9)
}

func TestMeasurementUpdateSingularInnovationLeavesStateUnchanged(t *testing.T) {
	cfg := Config{Alpha: 1e-3, Beta: 2, Kappa: 0, Q: mat.NewDense(6, 6, nil), R: 0}
	bounds := geo.Bounds{MinX: -1e6, MaxX: 1e6, MinY: -1e6, MaxY: 1e6}
	f := New(geo.ExtendedPose{}, mat.NewDense(6, 6, nil), bounds, cfg)
	f.PredictionUpdate(1.0, zeroAccelSensor{})

	before := f.KnownState()
	err := f.MeasurementUpdate(5, constantScalarSensor{value: 0})
	require.ErrorIs(t, err, ErrSingularInnovation)

	after := f.KnownState()
	assert.Equal(t, before, after)
}

func TestVectorizeDevectorizeRoundTrip(t *testing.T) {
	e := geo.ExtendedPose{
		Pose:            geo.Pose{Angle: 1.2, Position: geo.Point{X: 3, Y: -4}},
		AngularVelocity: 0.5,
		LinearVelocity:  geo.Point{X: 1, Y: 2},
	}
	v := vectorize(e)
	got := devectorize(v[:])
	assert.Equal(t, e, got)
}

func TestGenSigmaMatrixRowCountAndMeanRow(t *testing.T) {
	cfg := Config{Alpha: 1e-3, Beta: 2, Kappa: 0, Q: mat.NewDense(6, 6, nil), R: 0}
	bounds := geo.Bounds{MinX: -1e6, MaxX: 1e6, MinY: -1e6, MaxY: 1e6}
	f := New(geo.ExtendedPose{Pose: geo.Pose{Position: geo.Point{X: 1, Y: 2}}}, identity6(), bounds, cfg)

	sigma := f.genSigmaMatrix()
	rows, cols := sigma.Dims()
	assert.Equal(t, sigmaRows, rows)
	assert.Equal(t, stateDim, cols)
	assert.InDelta(t, 1, sigma.At(0, 0), 1e-9)
	assert.InDelta(t, 2, sigma.At(0, 1), 1e-9)
}

func TestRound5(t *testing.T) {
	assert.InDelta(t, 0.12346, round5(0.123456), 1e-12)
	assert.True(t, math.Abs(round5(1.0)-1.0) < 1e-12)
}
