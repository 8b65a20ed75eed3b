package gshark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ungerik/go3d/float64/vec3"
)

func assertVec3InDelta(t *testing.T, want, got vec3.T, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], delta, msgAndArgs...)
	assert.InDelta(t, want[1], got[1], delta, msgAndArgs...)
	assert.InDelta(t, want[2], got[2], delta, msgAndArgs...)
}

func unitWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// cubicTestCurve is a planar degree-3 curve with two interior knots,
// verified against independent CAD output.
func cubicTestCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	curve, err := NewNurbsCurve(
		3,
		[]vec3.T{{5, 5, 0}, {10, 10, 0}, {20, 15, 0}, {35, 15, 0}, {45, 10, 0}, {50, 5, 0}},
		unitWeights(6),
		[]float64{0, 0, 0, 0, 0.333333, 0.666667, 1, 1, 1, 1},
	)
	require.NoError(t, err)
	return curve
}

// collinearTestCurve is a degree-3 curve whose control points lie evenly on
// the x axis, so it parametrizes a straight segment at constant speed.
func collinearTestCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	curve, err := NewNurbsCurve(
		3,
		[]vec3.T{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}},
		unitWeights(5),
		[]float64{0, 0, 0, 0, 0.5, 1, 1, 1, 1},
	)
	require.NoError(t, err)
	return curve
}

// quarterCircleCurve is the standard rational quadratic Bezier quarter arc of
// the unit circle from (1,0,0) to (0,1,0).
func quarterCircleCurve(t *testing.T) *NurbsCurve {
	t.Helper()
	curve, err := NewNurbsCurve(
		2,
		[]vec3.T{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[]float64{1, math.Sqrt2 / 2, 1},
		[]float64{0, 0, 0, 1, 1, 1},
	)
	require.NoError(t, err)
	return curve
}

// planeTestSurface is a biquadratic Bezier patch over the z=0 plane with
// S(u,v) = (2u, 2v, 0).
func planeTestSurface(t *testing.T) *NurbsSurface {
	t.Helper()

	controlPoints := make([][]vec3.T, 3)
	weights := make([][]float64, 3)
	for i := range controlPoints {
		controlPoints[i] = make([]vec3.T, 3)
		weights[i] = unitWeights(3)
		for j := range controlPoints[i] {
			controlPoints[i][j] = vec3.T{float64(i), float64(j), 0}
		}
	}

	srf, err := NewNurbsSurface(
		2, 2,
		controlPoints, weights,
		[]float64{0, 0, 0, 1, 1, 1},
		[]float64{0, 0, 0, 1, 1, 1},
	)
	require.NoError(t, err)
	return srf
}

// bumpTestSurface raises the middle control point of the plane patch and
// gives it a non-unit weight, exercising the rational code paths.
func bumpTestSurface(t *testing.T) *NurbsSurface {
	t.Helper()

	controlPoints := make([][]vec3.T, 3)
	weights := make([][]float64, 3)
	for i := range controlPoints {
		controlPoints[i] = make([]vec3.T, 3)
		weights[i] = unitWeights(3)
		for j := range controlPoints[i] {
			controlPoints[i][j] = vec3.T{float64(i), float64(j), 0}
		}
	}
	controlPoints[1][1] = vec3.T{1, 1, 2}
	weights[1][1] = 2

	srf, err := NewNurbsSurface(
		2, 2,
		controlPoints, weights,
		[]float64{0, 0, 0, 1, 1, 1},
		[]float64{0, 0, 0, 1, 1, 1},
	)
	require.NoError(t, err)
	return srf
}
