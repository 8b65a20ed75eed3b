package gshark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ungerik/go3d/float64/vec3"
)

func TestSurfacePoint(t *testing.T) {
	srf := planeTestSurface(t)

	tests := []struct {
		uv   UV
		want vec3.T
	}{
		{UV{0, 0}, vec3.T{0, 0, 0}},
		{UV{1, 1}, vec3.T{2, 2, 0}},
		{UV{0.5, 0.5}, vec3.T{1, 1, 0}},
		{UV{0.25, 0.75}, vec3.T{0.5, 1.5, 0}},
	}

	for _, tt := range tests {
		pt, err := srf.Point(tt.uv)
		require.NoError(t, err)
		assertVec3InDelta(t, tt.want, pt, 1e-9, "point at %v", tt.uv)
	}
}

func TestSurfaceDerivatives(t *testing.T) {
	srf := planeTestSurface(t)

	ders, err := srf.Derivatives(UV{0.3, 0.6}, 1)
	require.NoError(t, err)

	pt, err := srf.Point(UV{0.3, 0.6})
	require.NoError(t, err)

	assertVec3InDelta(t, pt, ders[0][0], 1e-12)
	assertVec3InDelta(t, vec3.T{2, 0, 0}, ders[1][0], 1e-9)
	assertVec3InDelta(t, vec3.T{0, 2, 0}, ders[0][1], 1e-9)
}

func TestSurfaceDerivativesAgainstFiniteDifferences(t *testing.T) {
	srf := bumpTestSurface(t)
	uv := UV{0.4, 0.3}
	h := 1e-6

	ders, err := srf.Derivatives(uv, 1)
	require.NoError(t, err)

	pu0, err := srf.Point(UV{uv[0] - h, uv[1]})
	require.NoError(t, err)
	pu1, err := srf.Point(UV{uv[0] + h, uv[1]})
	require.NoError(t, err)
	fdU := vec3.Sub(&pu1, &pu0)
	fdU.Scale(1 / (2 * h))

	pv0, err := srf.Point(UV{uv[0], uv[1] - h})
	require.NoError(t, err)
	pv1, err := srf.Point(UV{uv[0], uv[1] + h})
	require.NoError(t, err)
	fdV := vec3.Sub(&pv1, &pv0)
	fdV.Scale(1 / (2 * h))

	assertVec3InDelta(t, fdU, ders[1][0], 1e-5, "u partial")
	assertVec3InDelta(t, fdV, ders[0][1], 1e-5, "v partial")
}

func TestSurfaceDerivativesBeyondDegreeAreZero(t *testing.T) {
	srf := planeTestSurface(t)

	ders, err := srf.Derivatives(UV{0.5, 0.5}, 3)
	require.NoError(t, err)
	require.Len(t, ders, 4)

	// the patch is biquadratic: third u or v partials vanish
	assertVec3InDelta(t, vec3.T{}, ders[3][0], 1e-12)
	assertVec3InDelta(t, vec3.T{}, ders[0][3], 1e-12)
}

func TestSurfaceNormal(t *testing.T) {
	srf := planeTestSurface(t)

	for _, uv := range []UV{{0, 0}, {0.5, 0.5}, {0.8, 0.2}} {
		normal, err := srf.Normal(uv)
		require.NoError(t, err)

		// Su x Sv for S = (2u, 2v, 0), unnormalized
		assertVec3InDelta(t, vec3.T{0, 0, 4}, normal, 1e-9, "normal at %v", uv)
	}
}

func TestSurfaceNormalOrthogonalToPartials(t *testing.T) {
	srf := bumpTestSurface(t)
	uv := UV{0.35, 0.65}

	normal, err := srf.Normal(uv)
	require.NoError(t, err)
	ders, err := srf.Derivatives(uv, 1)
	require.NoError(t, err)

	du, dv := ders[1][0], ders[0][1]
	assert.InDelta(t, 0.0, vec3.Dot(&normal, &du), 1e-9)
	assert.InDelta(t, 0.0, vec3.Dot(&normal, &dv), 1e-9)
	assert.Greater(t, normal.Length(), 0.0)
}

func TestSurfaceInvalidGeometry(t *testing.T) {
	controlPoints := [][]vec3.T{
		{{0, 0, 0}, {1, 0, 0}},
		{{0, 1, 0}, {1, 1, 0}},
	}
	weights := [][]float64{{1, 1}, {1, 1}}

	// knotsV too long for two control-point columns
	_, err := NewNurbsSurface(
		1, 1,
		controlPoints, weights,
		[]float64{0, 0, 1, 1},
		[]float64{0, 0, 0.5, 1, 1},
	)
	var geomErr *InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)

	srf := NewNurbsSurfaceUnchecked(
		1, 1,
		controlPoints, weights,
		[]float64{0, 0, 1, 1},
		[]float64{0, 0, 0.5, 1, 1},
	)

	_, err = srf.Point(UV{0.5, 0.5})
	require.ErrorAs(t, err, &geomErr)

	_, err = srf.Normal(UV{0.5, 0.5})
	require.ErrorAs(t, err, &geomErr)

	_, err = srf.Isocurve(0.5, false)
	require.ErrorAs(t, err, &geomErr)
}

func TestIsocurveAtDomainBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	srf := bumpTestSurface(t)
	minU, maxU := srf.DomainU()

	approx := cmpopts.EquateApprox(0, 1e-12)

	first, err := srf.Isocurve(minU, false)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(srf.ControlPoints()[0], first.ControlPoints(), approx))
	assert.Empty(t, cmp.Diff(srf.Weights()[0], first.Weights(), approx))
	assert.Empty(t, cmp.Diff(srf.KnotsV(), first.Knots(), approx))
	assert.Equal(t, srf.DegreeV(), first.Degree())

	last, err := srf.Isocurve(maxU, false)
	require.NoError(t, err)
	lastRow := srf.ControlPoints()[len(srf.ControlPoints())-1]
	assert.Empty(t, cmp.Diff(lastRow, last.ControlPoints(), approx))
}

func TestIsocurveInterior(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	srf := bumpTestSurface(t)

	// fix u, sweep v
	uCurve, err := srf.Isocurve(0.37, false)
	require.NoError(t, err)

	for _, v := range []float64{0, 0.25, 0.5, 0.8, 1} {
		want, err := srf.Point(UV{0.37, v})
		require.NoError(t, err)
		got, err := uCurve.Point(v)
		require.NoError(t, err)
		assertVec3InDelta(t, want, got, 1e-9, "u isocurve diverges at v=%g", v)
	}

	// fix v, sweep u
	vCurve, err := srf.Isocurve(0.6, true)
	require.NoError(t, err)

	for _, u := range []float64{0, 0.25, 0.5, 0.8, 1} {
		want, err := srf.Point(UV{u, 0.6})
		require.NoError(t, err)
		got, err := vCurve.Point(u)
		require.NoError(t, err)
		assertVec3InDelta(t, want, got, 1e-9, "v isocurve diverges at u=%g", u)
	}
}

func TestBoundaries(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	srf := planeTestSurface(t)

	boundaries, err := srf.Boundaries()
	require.NoError(t, err)
	require.Len(t, boundaries, 4)

	// the u-min boundary starts at the surface corner
	corner, err := srf.Point(UV{0, 0})
	require.NoError(t, err)
	start, err := boundaries[0].Point(0)
	require.NoError(t, err)
	assertVec3InDelta(t, corner, start, 1e-9)

	// the v-max boundary ends at the opposite corner
	corner, err = srf.Point(UV{1, 1})
	require.NoError(t, err)
	end, err := boundaries[3].Point(1)
	require.NoError(t, err)
	assertVec3InDelta(t, corner, end, 1e-9)
}

func TestSurfaceKnotRefineKeepsGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	srf := bumpTestSurface(t)
	refined := srf.KnotRefine([]float64{0.3, 0.7}, false)

	require.NoError(t, refined.check())
	assert.Equal(t, srf.KnotsV(), refined.KnotsV())
	assert.Len(t, refined.KnotsU(), len(srf.KnotsU())+2)

	for _, uv := range []UV{{0, 0}, {0.3, 0.5}, {0.5, 0.9}, {1, 1}} {
		want, err := srf.Point(uv)
		require.NoError(t, err)
		got, err := refined.Point(uv)
		require.NoError(t, err)
		assertVec3InDelta(t, want, got, 1e-9, "refined surface diverges at %v", uv)
	}
}

func TestSurfaceSplit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	srf := bumpTestSurface(t)
	left, right, err := srf.Split(0.5, false)
	require.NoError(t, err)
	require.NoError(t, left.check())
	require.NoError(t, right.check())

	_, leftMax := left.DomainU()
	rightMin, _ := right.DomainU()
	assert.InDelta(t, 0.5, leftMax, 1e-12)
	assert.InDelta(t, 0.5, rightMin, 1e-12)

	for _, uv := range []UV{{0, 0.2}, {0.25, 0.5}, {0.5, 0.8}} {
		want, err := srf.Point(uv)
		require.NoError(t, err)
		got, err := left.Point(uv)
		require.NoError(t, err)
		assertVec3InDelta(t, want, got, 1e-9, "left half diverges at %v", uv)
	}

	for _, uv := range []UV{{0.5, 0.2}, {0.75, 0.5}, {1, 0.8}} {
		want, err := srf.Point(uv)
		require.NoError(t, err)
		got, err := right.Point(uv)
		require.NoError(t, err)
		assertVec3InDelta(t, want, got, 1e-9, "right half diverges at %v", uv)
	}
}

func TestSurfaceAccessorsAndDomain(t *testing.T) {
	srf := planeTestSurface(t)

	assert.Equal(t, 2, srf.DegreeU())
	assert.Equal(t, 2, srf.DegreeV())

	minU, maxU := srf.DomainU()
	minV, maxV := srf.DomainV()
	assert.Equal(t, 0.0, minU)
	assert.Equal(t, 1.0, maxU)
	assert.Equal(t, 0.0, minV)
	assert.Equal(t, 1.0, maxV)

	assert.Len(t, srf.ControlPoints(), 3)
	assert.Len(t, srf.Weights(), 3)
}
