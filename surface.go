package gshark

import (
	"math"

	. "github.com/gsharker/gshark/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// UV is a parameter pair on a surface.
type UV [2]float64

// NurbsSurface is a non-uniform rational B-spline surface. It is immutable
// to the client: every operation reads the surface and returns new values.
type NurbsSurface struct {
	// integer degree of surface in u direction
	degreeU int

	// integer degree of surface in v direction
	degreeV int

	// 2d grid of homogeneous control points, the u direction increases from
	// top to bottom, the v direction from left to right
	controlPoints [][]HomoPoint

	// array of nondecreasing knot values in u direction
	knotsU KnotVec

	// array of nondecreasing knot values in v direction
	knotsV KnotVec
}

// NewNurbsSurface builds a surface from a grid of spatial control points and
// their weights, validating both parametric directions independently.
func NewNurbsSurface(degreeU, degreeV int, controlPoints [][]vec3.T, weights [][]float64, knotsU, knotsV []float64) (*NurbsSurface, error) {
	this := NewNurbsSurfaceUnchecked(degreeU, degreeV, controlPoints, weights, knotsU, knotsV)
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

// NewNurbsSurfaceUnchecked builds a surface without validating it.
// Evaluation entry points still validate before computing.
func NewNurbsSurfaceUnchecked(degreeU, degreeV int, controlPoints [][]vec3.T, weights [][]float64, knotsU, knotsV []float64) *NurbsSurface {
	return &NurbsSurface{
		degreeU, degreeV,
		Homogenize2d(controlPoints, weights),
		KnotVec(knotsU).Clone(), KnotVec(knotsV).Clone(),
	}
}

func (this *NurbsSurface) DegreeU() int {
	return this.degreeU
}

func (this *NurbsSurface) DegreeV() int {
	return this.degreeV
}

func (this *NurbsSurface) ControlPoints() [][]vec3.T {
	return Dehomogenize2d(this.controlPoints)
}

func (this *NurbsSurface) Weights() [][]float64 {
	return Weight2d(this.controlPoints)
}

func (this *NurbsSurface) KnotsU() []float64 {
	return []float64(this.knotsU.Clone())
}

func (this *NurbsSurface) KnotsV() []float64 {
	return []float64(this.knotsV.Clone())
}

func (this *NurbsSurface) DomainU() (min, max float64) {
	return this.knotsU.Domain()
}

func (this *NurbsSurface) DomainV() (min, max float64) {
	return this.knotsV.Domain()
}

// check validates both parametric directions independently.
func (this *NurbsSurface) check() error {
	if this.controlPoints == nil {
		return invalidGeometry("control points cannot be nil")
	}

	if this.degreeU < 1 {
		return invalidGeometry("degreeU %d must be at least 1", this.degreeU)
	}
	if this.degreeV < 1 {
		return invalidGeometry("degreeV %d must be at least 1", this.degreeV)
	}

	if this.knotsU == nil {
		return invalidGeometry("knotsU cannot be nil")
	}
	if this.knotsV == nil {
		return invalidGeometry("knotsV cannot be nil")
	}

	if len(this.knotsU) != len(this.controlPoints)+this.degreeU+1 {
		return invalidGeometry(
			"number of control point rows + degreeU + 1 must equal len(knotsU): %d + %d + 1 != %d",
			len(this.controlPoints), this.degreeU, len(this.knotsU),
		)
	}
	if len(this.knotsV) != len(this.controlPoints[0])+this.degreeV+1 {
		return invalidGeometry(
			"number of control point columns + degreeV + 1 must equal len(knotsV): %d + %d + 1 != %d",
			len(this.controlPoints[0]), this.degreeV, len(this.knotsV),
		)
	}

	if !this.knotsU.IsValid(this.degreeU, len(this.controlPoints)) ||
		!this.knotsV.IsValid(this.degreeV, len(this.controlPoints[0])) {
		return invalidGeometry("knot vectors must be nondecreasing and begin and end with degree + 1 repeats")
	}

	return nil
}

// Compute a point on the surface
//
// **params**
// + u and v parameters at which to evaluate the surface point
//
// **returns**
// + the dehomogenized point on the surface
func (this *NurbsSurface) Point(uv UV) (vec3.T, error) {
	if err := this.check(); err != nil {
		return vec3.T{}, err
	}

	homoPt := this.nonRationalPoint(uv)
	return homoPt.Dehomogenized(), nil
}

// Compute the normal at a point on the surface: the cross product of the
// first u and v partial derivatives, unnormalized.
//
// **params**
// + u and v parameters at which to evaluate the normal
//
// **returns**
// + the normal vector
func (this *NurbsSurface) Normal(uv UV) (vec3.T, error) {
	derivs, err := this.Derivatives(uv, 1)
	if err != nil {
		return vec3.T{}, err
	}

	return vec3.Cross(&derivs[1][0], &derivs[0][1]), nil
}

// Determine the derivatives of the rational surface at a given parameter pair
// (corresponds to algorithm 4.4 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Cell (k,l) subtracts the v-direction corrections, then the u-direction and
// cross corrections, before dividing by the base weight; cells are produced
// in row-major (k,l) order since each depends on cells of smaller indices.
//
// **params**
// + u and v parameters at which to evaluate the derivatives
// + number of derivatives to evaluate
//
// **returns**
// + a 2d array of Cartesian vectors, filled for k + l <= numDerivs; cell
// (k,l) is the kth u-partial of the lth v-partial, cell (0,0) the point
func (this *NurbsSurface) Derivatives(uv UV, numDerivs int) ([][]vec3.T, error) {
	if err := this.check(); err != nil {
		return nil, err
	}

	ders := this.nonRationalDerivatives(uv, numDerivs)
	wders := Weight2d(ders)
	skl := make([][]vec3.T, numDerivs+1)
	for i := range skl {
		skl[i] = make([]vec3.T, numDerivs+1)
	}

	for k := 0; k <= numDerivs; k++ {
		for l := 0; l <= numDerivs-k; l++ {
			v := ders[k][l].Vec3

			for j := 1; j <= l; j++ {
				scaled := skl[k][l-j].Scaled(binomial(l, j) * wders[0][j])
				v.Sub(&scaled)
			}

			for i := 1; i <= k; i++ {
				scaled := skl[k-i][l].Scaled(binomial(k, i) * wders[i][0])
				v.Sub(&scaled)

				var v2 vec3.T

				for j := 1; j <= l; j++ {
					scaled := skl[k-i][l-j].Scaled(binomial(l, j) * wders[i][j])
					v2.Add(&scaled)
				}

				scaled = v2.Scaled(binomial(k, i))
				v.Sub(&scaled)
			}

			v.Scale(1 / wders[0][0])
			skl[k][l] = v
		}
	}

	return skl, nil
}

// Compute a point on the non-uniform, non-rational homogeneous surface
// (corresponds to algorithm 3.5 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Each v-column of the local control-point window collapses via the u basis
// values into a temporary, and the temporaries combine via the v basis
// values, keeping evaluation O(degreeU * degreeV).
//
// **params**
// + u and v parameters at which to evaluate the surface point
//
// **returns**
// + the homogeneous point on the surface
func (this *NurbsSurface) nonRationalPoint(uv UV) HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints

	spanU := this.knotsU.Span(degreeU, uv[0])
	spanV := this.knotsV.Span(degreeV, uv[1])
	uBasisVals := BasisFunctionsAtSpan(spanU, uv[0], degreeU, this.knotsU)
	vBasisVals := BasisFunctionsAtSpan(spanV, uv[1], degreeV, this.knotsV)
	uind := spanU - degreeU
	var position HomoPoint

	for l := 0; l <= degreeV; l++ {
		temp := HomoPoint{}
		vind := spanV - degreeV + l

		// sample u isoline
		for k := 0; k <= degreeU; k++ {
			scaled := controlPoints[uind+k][vind]
			scaled.Scale(uBasisVals[k])
			temp.Add(&scaled)
		}

		// add point from u isoline
		temp.Scale(vBasisVals[l])
		position.Add(&temp)
	}

	return position
}

// Compute the derivatives of the non-uniform, non-rational homogeneous
// surface at a given parameter pair
// (corresponds to algorithm 3.6 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Cells with k past min(numDerivs, degreeU) or l past min(numDerivs, degreeV)
// stay zero vectors: the derivative basis rows past the degree are all zeros.
//
// **params**
// + u and v parameters at which to evaluate the derivatives
// + number of derivatives to evaluate
//
// **returns**
// + a 2d array of homogeneous vectors - u derivatives increase by row,
// v derivatives by column
func (this *NurbsSurface) nonRationalDerivatives(uv UV, numDerivs int) [][]HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints

	skl := make([][]HomoPoint, numDerivs+1)
	for i := range skl {
		skl[i] = make([]HomoPoint, numDerivs+1)
	}

	spanU := this.knotsU.Span(degreeU, uv[0])
	spanV := this.knotsV.Span(degreeV, uv[1])
	uders := DerivativeBasisFunctionsAtSpan(spanU, uv[0], degreeU, numDerivs, this.knotsU)
	vders := DerivativeBasisFunctionsAtSpan(spanV, uv[1], degreeV, numDerivs, this.knotsV)
	temp := make([]HomoPoint, degreeV+1)

	for k := 0; k <= numDerivs; k++ {
		for s := range temp {
			temp[s] = HomoPoint{}

			for r := 0; r <= degreeU; r++ {
				scaled := controlPoints[spanU-degreeU+r][spanV-degreeV+s]
				scaled.Scale(uders[k][r])
				temp[s].Add(&scaled)
			}
		}

		for l := 0; l <= numDerivs-k; l++ {
			for s := 0; s <= degreeV; s++ {
				scaled := temp[s]
				scaled.Scale(vders[l][s])
				skl[k][l].Add(&scaled)
			}
		}
	}

	return skl
}

// Extract the iso-parametric curve of the surface at a fixed parameter
//
// Knots are inserted at the parameter until its multiplicity reaches
// degree + 1, isolating a row (or column) of control points lying exactly on
// the curve, which becomes the control polygon of a curve in the other
// direction.
//
// **params**
// + the fixed parameter
// + whether the parameter is fixed in the v direction rather than u
//
// **returns**
// + the iso-parametric curve
func (this *NurbsSurface) Isocurve(t float64, useV bool) (*NurbsCurve, error) {
	if err := this.check(); err != nil {
		return nil, err
	}

	knots := this.knotsU
	degree := this.degreeU
	if useV {
		knots = this.knotsV
		degree = this.degreeV
	}

	// if the knot already exists, don't insert duplicates beyond full
	// multiplicity
	var existingMult int
	for _, knotMult := range knots.Multiplicities() {
		if math.Abs(t-knotMult.Knot) < Epsilon {
			existingMult = knotMult.Mult
			break
		}
	}

	numKnotsToInsert := degree + 1 - existingMult

	newSrf := this
	if numKnotsToInsert > 0 {
		tracer().Debugf("isocurve at %g: inserting %d knots", t, numKnotsToInsert)

		newKnots := make([]float64, numKnotsToInsert)
		for i := range newKnots {
			newKnots[i] = t
		}

		newSrf = this.KnotRefine(newKnots, useV)
	}

	refined := newSrf.knotsU
	if useV {
		refined = newSrf.knotsV
	}

	// index of the control-point row (or column) lying on the curve
	span := refined.Span(degree, t) - degree

	if math.Abs(t-refined[0]) < Epsilon {
		span = 0
	} else if math.Abs(t-refined[len(refined)-1]) < Epsilon {
		if useV {
			span = len(newSrf.controlPoints[0]) - 1
		} else {
			span = len(newSrf.controlPoints) - 1
		}
	}

	if useV {
		controlPoints := make([]HomoPoint, 0, len(newSrf.controlPoints))
		for _, row := range newSrf.controlPoints {
			controlPoints = append(controlPoints, row[span])
		}

		return &NurbsCurve{newSrf.degreeU, controlPoints, newSrf.knotsU.Clone()}, nil
	}

	curvePoints := append([]HomoPoint(nil), newSrf.controlPoints[span]...)

	return &NurbsCurve{newSrf.degreeV, curvePoints, newSrf.knotsV.Clone()}, nil
}

// Extract the boundary curves from a surface
//
// **returns**
// + an array containing 4 elements: the curves at the start and end of the
// u domain, then the curves at the start and end of the v domain
func (this *NurbsSurface) Boundaries() ([]*NurbsCurve, error) {
	params := []struct {
		t    float64
		useV bool
	}{
		{this.knotsU[0], false},
		{this.knotsU[len(this.knotsU)-1], false},
		{this.knotsV[0], true},
		{this.knotsV[len(this.knotsV)-1], true},
	}

	boundaries := make([]*NurbsCurve, len(params))
	for i, p := range params {
		var err error
		if boundaries[i], err = this.Isocurve(p.t, p.useV); err != nil {
			return nil, err
		}
	}

	return boundaries, nil
}

// Split a surface into two parts at the given parameter
//
// **params**
// + location to split the surface
// + whether to split in the v direction rather than u
//
// **returns**
// + two new surfaces, meeting at the split parameter
func (this *NurbsSurface) Split(t float64, useV bool) (*NurbsSurface, *NurbsSurface, error) {
	if err := this.check(); err != nil {
		return nil, nil, err
	}

	var (
		knots         KnotVec
		degree        int
		controlPoints [][]HomoPoint
	)

	if !useV {
		controlPoints = transposedGrid(this.controlPoints)
		knots = this.knotsU
		degree = this.degreeU
	} else {
		controlPoints = this.controlPoints
		knots = this.knotsV
		degree = this.degreeV
	}

	knotsToInsert := make([]float64, degree+1)
	for i := range knotsToInsert {
		knotsToInsert[i] = t
	}

	newpts0 := make([][]HomoPoint, 0, len(controlPoints))
	newpts1 := make([][]HomoPoint, 0, len(controlPoints))

	s := knots.Span(degree, t)
	var res *NurbsCurve
	baseCurve := NurbsCurve{degree: degree, knots: knots}

	for _, cps := range controlPoints {
		baseCurve.controlPoints = cps
		res = baseCurve.KnotRefine(knotsToInsert)

		newpts0 = append(newpts0, res.controlPoints[:s+1:s+1])
		newpts1 = append(newpts1, res.controlPoints[s+1:])
	}

	knots0 := res.knots[:s+degree+2 : s+degree+2]
	knots1 := res.knots[s+1:]

	if !useV {
		return &NurbsSurface{
				this.degreeU, this.degreeV,
				transposedGrid(newpts0),
				knots0, this.knotsV.Clone(),
			}, &NurbsSurface{
				this.degreeU, this.degreeV,
				transposedGrid(newpts1),
				knots1, this.knotsV.Clone(),
			}, nil
	}

	// v dir
	return &NurbsSurface{
			this.degreeU, this.degreeV,
			newpts0,
			this.knotsU.Clone(), knots0,
		}, &NurbsSurface{
			this.degreeU, this.degreeV,
			newpts1,
			this.knotsU.Clone(), knots1,
		}, nil
}
