package gshark

import (
	. "github.com/gsharker/gshark/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// NurbsCurve is a non-uniform rational B-spline curve. It is immutable to
// the client: every operation reads the curve and returns new values.
type NurbsCurve struct {
	// degree of curve
	degree int

	// slice of control points, each a homogeneous coordinate
	controlPoints []HomoPoint

	// slice of nondecreasing knot values
	knots KnotVec
}

// NewNurbsCurve builds a curve from spatial control points and their weights,
// validating the degree/knot/control-point relations.
func NewNurbsCurve(degree int, controlPoints []vec3.T, weights []float64, knots []float64) (*NurbsCurve, error) {
	this := NewNurbsCurveUnchecked(degree, controlPoints, weights, knots)
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

// NewNurbsCurveUnchecked builds a curve without validating it. Evaluation
// entry points still validate before computing.
func NewNurbsCurveUnchecked(degree int, controlPoints []vec3.T, weights []float64, knots []float64) *NurbsCurve {
	return &NurbsCurve{degree, Homogenize1d(controlPoints, weights), KnotVec(knots).Clone()}
}

func (this *NurbsCurve) Degree() int {
	return this.degree
}

func (this *NurbsCurve) ControlPoints() []vec3.T {
	return Dehomogenize1d(this.controlPoints)
}

func (this *NurbsCurve) Weights() []float64 {
	return Weight1d(this.controlPoints)
}

func (this *NurbsCurve) Knots() []float64 {
	return []float64(this.knots.Clone())
}

// clone() is not exported because NurbsCurve is immutable to the client,
// so there's no point in making a deep copy.
// Should only be used when control points and knots can't be shared
func (this *NurbsCurve) clone() *NurbsCurve {
	return &NurbsCurve{
		degree:        this.degree,
		controlPoints: append([]HomoPoint(nil), this.controlPoints...),
		knots:         this.knots.Clone(),
	}
}

// Determine the valid domain of the curve
//
// **returns**
// + the start and end parameter of the domain of the curve
func (this *NurbsCurve) Domain() (min, max float64) {
	return this.knots.Domain()
}

// check validates the relations between degree, knot vector and control
// points. Construction normally guarantees these; a failure here means the
// caller assembled the curve by hand and got it wrong.
func (this *NurbsCurve) check() error {
	if this.controlPoints == nil {
		return invalidGeometry("control points cannot be nil")
	}

	if this.degree < 1 {
		return invalidGeometry("degree %d must be at least 1", this.degree)
	}

	if this.knots == nil {
		return invalidGeometry("knots cannot be nil")
	}

	if len(this.knots) != len(this.controlPoints)+this.degree+1 {
		return invalidGeometry(
			"len(controlPoints) + degree + 1 must equal len(knots): %d + %d + 1 != %d",
			len(this.controlPoints), this.degree, len(this.knots),
		)
	}

	if !this.knots.IsValid(this.degree, len(this.controlPoints)) {
		return invalidGeometry("knot vector must be nondecreasing and begin and end with degree + 1 repeats")
	}

	return nil
}

// Compute a point on the curve
//
// **params**
// + parameter on the curve at which the point is to be evaluated
//
// **returns**
// + the dehomogenized point on the curve
func (this *NurbsCurve) Point(u float64) (vec3.T, error) {
	if err := this.check(); err != nil {
		return vec3.T{}, err
	}

	homoPt := this.nonRationalPoint(u)
	return homoPt.Dehomogenized(), nil
}

// Compute the tangent at a point on the curve: the first derivative of the
// rational curve, unnormalized.
//
// **params**
// + parameter on the curve
//
// **returns**
// + the tangent vector
func (this *NurbsCurve) Tangent(u float64) (vec3.T, error) {
	ders, err := this.Derivatives(u, 1)
	if err != nil {
		return vec3.T{}, err
	}

	return ders[1], nil
}

// Determine the derivatives of the rational curve at a given parameter
// (corresponds to algorithm 4.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Each level k subtracts the binomial-weighted corrections built from the
// weight derivatives and the previously computed levels, then divides by the
// base weight, so levels are produced in increasing order.
//
// **params**
// + parameter on the curve at which the derivatives are to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + numDerivs + 1 Cartesian vectors; index 0 is the point itself
func (this *NurbsCurve) Derivatives(u float64, numDerivs int) ([]vec3.T, error) {
	if err := this.check(); err != nil {
		return nil, err
	}

	ders := this.nonRationalDerivatives(u, numDerivs)
	ck := make([]vec3.T, 0, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		v := ders[k].Vec3

		for i := 1; i <= k; i++ {
			scaled := ck[k-i].Scaled(binomial(k, i) * ders[i].W)
			v.Sub(&scaled)
		}
		v.Scale(1 / ders[0].W)
		ck = append(ck, v)
	}

	return ck, nil
}

// Compute a point on the non-uniform, non-rational homogeneous curve
// (corresponds to algorithm 3.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + parameter on the curve at which the point is to be evaluated
//
// **returns**
// + the homogeneous point on the curve
func (this *NurbsCurve) nonRationalPoint(u float64) HomoPoint {
	degree := this.degree
	knots := this.knots

	span := knots.Span(degree, u)
	basisValues := BasisFunctionsAtSpan(span, u, degree, knots)
	var position HomoPoint

	for j := 0; j <= degree; j++ {
		scaled := this.controlPoints[span-degree+j]
		scaled.Scale(basisValues[j])
		position.Add(&scaled)
	}

	return position
}

// Determine the derivatives of the non-uniform, non-rational homogeneous
// curve at a given parameter
// (corresponds to algorithm 3.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// Levels past min(numDerivs, degree) are zero vectors: the derivative basis
// rows past the degree are all zeros.
//
// **params**
// + parameter on the curve at which the derivatives are to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + numDerivs + 1 homogeneous vectors; index 0 is the homogeneous point
func (this *NurbsCurve) nonRationalDerivatives(u float64, numDerivs int) []HomoPoint {
	degree := this.degree
	knots := this.knots

	ck := make([]HomoPoint, numDerivs+1)
	span := knots.Span(degree, u)
	nders := DerivativeBasisFunctionsAtSpan(span, u, degree, numDerivs, knots)

	for k := 0; k <= numDerivs; k++ {
		for j := 0; j <= degree; j++ {
			scaled := this.controlPoints[span-degree+j]
			scaled.Scale(nders[k][j])
			ck[k].Add(&scaled)
		}
	}

	return ck
}

// Split a curve into two parts at the given parameter
//
// **params**
// + location to split the curve
//
// **returns**
// + two new curves, meeting at the split parameter
func (this *NurbsCurve) Split(u float64) (*NurbsCurve, *NurbsCurve, error) {
	if err := this.check(); err != nil {
		return nil, nil, err
	}

	degree, knots := this.degree, this.knots

	knotsToInsert := make([]float64, degree+1)
	for i := range knotsToInsert {
		knotsToInsert[i] = u
	}
	res := this.KnotRefine(knotsToInsert)

	s := knots.Span(degree, u)

	knots0 := res.knots[:s+degree+2 : s+degree+2]
	knots1 := res.knots[s+1:]

	cpts0 := res.controlPoints[:s+1 : s+1]
	cpts1 := res.controlPoints[s+1:]

	return &NurbsCurve{degree, cpts0, knots0}, &NurbsCurve{degree, cpts1, knots1}, nil
}

// Reverse the parametrization of the curve while tracing the same geometry.
func (this *NurbsCurve) Reverse() *NurbsCurve {
	reversed := NurbsCurve{
		degree:        this.degree,
		controlPoints: make([]HomoPoint, 0, len(this.controlPoints)),
		knots:         this.knots.Reversed(),
	}

	for i := len(this.controlPoints) - 1; i >= 0; i-- {
		reversed.controlPoints = append(reversed.controlPoints, this.controlPoints[i])
	}

	return &reversed
}
