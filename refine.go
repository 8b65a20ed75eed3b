package gshark

import (
	"math"

	. "github.com/gsharker/gshark/internal"
)

// KnotRefine inserts a collection of knots on a curve, returning a new curve
// tracing the same geometry
//
// Corresponds to algorithm A5.4 (Piegl & Tiller). Affected control points are
// interpolated in full homogeneous space so that non-unit weights refine
// correctly.
//
// **params**
// + array of nondecreasing knot values to insert, each within the domain
//
// **returns**
// + a new curve with the enlarged knot vector and control net
func (this *NurbsCurve) KnotRefine(knotsToInsert []float64) *NurbsCurve {
	if len(knotsToInsert) == 0 {
		return this.clone()
	}

	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots
	toInsert := KnotVec(knotsToInsert)

	n := len(controlPoints) - 1
	m := n + degree + 1
	r := len(toInsert) - 1
	a := knots.Span(degree, toInsert[0])
	b := knots.Span(degree, toInsert[r])

	controlPointsPost := make([]HomoPoint, n+r+2)
	knotsPost := make(KnotVec, m+r+2)

	// control points and knots untouched by the insertions
	for i := 0; i <= a-degree; i++ {
		controlPointsPost[i] = controlPoints[i]
	}

	for i := b - 1; i <= n; i++ {
		controlPointsPost[i+r+1] = controlPoints[i]
	}

	for i := 0; i <= a; i++ {
		knotsPost[i] = knots[i]
	}

	for i := b + degree; i <= m; i++ {
		knotsPost[i+r+1] = knots[i]
	}

	i := b + degree - 1
	k := b + degree + r

	for j := r; j >= 0; j-- {
		for toInsert[j] <= knots[i] && i > a {
			controlPointsPost[k-degree-1] = controlPoints[i-degree-1]
			knotsPost[k] = knots[i]
			k--
			i--
		}

		controlPointsPost[k-degree-1] = controlPointsPost[k-degree]

		for l := 1; l <= degree; l++ {
			ind := k - degree + l
			alfa := knotsPost[k+l] - toInsert[j]

			if math.Abs(alfa) < Epsilon {
				controlPointsPost[ind-1] = controlPointsPost[ind]
			} else {
				alfa /= knotsPost[k+l] - knots[i-degree+l]
				controlPointsPost[ind-1] = HomoInterpolated(
					&controlPointsPost[ind],
					&controlPointsPost[ind-1],
					alfa,
				)
			}
		}

		knotsPost[k] = toInsert[j]
		k--
	}

	tracer().Debugf("refined curve: %d knots inserted, %d control points now", r+1, n+r+2)

	return &NurbsCurve{degree, controlPointsPost, knotsPost}
}

// KnotRefine inserts a collection of knots in one parametric direction of a
// surface, returning a new surface tracing the same geometry
//
// Refinement runs row by row (or column by column for the u direction) with
// the curve algorithm; the knot vector of the other direction is untouched.
//
// **params**
// + array of nondecreasing knot values to insert, each within the domain
// + whether to insert in the v direction rather than u
//
// **returns**
// + a new surface with the enlarged knot vector and control net
func (this *NurbsSurface) KnotRefine(knotsToInsert []float64, useV bool) *NurbsSurface {
	var (
		knots   KnotVec
		degree  int
		ctrlPts [][]HomoPoint
	)

	// u dir
	if !useV {
		ctrlPts = transposedGrid(this.controlPoints)
		knots = this.knotsU
		degree = this.degreeU
		// v dir
	} else {
		ctrlPts = this.controlPoints
		knots = this.knotsV
		degree = this.degreeV
	}

	// do knot refinement on every row
	newPts := make([][]HomoPoint, 0, len(ctrlPts))
	baseCurve := NurbsCurve{degree: degree, knots: knots}
	var c *NurbsCurve
	for _, cptrow := range ctrlPts {
		baseCurve.controlPoints = cptrow
		c = baseCurve.KnotRefine(knotsToInsert)
		newPts = append(newPts, c.controlPoints)
	}

	newKnots := c.knots

	// u dir
	if !useV {
		return &NurbsSurface{
			this.degreeU, this.degreeV,
			transposedGrid(newPts),
			newKnots, this.knotsV.Clone(),
		}
	}

	// v dir
	return &NurbsSurface{
		this.degreeU, this.degreeV,
		newPts,
		this.knotsU.Clone(), newKnots,
	}
}

func transposedGrid(mat [][]HomoPoint) [][]HomoPoint {
	result := make([][]HomoPoint, len(mat[0]))
	for i := range result {
		result[i] = make([]HomoPoint, len(mat))
		for j := range result[i] {
			result[i][j] = mat[j][i]
		}
	}

	return result
}
