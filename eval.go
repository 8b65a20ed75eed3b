// Package gshark evaluates points, tangents, derivatives and normals on
// NURBS curves and surfaces, and extracts iso-parametric curves from
// surfaces. Callers own the geometry (degree, knot vector, weighted control
// points); every operation here is a pure function over it.
package gshark

import (
	"github.com/npillmayer/schuko/tracing"

	. "github.com/gsharker/gshark/internal"
)

// tracer writes to the trace with key 'gshark'
func tracer() tracing.Trace {
	return tracing.Select("gshark")
}

// BasisFunctions computes the degree + 1 non-vanishing B-spline basis
// function values at the parameter, deriving the knot span from the knot
// vector (Cox-de Boor recursion, algorithm 2.2 from The NURBS book).
//
// The parameter must lie within the knot domain; out-of-domain values yield
// undefined results rather than an error.
func BasisFunctions(degree int, knots []float64, u float64) []float64 {
	kv := KnotVec(knots)
	return BasisFunctionsAtSpan(kv.Span(degree, u), u, degree, kv)
}

// DerivativeBasisFunctions computes the non-vanishing basis functions and
// their derivatives up to numDerivs at the parameter (algorithm 2.3 from The
// NURBS book). Row 0 holds the plain basis values; rows past the degree are
// all zeros.
func DerivativeBasisFunctions(degree int, knots []float64, u float64, numDerivs int) [][]float64 {
	kv := KnotVec(knots)
	return DerivativeBasisFunctionsAtSpan(kv.Span(degree, u), u, degree, numDerivs, kv)
}
