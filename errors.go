package gshark

import "fmt"

// InvalidGeometryError reports a curve or surface whose degree, knot vector
// and control points violate the relation
// len(knots) == len(controlPoints) + degree + 1, or whose knot vector is not
// a clamped, nondecreasing sequence. Evaluation entry points return it
// directly; it signals a caller bug, never a condition to retry.
type InvalidGeometryError struct {
	Reason string
}

func (this *InvalidGeometryError) Error() string {
	return "invalid geometry: " + this.Reason
}

func invalidGeometry(format string, args ...interface{}) *InvalidGeometryError {
	return &InvalidGeometryError{Reason: fmt.Sprintf(format, args...)}
}
