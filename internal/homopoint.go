package internal

import "github.com/ungerik/go3d/float64/vec3"

// HomoPoint is a control point in homogeneous form: the spatial coordinates
// premultiplied by the weight, with the weight carried as the last channel.
// Rational curves and surfaces evaluate with non-rational B-spline machinery
// on these points.
type HomoPoint struct {
	Vec3 vec3.T
	W    float64
}

func (this *HomoPoint) Add(pt *HomoPoint) *HomoPoint {
	this.Vec3.Add(&pt.Vec3)
	this.W += pt.W

	return this
}

func (this *HomoPoint) Scale(scale float64) *HomoPoint {
	this.Vec3.Scale(scale)
	this.W *= scale

	return this
}

// Homogenized weights a point: (w*p, w)
func Homogenized(pt vec3.T, w float64) HomoPoint {
	return HomoPoint{pt.Scaled(w), w}
}

// Dehomogenized recovers the spatial point by dividing out the weight.
func (this *HomoPoint) Dehomogenized() vec3.T {
	return this.Vec3.Scaled(1 / this.W)
}

// Transform a 1d array of points into their homogeneous equivalents
//
// **params**
// + 1d array of control points
// + array of control point weights, the same length as the control points
//
// **returns**
// + 1d array of points of the form (wi*pi, wi)
func Homogenize1d(pts []vec3.T, weights []float64) []HomoPoint {
	homoPts := make([]HomoPoint, 0, len(pts))
	for i, pt := range pts {
		homoPts = append(homoPts, Homogenized(pt, weights[i]))
	}

	return homoPts
}

// Transform a 2d grid of points into their homogeneous equivalents
//
// **params**
// + 2d grid of control points
// + grid of control point weights, the same shape as the control points
//
// **returns**
// + 2d grid of points of the form (wi*pi, wi)
func Homogenize2d(pts [][]vec3.T, weights [][]float64) [][]HomoPoint {
	homoPts := make([][]HomoPoint, len(pts))
	for i := range homoPts {
		homoPts[i] = Homogenize1d(pts[i], weights[i])
	}

	return homoPts
}

// Dehomogenize an array of points
func Dehomogenize1d(homoPoints []HomoPoint) []vec3.T {
	result := make([]vec3.T, 0, len(homoPoints))
	for _, homoPt := range homoPoints {
		result = append(result, homoPt.Dehomogenized())
	}

	return result
}

// Dehomogenize a 2d grid of points
func Dehomogenize2d(homoPoints [][]HomoPoint) [][]vec3.T {
	result := make([][]vec3.T, len(homoPoints))
	for i := range result {
		result[i] = Dehomogenize1d(homoPoints[i])
	}

	return result
}

// Weight1d extracts the weight channel from an array of homogeneous points.
func Weight1d(homoPoints []HomoPoint) (weights []float64) {
	weights = make([]float64, len(homoPoints))
	for i := range weights {
		weights[i] = homoPoints[i].W
	}

	return
}

// Weight2d extracts the weight channel from a 2d grid of homogeneous points.
func Weight2d(homoPoints [][]HomoPoint) (weights [][]float64) {
	weights = make([][]float64, len(homoPoints))
	for i := range weights {
		weights[i] = Weight1d(homoPoints[i])
	}

	return
}

// HomoInterpolated interpolates all four channels, the weight included.
func HomoInterpolated(hpt0, hpt1 *HomoPoint, t float64) HomoPoint {
	return HomoPoint{
		vec3.Interpolate(&hpt0.Vec3, &hpt1.Vec3, t),
		(1-t)*hpt0.W + t*hpt1.W,
	}
}
