package internal

// Compute the non-vanishing basis functions at the parameter, given the index
// of the knot span containing it
// (corresponds to algorithm 2.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer knot span index
// + float parameter
// + integer degree of function
// + array of nondecreasing knot values
//
// **returns**
// + list of the degree + 1 non-vanishing basis function values, summing to 1
//
func BasisFunctionsAtSpan(span int, u float64, degree int, knots KnotVec) []float64 {
	basisFunctions := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	basisFunctions[0] = 1

	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			temp := basisFunctions[r] / (right[r+1] + left[j-r])
			basisFunctions[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}

		basisFunctions[j] = saved
	}

	return basisFunctions
}

// Compute the non-vanishing basis functions and their derivatives up to the
// requested order
// (corresponds to algorithm 2.3 from The NURBS book, Piegl & Tiller 2nd edition)
//
// The order is clamped to the degree internally; rows past the degree stay
// zero, as every derivative beyond the polynomial degree vanishes.
//
// **params**
// + integer knot span index
// + float parameter
// + integer degree of function
// + integer number of derivatives to compute
// + array of nondecreasing knot values
//
// **returns**
// + 2d array of basis and derivative values of size (order+1, degree+1).
// The kth row is the kth derivative and the first row is made up of the
// basis function values.
func DerivativeBasisFunctionsAtSpan(span int, u float64, degree, order int, knots KnotVec) [][]float64 {
	du := order
	if du > degree {
		du = degree
	}

	// ndu keeps every intermediate degree level of the triangular recurrence:
	// derivatives of a degree-p basis function need basis functions of the
	// lower degrees.
	ndu := zeros2d(degree+1, degree+1)

	left := make([]float64, degree+1)
	right := make([]float64, degree+1)

	ndu[0][0] = 1

	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]

			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders := zeros2d(order+1, degree+1)

	for j := 0; j <= degree; j++ {
		ders[0][j] = ndu[j][degree]
	}

	// a holds the two most recent rows of derivative coefficients, swapped
	// after every level.
	a := zeros2d(2, degree+1)
	var j1, j2 int

	for r := 0; r <= degree; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1

		for k := 1; k <= du; k++ {
			var d float64
			rk := r - k
			pk := degree - k

			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}

			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}

			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = degree - r
			}

			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}

			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}

			ders[k][r] = d

			s1, s2 = s2, s1
		}
	}

	// multiply row k through by the falling factorial p(p-1)...(p-k+1)
	acc := degree
	for k := 1; k <= du; k++ {
		for j := 0; j <= degree; j++ {
			ders[k][j] *= float64(acc)
		}
		acc *= degree - k
	}

	return ders
}

func zeros2d(n, m int) [][]float64 {
	result := make([][]float64, n)
	for i := range result {
		result[i] = make([]float64, m)
	}

	return result
}
