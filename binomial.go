package gshark

// binomial computes the binomial coefficient C(n, k) as a float64.
//
// The multiplicative form keeps intermediate values small for the orders seen
// in derivative evaluation; no memoization, so concurrent evaluations never
// share state.
func binomial(n, k int) float64 {
	if k == 0 {
		return 1
	}

	if n == 0 || k > n {
		return 0
	}

	if k > n-k {
		k = n - k // optimization
	}

	r := 1.0
	for d := 1; d <= k; d++ {
		r *= float64(n) / float64(d)
		n--
	}

	return r
}
