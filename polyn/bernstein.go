package polyn

import (
	"fmt"
	"math"
	"math/bits"
)

// MaxBinomialN is the largest n for which Binomial(n, k) is computed.
// Beyond it the multiplicative recurrence may overflow 64 bits.
const MaxBinomialN = 62

// MaxDegree is the highest curve degree (number of points − 1) clients
// may evaluate. Point collections must not grow beyond MaxDegree+1 points.
const MaxDegree = 61

// Binomial returns the exact binomial coefficient C(n,k).
//
// Binomial panics if n exceeds MaxBinomialN or is negative. Callers are
// expected to enforce MaxDegree before growing a point list.
func Binomial(n, k int) uint64 {
	if n < 0 || n > MaxBinomialN {
		panic(fmt.Sprintf("binomial(%d,%d): n is too great, will overflow", n, k))
	}
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var r uint64 = 1
	for i := 1; i <= k; i++ {
		// r = C(n-k+i-1, i-1) here, the division below is exact
		hi, lo := bits.Mul64(r, uint64(n-k+i))
		if hi != 0 {
			panic(fmt.Sprintf("binomial(%d,%d): overflow", n, k))
		}
		r = lo / uint64(i)
	}
	return r
}

// Bernstein returns the value of the Bernstein basis polynomial
//
//	b(n,i)(t) = C(n,i) ⋅ (1-t)^(n-i) ⋅ t^i
//
// t is expected to be in [0,1], but is not clamped.
func Bernstein(n, i int, t float64) float64 {
	return float64(Binomial(n, i)) * math.Pow(1-t, float64(n-i)) * math.Pow(t, float64(i))
}

// BernsteinPolynomial returns b(n,i) in power form.
func BernsteinPolynomial(n, i int) Polynomial {
	if i < 0 || i > n {
		return NewConstantPolynomial(0)
	}
	c := float64(Binomial(n, i))
	m := n - i
	terms := make([]X, 0, m+1)
	sign := 1.0
	for j := 0; j <= m; j++ { // (1-t)^m = Σ C(m,j)(-t)^j
		terms = append(terms, X{I: i + j, C: sign * c * float64(Binomial(m, j))})
		sign = -sign
	}
	p, err := New(0, terms...)
	if err != nil {
		panic(err) // exponents are i+j ≥ 0
	}
	return p
}
