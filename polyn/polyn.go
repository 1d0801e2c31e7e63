// Package polyn is for arithmetic with univariate polynomials and Bernstein bases.
/*
BSD 3-Clause License

Copyright (c) 2017–21, Norbert Pillmayer.

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
   list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
   this list of conditions and the following disclaimer in the documentation
   and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
   contributors may be used to endorse or promote products derived from
   this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package polyn

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
)

// T traces to the polynomial tracer.
func T() tracing.Trace {
	return tracing.Select("polyn")
}

var (
	// ErrDegreeTooHigh indicates a root search on a polynomial of degree > 2.
	ErrDegreeTooHigh = errors.New("polynomial degree too high for closed-form roots")
	// ErrNegativeExponent indicates a term with exponent < 0.
	ErrNegativeExponent = errors.New("term exponent must not be negative")
)

// X is a helper for quick construction of polynomials.
// It denotes a term
//
//	C⋅x^I
//
// I ≥ 0
type X struct {
	I int     // exponent of x
	C float64 // coefficient
}

// New creates a polynomial, given the constant term and further terms.
//
// Use it as
//
//	polyn.New(8, polyn.X{2, 5}, polyn.X{1, 2.0/3})
//
// to get
//
//	P(x) = 8 + 2/3x + 5x²
func New(c float64, tms ...X) (Polynomial, error) {
	p := NewConstantPolynomial(c)
	var err error
	for _, t := range tms {
		if t.I < 0 {
			err = fmt.Errorf("%w: x^%d, skipping it", ErrNegativeExponent, t.I)
		} else {
			p.SetTerm(t.I, p.GetCoeffForTerm(t.I)+t.C)
		}
	}
	return p.Zap(), err
}

// Polynomial is a type for univariate polynomials
//
//	c + a.1 x + a.2 x² + ... a.n xⁿ .
//
// We store the coefficients only. Index 0 is the constant term.
// We store the coefficients in a TreeMap (sorted map), keyed by exponent.
// Coefficients are of type float64.
type Polynomial struct {
	Terms *treemap.Map
}

// NewConstantPolynomial creates a Polynomial consisting of just a constant term.
func NewConstantPolynomial(c float64) Polynomial {
	p := Polynomial{}
	p.checkTerms()
	p.Terms.Put(0, c) // initialize with constant term (at position 0)
	return p.Zap()
}

func (p *Polynomial) checkTerms() {
	if p.Terms == nil {
		p.Terms = treemap.NewWithIntComparator()
	}
}

// SetTerm sets the coefficient for a term a.i within a Polynomial.
// For i=0, sets the constant term.
func (p Polynomial) SetTerm(i int, scale float64) Polynomial {
	p.checkTerms()
	p.Terms.Put(i, scale)
	return p
}

// CopyPolynomial makes a copy of a numeric Polynomial.
func (p Polynomial) CopyPolynomial() Polynomial {
	p1 := NewConstantPolynomial(0.0) // will become our return value
	p.checkTerms()
	it := p.Terms.Iterator()
	for it.Next() { // copy all terms of p into p1
		p1.SetTerm(it.Key().(int), it.Value().(float64))
	}
	return p1
}

// Internal method: add or subtract 2 polynomials. The high level methods
// are based on this one.
// Flag doAdd signals addition or subtraction.
func (p Polynomial) addOrSub(p2 Polynomial, doAdd bool, destructive bool) Polynomial {
	p.checkTerms()
	p2.checkTerms()
	p1 := p.CopyPolynomial() // will become our return value
	it2 := p2.Terms.Iterator()
	for it2.Next() { // inspect all terms of p2
		pos2 := it2.Key().(int)
		scale2 := it2.Value().(float64)
		if !splinedraw.Is0(scale2) {
			scale1 := p1.GetCoeffForTerm(pos2)
			if doAdd {
				scale1 = scale1 + scale2 // if present, add a1 + a2
			} else {
				scale1 = scale1 - scale2 // if present, subtract a1 - a2
			}
			p1.SetTerm(pos2, scale1) // we operate on the copy p1
		}
	}
	p1 = p1.Zap()
	if destructive {
		p.Terms = p1.Terms
	}
	return p1
}

// Add adds two Polynomials. Returns a new Polynomial, except when the
// 'destructive'-flag is set (then p is altered).
func (p Polynomial) Add(p2 Polynomial, destructive bool) Polynomial {
	return p.addOrSub(p2, true, destructive)
}

// Subtract subtracts two Polynomials. Returns a new Polynomial, except when the
// 'destructive'-flag is set (then p is altered).
func (p Polynomial) Subtract(p2 Polynomial, destructive bool) Polynomial {
	return p.addOrSub(p2, false, destructive)
}

// Multiply multiplies two Polynomials. Neither argument is changed.
func (p Polynomial) Multiply(p2 Polynomial) Polynomial {
	p.checkTerms()
	p2.checkTerms()
	prod := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		i, a := it.Key().(int), it.Value().(float64)
		it2 := p2.Terms.Iterator()
		for it2.Next() {
			j, b := it2.Key().(int), it2.Value().(float64)
			prod.SetTerm(i+j, prod.GetCoeffForTerm(i+j)+a*b)
		}
	}
	return prod.Zap()
}

// Scale multiplies every coefficient by c. p is unchanged.
func (p Polynomial) Scale(c float64) Polynomial {
	return p.Multiply(NewConstantPolynomial(c))
}

// Derivative returns dP/dx.
func (p Polynomial) Derivative() Polynomial {
	p.checkTerms()
	d := NewConstantPolynomial(0.0)
	it := p.Terms.Iterator()
	for it.Next() {
		i := it.Key().(int)
		if i == 0 {
			continue
		}
		d.SetTerm(i-1, float64(i)*it.Value().(float64))
	}
	return d.Zap()
}

// Degree returns the highest exponent with a non-zero coefficient.
// The zero polynomial has degree 0.
func (p Polynomial) Degree() int {
	p.checkTerms()
	if p.Terms.Empty() {
		return 0
	}
	k, _ := p.Terms.Max()
	return k.(int)
}

// Eval evaluates p at x (Horner's scheme).
func (p Polynomial) Eval(x float64) float64 {
	r := 0.0
	for i := p.Degree(); i >= 0; i-- {
		r = r*x + p.GetCoeffForTerm(i)
	}
	return r
}

// Zap eliminates all terms with coefficient=0 from a polynomial.
func (p Polynomial) Zap() Polynomial {
	p.checkTerms()
	positions := p.Terms.Keys()     // all non-Zero terms of p
	for _, pos := range positions { // inspect terms
		if scale, _ := p.Terms.Get(pos); splinedraw.Is0(scale.(float64)) {
			p.Terms.Remove(pos) // may lose constant term c
		}
	}
	if _, ok := p.Terms.Get(0); !ok {
		p.Terms.Put(0, 0.0) // set p = 0: re-introduce c
	}
	return p
}

// IsConstant checks wether
// a Polynomial is a constant, i.e. p = { c }? Returns the constant and a flag.
func (p Polynomial) IsConstant() (float64, bool) {
	p.checkTerms()
	return p.GetCoeffForTerm(0), p.Terms.Size() <= 1
}

// GetCoeffForTerm gets the coefficient for term # i.
//
// Example:
//
//	p = x + 3x²
//
// ⇒
//
//	coeff(2) = 3
func (p Polynomial) GetCoeffForTerm(i int) float64 {
	p.checkTerms()
	if sc, found := p.Terms.Get(i); found {
		return sc.(float64)
	}
	return 0.0
}

// RootsIn returns the real roots of p lying strictly inside (lo, hi), in
// ascending order. p must have degree ≤ 2. A leading coefficient which is
// negligible compared to the others degrades the search to the linear case,
// a negligible linear coefficient to the constant case, which has no
// isolated roots. No division by zero will occur.
func (p Polynomial) RootsIn(lo, hi float64) ([]float64, error) {
	if d := p.Degree(); d > 2 {
		return nil, fmt.Errorf("%w: degree %d", ErrDegreeTooHigh, d)
	}
	a, b, c := p.GetCoeffForTerm(2), p.GetCoeffForTerm(1), p.GetCoeffForTerm(0)
	scale := math.Max(math.Abs(a), math.Max(math.Abs(b), math.Abs(c)))
	if scale == 0 {
		return nil, nil
	}
	var roots []float64
	negligible := func(x float64) bool {
		return math.Abs(x) <= splinedraw.Epsilon*scale
	}
	switch {
	case negligible(a) && negligible(b):
		T().Debugf("constant polynomial %s has no roots", p)
	case negligible(a):
		roots = append(roots, -c/b)
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			T().Debugf("discriminant of %s < 0", p)
			break
		}
		sq := math.Sqrt(disc)
		q := -0.5 * (b + math.Copysign(sq, b))
		if q == 0 { // b = 0 and c = 0
			roots = append(roots, 0)
		} else {
			roots = append(roots, q/a, c/q)
		}
	}
	var inside []float64
	for _, r := range roots {
		if r > lo && r < hi {
			inside = append(inside, r)
		}
	}
	sort.Float64s(inside)
	if len(inside) == 2 && inside[0] == inside[1] {
		inside = inside[:1]
	}
	return inside, nil
}

// String creates a readable string representation for a Polynomial,
// in ascending order of exponents.
func (p Polynomial) String() string {
	var buffer bytes.Buffer
	p.checkTerms()
	it := p.Terms.Iterator()
	first := true
	for it.Next() {
		pos := it.Key().(int)
		scale := it.Value().(float64)
		if !first {
			if scale < 0 {
				buffer.WriteString(" - ")
			} else {
				buffer.WriteString(" + ")
			}
			scale = math.Abs(scale)
		}
		first = false
		switch pos {
		case 0:
			buffer.WriteString(fmt.Sprintf("%g", scale))
		case 1:
			buffer.WriteString(fmt.Sprintf("%gx", scale))
		default:
			buffer.WriteString(fmt.Sprintf("%gx^%d", scale, pos))
		}
	}
	return buffer.String()
}
