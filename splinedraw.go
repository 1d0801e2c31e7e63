/*
Package splinedraw is the core of an interactive editor for Bézier curves
and cubic Bézier splines. This package implements 2D pairs, numeric
predicates and the affine transformations used to map the editor canvas
onto a display.

Sub-packages implement the point graph with its positional constraints
(package points), curve evaluation and bounding boxes (package curve),
polynomial and Bernstein arithmetic (package polyn), and the editor scenes
(package scene).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package splinedraw

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splinedraw'
func tracer() tracing.Trace {
	return tracing.Select("splinedraw")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a 2D point or vector on the editor canvas.
// Pairs are complex numbers, so they support + and - directly.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsFinite is true if both coordinates are finite.
func (p Pair) IsFinite() bool {
	return IsFinite(p.X()) && IsFinite(p.Y())
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// Equal compares two pairs, up to Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Lerp interpolates linearly between p and q: t=0 is p, t=1 is q.
func (p Pair) Lerp(q Pair, t float64) Pair {
	return P(p.X()+(q.X()-p.X())*t, p.Y()+(q.Y()-p.Y())*t)
}

// Mirrored reflects p through center, i.e. 2·center − p.
func (p Pair) Mirrored(center Pair) Pair {
	return P(2*center.X()-p.X(), 2*center.Y()-p.Y())
}

// Distance is the euclidean distance between p and q.
func (p Pair) Distance(q Pair) float64 {
	return cmplx.Abs((q - p).C())
}

// Midpoint is the pair halfway between p and q.
func (p Pair) Midpoint(q Pair) Pair {
	return (p + q).Scaled(0.5)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	return Translation(v).Transform(p)
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
// The editor uses it to map canvas coordinates to display coordinates
// and back.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	return make([]float64, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scale a point by sx horizontally and sy vertically.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformation to a new one: first m, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Invert returns the inverse of an affine transform. The flag is false if
// m is singular.
func (m AT) Invert() (AT, bool) {
	a, b, c := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	d, e, f := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	det := a*e - b*d
	if Is0(det) {
		tracer().Errorf("cannot invert singular transform %s", m)
		return Identity(), false
	}
	inv := Identity()
	inv.set(0, 0, e/det)
	inv.set(0, 1, -b/det)
	inv.set(1, 0, -d/det)
	inv.set(1, 1, a/det)
	inv.set(0, 2, (b*f-c*e)/det)
	inv.set(1, 2, (c*d-a*f)/det)
	return inv, true
}

func (m AT) multiplyVector(v []float64) []float64 {
	return []float64{dotProd(m.row(0), v), dotProd(m.row(1), v), dotProd(m.row(2), v)}
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	c := m.multiplyVector([]float64{p.X(), p.Y(), 1.0})
	return P(c[0], c[1])
}

// Fit returns the transform mapping the rectangle spanned by lo and hi onto
// a display area of width × height, scaled uniformly and centered.
// If the rectangle is empty in either direction, Fit returns a translation.
func Fit(lo, hi Pair, width, height float64) AT {
	w, h := math.Abs(hi.X()-lo.X()), math.Abs(hi.Y()-lo.Y())
	corner := P(math.Min(lo.X(), hi.X()), math.Min(lo.Y(), hi.Y()))
	if Is0(w) || Is0(h) {
		return Translation(-corner)
	}
	s := math.Min(width/w, height/h)
	offset := P((width-w*s)/2, (height-h*s)/2)
	return Translation(-corner).Combine(Scaling(s, s)).Combine(Translation(offset))
}
