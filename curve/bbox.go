package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/polyn"
)

var (
	// ErrNotCubic indicates a segment which does not consist of exactly 4 points.
	ErrNotCubic = errors.New("cubic segment needs exactly 4 points")
	// ErrInvalidPoint indicates a segment point with a NaN or infinite coordinate.
	ErrInvalidPoint = errors.New("segment has invalid point coordinate")
	// ErrDegenerateSegment indicates a segment collapsed to a single point.
	ErrDegenerateSegment = errors.New("segment is degenerate")
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y          float64 // upper left corner (minimum coordinates)
	Width, Height float64
}

// RectFromCorners creates the rectangle spanned by two corners.
func RectFromCorners(p, q splinedraw.Pair) Rect {
	x0, x1 := math.Min(p.X(), q.X()), math.Max(p.X(), q.X())
	y0, y1 := math.Min(p.Y(), q.Y()), math.Max(p.Y(), q.Y())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Min is the corner with minimum coordinates.
func (r Rect) Min() splinedraw.Pair {
	return splinedraw.P(r.X, r.Y)
}

// Max is the corner with maximum coordinates.
func (r Rect) Max() splinedraw.Pair {
	return splinedraw.P(r.X+r.Width, r.Y+r.Height)
}

// Union is the smallest rectangle containing r and r2.
func (r Rect) Union(r2 Rect) Rect {
	lo := splinedraw.P(math.Min(r.X, r2.X), math.Min(r.Y, r2.Y))
	hi := splinedraw.P(math.Max(r.Max().X(), r2.Max().X()), math.Max(r.Max().Y(), r2.Max().Y()))
	return RectFromCorners(lo, hi)
}

// Contains is true if p is inside r or on its border, up to Epsilon.
func (r Rect) Contains(p splinedraw.Pair) bool {
	e := splinedraw.Epsilon
	return p.X() >= r.X-e && p.X() <= r.X+r.Width+e &&
		p.Y() >= r.Y-e && p.Y() <= r.Y+r.Height+e
}

func (r Rect) String() string {
	return fmt.Sprintf("rect[%s+(%g,%g)]", r.Min(), r.Width, r.Height)
}

// CubicBoundingBox returns the tight axis-aligned bounding box of the
// cubic Bézier segment p[0] … p[3].
//
// For each axis the segment is written as a cubic polynomial in t. The
// roots of its derivative in (0,1) are the candidates for interior
// extrema; the box spans the values at these roots and at t=0 and t=1.
// A vanishing leading coefficient of the derivative degrades to a linear or
// constant derivative without dividing by zero.
//
// Segments of a size other than 4, with non-finite coordinates, or with
// all points coincident are reported as errors.
func CubicBoundingBox(p []splinedraw.Pair) (Rect, error) {
	if len(p) != 4 {
		return Rect{}, fmt.Errorf("%w, have %d", ErrNotCubic, len(p))
	}
	for i, pt := range p {
		if !pt.IsFinite() {
			return Rect{}, fmt.Errorf("%w at point %d", ErrInvalidPoint, i)
		}
	}
	if p[0].Equal(p[1]) && p[0].Equal(p[2]) && p[0].Equal(p[3]) {
		return Rect{}, fmt.Errorf("%w: all points at %s", ErrDegenerateSegment, p[0])
	}
	xmin, xmax, err := axisExtent(p[0].X(), p[1].X(), p[2].X(), p[3].X())
	if err != nil {
		return Rect{}, err
	}
	ymin, ymax, err := axisExtent(p[0].Y(), p[1].Y(), p[2].Y(), p[3].Y())
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: xmin, Y: ymin, Width: xmax - xmin, Height: ymax - ymin}, nil
}

// cubicPolynomial returns B(t) = Σ c[i]⋅b(3,i)(t) in power form.
func cubicPolynomial(c0, c1, c2, c3 float64) polyn.Polynomial {
	cubic := polyn.NewConstantPolynomial(0)
	for i, c := range []float64{c0, c1, c2, c3} {
		cubic = cubic.Add(polyn.BernsteinPolynomial(3, i).Scale(c), false)
	}
	return cubic
}

func axisExtent(c0, c1, c2, c3 float64) (float64, float64, error) {
	lo, hi := math.Min(c0, c3), math.Max(c0, c3)
	cubic := cubicPolynomial(c0, c1, c2, c3)
	roots, err := cubic.Derivative().RootsIn(0, 1)
	if err != nil {
		return 0, 0, err
	}
	for _, t := range roots {
		v := cubic.Eval(t)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi, nil
}
