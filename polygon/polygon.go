/*
Package polygon builds polygonal regions and combines them.

Polygons are built like paths, knot by knot, and closed with Cycle:

	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()

A Polygon may consist of more than one contour, e.g. as the result of
a union of disjoint boxes. Contours are interpreted with the even-odd rule,
so a contour inside another one is a hole. Clipping operations are done by
polyclip.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"bytes"
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
)

// L traces with key 'polygon'
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a region of the plane bounded by one or more closed contours.
// The zero value is the empty region.
type Polygon struct {
	pg polyclip.Polygon
}

// Builder collects the knots of a polygon contour.
type Builder struct {
	contour polyclip.Contour
}

// NullPolygon starts a new polygon without any knots.
func NullPolygon() *Builder {
	return &Builder{}
}

// Knot appends a corner point.
func (b *Builder) Knot(pr splinedraw.Pair) *Builder {
	b.contour.Add(toPoint(pr))
	return b
}

// Cycle closes the contour and returns the polygon. Contours with less
// than 3 knots enclose no region and result in an empty polygon.
func (b *Builder) Cycle() Polygon {
	if len(b.contour) < 3 {
		L().Debugf("polygon with %d knots is empty", len(b.contour))
		return Polygon{}
	}
	c := make(polyclip.Contour, len(b.contour))
	copy(c, b.contour)
	return Polygon{pg: polyclip.Polygon{c}}
}

// Box creates a rectangle from two diagonally opposite corners.
func Box(p, q splinedraw.Pair) Polygon {
	x0, x1 := minmax(p.X(), q.X())
	y0, y1 := minmax(p.Y(), q.Y())
	return NullPolygon().
		Knot(splinedraw.P(x0, y0)).
		Knot(splinedraw.P(x1, y0)).
		Knot(splinedraw.P(x1, y1)).
		Knot(splinedraw.P(x0, y1)).
		Cycle()
}

// FromRect creates a box at x, y with a given width and height.
func FromRect(x, y, width, height float64) Polygon {
	return Box(splinedraw.P(x, y), splinedraw.P(x+width, y+height))
}

// N is the number of knots, summed over all contours.
func (pg Polygon) N() int {
	return pg.pg.NumVertices()
}

// Contours is the number of contours.
func (pg Polygon) Contours() int {
	return len(pg.pg)
}

// IsEmpty is true for a polygon without any contour.
func (pg Polygon) IsEmpty() bool {
	return len(pg.pg) == 0
}

// Pt returns knot i of contour c.
func (pg Polygon) Pt(c, i int) splinedraw.Pair {
	pt := pg.pg[c][i]
	return splinedraw.P(pt.X, pt.Y)
}

// Contour returns the knots of contour c, without repeating the first one.
func (pg Polygon) Contour(c int) []splinedraw.Pair {
	knots := make([]splinedraw.Pair, len(pg.pg[c]))
	for i, pt := range pg.pg[c] {
		knots[i] = splinedraw.P(pt.X, pt.Y)
	}
	return knots
}

// Union returns the region covered by pg or pg2.
func (pg Polygon) Union(pg2 Polygon) Polygon {
	return pg.construct(polyclip.UNION, pg2)
}

// Intersection returns the region covered by both pg and pg2.
func (pg Polygon) Intersection(pg2 Polygon) Polygon {
	return pg.construct(polyclip.INTERSECTION, pg2)
}

func (pg Polygon) construct(op polyclip.Op, pg2 Polygon) Polygon {
	switch {
	case pg.IsEmpty() && op == polyclip.UNION:
		return pg2
	case pg2.IsEmpty() && op == polyclip.UNION:
		return pg
	case pg.IsEmpty() || pg2.IsEmpty():
		return Polygon{}
	}
	r := Polygon{pg: pg.pg.Construct(op, pg2.pg)}
	L().Debugf("polygon operation %d: %d+%d contours -> %d", op, pg.Contours(), pg2.Contours(), r.Contours())
	return r
}

// Contains is true if p lies inside the region. Points exactly on a
// contour may be reported either way.
func (pg Polygon) Contains(p splinedraw.Pair) bool {
	pt := toPoint(p)
	inside := false
	for _, c := range pg.pg {
		if c.Contains(pt) {
			inside = !inside
		}
	}
	return inside
}

// BoundingBox returns the minimum and maximum corners of the region.
// For an empty polygon both are the origin.
func (pg Polygon) BoundingBox() (splinedraw.Pair, splinedraw.Pair) {
	if pg.IsEmpty() {
		return splinedraw.Origin, splinedraw.Origin
	}
	bb := pg.pg.BoundingBox()
	return splinedraw.P(bb.Min.X, bb.Min.Y), splinedraw.P(bb.Max.X, bb.Max.Y)
}

// AsString returns a polygon in MetaPost-like notation.
func AsString(pg Polygon) string {
	var buf bytes.Buffer
	for k, c := range pg.pg {
		if k > 0 {
			buf.WriteString(", ")
		}
		for _, pt := range c {
			buf.WriteString(fmt.Sprintf("(%.4g,%.4g) -- ", pt.X, pt.Y))
		}
		buf.WriteString("cycle")
	}
	if buf.Len() == 0 {
		return "<empty>"
	}
	return buf.String()
}

func toPoint(pr splinedraw.Pair) polyclip.Point {
	return polyclip.Point{X: pr.X(), Y: pr.Y()}
}

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
