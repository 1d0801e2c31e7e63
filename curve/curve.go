/*
Package curve evaluates Bézier curves of arbitrary degree and computes
bounding boxes of cubic Bézier segments.

Curves are given by the positions of their points, in order. Two
evaluation paths are provided: direct evaluation as a Bernstein-weighted
sum (Evaluate, Sample), and De Casteljau's construction by repeated linear
interpolation (Casteljau), which exposes every intermediate level for
visualization. Both paths agree up to floating point rounding.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/polyn"
)

// tracer writes to trace with key 'curve'
func tracer() tracing.Trace {
	return tracing.Select("curve")
}

// DefaultSamples is the number of polyline segments used to draw a curve.
const DefaultSamples = 50

// checkDegree panics for point lists which cannot be evaluated. Clients
// have to prevent these by admission control on their point lists.
func checkDegree(n int) {
	if n < 2 {
		panic(fmt.Sprintf("curve needs at least 2 points, has %d", n))
	}
	if n-1 > polyn.MaxDegree {
		panic(fmt.Sprintf("curve of degree %d exceeds maximum degree %d", n-1, polyn.MaxDegree))
	}
}

// Evaluate returns the point of the Bézier curve given by points at
// parameter t, as the Bernstein-weighted sum of all points.
// For t=0 and t=1 this is exactly the first and the last point.
//
// Evaluate panics for fewer than 2 points or more than polyn.MaxDegree+1.
func Evaluate(points []splinedraw.Pair, t float64) splinedraw.Pair {
	checkDegree(len(points))
	n := len(points) - 1
	var x, y float64
	for i, p := range points {
		b := polyn.Bernstein(n, i, t)
		x += p.X() * b
		y += p.Y() * b
	}
	return splinedraw.P(x, y)
}

// Sample evaluates the curve at samples+1 equidistant parameters 0 … 1,
// giving a polyline of samples segments. If samples < 1, DefaultSamples
// is used.
func Sample(points []splinedraw.Pair, samples int) []splinedraw.Pair {
	checkDegree(len(points))
	if samples < 1 {
		samples = DefaultSamples
	}
	step := 1.0 / float64(samples)
	line := make([]splinedraw.Pair, samples+1)
	for i := 0; i < samples; i++ {
		line[i] = Evaluate(points, float64(i)*step)
	}
	line[samples] = Evaluate(points, 1)
	return line
}
