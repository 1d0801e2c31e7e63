package curve

import "github.com/npillmayer/splinedraw"

// Construction is De Casteljau's construction of a curve point.
type Construction struct {
	T      float64
	Levels [][]splinedraw.Pair // interpolation levels, each one point shorter
	Final  splinedraw.Pair     // the curve point at T
}

// Casteljau runs De Casteljau's algorithm on points for parameter t.
//
// Starting from the control polygon, every pass interpolates linearly
// between consecutive points, until two points remain. Levels holds the
// result of every pass, the last level having 2 points. If points has
// just 2 points, no pass is needed and Levels holds the input. Final is
// the interpolation of the last level at t, which is the curve point
// Evaluate(points, t).
func Casteljau(points []splinedraw.Pair, t float64) Construction {
	checkDegree(len(points))
	c := Construction{T: t}
	level := points
	if len(level) == 2 {
		c.Levels = append(c.Levels, append([]splinedraw.Pair(nil), level...))
	}
	for len(level) > 2 {
		next := make([]splinedraw.Pair, len(level)-1)
		for i := range next {
			next[i] = level[i].Lerp(level[i+1], t)
		}
		c.Levels = append(c.Levels, next)
		level = next
	}
	c.Final = level[0].Lerp(level[1], t)
	tracer().Debugf("casteljau(t=%.3f) over %d points: %d levels, final %s",
		t, len(points), len(c.Levels), c.Final)
	return c
}

// Last returns the last construction level (2 points).
func (c Construction) Last() []splinedraw.Pair {
	return c.Levels[len(c.Levels)-1]
}
