package polygon

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splinedraw"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(splinedraw.P(0, 0)).Knot(splinedraw.P(1, 3)).Knot(splinedraw.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, 1, pg.Contours())
	assert.Equal(t, splinedraw.P(1, 3), pg.Pt(0, 1))
}

func TestDegenerateBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(splinedraw.P(0, 0)).Knot(splinedraw.P(1, 3)).Cycle()
	assert.True(t, pg.IsEmpty())
	assert.Equal(t, "<empty>", AsString(pg))
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(splinedraw.P(0, 5), splinedraw.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	lo, hi := box.BoundingBox()
	assert.Equal(t, splinedraw.P(0, 1), lo)
	assert.Equal(t, splinedraw.P(4, 5), hi)
	assert.True(t, box.Contains(splinedraw.P(2, 3)))
	assert.False(t, box.Contains(splinedraw.P(5, 3)))
}

func TestUnionOfBoxes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := FromRect(0, 0, 10, 10)
	b := FromRect(5, 5, 10, 10)
	u := a.Union(b)
	L().Infof("union = %s", AsString(u))
	assert.False(t, u.IsEmpty())
	lo, hi := u.BoundingBox()
	assert.Equal(t, splinedraw.P(0, 0), lo)
	assert.Equal(t, splinedraw.P(15, 15), hi)
	assert.True(t, u.Contains(splinedraw.P(2, 2)))
	assert.True(t, u.Contains(splinedraw.P(12, 12)))
	assert.False(t, u.Contains(splinedraw.P(12, 2)))
	far := FromRect(100, 100, 1, 1)
	assert.Equal(t, 2, a.Union(far).Contours())
}

func TestUnionWithEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := FromRect(0, 0, 10, 10)
	assert.Equal(t, a, Polygon{}.Union(a))
	assert.Equal(t, a, a.Union(Polygon{}))
	assert.True(t, a.Intersection(Polygon{}).IsEmpty())
}

func TestIntersection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := FromRect(0, 0, 10, 10)
	b := FromRect(5, 5, 10, 10)
	is := a.Intersection(b)
	lo, hi := is.BoundingBox()
	assert.InDelta(t, 5.0, lo.X(), 1e-9)
	assert.InDelta(t, 5.0, lo.Y(), 1e-9)
	assert.InDelta(t, 10.0, hi.X(), 1e-9)
	assert.InDelta(t, 10.0, hi.Y(), 1e-9)
	assert.True(t, is.Contains(splinedraw.P(7, 7)))
	assert.False(t, is.Contains(splinedraw.P(2, 2)))
}
