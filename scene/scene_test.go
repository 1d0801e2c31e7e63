package scene

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/curve"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polyn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatorBounces(t *testing.T) {
	a := NewAnimator(0.998, 0.005, true)
	a.Tick()
	assert.Equal(t, 1.0, a.T)
	a.Tick()
	assert.InDelta(t, 0.995, a.T, 1e-12)
	a.Set(0.002)
	a.Tick()
	assert.Equal(t, 0.0, a.T)
	a.Tick()
	assert.InDelta(t, 0.005, a.T, 1e-12)
	a.Enabled = false
	assert.InDelta(t, 0.005, a.Tick(), 1e-12)
	a.Set(7)
	assert.Equal(t, 1.0, a.T)
}

func TestConfigNormalized(t *testing.T) {
	c := Config{MaxCurvePoints: 1000, InitialT: 3, AnimationSpeed: -0.01}
	n := c.normalized()
	assert.Equal(t, polyn.MaxDegree+1, n.MaxCurvePoints)
	assert.Equal(t, 0.5, n.InitialT)
	assert.Equal(t, 0.01, n.AnimationSpeed)
	assert.Equal(t, curve.DefaultSamples, n.Samples)
	assert.Equal(t, points.DefaultStyle(), n.Style)
}

func TestCurveSeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewCurveScene(DefaultConfig())
	set := sc.Points()
	require.Equal(t, 4, set.Len())
	assert.Equal(t, points.ColorBlue, set.At(0).Color())
	assert.Equal(t, points.ColorLight, set.At(1).Color())
	assert.Equal(t, points.ColorLight, set.At(2).Color())
	assert.Equal(t, points.ColorBlue, set.At(3).Color())
	snap := sc.Snapshot()
	require.Len(t, snap.Windows, 1)
	w := snap.Windows[0]
	assert.Len(t, w.Polyline, curve.DefaultSamples+1)
	require.NotNil(t, w.Construction)
	assert.Equal(t, splinedraw.P(750, 375), w.Construction.Final)
	assert.Nil(t, w.Box)
}

func TestCurveAddAndRemove(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewCurveScene(DefaultConfig())
	set := sc.Points()
	require.NoError(t, sc.AddPoint(splinedraw.P(1300, 100)))
	assert.Equal(t, 5, set.Len())
	assert.Equal(t, points.ColorLight, set.At(3).Color())
	assert.Equal(t, points.ColorBlue, set.At(4).Color())
	require.NoError(t, sc.RemoveLastPoint())
	require.NoError(t, sc.RemoveLastPoint())
	require.NoError(t, sc.RemoveLastPoint())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, points.ColorBlue, set.At(1).Color())
	err := sc.RemoveLastPoint()
	assert.True(t, errors.Is(err, ErrTooFewPoints))
	assert.Equal(t, 2, set.Len())
}

func TestCurveAdmissionCeiling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewCurveScene(DefaultConfig())
	for sc.Points().Len() < polyn.MaxDegree+1 {
		require.NoError(t, sc.AddPoint(splinedraw.P(float64(sc.Points().Len()), 100)))
	}
	err := sc.AddPoint(splinedraw.P(0, 0))
	assert.True(t, errors.Is(err, ErrTooManyPoints))
	assert.Equal(t, polyn.MaxDegree+1, sc.Points().Len())
	assert.NotPanics(t, func() { sc.Snapshot() })
}

func TestCurveStepDrag(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewCurveScene(DefaultConfig())
	grab := splinedraw.P(602, 302)
	require.NoError(t, sc.Step(Input{Mouse: grab, ButtonDown: true}))
	sel, ok := sc.Points().Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel)
	// adding is ignored while dragging
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(640, 200), ButtonDown: true, Action: AddAction}))
	assert.Equal(t, 4, sc.Points().Len())
	assert.Equal(t, splinedraw.P(640, 200), sc.Points().Position(1))
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(650, 210)}))
	assert.Equal(t, splinedraw.P(650, 210), sc.Points().Position(1))
	_, ok = sc.Points().Selected()
	assert.False(t, ok)
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(10, 10), Action: AddAction}))
	assert.Equal(t, 5, sc.Points().Len())
	err := sc.Step(Input{Action: CloseAction})
	assert.True(t, errors.Is(err, ErrNotSupported))
}

func TestStepTogglesAndAnimation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(0, 0)}))
	assert.InDelta(t, 0.505, sc.Animator().T, 1e-12)
	require.NoError(t, sc.Step(Input{Action: ToggleAnimate}))
	assert.InDelta(t, 0.505, sc.Animator().T, 1e-12)
	require.NoError(t, sc.Step(Input{Action: ToggleDebug}))
	assert.False(t, sc.Toggles().Debug)
	assert.Nil(t, sc.Snapshot().Windows[0].Construction)
	require.NoError(t, sc.Step(Input{Action: ToggleBoundingBox}))
	assert.NotNil(t, sc.Snapshot().Windows[0].Box)
	require.NoError(t, sc.Step(Input{Action: ToggleLock}))
	assert.False(t, sc.Toggles().Lock)
}

// --- Spline scene ----------------------------------------------------------

func constraint(t *testing.T, sc *SplineScene, i int, slot points.Slot) int {
	t.Helper()
	target, ok := sc.Points().Constraint(i, slot)
	if !ok {
		return points.None
	}
	return target
}

type wiring map[[2]int]int

func wiringOf(sc *SplineScene) wiring {
	w := make(wiring)
	set := sc.Points()
	for i := 0; i < set.Len(); i++ {
		for _, slot := range []points.Slot{0, 1} {
			if target, ok := set.Constraint(i, slot); ok {
				w[[2]int{i, int(slot)}] = target
			}
		}
	}
	return w
}

func TestSplineSeedWiring(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	set := sc.Points()
	require.Equal(t, 4, set.Len())
	assert.Equal(t, points.Join, set.At(0).Kind())
	assert.Equal(t, points.Control, set.At(1).Kind())
	assert.Equal(t, points.Control, set.At(2).Kind())
	assert.Equal(t, points.Join, set.At(3).Kind())
	assert.Equal(t, 1, constraint(t, sc, 0, points.NextControl))
	assert.Equal(t, points.None, constraint(t, sc, 0, points.PreviousControl))
	assert.Equal(t, 0, constraint(t, sc, 1, points.MirrorJoin))
	assert.Equal(t, points.None, constraint(t, sc, 1, points.LinkedControl))
	assert.Equal(t, 3, constraint(t, sc, 2, points.MirrorJoin))
	assert.Equal(t, 2, constraint(t, sc, 3, points.PreviousControl))
	assert.Equal(t, [][4]int{{0, 1, 2, 3}}, sc.Segments())
	assert.True(t, sc.Toggles().Lock)
	assert.False(t, sc.Toggles().BoundingBox)
}

func TestAppendSegment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	anchor := splinedraw.P(1400, 800)
	require.NoError(t, sc.AppendSegment(anchor))
	set := sc.Points()
	require.Equal(t, 7, set.Len())
	assert.Equal(t, splinedraw.P(1500, 900), set.Position(4)) // 2·(1200,600) − (900,300)
	assert.Equal(t, splinedraw.P(1300, 700), set.Position(5))
	assert.Equal(t, anchor, set.Position(6))
	assert.Equal(t, points.Join, set.At(6).Kind())
	assert.Equal(t, 2, constraint(t, sc, 4, points.LinkedControl))
	assert.Equal(t, 3, constraint(t, sc, 4, points.MirrorJoin))
	assert.Equal(t, 4, constraint(t, sc, 3, points.NextControl))
	assert.Equal(t, 4, constraint(t, sc, 2, points.LinkedControl))
	assert.Equal(t, 6, constraint(t, sc, 5, points.MirrorJoin))
	assert.Equal(t, 5, constraint(t, sc, 6, points.PreviousControl))
	assert.Equal(t, [][4]int{{0, 1, 2, 3}, {3, 4, 5, 6}}, sc.Segments())
}

func TestAppendThenRemoveRestores(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	before := wiringOf(sc)
	positions := sc.Points().Positions()
	require.NoError(t, sc.AppendSegment(splinedraw.P(1000, 850)))
	require.NoError(t, sc.RemoveLastSegment())
	assert.Equal(t, before, wiringOf(sc))
	assert.Equal(t, positions, sc.Points().Positions())
	require.NoError(t, sc.RemoveLastSegment())
	err := sc.RemoveLastSegment()
	assert.True(t, errors.Is(err, ErrTooFewPoints))
	assert.Equal(t, 4, sc.Points().Len())
}

func TestCloseLoop(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	before := wiringOf(sc)
	require.NoError(t, sc.CloseLoop())
	assert.True(t, sc.IsClosed())
	set := sc.Points()
	require.Equal(t, 6, set.Len())
	assert.Equal(t, splinedraw.P(1500, 900), set.Position(4))
	assert.Equal(t, splinedraw.P(0, 900), set.Position(5)) // 2·(300,600) − (600,300)
	assert.Equal(t, 1, constraint(t, sc, 5, points.LinkedControl))
	assert.Equal(t, 0, constraint(t, sc, 5, points.MirrorJoin))
	assert.Equal(t, 5, constraint(t, sc, 0, points.PreviousControl))
	assert.Equal(t, 5, constraint(t, sc, 1, points.LinkedControl))
	assert.Equal(t, [][4]int{{0, 1, 2, 3}, {3, 4, 5, 0}}, sc.Segments())
	assert.True(t, errors.Is(sc.CloseLoop(), ErrAlreadyClosed))
	assert.True(t, errors.Is(sc.AppendSegment(splinedraw.P(1, 1)), ErrClosedLoop))
	assert.Equal(t, 6, set.Len())
	// removing on a closed spline re-opens it
	require.NoError(t, sc.RemoveLastSegment())
	assert.False(t, sc.IsClosed())
	assert.Equal(t, 4, set.Len())
	assert.Equal(t, before, wiringOf(sc))
}

func TestClosedLoopSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	require.NoError(t, sc.AppendSegment(splinedraw.P(800, 900)))
	require.NoError(t, sc.CloseLoop())
	require.Equal(t, 12, sc.Points().Len())
	assert.Equal(t, [][4]int{{0, 1, 2, 3}, {3, 4, 5, 6}, {6, 7, 8, 9}, {9, 10, 11, 0}}, sc.Segments())
	snap := sc.Snapshot()
	assert.Len(t, snap.Windows, 4)
	assert.Len(t, snap.Points, 12)
}

func TestDragWithLock(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	set := sc.Points()
	c2, c4 := set.Position(2), set.Position(4)
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(1201, 601), ButtonDown: true}))
	sel, ok := set.Selected()
	require.True(t, ok)
	require.Equal(t, 3, sel)
	delta := splinedraw.P(-50, 20)
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(1150, 620), ButtonDown: true}))
	assert.Equal(t, splinedraw.P(1150, 620), set.Position(3))
	assert.InDelta(t, (c2 + delta).X(), set.Position(2).X(), 1e-9)
	assert.InDelta(t, (c2 + delta).Y(), set.Position(2).Y(), 1e-9)
	assert.InDelta(t, (c4 + delta).X(), set.Position(4).X(), 1e-9)
	assert.InDelta(t, (c4 + delta).Y(), set.Position(4).Y(), 1e-9)
	require.NoError(t, sc.Step(Input{Mouse: splinedraw.P(1150, 620)}))
	// unlocked: dragging a control leaves its mirror alone
	require.NoError(t, sc.Step(Input{Action: ToggleLock}))
	c4 = set.Position(4)
	p2 := set.Position(2)
	require.NoError(t, sc.Step(Input{Mouse: p2, ButtonDown: true}))
	require.NoError(t, sc.Step(Input{Mouse: p2 + splinedraw.P(30, 0), ButtonDown: true}))
	assert.Equal(t, p2+splinedraw.P(30, 0), set.Position(2))
	assert.Equal(t, c4, set.Position(4))
}

func TestSplineBoundingBoxes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	boxes, err := sc.BoundingBoxes()
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.InDelta(t, 300.0, boxes[0].X, 1e-6)
	assert.InDelta(t, 375.0, boxes[0].Y, 1e-6)
	assert.InDelta(t, 900.0, boxes[0].Width, 1e-6)
	assert.InDelta(t, 225.0, boxes[0].Height, 1e-6)
	// degenerate segment
	p := splinedraw.P(10, 10)
	for i := 3; i < 7; i++ {
		sc.Points().SetPosition(i, p, false)
	}
	boxes, err = sc.BoundingBoxes()
	assert.True(t, errors.Is(err, curve.ErrDegenerateSegment))
	assert.Equal(t, curve.Rect{}, boxes[1])
	assert.NotEqual(t, curve.Rect{}, boxes[0])
}

func TestBoundsRegion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	require.NoError(t, sc.CloseLoop())
	region := sc.BoundsRegion()
	require.False(t, region.IsEmpty())
	boxes, err := sc.BoundingBoxes()
	require.NoError(t, err)
	union := boxes[0]
	for _, bb := range boxes[1:] {
		union = bb.Union(union)
	}
	lo, hi := region.BoundingBox()
	m := DefaultConfig().BoundsMargin
	assert.InDelta(t, union.X-m, lo.X(), 1e-6)
	assert.InDelta(t, union.Y-m, lo.Y(), 1e-6)
	assert.InDelta(t, union.Max().X()+m, hi.X(), 1e-6)
	assert.InDelta(t, union.Max().Y()+m, hi.Y(), 1e-6)
	for k := range sc.Segments() {
		for _, p := range curve.Sample(sc.SegmentPositions(k), 20) {
			assert.True(t, region.Contains(p), "segment %d sample %v outside region", k, p)
		}
	}
	assert.False(t, region.Contains(splinedraw.P(-1000, -1000)))
}

func TestSnapshotRegion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := NewSplineScene(DefaultConfig())
	require.NoError(t, sc.AppendSegment(splinedraw.P(1400, 800)))
	assert.True(t, sc.Snapshot().Region.IsEmpty(), "region shown without bounding boxes")
	sc.Toggles().BoundingBox = true
	snap := sc.Snapshot()
	require.False(t, snap.Region.IsEmpty())
	want := sc.BoundsRegion()
	assert.Equal(t, want.N(), snap.Region.N())
	wantLo, wantHi := want.BoundingBox()
	lo, hi := snap.Region.BoundingBox()
	assert.True(t, wantLo.Equal(lo) && wantHi.Equal(hi), "region %s != %s", lo, wantLo)
	for _, w := range snap.Windows {
		require.NotNil(t, w.Box)
		assert.True(t, snap.Region.Contains(w.Box.Min().Midpoint(w.Box.Max())))
	}
	cs := NewCurveScene(DefaultConfig())
	cs.Toggles().BoundingBox = true
	assert.True(t, cs.Snapshot().Region.IsEmpty(), "curve scenes have no bounds region")
}
