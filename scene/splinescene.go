package scene

import (
	"fmt"

	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/curve"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polygon"
)

// SplineScene edits a chain of cubic Bézier segments. Points alternate
//
//	J C C J C C J …
//
// with join points J on the curve and control points C steering it. Each
// join is linked to its neighbouring controls, and controls on both sides
// of a join are linked to each other, mirrored around the join.
//
// A closed spline carries two more control points after its last join,
// which lead back to the first join.
type SplineScene struct {
	handle
	closed bool
}

var _ Scene = (*SplineScene)(nil)

// NewSplineScene creates a spline of one segment with the default seed
// points.
func NewSplineScene(config Config) *SplineScene {
	sc := &SplineScene{handle: newHandle(config)}
	seed := seedPositions()
	j0 := sc.set.Add(points.Join, seed[0])
	c1 := sc.set.Add(points.Control, seed[1])
	c2 := sc.set.Add(points.Control, seed[2])
	j3 := sc.set.Add(points.Join, seed[3])
	sc.bind(j0, points.NextControl, c1)
	sc.bind(c1, points.MirrorJoin, j0)
	sc.bind(c2, points.MirrorJoin, j3)
	sc.bind(j3, points.PreviousControl, c2)
	return sc
}

// bind sets a constraint the scene's own bookkeeping guarantees to be valid.
func (sc *SplineScene) bind(i int, slot points.Slot, target int) {
	if err := sc.set.SetConstraint(i, slot, target); err != nil {
		panic(fmt.Sprintf("spline wiring broken: %v", err))
	}
}

// Title is the display name of the scene.
func (sc *SplineScene) Title() string {
	return "Bézier Spline"
}

// Help lists the key bindings of the scene.
func (sc *SplineScene) Help() []string {
	return []string{
		"SPACE - add segment with its end at pointer",
		"BACKSPACE - remove last segment",
		"ENTER - close spline (no more segments may be added)",
		"D - debug draw, A - animate t, B - bounding boxes, L - lock points",
		"MOUSE - drag point",
	}
}

// IsClosed is true for a spline closed to a loop.
func (sc *SplineScene) IsClosed() bool {
	return sc.closed
}

// continuation appends the control point continuing the spline beyond its
// last join, mirroring the last control point around that join, and links
// both control points as well as the join to it.
func (sc *SplineScene) continuation() int {
	n := sc.set.Len()
	join, prev := n-1, n-2
	pos := sc.set.Position(prev).Mirrored(sc.set.Position(join))
	c := sc.set.Add(points.Control, pos)
	sc.bind(c, points.LinkedControl, prev)
	sc.bind(c, points.MirrorJoin, join)
	sc.bind(join, points.NextControl, c)
	sc.bind(prev, points.LinkedControl, c)
	return c
}

// AppendSegment adds a cubic segment from the last join to a new join at
// anchor. The first new control point continues the spline smoothly, the
// second one is placed halfway between the last join and anchor.
func (sc *SplineScene) AppendSegment(anchor splinedraw.Pair) error {
	if sc.closed {
		return ErrClosedLoop
	}
	last := sc.set.Len() - 1
	sc.continuation()
	cb := sc.set.Add(points.Control, anchor.Midpoint(sc.set.Position(last)))
	j := sc.set.Add(points.Join, anchor)
	sc.bind(cb, points.MirrorJoin, j)
	sc.bind(j, points.PreviousControl, cb)
	tracer().Infof("spline: appended segment #%d ending at %s", len(sc.Segments())-1, anchor)
	return nil
}

// RemoveLastSegment removes the last segment of an open spline. On a
// closed spline it removes the closing segment, re-opening the spline.
// An open spline keeps at least one segment.
func (sc *SplineScene) RemoveLastSegment() error {
	n := sc.set.Len()
	if sc.closed {
		sc.set.Truncate(n - 2)
		sc.closed = false
		tracer().Infof("spline: re-opened")
		return nil
	}
	if n <= 4 {
		return fmt.Errorf("%w: spline has a single segment", ErrTooFewPoints)
	}
	sc.set.Truncate(n - 3)
	tracer().Infof("spline: removed last segment, %d points left", sc.set.Len())
	return nil
}

// CloseLoop adds a segment from the last join back to the first one.
// It gets a continuation control point at the last join, and a control
// point mirroring the first control point around the first join.
func (sc *SplineScene) CloseLoop() error {
	if sc.closed {
		return ErrAlreadyClosed
	}
	sc.continuation()
	pos := sc.set.Position(1).Mirrored(sc.set.Position(0))
	c := sc.set.Add(points.Control, pos)
	sc.bind(c, points.LinkedControl, 1)
	sc.bind(c, points.MirrorJoin, 0)
	sc.bind(0, points.PreviousControl, c)
	sc.bind(1, points.LinkedControl, c)
	sc.closed = true
	tracer().Infof("spline: closed with %d points", sc.set.Len())
	return nil
}

// Segments returns the index windows of all cubic segments, in order.
// For a closed spline the last window wraps around to the first join.
func (sc *SplineScene) Segments() [][4]int {
	n := sc.set.Len()
	if sc.closed {
		n -= 2
	}
	var segs [][4]int
	for i := 0; i+3 < n; i += 3 {
		segs = append(segs, [4]int{i, i + 1, i + 2, i + 3})
	}
	if sc.closed {
		m := sc.set.Len()
		segs = append(segs, [4]int{m - 3, m - 2, m - 1, 0})
	}
	return segs
}

// SegmentPositions returns the 4 points of segment k.
func (sc *SplineScene) SegmentPositions(k int) []splinedraw.Pair {
	w := sc.Segments()[k]
	return sc.set.Positions(w[:]...)
}

// BoundingBoxes returns the bounding box of every segment. Segments for
// which no box can be computed get the zero rectangle and are reported in
// the error.
func (sc *SplineScene) BoundingBoxes() ([]curve.Rect, error) {
	segs := sc.Segments()
	boxes := make([]curve.Rect, len(segs))
	var firstErr error
	for k := range segs {
		bb, err := curve.CubicBoundingBox(sc.SegmentPositions(k))
		if err != nil {
			tracer().Errorf("spline: no bounding box for segment #%d: %v", k, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("segment #%d: %w", k, err)
			}
			continue
		}
		boxes[k] = bb
	}
	return boxes, firstErr
}

// BoundsRegion returns the region covered by the bounding boxes of all
// segments, each padded by the configured margin. Degenerate segments are
// left out.
func (sc *SplineScene) BoundsRegion() polygon.Polygon {
	var region polygon.Polygon
	m := sc.config.BoundsMargin
	for k := range sc.Segments() {
		bb, err := curve.CubicBoundingBox(sc.SegmentPositions(k))
		if err != nil {
			continue
		}
		box := polygon.FromRect(bb.X-m, bb.Y-m, bb.Width+2*m, bb.Height+2*m)
		region = region.Union(box)
	}
	return region
}

// Step runs one frame: pointer and selection handling with constraint
// propagation if locked, at most one edit action, and the animation of t.
// Edit actions are ignored while a point is selected.
func (sc *SplineScene) Step(in Input) error {
	var err error
	if editable := sc.frame(in, sc.toggles.Lock); editable {
		switch in.Action {
		case AddAction:
			err = sc.AppendSegment(in.Mouse)
		case RemoveAction:
			err = sc.RemoveLastSegment()
		case CloseAction:
			err = sc.CloseLoop()
		}
	}
	sc.tick()
	return err
}

// Snapshot returns the drawing state of the scene, with one window per
// segment.
func (sc *SplineScene) Snapshot() Snapshot {
	segs := sc.Segments()
	windows := make([]Window, len(segs))
	for k, w := range segs {
		windows[k] = sc.window(w[:], sc.toggles.BoundingBox)
	}
	snap := sc.snapshot(sc.Title(), windows)
	if sc.toggles.BoundingBox {
		snap.Region = sc.BoundsRegion()
	}
	return snap
}
