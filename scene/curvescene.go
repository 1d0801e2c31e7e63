package scene

import (
	"fmt"

	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/points"
)

// CurveScene edits a single Bézier curve. All points are free points;
// the end points are drawn blue, inner points light.
type CurveScene struct {
	handle
}

var _ Scene = (*CurveScene)(nil)

// NewCurveScene creates a cubic curve with the default seed points.
func NewCurveScene(config Config) *CurveScene {
	sc := &CurveScene{handle: newHandle(config)}
	seed := seedPositions()
	for i, pos := range seed {
		c := points.ColorLight
		if i == 0 || i == len(seed)-1 {
			c = points.ColorBlue
		}
		sc.set.AddBasic(pos, c)
	}
	return sc
}

func seedPositions() []splinedraw.Pair {
	return []splinedraw.Pair{
		splinedraw.P(300, 600),
		splinedraw.P(600, 300),
		splinedraw.P(900, 300),
		splinedraw.P(1200, 600),
	}
}

// Title is the display name of the scene.
func (sc *CurveScene) Title() string {
	return "Bézier Curve"
}

// Help lists the key bindings of the scene.
func (sc *CurveScene) Help() []string {
	return []string{
		"SPACE - add control point at pointer",
		"BACKSPACE - remove last point",
		"D - debug draw, A - animate t",
		"MOUSE - drag point",
	}
}

// AddPoint appends a new end point at pos. The former end point becomes an
// inner point. Curves are limited to MaxCurvePoints points.
func (sc *CurveScene) AddPoint(pos splinedraw.Pair) error {
	if sc.set.Len() >= sc.config.MaxCurvePoints {
		tracer().Errorf("curve: cannot add point, have %d", sc.set.Len())
		return fmt.Errorf("%w: %d", ErrTooManyPoints, sc.set.Len())
	}
	sc.set.SetColor(sc.set.Len()-1, points.ColorLight)
	i := sc.set.AddBasic(pos, points.ColorBlue)
	tracer().Infof("curve: added point #%d at %s", i, pos)
	return nil
}

// RemoveLastPoint removes the end point. A curve keeps at least 2 points.
func (sc *CurveScene) RemoveLastPoint() error {
	n := sc.set.Len()
	if n <= 2 {
		return fmt.Errorf("%w: curve has %d points", ErrTooFewPoints, n)
	}
	sc.set.Truncate(n - 1)
	sc.set.SetColor(n-2, points.ColorBlue)
	tracer().Infof("curve: removed point #%d", n-1)
	return nil
}

// Step runs one frame: pointer and selection handling, at most one edit
// action, and the animation of t. Edit actions are ignored while a point
// is selected. Refused edits are reported as errors, the frame is
// completed nevertheless.
func (sc *CurveScene) Step(in Input) error {
	var err error
	if editable := sc.frame(in, false); editable {
		switch in.Action {
		case AddAction:
			err = sc.AddPoint(in.Mouse)
		case RemoveAction:
			err = sc.RemoveLastPoint()
		case CloseAction:
			err = fmt.Errorf("%w: %s on curve", ErrNotSupported, in.Action)
		}
	}
	sc.tick()
	return err
}

// Snapshot returns the drawing state of the scene, with a single window
// spanning all points.
func (sc *CurveScene) Snapshot() Snapshot {
	indices := make([]int, sc.set.Len())
	for i := range indices {
		indices[i] = i
	}
	return sc.snapshot(sc.Title(), []Window{sc.window(indices, false)})
}
