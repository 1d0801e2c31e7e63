/*
Package scene implements the editing scenes of the spline editor.

A scene owns a point set and mutates it once per frame, in Step. There
are two scenes: CurveScene edits a single Bézier curve of arbitrary degree
made of free points, SplineScene edits a chain of cubic Bézier segments made
of join and control points, which may be closed to a loop.

Front ends feed pointer position, button state and key actions into Step and
draw the Snapshot of a scene afterwards. Scenes do not depend on any
display technology.

	sc := scene.NewSplineScene(scene.DefaultConfig())
	for frame := range frames {
		err := sc.Step(scene.Input{Mouse: frame.Mouse, ButtonDown: frame.Down, Action: frame.Key})
		draw(sc.Snapshot())
	}

Scenes are not safe for concurrent use.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package scene

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/curve"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polygon"
)

// tracer writes to trace with key 'scene'
func tracer() tracing.Trace {
	return tracing.Select("scene")
}

var (
	// ErrTooManyPoints indicates that a curve is at its maximum degree.
	ErrTooManyPoints = errors.New("curve has maximum number of points")
	// ErrTooFewPoints indicates a removal below the minimum point count.
	ErrTooFewPoints = errors.New("cannot remove any more points")
	// ErrClosedLoop indicates an edit which is not possible on a closed spline.
	ErrClosedLoop = errors.New("spline is a closed loop")
	// ErrAlreadyClosed indicates closing a spline twice.
	ErrAlreadyClosed = errors.New("spline already closed")
	// ErrNotSupported indicates an action a scene does not know of.
	ErrNotSupported = errors.New("action not supported by scene")
)

// Action is an editing or toggle command of the user.
type Action int

// Actions understood by scenes.
const (
	NoAction Action = iota
	AddAction
	RemoveAction
	CloseAction
	ToggleDebug
	ToggleAnimate
	ToggleBoundingBox
	ToggleLock
)

func (a Action) String() string {
	switch a {
	case NoAction:
		return "none"
	case AddAction:
		return "add"
	case RemoveAction:
		return "remove"
	case CloseAction:
		return "close"
	case ToggleDebug:
		return "toggle-debug"
	case ToggleAnimate:
		return "toggle-animate"
	case ToggleBoundingBox:
		return "toggle-bbox"
	case ToggleLock:
		return "toggle-lock"
	}
	return "<unknown action>"
}

// Input is the user input of one frame.
type Input struct {
	Mouse      splinedraw.Pair // pointer position in canvas coordinates
	ButtonDown bool            // primary button is held down
	Action     Action          // key action of this frame, if any
}

// Toggles are the display and editing switches of a scene.
type Toggles struct {
	Debug       bool // show the De Casteljau construction at t
	Animate     bool // animate t
	BoundingBox bool // show segment bounding boxes
	Lock        bool // propagate constraints when dragging
}

// Window is a curve drawn from a window of consecutive points.
type Window struct {
	Indices      []int               // indices into the point set
	Polygon      []splinedraw.Pair   // control polygon
	Polyline     []splinedraw.Pair   // sampled curve
	Construction *curve.Construction // De Casteljau construction, debug only
	Box          *curve.Rect         // bounding box, if requested and computable
}

// Snapshot is everything a front end needs to draw one frame of a scene.
type Snapshot struct {
	Title   string
	T       float64
	Toggles Toggles
	Points  []points.Renderable
	Windows []Window
	Region  polygon.Polygon // union of the padded bounding boxes, if shown
}

// Scene is the interface front ends drive.
type Scene interface {
	Title() string
	Help() []string
	Step(Input) error
	Snapshot() Snapshot
	Points() *points.Set
	Animator() *Animator
	Toggles() *Toggles
}

// handle is the part all scenes share: the point set and the frame logic
// which does not depend on the kind of points.
type handle struct {
	set      *points.Set
	config   Config
	animator *Animator
	toggles  Toggles
}

func newHandle(config Config) handle {
	config = config.normalized()
	return handle{
		set:      points.NewSet(config.Style),
		config:   config,
		animator: NewAnimator(config.InitialT, config.AnimationSpeed, config.Toggles.Animate),
		toggles:  config.Toggles,
	}
}

// Points returns the point set of the scene.
func (h *handle) Points() *points.Set {
	return h.set
}

// Animator returns the animator of t.
func (h *handle) Animator() *Animator {
	return h.animator
}

// Toggles returns the switches of the scene for modification.
func (h *handle) Toggles() *Toggles {
	return &h.toggles
}

// UpdateVisuals recomputes hover state and radii of all points.
func (h *handle) UpdateVisuals(mouse splinedraw.Pair) {
	h.set.UpdateVisuals(mouse)
}

// SelectFirstHovered selects the first hovered point, unless a point is
// selected already.
func (h *handle) SelectFirstHovered() (int, bool) {
	return h.set.SelectFirstHovered()
}

// DeselectAll clears the selection.
func (h *handle) DeselectAll() {
	h.set.DeselectAll()
}

// Drag moves point i to the pointer, propagating constraints if lock is set.
func (h *handle) Drag(i int, mouse splinedraw.Pair, lock bool) {
	h.set.SetPosition(i, mouse, lock)
}

// frame runs the part of a frame common to all scenes and reports if
// the frame may apply edit actions, i.e. no point is selected.
func (h *handle) frame(in Input, lock bool) bool {
	h.set.UpdateVisuals(in.Mouse)
	if sel, ok := h.set.Selected(); ok {
		h.Drag(sel, in.Mouse, lock)
	}
	_, selected := h.set.Selected()
	if in.ButtonDown {
		if !selected {
			if i, ok := h.set.SelectFirstHovered(); ok {
				tracer().Debugf("selected point #%d", i)
				selected = true
			}
		}
	} else if selected {
		h.set.DeselectAll()
		selected = false
	}
	h.toggle(in.Action)
	return !selected
}

// toggle flips the switch named by a toggle action.
func (h *handle) toggle(a Action) bool {
	switch a {
	case ToggleDebug:
		h.toggles.Debug = !h.toggles.Debug
	case ToggleAnimate:
		h.toggles.Animate = !h.toggles.Animate
		h.animator.Enabled = h.toggles.Animate
	case ToggleBoundingBox:
		h.toggles.BoundingBox = !h.toggles.BoundingBox
	case ToggleLock:
		h.toggles.Lock = !h.toggles.Lock
	default:
		return false
	}
	tracer().Debugf("%s: %+v", a, h.toggles)
	return true
}

// tick advances the animation of t by one frame.
func (h *handle) tick() {
	h.animator.Enabled = h.toggles.Animate
	h.animator.Tick()
}

// window builds the drawable window over the given point indices.
func (h *handle) window(indices []int, withBox bool) Window {
	pos := h.set.Positions(indices...)
	w := Window{
		Indices:  indices,
		Polygon:  pos,
		Polyline: curve.Sample(pos, h.config.Samples),
	}
	if h.toggles.Debug {
		c := curve.Casteljau(pos, h.animator.T)
		w.Construction = &c
	}
	if withBox {
		if bb, err := curve.CubicBoundingBox(pos); err == nil {
			w.Box = &bb
		}
	}
	return w
}

func (h *handle) snapshot(title string, windows []Window) Snapshot {
	return Snapshot{
		Title:   title,
		T:       h.animator.T,
		Toggles: h.toggles,
		Points:  h.set.Renderables(),
		Windows: windows,
	}
}
