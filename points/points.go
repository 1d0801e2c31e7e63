/*
Package points implements the point model of the spline editor: free
points for plain Bézier curves, and join and control points for cubic
splines, which are linked by positional constraints.

All points of a curve or spline live in a single arena, a Set. Constraint
relations between points are stored as indices into that arena, never as
pointers, so the back-references between join points and control points do
not form ownership cycles and a Set may be copied or truncated freely.

# Constraint propagation

Moving a point with constraints enabled repositions its linked neighbours:

	join point moved by Δ     →  previous and next control points move by Δ
	control point moved to c  →  linked control point moves to 2·j − c,
	                              j being the position of its mirror join

Propagation is exactly one hop deep: neighbours are written without
consulting their own constraints. On closed splines join and control points
reference each other in a cycle; propagation still terminates after one hop.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package points

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
)

// tracer writes to trace with key 'points'
func tracer() tracing.Trace {
	return tracing.Select("points")
}

var (
	// ErrInvalidSlot indicates a constraint slot not available for a point's kind.
	ErrInvalidSlot = errors.New("invalid constraint slot")
	// ErrIndexOutOfRange indicates a point index outside of the set.
	ErrIndexOutOfRange = errors.New("point index out of range")
)

// None marks an unset constraint slot.
const None = -1

// Kind is the variant of a point.
type Kind int8

// Point variants. The set is closed.
const (
	Basic   Kind = iota // free point of a plain Bézier curve
	Join                // anchor of a spline, shared by two adjoining segments
	Control             // tangent handle of a spline segment
)

func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Join:
		return "join"
	case Control:
		return "control"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Slot identifies a constraint relation of a point. Join points have slots
// PreviousControl and NextControl, control points have LinkedControl and
// MirrorJoin. Basic points have no slots.
type Slot int

// Slots for join points.
const (
	PreviousControl Slot = 0
	NextControl     Slot = 1
)

// Slots for control points.
const (
	LinkedControl Slot = 0
	MirrorJoin    Slot = 1
)

func (k Kind) hasSlot(slot Slot) bool {
	return k != Basic && slot >= 0 && slot <= 1
}

// Point is a single point of a curve or spline.
type Point struct {
	kind     Kind
	position splinedraw.Pair
	radius   float64
	color    color.RGBA
	selected bool
	hovered  bool
	slots    [2]int // indices into the owning set, or None
}

// Kind returns the variant of p.
func (p Point) Kind() Kind {
	return p.kind
}

// Position returns the position of p on the canvas.
func (p Point) Position() splinedraw.Pair {
	return p.position
}

// Radius returns the current display radius of p.
func (p Point) Radius() float64 {
	return p.radius
}

// Color returns the display color of p.
func (p Point) Color() color.RGBA {
	return p.color
}

// IsSelected is true if p is being dragged.
func (p Point) IsSelected() bool {
	return p.selected
}

// IsHovered is true if the pointer is over p, or p is selected.
func (p Point) IsHovered() bool {
	return p.hovered
}

// Constraint returns the index bound to a slot, if any.
func (p Point) Constraint(slot Slot) (int, bool) {
	if !p.kind.hasSlot(slot) || p.slots[slot] == None {
		return None, false
	}
	return p.slots[slot], true
}

func (p Point) String() string {
	return fmt.Sprintf("%s%s", p.kind, p.position)
}

// Renderable is a read-only snapshot of a point for drawing. It carries no
// constraint information.
type Renderable struct {
	Kind     Kind
	Position splinedraw.Pair
	Radius   float64
	Color    color.RGBA
	Selected bool
	Hovered  bool
}

// Renderable creates a drawing snapshot of p.
func (p Point) Renderable() Renderable {
	return Renderable{
		Kind:     p.kind,
		Position: p.position,
		Radius:   p.radius,
		Color:    p.color,
		Selected: p.selected,
		Hovered:  p.hovered,
	}
}
