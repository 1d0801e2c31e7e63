package points

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/splinedraw"
)

// Set is the arena owning all points of a curve or spline, in order.
// Constraint slots of its points hold indices into the set.
// A Set is not safe for concurrent use.
type Set struct {
	points []Point
	style  Style
}

// NewSet creates an empty point set with a given style.
func NewSet(style Style) *Set {
	return &Set{style: style}
}

// Style returns the style of the points in s.
func (s *Set) Style() Style {
	return s.style
}

// SetStyle changes the style of s. Radii are clamped into the new range,
// colors of existing points are kept.
func (s *Set) SetStyle(style Style) {
	s.style = style
	for i := range s.points {
		s.points[i].radius = style.clamp(s.points[i].radius)
	}
	tracer().Debugf("point radii now in [%g,%g]", style.RestingRadius, style.HoverRadius)
}

// Len returns the number of points.
func (s *Set) Len() int {
	return len(s.points)
}

// At returns a copy of point i.
func (s *Set) At(i int) Point {
	return s.points[i]
}

// Add appends a point of a given kind and returns its index. Join and
// control points get the color of the style, basic points the color of
// resting control points; use AddBasic for a specific color.
func (s *Set) Add(kind Kind, pos splinedraw.Pair) int {
	c := s.style.ControlColor
	if kind == Join {
		c = s.style.JoinColor
	}
	return s.add(kind, pos, c)
}

// AddBasic appends a free point with color c and returns its index.
func (s *Set) AddBasic(pos splinedraw.Pair, c color.RGBA) int {
	return s.add(Basic, pos, c)
}

func (s *Set) add(kind Kind, pos splinedraw.Pair, c color.RGBA) int {
	s.points = append(s.points, Point{
		kind:     kind,
		position: pos,
		radius:   s.style.RestingRadius,
		color:    c,
		slots:    [2]int{None, None},
	})
	return len(s.points) - 1
}

// SetColor changes the display color of point i.
func (s *Set) SetColor(i int, c color.RGBA) {
	s.points[i].color = c
}

// Position returns the position of point i.
func (s *Set) Position(i int) splinedraw.Pair {
	return s.points[i].position
}

// Positions returns the positions of the points at the given indices, or
// of all points if no index is given.
func (s *Set) Positions(indices ...int) []splinedraw.Pair {
	if len(indices) == 0 {
		pos := make([]splinedraw.Pair, len(s.points))
		for i, p := range s.points {
			pos[i] = p.position
		}
		return pos
	}
	pos := make([]splinedraw.Pair, len(indices))
	for k, i := range indices {
		pos[k] = s.points[i].position
	}
	return pos
}

// SetPosition moves point i to pos. If withConstraint is set, the
// point's constraint relations are propagated, one hop deep:
//
// A join point translates its previous and next control points by the
// same delta it was moved by. A control point with both a linked control
// point and a mirror join reflects the linked control point through the
// join.
//
// The point itself is always updated first, neighbours afterwards.
func (s *Set) SetPosition(i int, pos splinedraw.Pair, withConstraint bool) {
	p := &s.points[i]
	delta := p.position - pos
	p.position = pos
	if !withConstraint {
		return
	}
	switch p.kind {
	case Join:
		for _, slot := range []Slot{PreviousControl, NextControl} {
			if c := p.slots[slot]; c != None {
				s.place(c, s.points[c].position-delta)
			}
		}
	case Control:
		linked, mirror := p.slots[LinkedControl], p.slots[MirrorJoin]
		if linked != None && mirror != None {
			s.place(linked, pos.Mirrored(s.points[mirror].position))
		}
	}
}

// place writes a position without any propagation. Every constraint
// update goes through here, which keeps propagation at one hop.
func (s *Set) place(i int, pos splinedraw.Pair) {
	tracer().Debugf("constraint moves %s to %s", s.points[i], pos)
	s.points[i].position = pos
}

// SetConstraint binds slot of point i to point target.
// The slot must be valid for the kind of point i, otherwise the set is
// left unchanged and ErrInvalidSlot is returned.
func (s *Set) SetConstraint(i int, slot Slot, target int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.checkIndex(target); err != nil {
		return err
	}
	if !s.points[i].kind.hasSlot(slot) {
		tracer().Errorf("%s has no constraint slot %d", s.points[i], slot)
		return fmt.Errorf("%w: slot %d on %s point #%d", ErrInvalidSlot, slot, s.points[i].kind, i)
	}
	s.points[i].slots[slot] = target
	return nil
}

// ClearConstraint unbinds slot of point i.
func (s *Set) ClearConstraint(i int, slot Slot) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !s.points[i].kind.hasSlot(slot) {
		return fmt.Errorf("%w: slot %d on %s point #%d", ErrInvalidSlot, slot, s.points[i].kind, i)
	}
	s.points[i].slots[slot] = None
	return nil
}

// Constraint returns the index bound to slot of point i, if any.
func (s *Set) Constraint(i int, slot Slot) (int, bool) {
	return s.points[i].Constraint(slot)
}

func (s *Set) checkIndex(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.points))
	}
	return nil
}

// Truncate removes all points from index n on. Constraint slots of the
// remaining points which refer to a removed point are cleared.
func (s *Set) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(s.points) {
		return
	}
	s.points = s.points[:n]
	for i := range s.points {
		for k, target := range s.points[i].slots {
			if target >= n {
				tracer().Debugf("detaching slot %d of %s", k, s.points[i])
				s.points[i].slots[k] = None
			}
		}
	}
}

// UpdateVisual recomputes the hover state of point i for a pointer at
// mouse and animates its radius one step towards the hover radius (if
// hovered) or the resting radius. A selected point is always hovered.
func (s *Set) UpdateVisual(i int, mouse splinedraw.Pair) {
	p := &s.points[i]
	p.hovered = mouse.Distance(p.position) < p.radius || p.selected
	if p.hovered {
		p.radius = s.style.clamp(p.radius + s.style.AnimationStep)
	} else {
		p.radius = s.style.clamp(p.radius - s.style.AnimationStep)
	}
}

// UpdateVisuals calls UpdateVisual for every point.
func (s *Set) UpdateVisuals(mouse splinedraw.Pair) {
	for i := range s.points {
		s.UpdateVisual(i, mouse)
	}
}

// Select marks point i as selected.
func (s *Set) Select(i int) {
	s.points[i].selected = true
}

// SelectFirstHovered selects the first hovered point, if no point is
// selected yet. It returns the index of the selected point.
func (s *Set) SelectFirstHovered() (int, bool) {
	if i, ok := s.Selected(); ok {
		return i, true
	}
	for i := range s.points {
		if s.points[i].hovered {
			s.points[i].selected = true
			return i, true
		}
	}
	return None, false
}

// DeselectAll clears the selection.
func (s *Set) DeselectAll() {
	for i := range s.points {
		s.points[i].selected = false
	}
}

// Selected returns the index of the first selected point.
func (s *Set) Selected() (int, bool) {
	for i := range s.points {
		if s.points[i].selected {
			return i, true
		}
	}
	return None, false
}

// Renderable returns a drawing snapshot of point i.
func (s *Set) Renderable(i int) Renderable {
	return s.points[i].Renderable()
}

// Renderables returns drawing snapshots of the points at the given
// indices, or of all points if no index is given.
func (s *Set) Renderables(indices ...int) []Renderable {
	if len(indices) == 0 {
		r := make([]Renderable, len(s.points))
		for i, p := range s.points {
			r[i] = p.Renderable()
		}
		return r
	}
	r := make([]Renderable, len(indices))
	for k, i := range indices {
		r[k] = s.points[i].Renderable()
	}
	return r
}
