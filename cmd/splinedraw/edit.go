package main

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polygon"
	"github.com/npillmayer/splinedraw/scene"
)

// frameInterval is the time between two animation frames.
const frameInterval = 33 * time.Millisecond

// canvasMax is the lower right corner of the canvas shown by the editor.
var canvasMax = splinedraw.P(1600, 900)

// Styles
var (
	styleDefault = tcell.StyleDefault
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Editor is the terminal front end. It owns one scene of each kind and
// drives the active one, one frame per event.
type Editor struct {
	screen  tcell.Screen
	scenes  []scene.Scene
	active  int
	view    splinedraw.AT // canvas to cell coordinates
	inverse splinedraw.AT // cell to canvas coordinates
	mouse   splinedraw.Pair
	down    bool
	message string
	isError bool
}

func cmdEdit(args []string) {
	opts, err := parseOptions(args)
	exitOnError(err)
	exitOnError(setTraceLevel(opts.trace))
	// traces would scramble the screen
	log.SetOutput(io.Discard)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	ed := newEditor(screen, opts)
	ed.run()

	screen.Fini()
}

// newEditor creates an editor on an initialized screen.
func newEditor(screen tcell.Screen, opts options) *Editor {
	ed := &Editor{screen: screen}
	w, h := screen.Size()
	ed.resize(w, h)
	config := ed.sceneConfig(opts)
	ed.scenes = []scene.Scene{scene.NewCurveScene(config), scene.NewSplineScene(config)}
	if opts.mode == "spline" {
		ed.active = 1
	}
	return ed
}

// resize fits the canvas into the screen above the status lines. Cells are
// about twice as high as wide. Point radii follow the new cell size.
func (ed *Editor) resize(w, h int) {
	rows := math.Max(1, float64(h-2))
	fit := splinedraw.Fit(splinedraw.Origin, canvasMax, float64(w), 2*rows)
	ed.view = fit.Combine(splinedraw.Scaling(1, 0.5))
	inv, ok := ed.view.Invert()
	if !ok {
		inv = splinedraw.Identity()
	}
	ed.inverse = inv
	for _, sc := range ed.scenes {
		sc.Points().SetStyle(ed.cellStyle())
	}
}

// cellStyle scales the point radii up to the size of a cell, so that
// every point can be hit with the mouse.
func (ed *Editor) cellStyle() points.Style {
	cell := ed.inverse.Transform(splinedraw.P(1, 0)).Distance(ed.inverse.Transform(splinedraw.Origin))
	st := points.DefaultStyle()
	if cell > st.RestingRadius {
		st.HoverRadius = cell * st.HoverRadius / st.RestingRadius
		st.AnimationStep = (st.HoverRadius - cell) / 5
		st.RestingRadius = cell
	}
	return st
}

func (ed *Editor) sceneConfig(opts options) scene.Config {
	config := scene.DefaultConfig()
	config.InitialT = opts.t
	config.Style = ed.cellStyle()
	return config
}

func (ed *Editor) scene() scene.Scene {
	return ed.scenes[ed.active]
}

func (ed *Editor) run() {
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-quit:
				return
			}
		}
	}()

	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.resize(ev.Size())
			ed.screen.Sync()
		case *tcell.EventKey:
			action, done := ed.handleKey(ev)
			if done {
				return
			}
			ed.step(action)
		case *tcell.EventMouse:
			ed.handleMouse(ev)
			ed.step(scene.NoAction)
		case *tcell.EventInterrupt:
			ed.step(scene.NoAction)
		case nil:
			return
		}
	}
}

// step runs one frame of the active scene.
func (ed *Editor) step(action scene.Action) {
	err := ed.scene().Step(scene.Input{Mouse: ed.mouse, ButtonDown: ed.down, Action: action})
	if err != nil {
		ed.message, ed.isError = err.Error(), true
	} else if action != scene.NoAction {
		ed.message, ed.isError = action.String(), false
	}
}

// handleKey maps a key to a scene action. It reports true for keys which
// end the editor.
func (ed *Editor) handleKey(ev *tcell.EventKey) (scene.Action, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return scene.NoAction, true
	case tcell.KeyEnter:
		return scene.CloseAction, false
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return scene.RemoveAction, false
	case tcell.KeyTab:
		ed.active = (ed.active + 1) % len(ed.scenes)
		ed.message, ed.isError = ed.scene().Title(), false
		return scene.NoAction, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return scene.AddAction, false
		case 'd', 'D':
			return scene.ToggleDebug, false
		case 'a', 'A':
			return scene.ToggleAnimate, false
		case 'b', 'B':
			return scene.ToggleBoundingBox, false
		case 'l', 'L':
			return scene.ToggleLock, false
		case 'q', 'Q':
			return scene.NoAction, true
		}
	}
	return scene.NoAction, false
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	ed.mouse = ed.inverse.Transform(splinedraw.P(float64(x)+0.5, float64(y)+0.5))
	ed.down = ev.Buttons()&tcell.Button1 != 0
}

// --- Drawing ---------------------------------------------------------------

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()
	snap := ed.scene().Snapshot()
	for _, win := range snap.Windows {
		ed.drawWindow(win)
	}
	ed.drawRegion(snap.Region.Intersection(polygon.Box(splinedraw.Origin, canvasMax)))
	for _, p := range snap.Points {
		ed.drawPoint(p)
	}
	ed.drawStatus(snap, w, h)
}

func (ed *Editor) drawWindow(win scene.Window) {
	red := styleDefault.Foreground(rgb(points.ColorRed))
	green := styleDefault.Foreground(rgb(points.ColorGreen))
	ed.polyline(win.Polygon, '·', red)
	if c := win.Construction; c != nil {
		for _, level := range c.Levels {
			ed.polyline(level, '·', red)
			for _, p := range level {
				ed.plot(p, 'o', green)
			}
		}
	}
	ed.polyline(win.Polyline, '•', green)
	if c := win.Construction; c != nil {
		ed.plot(c.Final, '*', styleDefault.Foreground(rgb(points.ColorYellow)).Bold(true))
	}
	if bb := win.Box; bb != nil {
		lo, hi := bb.Min(), bb.Max()
		ed.polyline([]splinedraw.Pair{
			lo, splinedraw.P(hi.X(), lo.Y()), hi, splinedraw.P(lo.X(), hi.Y()), lo,
		}, '+', red)
	}
}

// drawRegion outlines the contours of a region.
func (ed *Editor) drawRegion(region polygon.Polygon) {
	blue := styleDefault.Foreground(rgb(points.ColorBlue))
	for c := 0; c < region.Contours(); c++ {
		knots := region.Contour(c)
		if len(knots) == 0 {
			continue
		}
		ed.polyline(append(knots, knots[0]), '#', blue)
	}
}

func (ed *Editor) drawPoint(p points.Renderable) {
	r := '○'
	if p.Kind == points.Join || p.Kind == points.Basic && p.Color == points.ColorBlue {
		r = '●'
	}
	if p.Hovered {
		r = '◉'
	}
	st := styleDefault.Foreground(rgb(p.Color))
	if p.Selected {
		st = st.Reverse(true)
	}
	ed.plot(p.Position, r, st)
}

// plot puts a rune into the cell showing canvas position p.
func (ed *Editor) plot(p splinedraw.Pair, r rune, st tcell.Style) {
	x, y := cellOf(ed.view.Transform(p))
	ed.setCell(x, y, r, st)
}

// cellOf returns the column and row of the cell containing c.
func cellOf(c splinedraw.Pair) (int, int) {
	x, y := c.F()
	return int(math.Floor(x)), int(math.Floor(y))
}

func (ed *Editor) setCell(x, y int, r rune, st tcell.Style) {
	w, h := ed.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h-2 {
		return
	}
	ed.screen.SetContent(x, y, r, nil, st)
}

// polyline draws the line through canvas positions pts, cell by cell.
func (ed *Editor) polyline(pts []splinedraw.Pair, r rune, st tcell.Style) {
	for i := 1; i < len(pts); i++ {
		p, q := ed.view.Transform(pts[i-1]), ed.view.Transform(pts[i])
		steps := int(math.Ceil(math.Max(math.Abs(q.X()-p.X()), math.Abs(q.Y()-p.Y()))))
		if steps < 1 {
			steps = 1
		}
		for k := 0; k <= steps; k++ {
			x, y := cellOf(p.Lerp(q, float64(k)/float64(steps)))
			ed.setCell(x, y, r, st)
		}
	}
}

func (ed *Editor) drawStatus(snap scene.Snapshot, w, h int) {
	onOff := map[bool]string{true: "on", false: "off"}
	tg := snap.Toggles
	status := fmt.Sprintf(" %s  t=%.3f  debug:%s animate:%s bbox:%s lock:%s  %s",
		snap.Title, snap.T, onOff[tg.Debug], onOff[tg.Animate], onOff[tg.BoundingBox], onOff[tg.Lock],
		ed.message)
	st := styleStatus
	if ed.isError {
		st = styleError
	}
	ed.text(0, h-2, w, status, st)
	help := " " + strings.Join(ed.scene().Help(), " | ") + " | TAB - switch scene | Q - quit"
	ed.text(0, h-1, w, help, styleHelp)
}

func (ed *Editor) text(x, y, w int, s string, st tcell.Style) {
	if y < 0 {
		return
	}
	col := x
	for _, r := range s {
		if col >= w {
			return
		}
		ed.screen.SetContent(col, y, r, nil, st)
		col++
	}
	for ; col < w; col++ {
		ed.screen.SetContent(col, y, ' ', nil, st)
	}
}
