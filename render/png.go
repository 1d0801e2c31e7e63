/*
Package render rasterizes scene snapshots into images.

Drawing follows the editor display: the control polygon of every curve
window in red, the sampled curve in green, the points on top. With debug
drawing enabled the De Casteljau construction at t is shown with its
interpolation levels and the curve point at t in yellow. Bounding boxes
are outlined in red, the region they cover together in blue.

Images are rendered supersampled and scaled down for smooth edges.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polygon"
	"github.com/npillmayer/splinedraw/scene"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer writes to trace with key 'render'
func tracer() tracing.Trace {
	return tracing.Select("render")
}

// Options configures rendering.
type Options struct {
	Width, Height int                // size of the image in pixels
	Canvas        [2]splinedraw.Pair // canvas area fitted into the image, min and max corner
	Supersample   int                // render at this multiple of the size, then scale down
	FontSize      float64            // caption size in points, 0 for no caption
	Background    color.RGBA
}

// DefaultOptions returns options for an image showing the default canvas.
func DefaultOptions() Options {
	return Options{
		Width:       1600,
		Height:      900,
		Canvas:      [2]splinedraw.Pair{splinedraw.P(0, 0), splinedraw.P(1600, 900)},
		Supersample: 2,
		FontSize:    16,
		Background:  points.ColorDark,
	}
}

// Line widths and marker sizes in canvas units.
const (
	polygonWidth      = 3.0
	curveWidth        = 3.0
	constructionWidth = 2.0
	boxWidth          = 1.0
	markerSize        = 10.0
)

// renderContext holds an image in the making.
type renderContext struct {
	img   *image.RGBA
	view  splinedraw.AT // canvas to image coordinates
	scale float64       // image pixels per canvas unit
	z     *vector.Rasterizer
}

// PNG renders a snapshot and writes it in PNG format.
func PNG(w io.Writer, snap scene.Snapshot, opts Options) error {
	img, err := Image(snap, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Image renders a snapshot.
func Image(snap scene.Snapshot, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %d×%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	s := opts.Supersample
	large := image.NewRGBA(image.Rect(0, 0, opts.Width*s, opts.Height*s))
	draw.Draw(large, large.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	view := splinedraw.Fit(opts.Canvas[0], opts.Canvas[1], float64(opts.Width*s), float64(opts.Height*s))
	ctx := &renderContext{
		img:   large,
		view:  view,
		scale: view.Transform(splinedraw.P(1, 0)).Distance(view.Transform(splinedraw.Origin)),
		z:     vector.NewRasterizer(1, 1),
	}
	tracer().Debugf("rendering %q at %d×%d, view %s", snap.Title, large.Bounds().Dx(), large.Bounds().Dy(), view)
	for _, w := range snap.Windows {
		ctx.drawWindow(w)
	}
	ctx.drawRegion(visibleRegion(snap.Region, opts.Canvas))
	for _, p := range snap.Points {
		ctx.disc(p.Position, p.Radius, p.Color)
	}
	img := large
	if s > 1 {
		img = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(img, img.Bounds(), large, large.Bounds(), draw.Over, nil)
	}
	if opts.FontSize > 0 {
		if err := drawCaption(img, caption(snap), opts.FontSize); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (ctx *renderContext) drawWindow(w scene.Window) {
	ctx.polyline(w.Polygon, polygonWidth, points.ColorRed)
	var final *splinedraw.Pair
	if c := w.Construction; c != nil {
		for _, level := range c.Levels {
			ctx.polyline(level, constructionWidth, points.ColorRed)
			for _, p := range level {
				ctx.square(p, markerSize, points.ColorGreen)
			}
		}
		final = &c.Final
	}
	ctx.polyline(w.Polyline, curveWidth, points.ColorGreen)
	if final != nil {
		ctx.disc(*final, markerSize/2, points.ColorYellow)
	}
	if bb := w.Box; bb != nil {
		lo, hi := bb.Min(), bb.Max()
		ctx.polyline([]splinedraw.Pair{
			lo, splinedraw.P(hi.X(), lo.Y()), hi, splinedraw.P(lo.X(), hi.Y()), lo,
		}, boxWidth, points.ColorRed)
	}
}

// visibleRegion clips a region to the canvas.
func visibleRegion(region polygon.Polygon, canvas [2]splinedraw.Pair) polygon.Polygon {
	return region.Intersection(polygon.Box(canvas[0], canvas[1]))
}

// drawRegion outlines every contour of a region.
func (ctx *renderContext) drawRegion(region polygon.Polygon) {
	for c := 0; c < region.Contours(); c++ {
		knots := region.Contour(c)
		if len(knots) == 0 {
			continue
		}
		ctx.polyline(append(knots, knots[0]), boxWidth, points.ColorBlue)
	}
}

// polyline strokes the line through pts, in canvas coordinates.
func (ctx *renderContext) polyline(pts []splinedraw.Pair, width float64, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		ctx.line(pts[i-1], pts[i], width, c)
	}
}

// line strokes a line segment with square caps.
func (ctx *renderContext) line(p, q splinedraw.Pair, width float64, c color.RGBA) {
	p, q = ctx.view.Transform(p), ctx.view.Transform(q)
	hw := width * ctx.scale / 2
	d := q - p
	length := norm(d)
	if length < 1e-9 {
		ctx.fill(squareAt(p, 2*hw), c)
		return
	}
	along := d.Scaled(hw / length)
	normal := splinedraw.P(-along.Y(), along.X())
	p, q = p-along, q+along
	ctx.fill([]splinedraw.Pair{p + normal, q + normal, q - normal, p - normal}, c)
}

// disc fills a circle, in canvas coordinates.
func (ctx *renderContext) disc(center splinedraw.Pair, r float64, c color.RGBA) {
	center = ctx.view.Transform(center)
	r *= ctx.scale
	n := 24 + int(r)
	poly := make([]splinedraw.Pair, n)
	for i := range poly {
		a := 2 * math.Pi * float64(i) / float64(n)
		poly[i] = center.Shifted(splinedraw.P(r*math.Cos(a), r*math.Sin(a)))
	}
	ctx.fill(poly, c)
}

// square fills a square marker, in canvas coordinates.
func (ctx *renderContext) square(center splinedraw.Pair, size float64, c color.RGBA) {
	ctx.fill(squareAt(ctx.view.Transform(center), size*ctx.scale), c)
}

func squareAt(center splinedraw.Pair, size float64) []splinedraw.Pair {
	h := size / 2
	return []splinedraw.Pair{
		center + splinedraw.P(-h, -h), center + splinedraw.P(h, -h),
		center + splinedraw.P(h, h), center + splinedraw.P(-h, h),
	}
}

// fill rasterizes a closed polygon in image coordinates. The rasterizer
// covers the polygon's bounding box only; vertices outside of the image are
// clamped to its border.
func (ctx *renderContext) fill(poly []splinedraw.Pair, c color.RGBA) {
	if len(poly) < 3 {
		return
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		if !p.IsFinite() {
			return
		}
		x, y := p.F()
		x0, y0 = math.Min(x0, x), math.Min(y0, y)
		x1, y1 = math.Max(x1, x), math.Max(y1, y)
	}
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1))+1, int(math.Ceil(y1))+1)
	r = r.Intersect(ctx.img.Bounds())
	if r.Empty() {
		return
	}
	local := func(p splinedraw.Pair) (float32, float32) {
		x := math.Max(0, math.Min(float64(r.Dx()), p.X()-float64(r.Min.X)))
		y := math.Max(0, math.Min(float64(r.Dy()), p.Y()-float64(r.Min.Y)))
		return float32(x), float32(y)
	}
	ctx.z.Reset(r.Dx(), r.Dy())
	ctx.z.MoveTo(local(poly[0]))
	for _, p := range poly[1:] {
		ctx.z.LineTo(local(p))
	}
	ctx.z.ClosePath()
	ctx.z.Draw(ctx.img, r, image.NewUniform(c), image.Point{})
}

func norm(p splinedraw.Pair) float64 {
	return math.Hypot(p.F())
}

// caption lists title, t and the switches of a snapshot.
func caption(snap scene.Snapshot) []string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	tg := snap.Toggles
	return []string{
		snap.Title,
		fmt.Sprintf("t = %.3f", snap.T),
		fmt.Sprintf("debug %s, animate %s, bounding box %s, lock %s",
			onOff(tg.Debug), onOff(tg.Animate), onOff(tg.BoundingBox), onOff(tg.Lock)),
	}
}

func drawCaption(img *image.RGBA, lines []string, size float64) error {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()
	lineHeight := face.Metrics().Height.Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(points.ColorLight),
		Face: face,
	}
	for i, text := range lines {
		d.Dot = fixed.P(20, 20+(i+1)*lineHeight)
		d.DrawString(text)
	}
	return nil
}
