package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/splinedraw"
	"github.com/npillmayer/splinedraw/render"
	"github.com/npillmayer/splinedraw/scene"
)

// anchors are the end points of segments appended to the seed spline.
var anchors = []splinedraw.Pair{
	splinedraw.P(1400, 800),
	splinedraw.P(800, 850),
	splinedraw.P(200, 800),
	splinedraw.P(150, 300),
}

func cmdRender(args []string) {
	opts, err := parseOptions(args)
	exitOnError(err)
	exitOnError(setTraceLevel(opts.trace))
	sc, err := prepareScene(opts)
	exitOnError(err)

	f, err := os.Create(opts.output)
	exitOnError(err)
	ropts := render.DefaultOptions()
	ropts.Width, ropts.Height = opts.width, opts.height
	if err = render.PNG(f, sc.Snapshot(), ropts); err != nil {
		f.Close()
		exitOnError(err)
	}
	exitOnError(f.Close())
	fmt.Printf("Written: %s\n", opts.output)
}

// prepareScene builds the scene to render from the command line options.
func prepareScene(opts options) (scene.Scene, error) {
	sc := newScene(opts)
	sc.Toggles().Animate = false
	sc.Toggles().BoundingBox = opts.bbox
	spline, ok := sc.(*scene.SplineScene)
	if !ok {
		if opts.close || opts.segments > 1 {
			return nil, fmt.Errorf("-close and -segments need a spline")
		}
		return sc, nil
	}
	for k := 1; k < opts.segments; k++ {
		if err := spline.AppendSegment(anchors[(k-1)%len(anchors)]); err != nil {
			return nil, err
		}
	}
	if opts.close {
		if err := spline.CloseLoop(); err != nil {
			return nil, err
		}
	}
	return sc, nil
}
