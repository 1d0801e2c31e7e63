// Command splinedraw edits Bézier curves and splines in the terminal and
// renders them to PNG.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/splinedraw/scene"
)

const usage = `splinedraw - Bézier curve and spline editor

Usage:
  splinedraw <command> [options]

Commands:
  edit       Edit curves and splines in the terminal
  render     Render a scene to PNG

Options:
  -mode curve|spline   scene to start with (default spline)
  -trace LEVEL         trace level: error, info or debug (default error)

Render options:
  -t T                 parameter of the De Casteljau construction (default 0.5)
  -o FILE              output file (default splinedraw.png)
  -w WIDTH, -h HEIGHT  image size in pixels (default 1600×900)
  -close               close the spline before rendering
  -bbox                draw bounding boxes
  -segments N          number of spline segments (default 1)

Examples:
  splinedraw edit -mode curve
  splinedraw render -mode spline -segments 3 -close -bbox -o loop.png
`

// traceKeys are the keys of all tracers of the module.
var traceKeys = []string{"splinedraw", "polyn", "points", "curve", "polygon", "scene", "render"}

// options are the parsed command line options.
type options struct {
	mode     string
	trace    string
	t        float64
	output   string
	width    int
	height   int
	close    bool
	bbox     bool
	segments int
}

func defaultOptions() options {
	return options{
		mode:     "spline",
		trace:    "error",
		t:        0.5,
		output:   "splinedraw.png",
		width:    1600,
		height:   900,
		segments: 1,
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "edit":
		cmdEdit(args)
	case "render":
		cmdRender(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// parseOptions reads options from args. Unknown options and malformed
// values are reported as errors.
func parseOptions(args []string) (options, error) {
	opts := defaultOptions()
	value := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("option %s needs a value", args[i])
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		var err error
		var v string
		switch args[i] {
		case "-mode", "--mode":
			if v, err = value(i); err == nil {
				if v != "curve" && v != "spline" {
					err = fmt.Errorf("unknown mode %q", v)
				}
				opts.mode = v
			}
			i++
		case "-trace", "--trace":
			if v, err = value(i); err == nil {
				opts.trace = v
			}
			i++
		case "-t":
			if v, err = value(i); err == nil {
				opts.t, err = strconv.ParseFloat(v, 64)
				if err == nil && (opts.t < 0 || opts.t > 1) {
					err = fmt.Errorf("t must be within [0,1], is %g", opts.t)
				}
			}
			i++
		case "-o", "--output":
			if v, err = value(i); err == nil {
				opts.output = v
			}
			i++
		case "-w", "--width":
			if v, err = value(i); err == nil {
				opts.width, err = strconv.Atoi(v)
			}
			i++
		case "-h", "--height":
			if v, err = value(i); err == nil {
				opts.height, err = strconv.Atoi(v)
			}
			i++
		case "-segments", "--segments":
			if v, err = value(i); err == nil {
				opts.segments, err = strconv.Atoi(v)
			}
			i++
		case "-close", "--close":
			opts.close = true
		case "-bbox", "--bbox":
			opts.bbox = true
		default:
			err = fmt.Errorf("unknown option %s", args[i])
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// setTraceLevel sets the trace level of all tracers of the module.
func setTraceLevel(level string) error {
	if level != "error" && level != "info" && level != "debug" {
		return fmt.Errorf("unknown trace level %q", level)
	}
	for _, key := range traceKeys {
		t := tracing.Select(key)
		switch level {
		case "error":
			t.SetTraceLevel(tracing.LevelError)
		case "info":
			t.SetTraceLevel(tracing.LevelInfo)
		case "debug":
			t.SetTraceLevel(tracing.LevelDebug)
		}
	}
	return nil
}

// newScene creates the scene selected by opts.
func newScene(opts options) scene.Scene {
	config := scene.DefaultConfig()
	config.InitialT = opts.t
	if opts.mode == "curve" {
		return scene.NewCurveScene(config)
	}
	return scene.NewSplineScene(config)
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
