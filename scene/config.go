package scene

import (
	"github.com/npillmayer/splinedraw/curve"
	"github.com/npillmayer/splinedraw/points"
	"github.com/npillmayer/splinedraw/polyn"
)

// Config holds the tunables of a scene.
type Config struct {
	Style          points.Style
	Samples        int     // polyline segments per curve window
	AnimationSpeed float64 // change of t per animated frame
	InitialT       float64 // parameter of the De Casteljau construction
	MaxCurvePoints int     // admission ceiling of the curve scene
	BoundsMargin   float64 // padding of segment boxes in the bounds region
	Toggles        Toggles // initial toggles
}

// DefaultConfig returns the configuration of the editor.
func DefaultConfig() Config {
	return Config{
		Style:          points.DefaultStyle(),
		Samples:        curve.DefaultSamples,
		AnimationSpeed: 0.005,
		InitialT:       0.5,
		MaxCurvePoints: polyn.MaxDegree + 1,
		BoundsMargin:   1,
		Toggles: Toggles{
			Debug:   true,
			Animate: true,
			Lock:    true,
		},
	}
}

// normalized replaces settings out of range by their defaults.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Samples < 1 {
		c.Samples = d.Samples
	}
	if c.MaxCurvePoints < 2 || c.MaxCurvePoints > polyn.MaxDegree+1 {
		c.MaxCurvePoints = d.MaxCurvePoints
	}
	if c.InitialT < 0 || c.InitialT > 1 {
		c.InitialT = d.InitialT
	}
	if c.AnimationSpeed < 0 {
		c.AnimationSpeed = -c.AnimationSpeed
	}
	if c.BoundsMargin < 0 {
		c.BoundsMargin = 0
	}
	if c.Style.RestingRadius <= 0 || c.Style.HoverRadius < c.Style.RestingRadius {
		c.Style = d.Style
	}
	return c
}
