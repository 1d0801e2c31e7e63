package points

import "image/color"

// Palette of the editor.
var (
	ColorRed    = color.RGBA{232, 57, 53, 255}
	ColorGreen  = color.RGBA{54, 184, 62, 255}
	ColorYellow = color.RGBA{227, 210, 70, 255}
	ColorBlue   = color.RGBA{67, 130, 232, 255}
	ColorDark   = color.RGBA{89, 89, 89, 255}
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorLight  = color.RGBA{247, 251, 252, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
)

// Style configures the visual behaviour of points.
type Style struct {
	RestingRadius float64    // radius of a point not under the pointer
	HoverRadius   float64    // radius of a hovered or selected point
	AnimationStep float64    // radius change per visual update
	JoinColor     color.RGBA // color of spline join points
	ControlColor  color.RGBA // color of spline control points
}

// DefaultStyle returns the default point style.
func DefaultStyle() Style {
	return Style{
		RestingRadius: 10,
		HoverRadius:   15,
		AnimationStep: 1,
		JoinColor:     ColorBlue,
		ControlColor:  ColorWhite,
	}
}

// clamp keeps r within [RestingRadius, HoverRadius].
func (st Style) clamp(r float64) float64 {
	if r < st.RestingRadius {
		return st.RestingRadius
	}
	if r > st.HoverRadius {
		return st.HoverRadius
	}
	return r
}
