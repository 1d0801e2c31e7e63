package scene

// Animator moves the curve parameter t back and forth between 0 and 1.
type Animator struct {
	T       float64
	Speed   float64
	Enabled bool
	falling bool
}

// NewAnimator creates an animator positioned at t.
func NewAnimator(t, speed float64, enabled bool) *Animator {
	return &Animator{T: clamp01(t), Speed: speed, Enabled: enabled}
}

// Tick advances t by one frame, if enabled. On reaching 0 or 1, t is held
// at the boundary and the direction reverses.
func (a *Animator) Tick() float64 {
	if !a.Enabled {
		return a.T
	}
	if a.falling {
		a.T -= a.Speed
	} else {
		a.T += a.Speed
	}
	if a.T >= 1 {
		a.T = 1
		a.falling = true
	} else if a.T <= 0 {
		a.T = 0
		a.falling = false
	}
	return a.T
}

// Set positions the animator at t, clamped to [0,1].
func (a *Animator) Set(t float64) {
	a.T = clamp01(t)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
