package anim

import (
	"math"
	"time"
)

// EaseOutCubic decelerates towards t=1.
func EaseOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// PopScale returns the bounce scale at progress t: it rises from 1 to
// 1+amplitude at t=0.5 and settles back to 1 at t=1.
func PopScale(t, amplitude float64) float64 {
	return 1 + amplitude*math.Sin(t*math.Pi)
}

// progress returns elapsed/d clamped to [0, 1]. Non-positive durations are
// always complete.
func progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	t := float64(elapsed) / float64(d)
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
