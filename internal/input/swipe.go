// Package input turns raw pointer gestures into move directions.
package input

import (
	"math"

	"github.com/zenvertao/2048-game/internal/game"
)

// DefaultSwipeThreshold is the minimum displacement, in pointer units, for
// a drag to count as a swipe.
const DefaultSwipeThreshold = 20

// DetectSwipe maps a drag vector to a direction. Neither component
// exceeding threshold means no swipe. The axis with the larger absolute
// displacement wins; ties go to the vertical axis. Screen coordinates are
// assumed, so positive dy points down.
func DetectSwipe(dx, dy, threshold float64) (game.Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax <= threshold && ay <= threshold {
		return 0, false
	}
	if ax > ay {
		if dx > 0 {
			return game.Right, true
		}
		return game.Left, true
	}
	if dy > 0 {
		return game.Down, true
	}
	return game.Up, true
}

// Tracker follows one press/release pair.
type Tracker struct {
	Threshold float64

	startX, startY float64
	pressed        bool
}

// NewTracker returns a tracker using threshold, or the default when
// threshold is not positive.
func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Tracker{Threshold: threshold}
}

// Press records the gesture start.
func (t *Tracker) Press(x, y float64) {
	t.startX, t.startY = x, y
	t.pressed = true
}

// Pressed reports whether a gesture is in progress.
func (t *Tracker) Pressed() bool {
	return t.pressed
}

// Release ends the gesture and returns its direction, if any. A release
// without a press is ignored.
func (t *Tracker) Release(x, y float64) (game.Direction, bool) {
	if !t.pressed {
		return 0, false
	}
	t.pressed = false
	return DetectSwipe(x-t.startX, y-t.startY, t.Threshold)
}

// Cancel forgets the gesture in progress.
func (t *Tracker) Cancel() {
	t.pressed = false
}
