// Package anim replays the visual transition of a single move: tiles slide
// from their old to their new cells, then merged cells pop. It never
// touches game state; the grid it reads already holds the post-move values.
package anim

import (
	"time"

	"github.com/zenvertao/2048-game/internal/game"
)

// Phase is the animator state.
type Phase int

const (
	Idle Phase = iota
	Sliding
	Popping
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Sliding:
		return "sliding"
	case Popping:
		return "popping"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Timing configures phase durations.
type Timing struct {
	Slide        time.Duration
	Pop          time.Duration
	PopAmplitude float64 // Peak extra scale of a popping tile
}

// DefaultTiming returns the stock animation timing.
func DefaultTiming() Timing {
	return Timing{
		Slide:        140 * time.Millisecond,
		Pop:          160 * time.Millisecond,
		PopAmplitude: 0.28,
	}
}

// SlideTile is one tile drawn in transit. Value is always the pre-merge
// value; a tile with From == To stays put.
type SlideTile struct {
	Value int
	From  game.Position
	To    game.Position
}

// At returns the fractional cell coordinate at eased progress p.
func (s SlideTile) At(p float64) (row, col float64) {
	row = float64(s.From.Row) + float64(s.To.Row-s.From.Row)*p
	col = float64(s.From.Col) + float64(s.To.Col-s.From.Col)*p
	return row, col
}

// PopTile is a merge destination drawn at its merged value.
type PopTile struct {
	Pos   game.Position
	Value int
}

// Renderer draws animation frames. Only positions, values and numeric
// progress cross this boundary.
type Renderer interface {
	// DrawStatic clears the canvas and draws every non-empty cell of grid
	// except those in exclude (which may be nil).
	DrawStatic(grid game.Grid, exclude map[game.Position]bool)
	// DrawSliding draws tiles in transit at eased progress in [0, 1].
	DrawSliding(tiles []SlideTile, progress float64)
	// DrawPops draws merged tiles scaled by scale around their cell centre.
	DrawPops(tiles []PopTile, scale float64)
}

// GridSource exposes the logical grid read-only.
type GridSource interface {
	Grid() game.Grid
}

// Animator is the Idle → Sliding → (Popping) → Idle state machine. All
// methods must be called from the frame loop goroutine.
type Animator struct {
	grid     GridSource
	renderer Renderer
	clock    Clock
	timing   Timing

	phase      Phase
	phaseStart time.Time
	slides     []SlideTile
	exclude    map[game.Position]bool
	pops       []PopTile
	onComplete func()
}

// New creates an idle animator.
func New(grid GridSource, r Renderer, clock Clock, timing Timing) *Animator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Animator{
		grid:     grid,
		renderer: r,
		clock:    clock,
		timing:   timing,
	}
}

// Start begins a cycle for the events of one move. onComplete runs once,
// when the cycle finishes, and never if it is cancelled. Starting while a
// cycle is in flight drops that cycle without running its callback.
func (a *Animator) Start(events []game.MoveEvent, onComplete func()) {
	a.reset()

	a.exclude = make(map[game.Position]bool, len(events))
	arriving := make(map[game.Position]bool, len(events))
	for _, ev := range events {
		a.exclude[ev.To] = true
		if !ev.IsMerge {
			arriving[ev.To] = true
		}
	}

	// A merge partner that did not move still has to be visible at the
	// destination while the other tile slides into it.
	for _, ev := range events {
		if ev.IsMerge && !arriving[ev.To] {
			a.slides = append(a.slides, SlideTile{Value: ev.OriginValue, From: ev.To, To: ev.To})
			arriving[ev.To] = true
		}
	}
	for _, ev := range events {
		a.slides = append(a.slides, SlideTile{Value: ev.OriginValue, From: ev.From, To: ev.To})
		if ev.IsMerge {
			a.pops = append(a.pops, PopTile{Pos: ev.To, Value: ev.MergedValue})
		}
	}

	a.onComplete = onComplete
	a.phase = Sliding
	a.phaseStart = a.clock.Now()
}

// Frame advances the state machine to the current clock time and draws one
// frame. In Idle it draws the static grid. It reports whether a cycle is
// running afterwards, which includes one started by the completion callback.
func (a *Animator) Frame() bool {
	now := a.clock.Now()

	switch a.phase {
	case Sliding:
		t := progress(now.Sub(a.phaseStart), a.timing.Slide)
		a.renderer.DrawStatic(a.grid.Grid(), a.exclude)
		a.renderer.DrawSliding(a.slides, EaseOutCubic(t))
		if t < 1 {
			return true
		}
		a.slides = nil
		a.exclude = nil
		if len(a.pops) == 0 {
			a.finish()
			return a.Animating()
		}
		a.phase = Popping
		a.phaseStart = now
		return true

	case Popping:
		t := progress(now.Sub(a.phaseStart), a.timing.Pop)
		a.renderer.DrawStatic(a.grid.Grid(), nil)
		a.renderer.DrawPops(a.pops, PopScale(t, a.timing.PopAmplitude))
		if t < 1 {
			return true
		}
		a.finish()
		return a.Animating()

	default:
		a.renderer.DrawStatic(a.grid.Grid(), nil)
		return false
	}
}

// Cancel drops the running cycle, if any, without running its callback.
func (a *Animator) Cancel() {
	a.reset()
}

// Animating reports whether a cycle is in flight. Hosts must not apply a
// new move while this is true.
func (a *Animator) Animating() bool {
	return a.phase != Idle
}

// Phase returns the current phase.
func (a *Animator) Phase() Phase {
	return a.phase
}

// SetTiming changes phase durations for subsequent frames.
func (a *Animator) SetTiming(t Timing) {
	a.timing = t
}

func (a *Animator) finish() {
	done := a.onComplete
	a.reset()
	if done != nil {
		done()
	}
}

func (a *Animator) reset() {
	a.phase = Idle
	a.slides = nil
	a.exclude = nil
	a.pops = nil
	a.onComplete = nil
}
