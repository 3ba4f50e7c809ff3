package anim

import (
	"math"
	"testing"
	"time"

	"github.com/zenvertao/2048-game/internal/game"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type staticGrid game.Grid

func (g staticGrid) Grid() game.Grid { return game.Grid(g) }

type frame struct {
	exclude  map[game.Position]bool
	slides   []SlideTile
	progress float64
	pops     []PopTile
	scale    float64
	kind     string
}

type recorder struct {
	frames []frame
}

func (r *recorder) DrawStatic(_ game.Grid, exclude map[game.Position]bool) {
	r.frames = append(r.frames, frame{kind: "static", exclude: exclude})
}

func (r *recorder) DrawSliding(tiles []SlideTile, p float64) {
	r.frames = append(r.frames, frame{kind: "slide", slides: tiles, progress: p})
}

func (r *recorder) DrawPops(tiles []PopTile, scale float64) {
	r.frames = append(r.frames, frame{kind: "pop", pops: tiles, scale: scale})
}

func (r *recorder) last(kind string) frame {
	for i := len(r.frames) - 1; i >= 0; i-- {
		if r.frames[i].kind == kind {
			return r.frames[i]
		}
	}
	return frame{}
}

func newTestAnimator() (*Animator, *fakeClock, *recorder) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	rec := &recorder{}
	a := New(staticGrid{}, rec, clock, DefaultTiming())
	return a, clock, rec
}

var slideOnly = []game.MoveEvent{
	{OriginValue: 2, From: game.Position{Row: 0, Col: 3}, To: game.Position{Row: 0, Col: 0}},
}

var withMerge = []game.MoveEvent{
	{OriginValue: 2, MergedValue: 4, From: game.Position{Row: 0, Col: 1}, To: game.Position{Row: 0, Col: 0}, IsMerge: true},
	{OriginValue: 4, From: game.Position{Row: 0, Col: 2}, To: game.Position{Row: 0, Col: 1}},
}

func TestAnimatorSlideWithoutMerges(t *testing.T) {
	a, clock, _ := newTestAnimator()
	calls := 0
	a.Start(slideOnly, func() { calls++ })

	if a.Phase() != Sliding || !a.Animating() {
		t.Fatalf("after Start phase = %v, want sliding", a.Phase())
	}

	clock.Advance(70 * time.Millisecond)
	if !a.Frame() || a.Phase() != Sliding {
		t.Fatalf("mid-slide frame left phase %v", a.Phase())
	}
	if calls != 0 {
		t.Fatal("callback ran before slide completed")
	}

	clock.Advance(70 * time.Millisecond)
	if a.Frame() {
		t.Error("Frame() at t=1 without merges should report idle")
	}
	if a.Phase() != Idle {
		t.Errorf("phase = %v, want idle", a.Phase())
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}

	clock.Advance(time.Second)
	a.Frame()
	if calls != 1 {
		t.Errorf("idle frames re-ran callback: %d calls", calls)
	}
}

func TestAnimatorSlideThenPop(t *testing.T) {
	a, clock, rec := newTestAnimator()
	calls := 0
	a.Start(withMerge, func() { calls++ })

	clock.Advance(140 * time.Millisecond)
	a.Frame()
	if a.Phase() != Popping {
		t.Fatalf("phase after slide = %v, want popping", a.Phase())
	}
	if calls != 0 {
		t.Fatal("callback ran before pop phase")
	}

	clock.Advance(80 * time.Millisecond)
	a.Frame()
	pop := rec.last("pop")
	if math.Abs(pop.scale-1.28) > 1e-9 {
		t.Errorf("mid-pop scale = %v, want 1.28", pop.scale)
	}
	if len(pop.pops) != 1 || pop.pops[0] != (PopTile{Pos: game.Position{Row: 0, Col: 0}, Value: 4}) {
		t.Errorf("pops = %+v, want merged 4 at (0,0)", pop.pops)
	}

	clock.Advance(80 * time.Millisecond)
	a.Frame()
	if a.Phase() != Idle || calls != 1 {
		t.Errorf("after pop: phase = %v calls = %d, want idle and 1", a.Phase(), calls)
	}
	if s := rec.last("pop").scale; math.Abs(s-1) > 1e-9 {
		t.Errorf("final pop scale = %v, want 1", s)
	}
}

func TestAnimatorPopPhaseRestartsClock(t *testing.T) {
	a, clock, _ := newTestAnimator()
	a.Start(withMerge, nil)

	// A late frame overshooting the slide must not eat into the pop phase.
	clock.Advance(500 * time.Millisecond)
	a.Frame()
	if a.Phase() != Popping {
		t.Fatalf("phase = %v, want popping", a.Phase())
	}
	clock.Advance(100 * time.Millisecond)
	if !a.Frame() {
		t.Error("pop phase ended early; its clock should start at the slide's final frame")
	}
}

func TestAnimatorSlidingFrames(t *testing.T) {
	a, clock, rec := newTestAnimator()
	a.Start(withMerge, nil)

	clock.Advance(70 * time.Millisecond)
	a.Frame()

	static := rec.last("static")
	for _, p := range []game.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		if !static.exclude[p] {
			t.Errorf("destination %v not excluded from static draw", p)
		}
	}

	slide := rec.last("slide")
	if want := EaseOutCubic(0.5); math.Abs(slide.progress-want) > 1e-9 {
		t.Errorf("progress = %v, want eased %v", slide.progress, want)
	}

	// Stationary partner ghost first, then one tile per event, all at
	// pre-merge values.
	want := []SlideTile{
		{Value: 2, From: game.Position{Row: 0, Col: 0}, To: game.Position{Row: 0, Col: 0}},
		{Value: 2, From: game.Position{Row: 0, Col: 1}, To: game.Position{Row: 0, Col: 0}},
		{Value: 4, From: game.Position{Row: 0, Col: 2}, To: game.Position{Row: 0, Col: 1}},
	}
	if len(slide.slides) != len(want) {
		t.Fatalf("slides = %+v, want %+v", slide.slides, want)
	}
	for i := range want {
		if slide.slides[i] != want[i] {
			t.Errorf("slide %d = %+v, want %+v", i, slide.slides[i], want[i])
		}
	}
}

func TestAnimatorNoGhostForMovingPartner(t *testing.T) {
	a, clock, rec := newTestAnimator()
	// [2,2,2,2] left: the second merge's partner itself slid into (0,1).
	events := []game.MoveEvent{
		{OriginValue: 2, MergedValue: 4, From: game.Position{Row: 0, Col: 1}, To: game.Position{Row: 0, Col: 0}, IsMerge: true},
		{OriginValue: 2, From: game.Position{Row: 0, Col: 2}, To: game.Position{Row: 0, Col: 1}},
		{OriginValue: 2, MergedValue: 4, From: game.Position{Row: 0, Col: 3}, To: game.Position{Row: 0, Col: 1}, IsMerge: true},
	}
	a.Start(events, nil)
	clock.Advance(10 * time.Millisecond)
	a.Frame()

	ghosts := 0
	for _, s := range rec.last("slide").slides {
		if s.From == s.To {
			ghosts++
			if s.From != (game.Position{Row: 0, Col: 0}) {
				t.Errorf("unexpected ghost at %v", s.From)
			}
		}
	}
	if ghosts != 1 {
		t.Errorf("ghost tiles = %d, want 1", ghosts)
	}
}

func TestAnimatorCancel(t *testing.T) {
	for _, advance := range []time.Duration{10 * time.Millisecond, 200 * time.Millisecond} {
		a, clock, _ := newTestAnimator()
		calls := 0
		a.Start(withMerge, func() { calls++ })

		clock.Advance(advance)
		a.Frame()
		a.Cancel()

		if a.Animating() || a.Phase() != Idle {
			t.Errorf("after Cancel phase = %v, want idle", a.Phase())
		}
		clock.Advance(time.Second)
		a.Frame()
		if calls != 0 {
			t.Errorf("cancelled cycle ran its callback %d times", calls)
		}
	}
}

func TestAnimatorRestartDropsPreviousCallback(t *testing.T) {
	a, clock, _ := newTestAnimator()
	first, second := 0, 0
	a.Start(slideOnly, func() { first++ })
	a.Start(slideOnly, func() { second++ })

	clock.Advance(time.Second)
	a.Frame()
	if first != 0 || second != 1 {
		t.Errorf("callbacks first=%d second=%d, want 0 and 1", first, second)
	}
}

func TestAnimatorZeroDurations(t *testing.T) {
	a, _, _ := newTestAnimator()
	a.SetTiming(Timing{})
	calls := 0
	a.Start(withMerge, func() { calls++ })

	a.Frame() // slide completes immediately
	a.Frame() // pop completes immediately
	if a.Animating() || calls != 1 {
		t.Errorf("zero timing: animating = %v calls = %d, want idle after two frames", a.Animating(), calls)
	}
}

func TestAnimatorCallbackMayRestart(t *testing.T) {
	a, clock, _ := newTestAnimator()
	a.Start(slideOnly, func() {
		a.Start(slideOnly, nil)
	})
	clock.Advance(time.Second)
	a.Frame()
	if a.Phase() != Sliding {
		t.Errorf("phase = %v, want sliding after callback restart", a.Phase())
	}
}

func TestIdleFrameDrawsStatic(t *testing.T) {
	a, _, rec := newTestAnimator()
	if a.Frame() {
		t.Error("idle Frame() should report not animating")
	}
	if len(rec.frames) != 1 || rec.frames[0].kind != "static" || rec.frames[0].exclude != nil {
		t.Errorf("idle frames = %+v, want one full static draw", rec.frames)
	}
}

func TestEasing(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.5, 0.875},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	if got := progress(-time.Millisecond, time.Second); got != 0 {
		t.Errorf("progress clamps low: got %v", got)
	}
	if got := progress(2*time.Second, time.Second); got != 1 {
		t.Errorf("progress clamps high: got %v", got)
	}
	if got := progress(0, 0); got != 1 {
		t.Errorf("zero duration progress = %v, want 1", got)
	}
}

func TestSlideTileAt(t *testing.T) {
	s := SlideTile{From: game.Position{Row: 3, Col: 0}, To: game.Position{Row: 0, Col: 0}}
	row, col := s.At(0.5)
	if row != 1.5 || col != 0 {
		t.Errorf("At(0.5) = (%v, %v), want (1.5, 0)", row, col)
	}
}
