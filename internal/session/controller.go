// Package session hosts one game: it gates player input on the engine and
// animator state, drives the move cycle (move, animate, spawn, terminal
// check) and plays sound effects. It has no UI framework dependencies.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/audio"
	"github.com/zenvertao/2048-game/internal/game"
)

// Banner is the terminal message shown over the board.
type Banner int

const (
	BannerNone Banner = iota
	BannerWon
	BannerGameOver
)

// String returns the banner name.
func (b Banner) String() string {
	switch b {
	case BannerWon:
		return "won"
	case BannerGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b Banner) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// State is a read-only view of the session for rendering.
type State struct {
	game.Snapshot
	Phase             anim.Phase       `json:"phase"`
	LastDelta         int              `json:"last_delta"`
	Banner            Banner           `json:"banner"`
	Started           bool             `json:"started"`
	KeepPlaying       bool             `json:"keep_playing"`
	PendingDifficulty *game.Difficulty `json:"pending_difficulty,omitempty"`
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Difficulty game.Difficulty
	Seed       int64 // Zero seeds from the clock
	Store      game.BestScoreStore
	Renderer   anim.Renderer
	Clock      anim.Clock
	Timing     anim.Timing
	Audio      audio.Player
	Logger     *log.Logger
}

// Controller owns one engine and its animator.
type Controller struct {
	engine *game.Engine
	anim   *anim.Animator
	audio  audio.Player
	logger *log.Logger

	started     bool
	keepPlaying bool
	lastDelta   int
	lastMove    game.MoveResult
	pending     *game.Difficulty

	// inCycle is set between an accepted move and its spawn.
	inCycle  bool
	newlyWon bool
}

// New creates a controller. The board stays empty until Start.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Renderer == nil {
		opts.Renderer = anim.NopRenderer{}
	}
	if opts.Audio == nil {
		opts.Audio = &audio.Nop{}
	}
	if opts.Timing == (anim.Timing{}) {
		opts.Timing = anim.DefaultTiming()
	}

	engineOpts := []game.Option{game.WithLogger(opts.Logger)}
	if opts.Seed != 0 {
		engineOpts = append(engineOpts, game.WithSeed(opts.Seed))
	}
	if opts.Store != nil {
		engineOpts = append(engineOpts, game.WithStore(opts.Store))
	}

	engine := game.NewEngine(opts.Difficulty, engineOpts...)
	return &Controller{
		engine: engine,
		anim:   anim.New(engine, opts.Renderer, opts.Clock, opts.Timing),
		audio:  opts.Audio,
		logger: opts.Logger,
	}
}

// Start begins a new game on the current difficulty.
func (c *Controller) Start() {
	c.start(c.engine.Difficulty())
}

// start drops any move in flight without spawning and starts a game.
func (c *Controller) start(d game.Difficulty) {
	c.anim.Cancel()
	c.inCycle = false
	c.newlyWon = false
	c.keepPlaying = false
	c.lastDelta = 0
	c.lastMove = game.MoveResult{}
	c.started = true

	c.engine.StartGameWith(d)
	c.audio.PlayGameStart()
	c.logger.Info("game started", "difficulty", d, "best", c.engine.BestScore())
}

// Started reports whether a game has been started.
func (c *Controller) Started() bool {
	return c.started
}

// Blocked reports whether a move would be rejected right now.
func (c *Controller) Blocked() bool {
	return c.engine.GameOver() ||
		(c.engine.Won() && !c.keepPlaying) ||
		c.anim.Animating() ||
		c.pending != nil
}

// HandleMove applies a move if input is accepted. Before the first game,
// any direction starts the game instead. It reports whether the board
// changed.
func (c *Controller) HandleMove(dir game.Direction) bool {
	if !c.started {
		c.Start()
		return false
	}
	if c.Blocked() {
		return false
	}

	wonBefore := c.engine.Won()
	res := c.engine.Move(dir)
	if !res.Moved {
		return false
	}

	c.audio.PlayMove()
	if res.ScoreDelta > 0 {
		c.audio.PlayScoreGain(res.ScoreDelta)
	}
	c.lastDelta = res.ScoreDelta
	c.lastMove = res
	c.inCycle = true
	c.newlyWon = !wonBefore && c.engine.Won()

	c.logger.Debug("move", "dir", dir, "events", len(res.Events), "merges", res.Merges(), "delta", res.ScoreDelta)
	c.anim.Start(res.Events, c.completeCycle)
	return true
}

// completeCycle runs once per accepted move, after its animation.
func (c *Controller) completeCycle() {
	c.inCycle = false
	c.engine.SpawnTile()

	if c.engine.CheckTerminal() {
		c.audio.PlayGameOver()
		c.logger.Info("game over", "score", c.engine.Score(), "max_tile", c.engine.Grid().MaxTile())
	} else if c.newlyWon {
		c.audio.PlayWin()
		c.logger.Info("won", "score", c.engine.Score())
	}
	c.newlyWon = false
}

// LastMove returns the result of the most recent accepted move.
func (c *Controller) LastMove() game.MoveResult {
	return c.lastMove
}

// Frame advances and draws the animation. It reports whether an animation
// is still running.
func (c *Controller) Frame() bool {
	return c.anim.Frame()
}

// Settle finishes the move in flight immediately: the animation is dropped
// and the spawn and terminal check happen now.
func (c *Controller) Settle() {
	c.anim.Cancel()
	if c.inCycle {
		c.completeCycle()
	}
}

// Resize handles a viewport change. Animations restart from a clean
// state, so the move in flight is settled.
func (c *Controller) Resize() {
	if c.anim.Animating() {
		c.logger.Debug("resize cancelled animation", "phase", c.anim.Phase())
	}
	c.Settle()
}

// NewGame abandons the current game without spawning for the move in
// flight and starts a fresh one.
func (c *Controller) NewGame() {
	c.pending = nil
	c.Start()
}

// RequestDifficulty asks to switch difficulty. Switching restarts the game,
// so a different difficulty waits for ConfirmDifficulty; it returns true
// in that case. Requesting the current difficulty does nothing.
func (c *Controller) RequestDifficulty(d game.Difficulty) bool {
	d.Profile()
	if d == c.engine.Difficulty() {
		c.pending = nil
		return false
	}
	c.pending = &d
	return true
}

// CycleDifficulty requests the next difficulty in order.
func (c *Controller) CycleDifficulty() bool {
	return c.RequestDifficulty(c.engine.Difficulty().Next())
}

// ConfirmDifficulty applies or discards the pending difficulty.
func (c *Controller) ConfirmDifficulty(ok bool) {
	if c.pending == nil {
		return
	}
	d := *c.pending
	c.pending = nil
	if !ok {
		return
	}

	c.logger.Info("difficulty changed", "from", c.engine.Difficulty(), "to", d)
	c.start(d)
}

// KeepPlaying dismisses the win banner so play can continue. It reports
// whether the request was applicable.
func (c *Controller) KeepPlaying() bool {
	if !c.engine.Won() || c.engine.GameOver() || c.keepPlaying {
		return false
	}
	c.keepPlaying = true
	return true
}

// ToggleMute flips the sound effects mute and returns the new state.
func (c *Controller) ToggleMute() bool {
	c.audio.SetMuted(!c.audio.Muted())
	return c.audio.Muted()
}

// Muted reports whether sound effects are silenced.
func (c *Controller) Muted() bool {
	return c.audio.Muted()
}

// SetTiming changes the animation timing.
func (c *Controller) SetTiming(t anim.Timing) {
	c.anim.SetTiming(t)
}

// Difficulty returns the active difficulty.
func (c *Controller) Difficulty() game.Difficulty {
	return c.engine.Difficulty()
}

// View returns the current state.
func (c *Controller) View() State {
	snap := c.engine.Snapshot()
	st := State{
		Snapshot:    snap,
		Phase:       c.anim.Phase(),
		LastDelta:   c.lastDelta,
		Started:     c.started,
		KeepPlaying: c.keepPlaying,
	}
	if c.pending != nil {
		d := *c.pending
		st.PendingDifficulty = &d
	}

	// Banners wait for the animation so they appear over the settled board.
	switch {
	case c.anim.Animating() || c.inCycle:
	case snap.GameOver:
		st.Banner = BannerGameOver
	case snap.Won && !c.keepPlaying:
		st.Banner = BannerWon
	}
	return st
}

// Close releases the audio device.
func (c *Controller) Close() error {
	return c.audio.Close()
}
