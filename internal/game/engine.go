package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// MoveEvent describes one tile that moved during a single Move call.
// For a merge, MergedValue holds the doubled value written to To; the
// tile already sitting at To (or arriving there by a non-merge event)
// is the other half of the pair.
type MoveEvent struct {
	OriginValue int      `json:"origin_value"`
	MergedValue int      `json:"merged_value,omitempty"`
	From        Position `json:"from"`
	To          Position `json:"to"`
	IsMerge     bool     `json:"is_merge"`
}

// MoveResult is the outcome of Engine.Move.
type MoveResult struct {
	Moved      bool        `json:"moved"`
	Events     []MoveEvent `json:"events"`
	ScoreDelta int         `json:"score_delta"`
}

// Merges returns the number of merge events in the result.
func (r MoveResult) Merges() int {
	n := 0
	for _, ev := range r.Events {
		if ev.IsMerge {
			n++
		}
	}
	return n
}

// BestScoreStore persists the best score between sessions.
// An absent value must be reported as 0 with a nil error.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Grid       Grid       `json:"grid"`
	Score      int        `json:"score"`
	BestScore  int        `json:"best_score"`
	GameOver   bool       `json:"game_over"`
	Won        bool       `json:"won"`
	Difficulty Difficulty `json:"difficulty"`
}

// Engine owns the grid and applies moves, spawns and terminal checks.
// It is not safe for concurrent use.
type Engine struct {
	grid       Grid
	score      int
	best       int
	gameOver   bool
	won        bool
	difficulty Difficulty

	rng    *rand.Rand
	store  BestScoreStore
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the spawn RNG for reproducible games.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithStore sets the best-score persistence collaborator.
func WithStore(s BestScoreStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine with an empty grid. The best score is loaded
// from the store, if any. Call StartGame to seed the first tiles.
func NewEngine(d Difficulty, opts ...Option) *Engine {
	d.Profile() // panics on an invalid value

	e := &Engine{difficulty: d}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	if e.store != nil {
		best, err := e.store.LoadBestScore()
		if err != nil {
			e.logger.Warn("load best score", "error", err)
		} else if best > 0 {
			e.best = best
		}
	}
	return e
}

// StartGame clears the board and score, resets the terminal flags and
// places two random tiles.
func (e *Engine) StartGame() Snapshot {
	e.grid = Grid{}
	e.score = 0
	e.gameOver = false
	e.won = false

	e.SpawnTile()
	e.SpawnTile()

	return e.Snapshot()
}

// StartGameWith switches to a new difficulty profile and starts a game.
func (e *Engine) StartGameWith(d Difficulty) Snapshot {
	d.Profile()
	e.difficulty = d
	return e.StartGame()
}

// Move slides every tile as far as possible in dir, merging equal pairs.
// A no-op move leaves all state untouched.
func (e *Engine) Move(dir Direction) MoveResult {
	dr, dc := dir.Vector()
	rows, cols := traversal(dir)

	var merged [Size][Size]bool
	var events []MoveEvent
	rawSum := 0

	for _, r := range rows {
		for _, c := range cols {
			from := Position{Row: r, Col: c}
			value := e.grid.At(from)
			if value == 0 {
				continue
			}

			farthest, next, hasNext := e.findFarthest(from, dr, dc)

			if hasNext && !merged[next.Row][next.Col] && e.grid.At(next) == value {
				result := value * 2
				e.grid.Set(next, result)
				e.grid.Set(from, 0)
				merged[next.Row][next.Col] = true
				rawSum += result

				events = append(events, MoveEvent{
					OriginValue: value,
					MergedValue: result,
					From:        from,
					To:          next,
					IsMerge:     true,
				})

				if result == WinValue && !e.won {
					e.won = true
				}
				continue
			}

			if farthest != from {
				e.grid.Set(farthest, value)
				e.grid.Set(from, 0)
				events = append(events, MoveEvent{
					OriginValue: value,
					From:        from,
					To:          farthest,
				})
			}
		}
	}

	if len(events) == 0 {
		return MoveResult{}
	}

	delta := int(math.Round(float64(rawSum) * e.difficulty.Profile().ScoreBonusMultiplier))
	e.addScore(delta)

	return MoveResult{Moved: true, Events: events, ScoreDelta: delta}
}

// findFarthest walks from p along (dr, dc) over empty cells. It returns the
// last empty cell reached (p itself if none) and the first blocking cell
// beyond it, if that cell is on the board.
func (e *Engine) findFarthest(p Position, dr, dc int) (farthest, next Position, hasNext bool) {
	farthest = p
	next = p.Add(dr, dc)
	for next.InBounds() && e.grid.At(next) == 0 {
		farthest = next
		next = next.Add(dr, dc)
	}
	return farthest, next, next.InBounds()
}

func (e *Engine) addScore(delta int) {
	e.score += delta
	if e.score <= e.best {
		return
	}
	e.best = e.score
	if e.store == nil {
		return
	}
	if err := e.store.SaveBestScore(e.best); err != nil {
		e.logger.Warn("save best score", "score", e.best, "error", err)
	}
}

// SpawnTile places a 2 or 4 on a uniformly chosen empty cell.
// Returns the placed position and value, or false if the grid is full.
func (e *Engine) SpawnTile() (Position, int, bool) {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return Position{}, 0, false
	}

	cell := empty[e.rng.Intn(len(empty))]
	value := 2
	if e.rng.Float64() < e.difficulty.Profile().FourSpawnProbability {
		value = 4
	}
	e.grid.Set(cell, value)
	return cell, value, true
}

// HasPossibleMoves returns true if an empty cell exists or two adjacent
// cells hold the same value.
func (e *Engine) HasPossibleMoves() bool {
	return !e.grid.IsFull() || e.grid.HasAdjacentPair()
}

// CheckTerminal sets the game-over flag when no move is possible and
// returns it. Once set, the flag stays until the next StartGame.
func (e *Engine) CheckTerminal() bool {
	if !e.HasPossibleMoves() {
		e.gameOver = true
	}
	return e.gameOver
}

// Restore replaces the session state with s. The best score only moves
// up. Panics if a cell holds a value that is not a power of two of at
// least 2.
func (e *Engine) Restore(s Snapshot) {
	for r := range Size {
		for c := range Size {
			if v := s.Grid[r][c]; v != 0 && (v < 2 || v&(v-1) != 0) {
				panic(fmt.Sprintf("game: invalid tile %d at (%d, %d)", v, r, c))
			}
		}
	}
	s.Difficulty.Profile()

	e.grid = s.Grid
	e.score = s.Score
	e.gameOver = s.GameOver
	e.won = s.Won
	e.difficulty = s.Difficulty
	if s.BestScore > e.best {
		e.best = s.BestScore
	}
}

// Grid returns a copy of the board.
func (e *Engine) Grid() Grid { return e.grid }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// BestScore returns the best score seen, including the current session.
func (e *Engine) BestScore() int { return e.best }

// GameOver reports whether no moves remain.
func (e *Engine) GameOver() bool { return e.gameOver }

// Won reports whether a 2048 tile has been produced this session.
func (e *Engine) Won() bool { return e.won }

// Difficulty returns the active difficulty.
func (e *Engine) Difficulty() Difficulty { return e.difficulty }

// Snapshot returns a copy of the session state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:       e.grid,
		Score:      e.score,
		BestScore:  e.best,
		GameOver:   e.gameOver,
		Won:        e.won,
		Difficulty: e.difficulty,
	}
}
