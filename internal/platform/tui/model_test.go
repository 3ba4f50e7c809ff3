package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/session"
	"github.com/zenvertao/2048-game/internal/theme"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(0, 0)}
	m := NewModel(Options{
		Session: session.Options{
			Difficulty: game.Normal,
			Seed:       3,
			Clock:      clock,
			Timing:     anim.DefaultTiming(),
		},
		Theme:          theme.Classic,
		SwipeThreshold: 3,
		Renderer:       lipgloss.NewRenderer(io.Discard),
	})
	return m, clock
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelStartsOnFirstKey(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Press any key to start") {
		t.Error("intro banner missing before the first key")
	}

	m, _ = update(m, runes("z"))
	st := m.State()
	if !st.Started || st.Grid.Count() != 2 {
		t.Errorf("after first key: started=%v tiles=%d", st.Started, st.Grid.Count())
	}
}

func TestModelMoveAnimatesThenSettles(t *testing.T) {
	m, clock := newTestModel(t)
	m, _ = update(m, runes("z"))

	// Two tiles on an empty board can always move in some direction.
	var cmd tea.Cmd
	moved := false
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown} {
		m, cmd = update(m, tea.KeyMsg{Type: k})
		if m.State().Phase != anim.Idle {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("no direction moved a two-tile board")
	}
	if cmd == nil || !m.ticking {
		t.Fatal("a move should start the frame loop")
	}

	for i := 0; i < 3 && m.ticking; i++ {
		clock.now = clock.now.Add(time.Second)
		m, cmd = update(m, FrameMsg(clock.now))
	}
	if m.ticking || cmd != nil {
		t.Error("frame loop should stop once the animation ends")
	}
	if st := m.State(); st.Phase != anim.Idle || st.Grid.Count() < 2 {
		t.Errorf("settled state = %+v", st)
	}
}

func TestModelDifficultyConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, runes("z"))

	m, _ = update(m, runes("x"))
	if !strings.Contains(m.View(), "Switch to hard?") {
		t.Error("confirmation prompt missing")
	}
	m, _ = update(m, runes("n"))
	if m.State().Difficulty != game.Normal || m.State().PendingDifficulty != nil {
		t.Error("declining should keep the difficulty")
	}

	m, _ = update(m, runes("x"))
	m, _ = update(m, runes("y"))
	if m.State().Difficulty != game.Hard {
		t.Errorf("difficulty = %v, want hard", m.State().Difficulty)
	}
}

func TestModelThemeAndMute(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, runes("t"))
	if m.board.Theme() != theme.Dark {
		t.Errorf("theme = %v, want dark", m.board.Theme())
	}
	m, _ = update(m, runes("m"))
	if !strings.Contains(m.View(), "sound off") {
		t.Error("status line should show sound off after muting")
	}
	if m.State().Started {
		t.Error("theme and mute keys should not start the game")
	}
}

func TestModelSwipeStartsGame(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease})
	if !m.State().Started {
		t.Error("a swipe should start the game")
	}

	// A short drag is not a swipe.
	before := m.State()
	m, _ = update(m, tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(m, tea.MouseMsg{X: 11, Y: 10, Action: tea.MouseActionRelease})
	if m.State().Grid != before.Grid {
		t.Error("a short drag should not move")
	}
}

func TestModelWindowTooSmall(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("expected a too-small message")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.View(), "SCORE") {
		t.Error("expected the HUD at a usable size")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(m, runes("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}
