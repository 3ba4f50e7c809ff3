package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/zenvertao/2048-game/internal/input"
	"github.com/zenvertao/2048-game/internal/logging"
	"github.com/zenvertao/2048-game/internal/session"
	"github.com/zenvertao/2048-game/internal/theme"
)

// cellAspect approximates how much taller a terminal cell is than it is
// wide, so vertical drags are measured in the same units as horizontal ones.
const cellAspect = 2

// hudLines is the height of everything drawn around the board.
const hudLines = 6

// Options configures a Model.
type Options struct {
	Session        session.Options // Renderer is replaced by the board
	Theme          theme.Theme
	FrameInterval  time.Duration
	SwipeThreshold float64
	Renderer       *lipgloss.Renderer // Nil uses the process default
	Logger         *log.Logger
}

type styles struct {
	title  lipgloss.Style
	box    lipgloss.Style
	label  lipgloss.Style
	delta  lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("130")).
			Padding(0, 2),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		label:  r.NewStyle().Foreground(lipgloss.Color("245")),
		delta:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		status: r.NewStyle().Foreground(lipgloss.Color("241")),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
		warn:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	ctrl     *session.Controller
	board    *Board
	screen   *ScreenRenderer
	styles   styles
	keys     KeyMap
	help     help.Model
	tracker  *input.Tracker
	logger   *log.Logger
	interval time.Duration

	width    int
	height   int
	ticking  bool // A FrameMsg is scheduled
	quitting bool
}

// NewModel creates a model and draws the initial empty board.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	board := NewBoard(opts.Theme)
	opts.Session.Renderer = board
	if opts.Session.Logger == nil {
		opts.Session.Logger = opts.Logger
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctrl:     session.New(opts.Session),
		board:    board,
		screen:   NewScreenRenderer(opts.Renderer),
		styles:   newStyles(opts.Renderer),
		keys:     DefaultKeyMap(),
		help:     h,
		tracker:  input.NewTracker(opts.SwipeThreshold),
		logger:   opts.Logger,
		interval: opts.FrameInterval,
	}
	m.draw()
	return m
}

// Init implements tea.Model. The board waits for the first input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.tracker.Cancel()
		m.ctrl.Resize()
		return m.redraw()

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// A pending difficulty change takes every key until answered.
	if m.ctrl.View().PendingDifficulty != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.ctrl.ConfirmDifficulty(true)
		case key.Matches(msg, m.keys.Cancel):
			m.ctrl.ConfirmDifficulty(false)
		}
		return m.redraw()
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.board.SetTheme(m.board.Theme().Next())
		m.logger.Debug("theme changed", "theme", m.board.Theme())
		return m.redraw()
	case key.Matches(msg, m.keys.Mute):
		m.logger.Debug("mute toggled", "muted", m.ctrl.ToggleMute())
		return m, nil
	}

	if !m.ctrl.Started() {
		m.ctrl.Start()
		return m.redraw()
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.ctrl.HandleMove(dir)
		return m.redraw()
	}

	switch {
	case key.Matches(msg, m.keys.NewGame):
		m.ctrl.NewGame()
	case key.Matches(msg, m.keys.Difficulty):
		m.ctrl.CycleDifficulty()
	case key.Matches(msg, m.keys.KeepPlaying):
		m.ctrl.KeepPlaying()
	default:
		return m, nil
	}
	return m.redraw()
}

// handleMouse turns a left-button drag into a swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := float64(msg.X), float64(msg.Y)*cellAspect

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.tracker.Press(x, y)
		}
		return m, nil

	case tea.MouseActionRelease:
		dir, ok := m.tracker.Release(x, y)
		if !ok {
			return m, nil
		}
		m.ctrl.HandleMove(dir)
		return m.redraw()
	}

	return m, nil
}

// handleFrame advances the animation and keeps ticking while it runs.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.draw() {
		return m, frameCmd(m.interval)
	}
	m.ticking = false
	return m, nil
}

// redraw draws the current state and starts the frame loop if an
// animation began.
func (m Model) redraw() (tea.Model, tea.Cmd) {
	if m.draw() && !m.ticking {
		m.ticking = true
		return m, frameCmd(m.interval)
	}
	return m, nil
}

// draw renders one frame into the board and reports whether an animation
// is running.
func (m Model) draw() bool {
	animating := m.ctrl.Frame()
	if animating {
		return true
	}

	st := m.ctrl.View()
	switch {
	case !st.Started:
		m.board.DrawBanner("2048", "", "Press any key to start")
	case st.PendingDifficulty != nil:
		m.board.DrawBanner(fmt.Sprintf("Switch to %s?", *st.PendingDifficulty), "The game restarts.", "", "y / n")
	case st.Banner == session.BannerGameOver:
		m.board.DrawBanner("Game over!", fmt.Sprintf("Score %d", st.Score), "", "n: new game")
	case st.Banner == session.BannerWon:
		m.board.DrawBanner("You win!", fmt.Sprintf("Score %d", st.Score), "", "c: keep playing", "n: new game")
	}
	return false
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width > 0 && (m.width < BoardW || m.height < BoardH+hudLines) {
		return m.renderTooSmall()
	}

	st := m.ctrl.View()

	scoreBox := m.styles.box.Render(m.styles.label.Render("SCORE ") + fmt.Sprintf("%d", st.Score))
	bestBox := m.styles.box.Render(m.styles.label.Render("BEST ") + fmt.Sprintf("%d", st.BestScore))
	delta := ""
	if st.LastDelta > 0 {
		delta = m.styles.delta.Render(fmt.Sprintf(" +%d", st.LastDelta))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("2048"), "  ", scoreBox, " ", bestBox, delta)

	sound := "on"
	if m.ctrl.Muted() {
		sound = "off"
	}
	status := m.styles.status.Render(fmt.Sprintf("%s · %s · sound %s",
		st.Difficulty, m.board.Theme(), sound))

	var footer string
	if st.PendingDifficulty != nil {
		footer = m.help.ShortHelpView(m.keys.ConfirmHelp())
	} else {
		footer = m.help.View(m.keys)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		m.screen.Render(m.board.Screen()),
		status,
		m.styles.help.Render(footer),
	)

	if m.width == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// renderTooSmall shows a "window too small" message.
func (m Model) renderTooSmall() string {
	msg := strings.Join([]string{
		m.styles.warn.Render("Window too small"),
		fmt.Sprintf("Need %dx%d, have %dx%d", BoardW, BoardH+hudLines, m.width, m.height),
	}, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// State returns the session state, for tests and hosts.
func (m Model) State() session.State {
	return m.ctrl.View()
}

// Close releases the session's audio device.
func (m Model) Close() error {
	return m.ctrl.Close()
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
