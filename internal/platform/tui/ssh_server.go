package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/logging"
	"github.com/zenvertao/2048-game/internal/session"
	"github.com/zenvertao/2048-game/internal/theme"
)

// SSHServerConfig configures the game server reachable over SSH.
type SSHServerConfig struct {
	Address string // host:port, e.g. ":2048"

	// HostKeyPath names the server key. A missing key is generated on
	// first start.
	HostKeyPath string

	// IdleTimeout closes connections with no traffic for this long.
	IdleTimeout time.Duration

	// Per-session game settings.
	Difficulty     game.Difficulty
	Theme          theme.Theme
	Timing         anim.Timing
	FrameInterval  time.Duration
	SwipeThreshold float64
}

// SSHServer runs one independent game per SSH session. Sessions share the
// best score store and nothing else.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  game.BestScoreStore
	logger *log.Logger
}

// NewSSHServer builds the server. store may be nil.
func NewSSHServer(cfg SSHServerConfig, store game.BestScoreStore, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: host key directory: %w", err)
	}

	s := &SSHServer{cfg: cfg, store: store, logger: logger}

	// Middleware runs last to first: log, require a PTY, then play.
	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			activeterm.Middleware(),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: %w", err)
	}
	s.srv = srv
	return s, nil
}

// newProgram builds the game for one session. Remote players get no sound;
// it would play on the server host.
func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	id := uuid.NewString()
	logger := s.logger.With("session", id[:8], "user", sess.User())

	model := NewModel(Options{
		Session: session.Options{
			Difficulty: s.cfg.Difficulty,
			Store:      s.store,
			Timing:     s.cfg.Timing,
			Logger:     logger,
		},
		Theme:          s.cfg.Theme,
		FrameInterval:  s.cfg.FrameInterval,
		SwipeThreshold: s.cfg.SwipeThreshold,
		Renderer:       bubbletea.MakeRenderer(sess),
		Logger:         logger,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		start := time.Now()
		logger.Info("session opened")
		defer func() {
			logger.Info("session closed", "duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "proto", "ssh", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		err := s.srv.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down", "proto", "ssh")
		return s.Shutdown()
	}
}

// Shutdown stops accepting sessions and waits up to 10s for open ones.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
