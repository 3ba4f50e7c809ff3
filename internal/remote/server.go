// Package remote serves games over WebSocket. Each connection owns one
// session; the client animates moves itself from the reported events.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/input"
	"github.com/zenvertao/2048-game/internal/logging"
	"github.com/zenvertao/2048-game/internal/session"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	outboxSize     = 16
)

// Config holds configuration for the WebSocket server.
type Config struct {
	Address        string
	Difficulty     game.Difficulty
	SwipeThreshold float64 // In client pixels
	Seed           int64   // Zero seeds each session from the clock
}

// Server is the WebSocket game server.
type Server struct {
	config   Config
	store    game.BestScoreStore
	logger   *log.Logger
	upgrader websocket.Upgrader
	conns    *registry
	http     *http.Server
}

// NewServer creates a server. store may be nil.
func NewServer(cfg Config, store game.BestScoreStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = input.DefaultSwipeThreshold
	}

	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: newRegistry(),
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: /ws for games and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.conns.len(),
	})
}

// handleWS upgrades the request and runs one session until the client
// disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id[:8])

	ctrl := session.New(session.Options{
		Difficulty: s.config.Difficulty,
		Seed:       s.config.Seed,
		Store:      s.store,
		Timing:     anim.DefaultTiming(),
		Logger:     logger,
	})
	defer ctrl.Close()

	out := NewOutbox(outboxSize)
	s.conns.add(id, out)
	defer s.conns.remove(id)

	logger.Info("client connected", "remote", r.RemoteAddr)
	defer logger.Info("client disconnected", "remote", r.RemoteAddr)

	go s.writePump(ws, out)
	defer out.Close()

	ctrl.Start()
	s.send(out, logger, ServerMessage{Type: TypeHello, Session: id, State: stateOf(ctrl)})
	s.readPump(ws, ctrl, out, logger)
}

// readPump applies client requests in order until the connection fails.
func (s *Server) readPump(ws *websocket.Conn, ctrl *session.Controller, out *Outbox, logger *log.Logger) {
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("read failed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.send(out, logger, ServerMessage{Type: TypeError, Error: "malformed message"})
			continue
		}
		s.send(out, logger, s.apply(ctrl, msg))
	}
}

// apply runs one request against the session and builds the reply. Moves
// settle immediately: the spawn and terminal check happen before replying.
func (s *Server) apply(ctrl *session.Controller, msg ClientMessage) ServerMessage {
	switch msg.Type {
	case TypeMove, TypeSwipe:
		dir, err := s.direction(msg)
		if err != nil {
			return ServerMessage{Type: TypeError, Error: err.Error()}
		}
		if !ctrl.HandleMove(dir) {
			return ServerMessage{Type: TypeMoved, State: stateOf(ctrl)}
		}
		ctrl.Settle()
		res := ctrl.LastMove()
		return ServerMessage{
			Type:       TypeMoved,
			Moved:      true,
			Events:     res.Events,
			ScoreDelta: res.ScoreDelta,
			State:      stateOf(ctrl),
		}

	case TypeNewGame:
		ctrl.NewGame()

	case TypeKeepPlaying:
		ctrl.KeepPlaying()

	case TypeDifficulty:
		d, err := game.ParseDifficulty(msg.Difficulty)
		if err != nil {
			return ServerMessage{Type: TypeError, Error: err.Error()}
		}
		if ctrl.RequestDifficulty(d) {
			ctrl.ConfirmDifficulty(true)
		}

	case TypeState:

	default:
		return ServerMessage{Type: TypeError, Error: fmt.Sprintf("unknown message type %q", msg.Type)}
	}

	return ServerMessage{Type: TypeState, State: stateOf(ctrl)}
}

func (s *Server) direction(msg ClientMessage) (game.Direction, error) {
	if msg.Type == TypeMove {
		return game.ParseDirection(msg.Direction)
	}
	dir, ok := input.DetectSwipe(msg.DX, msg.DY, s.config.SwipeThreshold)
	if !ok {
		return 0, errors.New("swipe too short")
	}
	return dir, nil
}

func stateOf(ctrl *session.Controller) *session.State {
	st := ctrl.View()
	return &st
}

func (s *Server) send(out *Outbox, logger *log.Logger, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("encode reply", "type", msg.Type, "error", err)
		return
	}
	out.Send(data)
}

// writePump drains the outbox to the connection and keeps it alive with
// pings.
func (s *Server) writePump(ws *websocket.Conn, out *Outbox) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	for {
		select {
		case msg := <-out.Messages():
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-out.Done():
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting WebSocket server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("websocket server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down WebSocket server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.conns.closeAll()
	return s.http.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
