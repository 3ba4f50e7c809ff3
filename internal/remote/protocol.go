package remote

import (
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/session"
)

// Client message types.
const (
	TypeMove        = "move"
	TypeSwipe       = "swipe"
	TypeNewGame     = "new_game"
	TypeKeepPlaying = "keep_playing"
	TypeDifficulty  = "difficulty"
	TypeState       = "state"
)

// Server message types.
const (
	TypeHello = "hello"
	TypeMoved = "moved"
	TypeError = "error"
)

// ClientMessage is one request from a browser or bot.
//
//	{"type":"move","direction":"left"}
//	{"type":"swipe","dx":-42,"dy":3}
//	{"type":"difficulty","difficulty":"hard"}
type ClientMessage struct {
	Type       string  `json:"type"`
	Direction  string  `json:"direction,omitempty"`
	DX         float64 `json:"dx,omitempty"`
	DY         float64 `json:"dy,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`
}

// ServerMessage is one reply. State is the settled session after the
// request; Events lists the tile movements of an accepted move so the
// client can animate it.
type ServerMessage struct {
	Type       string           `json:"type"`
	Session    string           `json:"session,omitempty"`
	Moved      bool             `json:"moved,omitempty"`
	Events     []game.MoveEvent `json:"events,omitempty"`
	ScoreDelta int              `json:"score_delta,omitempty"`
	State      *session.State   `json:"state,omitempty"`
	Error      string           `json:"error,omitempty"`
}
