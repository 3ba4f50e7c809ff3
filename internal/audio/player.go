// Package audio plays the short note-sequence sound effects of the game.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player is the sound effect sink used by the game session.
type Player interface {
	PlayMove()
	PlayScoreGain(delta int)
	PlayWin()
	PlayGameOver()
	PlayGameStart()
	SetMuted(muted bool)
	Muted() bool
	Close() error
}

const (
	// minInterval drops effects requested in quick succession.
	minInterval    = 30 * time.Millisecond
	scoreGainDelay = 80 * time.Millisecond
	gameOverDelay  = 800 * time.Millisecond
)

// SoundManager plays effects through the system speaker.
type SoundManager struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	volume   float64
	muted    bool
	lastPlay time.Time
	logger   *log.Logger
	now      func() time.Time
}

// New returns a SoundManager, or a muted Nop player if the audio device
// cannot be opened. Disabled audio also yields Nop.
func New(enabled bool, volume float64, logger *log.Logger) Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if !enabled {
		return &Nop{muted: true}
	}
	sm, err := NewSoundManager(volume, logger)
	if err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return &Nop{muted: true}
	}
	return sm
}

// NewSoundManager opens the speaker and starts the effect mixer.
func NewSoundManager(volume float64, logger *log.Logger) (*SoundManager, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		logger: logger,
		now:    time.Now,
	}
	speaker.Play(sm.mixer)
	return sm, nil
}

// PlayMove plays the move click.
func (sm *SoundManager) PlayMove() {
	sm.play(presetMove, 0)
}

// PlayScoreGain plays a reward jingle sized to delta, slightly after the
// move click. Non-positive deltas are silent.
func (sm *SoundManager) PlayScoreGain(delta int) {
	if delta <= 0 {
		return
	}
	sm.play(ScorePreset(delta), scoreGainDelay)
}

// PlayWin plays the victory fanfare.
func (sm *SoundManager) PlayWin() {
	sm.play(presetWin, 0)
}

// PlayGameOver plays the closing tune followed by the game over motif.
func (sm *SoundManager) PlayGameOver() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.ready(0) {
		return
	}
	music, err := Render(presetGameEnd, sampleRate, sm.volume)
	if err != nil {
		sm.logger.Warn("render sound", "preset", presetGameEnd.Name, "error", err)
		return
	}
	motif, err := Render(presetGameOver, sampleRate, sm.volume)
	if err != nil {
		sm.logger.Warn("render sound", "preset", presetGameOver.Name, "error", err)
		return
	}
	sm.add(beep.Mix(music, Delayed(motif, sampleRate, gameOverDelay)))
}

// PlayGameStart plays the opening jingle.
func (sm *SoundManager) PlayGameStart() {
	sm.play(presetGameStart, 0)
}

// SetMuted silences or restores effects. Muting also cuts sounds in flight.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
	if muted {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether effects are silenced.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Close stops playback and releases the audio device.
func (sm *SoundManager) Close() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	speaker.Clear()
	speaker.Close()
	return nil
}

func (sm *SoundManager) play(p Preset, delay time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.ready(delay) {
		return
	}
	s, err := Render(p, sampleRate, sm.volume)
	if err != nil {
		sm.logger.Warn("render sound", "preset", p.Name, "error", err)
		return
	}
	if delay > 0 {
		s = Delayed(s, sampleRate, delay)
	}
	sm.add(s)
}

// ready applies mute and rate limiting to a sound starting after delay.
// Caller holds sm.mu.
func (sm *SoundManager) ready(delay time.Duration) bool {
	if sm.muted {
		return false
	}
	at := sm.now().Add(delay)
	if at.Sub(sm.lastPlay) < minInterval {
		return false
	}
	sm.lastPlay = at
	return true
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Nop is a silent Player. It still tracks the mute toggle so the UI can
// show it.
type Nop struct {
	muted bool
}

func (*Nop) PlayMove() {}
func (*Nop) PlayScoreGain(int) {}
func (*Nop) PlayWin() {}
func (*Nop) PlayGameOver() {}
func (*Nop) PlayGameStart() {}
func (n *Nop) SetMuted(m bool) { n.muted = m }
func (n *Nop) Muted() bool { return n.muted }
func (*Nop) Close() error { return nil }
