package audio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// noteFreqs maps note names to frequencies in Hz.
var noteFreqs = map[string]float64{
	"C4": 261.63, "D4": 293.66, "E4": 329.63, "F4": 349.23, "G4": 392.00, "A4": 440.00, "B4": 493.88,
	"C5": 523.25, "D5": 587.33, "E5": 659.25, "F5": 698.46, "G5": 783.99, "A5": 880.00, "B5": 987.77,
	"C6": 1046.50, "D6": 1174.66, "E6": 1318.51, "G6": 1567.98,
}

// Note is one tone of a sound effect.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Waveform is an oscillator shape.
type Waveform int

const (
	Sine Waveform = iota
	Triangle
)

// Preset is a short melody written as space separated "<note><octave>/<div>"
// tokens, where div is the note value (4 = quarter note) at BPM.
type Preset struct {
	Name     string
	BPM      int
	Waveform Waveform
	Score    string
}

var (
	presetMove        = Preset{Name: "move", BPM: 300, Waveform: Triangle, Score: "G4/32"}
	presetScoreSmall  = Preset{Name: "score_small", BPM: 280, Waveform: Sine, Score: "C5/16 E5/16"}
	presetScoreMedium = Preset{Name: "score_medium", BPM: 260, Waveform: Triangle, Score: "E5/16 G5/16 C6/16"}
	presetScoreLarge  = Preset{Name: "score_large", BPM: 240, Waveform: Triangle, Score: "G5/16 B5/16 D6/16 G6/16"}
	presetScoreHuge   = Preset{Name: "score_huge", BPM: 220, Waveform: Sine, Score: "C5/16 E5/16 G5/16 C6/16 E6/16"}
	presetWin         = Preset{Name: "win", BPM: 180, Waveform: Triangle, Score: "C5/8 E5/8 G5/8 C6/4"}
	presetGameOver    = Preset{Name: "game_over", BPM: 120, Waveform: Sine, Score: "G4/8 E4/8 C4/4"}
	presetGameStart   = Preset{Name: "game_start", BPM: 180, Waveform: Triangle, Score: "C5/8 E5/8 G5/8 C6/8"}
	presetGameEnd     = Preset{Name: "game_end_music", BPM: 100, Waveform: Sine, Score: "A4/4 F4/4 D4/4 C4/2"}
)

// Presets lists every built-in sound effect.
var Presets = []Preset{
	presetMove, presetScoreSmall, presetScoreMedium, presetScoreLarge, presetScoreHuge,
	presetWin, presetGameOver, presetGameStart, presetGameEnd,
}

// ScorePreset picks the reward sound for a score gain.
func ScorePreset(delta int) Preset {
	switch {
	case delta <= 8:
		return presetScoreSmall
	case delta <= 64:
		return presetScoreMedium
	case delta <= 512:
		return presetScoreLarge
	default:
		return presetScoreHuge
	}
}

var noteToken = regexp.MustCompile(`^([A-Ga-g]#?)(\d)/(\d+)$`)

// ParseScore converts a score string into notes.
func ParseScore(score string, bpm int) ([]Note, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("audio: bpm must be positive, got %d", bpm)
	}
	quarter := time.Minute / time.Duration(bpm)

	var notes []Note
	for _, tok := range strings.Fields(score) {
		m := noteToken.FindStringSubmatch(tok)
		if m == nil {
			return nil, fmt.Errorf("audio: malformed note %q", tok)
		}
		freq, ok := noteFreqs[strings.ToUpper(m[1])+m[2]]
		if !ok {
			return nil, fmt.Errorf("audio: unknown note %q", tok)
		}
		div, err := strconv.Atoi(m[3])
		if err != nil || div <= 0 {
			return nil, fmt.Errorf("audio: bad note value in %q", tok)
		}
		notes = append(notes, Note{Freq: freq, Duration: quarter * 4 / time.Duration(div)})
	}
	return notes, nil
}
