package game

import (
	"fmt"
	"strings"
)

// Difficulty is one of the fixed difficulty profiles.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Difficulties lists every difficulty in order of increasing challenge.
var Difficulties = [...]Difficulty{Easy, Normal, Hard}

// Profile holds the numeric tuning of a difficulty.
type Profile struct {
	Name                 string
	FourSpawnProbability float64 // Chance a spawned tile is a 4 instead of a 2
	ScoreBonusMultiplier float64 // Applied to the raw merge sum of each move
}

var profiles = [...]Profile{
	Easy:   {Name: "easy", FourSpawnProbability: 0.10, ScoreBonusMultiplier: 1.5},
	Normal: {Name: "normal", FourSpawnProbability: 0.20, ScoreBonusMultiplier: 1.0},
	Hard:   {Name: "hard", FourSpawnProbability: 0.30, ScoreBonusMultiplier: 0.8},
}

// Profile returns the tuning tuple. Panics on an out-of-range value.
func (d Difficulty) Profile() Profile {
	if d < Easy || d > Hard {
		panic(fmt.Sprintf("game: invalid difficulty %d", int(d)))
	}
	return profiles[d]
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	if d < Easy || d > Hard {
		return "unknown"
	}
	return profiles[d].Name
}

// Next returns the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty {
	return Difficulties[(int(d)+1)%len(Difficulties)]
}

// ParseDifficulty resolves a difficulty name. Unknown names are an error.
func ParseDifficulty(name string) (Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range Difficulties {
		if profiles[d].Name == key {
			return d, nil
		}
	}
	return Normal, fmt.Errorf("game: unknown difficulty %q (want easy, normal or hard)", name)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Easy || d > Hard {
		return nil, fmt.Errorf("game: invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
