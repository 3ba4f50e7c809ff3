package game

import (
	"encoding/json"
	"testing"
)

func TestDifficultyProfiles(t *testing.T) {
	tests := []struct {
		d     Difficulty
		four  float64
		bonus float64
	}{
		{Easy, 0.10, 1.5},
		{Normal, 0.20, 1.0},
		{Hard, 0.30, 0.8},
	}

	for _, tt := range tests {
		p := tt.d.Profile()
		if p.FourSpawnProbability != tt.four || p.ScoreBonusMultiplier != tt.bonus {
			t.Errorf("%s profile = %+v, want four=%v bonus=%v", tt.d, p, tt.four, tt.bonus)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{"Normal", Normal, false},
		{" hard ", Hard, false},
		{"nightmare", Normal, true},
		{"", Normal, true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyNext(t *testing.T) {
	if Easy.Next() != Normal || Normal.Next() != Hard || Hard.Next() != Easy {
		t.Error("Next() should cycle easy -> normal -> hard -> easy")
	}
}

func TestDifficultyInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewEngine with invalid difficulty should panic")
		}
	}()
	NewEngine(Difficulty(7))
}

func TestDifficultyJSON(t *testing.T) {
	snap := Snapshot{Difficulty: Hard}
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Difficulty != Hard {
		t.Errorf("round trip difficulty = %v, want hard", back.Difficulty)
	}

	var d Difficulty
	if err := d.UnmarshalText([]byte("impossible")); err == nil {
		t.Error("UnmarshalText should reject unknown names")
	}
}
