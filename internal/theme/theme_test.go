package theme

import (
	"math"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"classic", Classic, false},
		{"Dark", Dark, false},
		{" pastel", Pastel, false},
		{"neon", Neon, false},
		{"solarized", Classic, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNextCycles(t *testing.T) {
	th := Classic
	seen := map[Theme]bool{}
	for range Themes {
		seen[th] = true
		th = th.Next()
	}
	if th != Classic || len(seen) != len(Themes) {
		t.Errorf("Next() did not cycle through all themes: seen %v, ended at %v", seen, th)
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		theme Theme
		value int
		want  string
	}{
		{Classic, 2, "#eee4da"},
		{Classic, 2048, "#edc22e"},
		{Dark, 8, "#26C6DA"},
		{Neon, 16, "#FF2079"},
		{Classic, 4096, FallbackTile},
		{Pastel, 3, FallbackTile},
	}

	for _, tt := range tests {
		if got := tt.theme.TileColor(tt.value); got != tt.want {
			t.Errorf("%s.TileColor(%d) = %s, want %s", tt.theme, tt.value, got, tt.want)
		}
	}
}

func TestTextColor(t *testing.T) {
	tests := []struct {
		name  string
		theme Theme
		value int
		want  string
	}{
		{"classic small tile dark text", Classic, 4, "#776e65"},
		{"classic large tile light text", Classic, 8, "#f9f6f2"},
		{"neon bright tile dark text", Neon, 2, "#0F1020"},
		{"neon deep tile light text", Neon, 16, "#FFFFFF"},
		{"pastel always dark grey", Pastel, 512, "#5D5A5A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.theme.TextColor(tt.value); got != tt.want {
				t.Errorf("TextColor(%d) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance("#FFFFFF"); math.Abs(got-1) > 1e-6 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Luminance("#000000"); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
	if got := Luminance("not a colour"); got != 0 {
		t.Errorf("Luminance(invalid) = %v, want 0", got)
	}
}

func TestGlow(t *testing.T) {
	if got := Classic.Glow(2, 0); !strings.EqualFold(got, "#eee4da") {
		t.Errorf("Glow(2, 0) = %s, want unchanged tile colour", got)
	}
	if got := Classic.Glow(2, 1); !strings.EqualFold(got, "#ffffff") {
		t.Errorf("Glow(2, 1) = %s, want white", got)
	}
}

func TestThemeText(t *testing.T) {
	var th Theme
	if err := th.UnmarshalText([]byte("neon")); err != nil || th != Neon {
		t.Errorf("UnmarshalText(neon) = %v, %v", th, err)
	}
	if err := th.UnmarshalText([]byte("sepia")); err == nil {
		t.Error("UnmarshalText should reject unknown themes")
	}
	if b, err := Dark.MarshalText(); err != nil || string(b) != "dark" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
}
