package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zenvertao/2048-game/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// ScreenRenderer converts a Screen buffer to styled terminal output.
// Styles are cached per color pair.
type ScreenRenderer struct {
	r      *lipgloss.Renderer
	styles map[colorPair]lipgloss.Style
}

// NewScreenRenderer creates a renderer bound to a lipgloss renderer. A nil
// renderer uses the process default.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{r: r, styles: make(map[colorPair]lipgloss.Style)}
}

func (sr *ScreenRenderer) style(p colorPair) lipgloss.Style {
	if st, ok := sr.styles[p]; ok {
		return st
	}
	st := sr.r.NewStyle()
	if p.fg != core.NoColor {
		st = st.Foreground(lipgloss.Color(p.fg))
	}
	if p.bg != core.NoColor {
		st = st.Background(lipgloss.Color(p.bg))
	}
	sr.styles[p] = st
	return st
}

// Render converts s to a string. Adjacent cells with the same colors are
// grouped to keep escape sequences short.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{fg: cell.FG, bg: cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != pair.fg || cell.BG != pair.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(pair).Render(run.String()))
		}
	}
	return sb.String()
}
