package tui

import (
	"strconv"

	"github.com/zenvertao/2048-game/internal/anim"
	"github.com/zenvertao/2048-game/internal/core"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/theme"
)

// Board geometry in terminal cells.
const (
	tileW = 7
	tileH = 3
	gapX  = 1
	gapY  = 1

	BoardW = game.Size*tileW + (game.Size+1)*gapX
	BoardH = game.Size*tileH + (game.Size+1)*gapY
)

// Board draws animation frames into a screen buffer sized to the board.
// It implements anim.Renderer.
type Board struct {
	screen *core.Screen
	theme  theme.Theme
}

var _ anim.Renderer = (*Board)(nil)

// NewBoard creates a board renderer with its own screen.
func NewBoard(t theme.Theme) *Board {
	return &Board{
		screen: core.NewScreen(BoardW, BoardH),
		theme:  t,
	}
}

// Screen returns the buffer the board draws into.
func (b *Board) Screen() *core.Screen {
	return b.screen
}

// Theme returns the active palette.
func (b *Board) Theme() theme.Theme {
	return b.theme
}

// SetTheme switches the palette used by subsequent frames.
func (b *Board) SetTheme(t theme.Theme) {
	b.theme = t
}

// cellRect returns the area of the tile at fractional grid coordinates.
func cellRect(row, col float64) core.Rect {
	return core.Rect{
		X: gapX + core.Round(col*(tileW+gapX)),
		Y: gapY + core.Round(row*(tileH+gapY)),
		W: tileW,
		H: tileH,
	}
}

// DrawStatic clears the board and draws every tile not in exclude.
func (b *Board) DrawStatic(grid game.Grid, exclude map[game.Position]bool) {
	p := b.theme.Palette()
	b.screen.FillColor(core.Color(p.BoardBG))

	for r := range game.Size {
		for c := range game.Size {
			rect := cellRect(float64(r), float64(c))
			b.screen.FillRect(rect, core.Color(p.CellBG))

			pos := game.Position{Row: r, Col: c}
			if v := grid[r][c]; v != 0 && !exclude[pos] {
				b.drawTile(rect, v, core.Color(b.theme.TileColor(v)))
			}
		}
	}
}

// DrawSliding draws tiles in transit over the static layer.
func (b *Board) DrawSliding(tiles []anim.SlideTile, progress float64) {
	for _, t := range tiles {
		row, col := t.At(progress)
		b.drawTile(cellRect(row, col), t.Value, core.Color(b.theme.TileColor(t.Value)))
	}
}

// DrawPops draws merged tiles grown by scale, brightened while they pop.
func (b *Board) DrawPops(tiles []anim.PopTile, scale float64) {
	bounds := b.screen.Bounds()
	for _, t := range tiles {
		rect := cellRect(float64(t.Pos.Row), float64(t.Pos.Col)).Scale(scale).Intersect(bounds)
		bg := b.theme.Glow(t.Value, core.ClampF(scale-1, 0, 1))
		b.drawTile(rect, t.Value, core.Color(bg))
	}
}

func (b *Board) drawTile(rect core.Rect, value int, bg core.Color) {
	if rect.Empty() {
		return
	}
	b.screen.FillRect(rect, bg)
	label := strconv.Itoa(value)
	_, cy := rect.Center()
	b.screen.DrawTextCentered(rect, cy, label, core.Color(b.theme.TextColor(value)))
}

// DrawBanner draws a centered message box over the board.
func (b *Board) DrawBanner(lines ...string) {
	p := b.theme.Palette()
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	box := core.Rect{W: w + 4, H: len(lines) + 2}
	box.X = (BoardW - box.W) / 2
	box.Y = (BoardH - box.H) / 2

	b.screen.FillRect(box, core.Color(p.CellBG))
	b.screen.DrawBox(box, core.Color(p.TextDark))
	for i, l := range lines {
		b.screen.DrawTextCentered(box, box.Y+1+i, l, core.Color(p.TextDark))
	}
}
