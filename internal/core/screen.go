package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one terminal character with its colors.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

var blank = Cell{Rune: ' '}

// Screen is a row-major cell buffer. The board renderer draws into it and
// the platform layer turns it into styled terminal output.
type Screen struct {
	w, h  int
	cells []Cell
}

// NewScreen returns a cleared w×h buffer.
func NewScreen(w, h int) *Screen {
	s := &Screen{w: w, h: h, cells: make([]Cell, w*h)}
	s.Clear()
	return s
}

// Width is the number of columns.
func (s *Screen) Width() int { return s.w }

// Height is the number of rows.
func (s *Screen) Height() int { return s.h }

// Bounds returns the screen area.
func (s *Screen) Bounds() Rect {
	return Rect{W: s.w, H: s.h}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Resize reallocates the buffer. The overlapping top-left area keeps its
// content; new cells are blank.
func (s *Screen) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	next := &Screen{w: w, h: h, cells: make([]Cell, w*h)}
	next.Clear()
	for y := range min(h, s.h) {
		n := min(w, s.w)
		copy(next.cells[y*w:y*w+n], s.cells[y*s.w:y*s.w+n])
	}
	*s = *next
}

// Clear resets every cell to an uncolored space.
func (s *Screen) Clear() {
	s.FillColor(NoColor)
}

// FillColor paints the whole buffer with spaces on bg.
func (s *Screen) FillColor(bg Color) {
	for i := range s.cells {
		s.cells[i] = Cell{Rune: ' ', BG: bg}
	}
}

// Set replaces the rune at (x, y) and keeps its colors. Writes outside the
// buffer are dropped.
func (s *Screen) Set(x, y int, r rune) {
	if i, ok := s.index(x, y); ok {
		s.cells[i].Rune = r
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// SetCell replaces the cell at (x, y).
func (s *Screen) SetCell(x, y int, c Cell) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = c
	}
}

// GetCell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// DrawText writes text from (x, y) rightwards in the colors already there.
func (s *Screen) DrawText(x, y int, text string) {
	for _, r := range text {
		s.Set(x, y, r)
		x++
	}
}

// DrawTextColor writes text in fg over the existing background.
func (s *Screen) DrawTextColor(x, y int, text string, fg Color) {
	for _, r := range text {
		if i, ok := s.index(x, y); ok {
			s.cells[i].Rune = r
			s.cells[i].FG = fg
		}
		x++
	}
}

// DrawTextCentered writes text centered horizontally inside r on row y.
func (s *Screen) DrawTextCentered(r Rect, y int, text string, fg Color) {
	x := r.X + (r.W-utf8.RuneCountInString(text))/2
	s.DrawTextColor(x, y, text, fg)
}

// FillRect paints r, clipped to the buffer, with spaces on bg.
func (s *Screen) FillRect(r Rect, bg Color) {
	r = r.Intersect(s.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.cells[y*s.w : (y+1)*s.w]
		for x := r.X; x < r.Right(); x++ {
			row[x] = Cell{Rune: ' ', BG: bg}
		}
	}
}

// DrawBox outlines r with single-line box characters in fg.
func (s *Screen) DrawBox(r Rect, fg Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	left, right := r.X, r.Right()-1
	top, bottom := r.Y, r.Bottom()-1

	for x := left + 1; x < right; x++ {
		s.DrawTextColor(x, top, "─", fg)
		s.DrawTextColor(x, bottom, "─", fg)
	}
	for y := top + 1; y < bottom; y++ {
		s.DrawTextColor(left, y, "│", fg)
		s.DrawTextColor(right, y, "│", fg)
	}
	s.DrawTextColor(left, top, "┌", fg)
	s.DrawTextColor(right, top, "┐", fg)
	s.DrawTextColor(left, bottom, "└", fg)
	s.DrawTextColor(right, bottom, "┘", fg)
}

// String returns the runes without colors, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}

// Row returns the runes of row y. Rows outside the buffer are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	runes := make([]rune, s.w)
	for x, c := range s.cells[y*s.w : (y+1)*s.w] {
		runes[x] = c.Rune
	}
	return string(runes)
}
