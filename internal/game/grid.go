// Package game implements the 2048 grid engine: move resolution, merging,
// scoring, tile spawning and terminal-state detection. It has no notion of
// time or rendering.
package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// WinValue is the tile value that wins the game.
const WinValue = 2048

// Grid is the NxN board. Zero means an empty cell.
type Grid [Size][Size]int

// Position is a 0-indexed (row, col) grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Add returns p shifted by one step of the given vector.
func (p Position) Add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Direction represents a move direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all four directions in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Vector returns the unit (Δrow, Δcol) for the direction.
// Panics on an out-of-range value.
func (d Direction) Vector() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	panic(fmt.Sprintf("game: invalid direction %d", int(d)))
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection resolves a lowercase direction name.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == strings.ToLower(s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("game: unknown direction %q", s)
}

// At returns the value at p.
func (g *Grid) At(p Position) int {
	return g[p.Row][p.Col]
}

// Set stores v at p.
func (g *Grid) Set(p Position, v int) {
	g[p.Row][p.Col] = v
}

// EmptyCells returns the positions of all empty cells in row-major order.
func (g Grid) EmptyCells() []Position {
	var cells []Position
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// IsFull returns true if no cell is empty.
func (g Grid) IsFull() bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// HasAdjacentPair returns true if any two horizontally or vertically
// adjacent cells hold the same non-zero value.
func (g Grid) HasAdjacentPair() bool {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// Sum returns the total of all tile values.
func (g Grid) Sum() int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// MaxTile returns the highest tile value on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] > maxVal {
				maxVal = g[r][c]
			}
		}
	}
	return maxVal
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for r := range Size {
		for c := range Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the grid as rows of values, "." for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if g[r][c] == 0 {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(strconv.Itoa(g[r][c]))
		}
	}
	return sb.String()
}

// traversal returns the row and column visiting order for a move so that
// tiles farthest along the direction are processed first.
func traversal(d Direction) (rows, cols [Size]int) {
	dr, dc := d.Vector()
	for i := range Size {
		rows[i] = i
		cols[i] = i
	}
	if dr == 1 {
		rows = reversed(rows)
	}
	if dc == 1 {
		cols = reversed(cols)
	}
	return rows, cols
}

func reversed(a [Size]int) [Size]int {
	var out [Size]int
	for i := range Size {
		out[i] = a[Size-1-i]
	}
	return out
}
