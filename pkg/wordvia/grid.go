package wordvia

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	MinGridSize   int = 5
	MaxGridSize   int = 10
	MinWordLength int = 2
)

var (
	ErrInvalidPosition = errors.New("position is out of bounds")
	ErrOccupiedCell    = errors.New("a letter already exists in that cell")
	ErrInvalidLetter   = errors.New("letter must be a single alphabetic character")
	ErrGridSize        = errors.New("grid size must be between 5 and 10")
)

type Position struct {
	Row, Col int
}

// Cell is one square of the grid. Letter is 0 while the cell is empty and,
// once set, is never cleared for the remainder of the game. IsNew marks the
// most recently placed letter only; IsValid and IsPartOfWord are painted for
// the cells of a just-scored word and cleared on the next placement or turn.
type Cell struct {
	Letter       rune      `json:"letter"`
	Owner        uuid.UUID `json:"owner"`
	IsNew        bool      `json:"isNew"`
	IsValid      *bool     `json:"isValid"`
	IsPartOfWord bool      `json:"isPartOfWord"`
}

func (c *Cell) IsEmpty() bool {
	return c.Letter == 0
}

type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

func NewGrid(size int) (*Grid, error) {
	if size < MinGridSize || size > MaxGridSize {
		return nil, ErrGridSize
	}
	g := &Grid{
		Size:  size,
		Cells: make([][]Cell, size),
	}
	for i := range g.Cells {
		g.Cells[i] = make([]Cell, size)
	}
	return g, nil
}

func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Size && p.Col >= 0 && p.Col < g.Size
}

func (g *Grid) Cell(p Position) *Cell {
	return &g.Cells[p.Row][p.Col]
}

// Center returns the center cell of the grid, rounding down for even sizes.
func (g *Grid) Center() Position {
	return Position{Row: g.Size / 2, Col: g.Size / 2}
}

// Place writes a letter into an empty cell. The transient flags from the
// previous placement are cleared and the new cell becomes the single IsNew
// cell on the grid. Letters are stored uppercase.
func (g *Grid) Place(p Position, letter rune, owner uuid.UUID) error {
	if !g.InBounds(p) {
		return ErrInvalidPosition
	}
	if !unicode.IsLetter(letter) {
		return ErrInvalidLetter
	}
	cell := g.Cell(p)
	if !cell.IsEmpty() {
		return ErrOccupiedCell
	}
	for i := range g.Cells {
		for j := range g.Cells[i] {
			if g.Cells[i][j].IsNew {
				g.Cells[i][j].IsNew = false
				g.Cells[i][j].IsValid = nil
			}
		}
	}
	cell.Letter = unicode.ToUpper(letter)
	cell.Owner = owner
	cell.IsNew = true
	return nil
}

// ClearTransient resets the per-turn cell flags across the whole grid.
func (g *Grid) ClearTransient() {
	for i := range g.Cells {
		for j := range g.Cells[i] {
			g.Cells[i][j].IsNew = false
			g.Cells[i][j].IsValid = nil
			g.Cells[i][j].IsPartOfWord = false
		}
	}
}

// NumAdjacentLetters returns the number of filled cells that are
// 4-directionally adjacent to the given position.
func (g *Grid) NumAdjacentLetters(p Position) int {
	count := 0
	for _, q := range []Position{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	} {
		if g.InBounds(q) && !g.Cell(q).IsEmpty() {
			count++
		}
	}
	return count
}

func (g *Grid) HasLetters() bool {
	for i := range g.Cells {
		for j := range g.Cells[i] {
			if !g.Cells[i][j].IsEmpty() {
				return true
			}
		}
	}
	return false
}

func (g *Grid) IsFull() bool {
	for i := range g.Cells {
		for j := range g.Cells[i] {
			if g.Cells[i][j].IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of the grid. The bot places trial letters on
// clones so that the live grid is never mutated during search.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		Size:  g.Size,
		Cells: make([][]Cell, g.Size),
	}
	for i := range g.Cells {
		clone.Cells[i] = make([]Cell, g.Size)
		copy(clone.Cells[i], g.Cells[i])
	}
	return clone
}

// String represents the Grid as a string
func (g *Grid) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for j := 0; j < g.Size; j++ {
		sb.WriteString(fmt.Sprintf("%d ", j%10))
	}
	sb.WriteString("\n")
	for i := 0; i < g.Size; i++ {
		sb.WriteString(fmt.Sprintf("%d ", i%10))
		for j := 0; j < g.Size; j++ {
			cell := &g.Cells[i][j]
			if cell.IsEmpty() {
				sb.WriteString("- ")
			} else {
				sb.WriteString(string(cell.Letter) + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
