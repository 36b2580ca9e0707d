package wordvia

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridSize(t *testing.T) {
	for _, size := range []int{4, 11, 0, -1} {
		_, err := NewGrid(size)
		assert.ErrorIs(t, err, ErrGridSize, "size %d", size)
	}
	for _, size := range []int{5, 7, 10} {
		g, err := NewGrid(size)
		require.NoError(t, err)
		assert.Equal(t, size, g.Size)
		assert.Len(t, g.Cells, size)
	}
}

func TestGridCenter(t *testing.T) {
	g, _ := NewGrid(7)
	assert.Equal(t, Position{3, 3}, g.Center())

	g, _ = NewGrid(6)
	assert.Equal(t, Position{3, 3}, g.Center())
}

func TestGridPlace(t *testing.T) {
	g, _ := NewGrid(5)
	owner := uuid.New()

	require.NoError(t, g.Place(Position{2, 2}, 'a', owner))
	cell := g.Cell(Position{2, 2})
	assert.Equal(t, 'A', cell.Letter, "letters are stored uppercase")
	assert.Equal(t, owner, cell.Owner)
	assert.True(t, cell.IsNew)

	assert.ErrorIs(t, g.Place(Position{2, 2}, 'b', owner), ErrOccupiedCell)
	assert.ErrorIs(t, g.Place(Position{-1, 0}, 'b', owner), ErrInvalidPosition)
	assert.ErrorIs(t, g.Place(Position{5, 0}, 'b', owner), ErrInvalidPosition)
	assert.ErrorIs(t, g.Place(Position{0, 0}, '3', owner), ErrInvalidLetter)

	// A second placement moves the single IsNew marker.
	require.NoError(t, g.Place(Position{0, 0}, 'b', owner))
	assert.False(t, g.Cell(Position{2, 2}).IsNew)
	assert.True(t, g.Cell(Position{0, 0}).IsNew)
}

func TestGridClearTransient(t *testing.T) {
	g, _ := NewGrid(5)
	require.NoError(t, g.Place(Position{1, 1}, 'x', uuid.New()))
	valid := true
	g.Cell(Position{1, 1}).IsValid = &valid
	g.Cell(Position{1, 1}).IsPartOfWord = true

	g.ClearTransient()

	cell := g.Cell(Position{1, 1})
	assert.Equal(t, 'X', cell.Letter, "letters survive the clear")
	assert.False(t, cell.IsNew)
	assert.Nil(t, cell.IsValid)
	assert.False(t, cell.IsPartOfWord)
}

func TestGridNumAdjacentLetters(t *testing.T) {
	g, _ := NewGrid(5)
	g.Cells[1][2].Letter = 'A'
	g.Cells[3][2].Letter = 'B'
	g.Cells[2][1].Letter = 'C'
	// Diagonal neighbours do not count.
	g.Cells[1][1].Letter = 'D'

	assert.Equal(t, 3, g.NumAdjacentLetters(Position{2, 2}))
	assert.Equal(t, 0, g.NumAdjacentLetters(Position{4, 4}))
	assert.Equal(t, 1, g.NumAdjacentLetters(Position{0, 2}))
}

func TestGridCloneIsIndependent(t *testing.T) {
	g, _ := NewGrid(5)
	g.Cells[0][0].Letter = 'A'

	clone := g.Clone()
	clone.Cells[0][0].Letter = 'Z'
	clone.Cells[4][4].Letter = 'Q'

	assert.Equal(t, 'A', g.Cells[0][0].Letter)
	assert.True(t, g.Cells[4][4].IsEmpty())
}

func TestGridIsFull(t *testing.T) {
	g, _ := NewGrid(5)
	assert.False(t, g.HasLetters())
	assert.False(t, g.IsFull())

	for i := range g.Cells {
		for j := range g.Cells[i] {
			g.Cells[i][j].Letter = 'A'
		}
	}
	assert.True(t, g.HasLetters())
	assert.True(t, g.IsFull())

	g.Cells[2][3].Letter = 0
	assert.False(t, g.IsFull())
}
