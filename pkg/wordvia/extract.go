package wordvia

import (
	"strings"

	"golang.org/x/exp/slices"
)

type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Run is a maximal contiguous sequence of filled cells along one row or
// column, passing through a particular position. Words are only ever read
// left to right or top to bottom, so the run's letters are already in
// reading order.
type Run struct {
	Dir     Direction
	Start   Position
	Letters string
	// Index is the offset within the run of the position the run was
	// extracted through.
	Index int
}

func (r Run) Len() int {
	return len(r.Letters)
}

// CellAt returns the grid position of the i-th letter of the run.
func (r Run) CellAt(i int) Position {
	if r.Dir == Horizontal {
		return Position{Row: r.Start.Row, Col: r.Start.Col + i}
	}
	return Position{Row: r.Start.Row + i, Col: r.Start.Col}
}

// RunThrough returns the maximal run of filled cells containing p in the
// given direction. The cell at p must be filled; the run then has length
// at least 1.
func (g *Grid) RunThrough(p Position, dir Direction) Run {
	dr, dc := 0, 1
	if dir == Vertical {
		dr, dc = 1, 0
	}
	start := p
	for {
		prev := Position{Row: start.Row - dr, Col: start.Col - dc}
		if !g.InBounds(prev) || g.Cell(prev).IsEmpty() {
			break
		}
		start = prev
	}
	var sb strings.Builder
	index := 0
	for q := start; g.InBounds(q) && !g.Cell(q).IsEmpty(); q = (Position{Row: q.Row + dr, Col: q.Col + dc}) {
		if q == p {
			index = sb.Len()
		}
		sb.WriteRune(g.Cell(q).Letter)
	}
	return Run{Dir: dir, Start: start, Letters: sb.String(), Index: index}
}

// CandidateWord is a word reading derived from a run or one of its
// substrings, tagged with its direction and the cells it occupies.
type CandidateWord struct {
	Word  string
	Dir   Direction
	Cells []Position
}

func (r Run) candidate(from, to int) CandidateWord {
	cells := make([]Position, 0, to-from)
	for i := from; i < to; i++ {
		cells = append(cells, r.CellAt(i))
	}
	return CandidateWord{Word: r.Letters[from:to], Dir: r.Dir, Cells: cells}
}

// FullWords returns the maximal-run words formed through the placed
// position, horizontal first. A direction contributes a candidate only
// when its run reaches the minimum word length.
func FullWords(g *Grid, p Position) []CandidateWord {
	words := make([]CandidateWord, 0, 2)
	for _, dir := range []Direction{Horizontal, Vertical} {
		run := g.RunThrough(p, dir)
		if run.Len() >= MinWordLength {
			words = append(words, run.candidate(0, run.Len()))
		}
	}
	return words
}

// Subwords returns every contiguous substring of the run through p in the
// given direction that has length >= MinWordLength and includes the placed
// position. The maximal run itself is one of the results. Candidates are
// ordered longest first and duplicate strings are dropped, keeping the
// first occurrence.
func Subwords(g *Grid, p Position, dir Direction) []CandidateWord {
	run := g.RunThrough(p, dir)
	if run.Len() < MinWordLength {
		return nil
	}
	var subs []CandidateWord
	for from := 0; from <= run.Index; from++ {
		for to := run.Index + 1; to <= run.Len(); to++ {
			if to-from < MinWordLength {
				continue
			}
			subs = append(subs, run.candidate(from, to))
		}
	}
	slices.SortStableFunc(subs, func(a, b CandidateWord) int {
		return len(b.Word) - len(a.Word)
	})
	seen := make(map[string]struct{}, len(subs))
	distinct := subs[:0]
	for _, c := range subs {
		if _, ok := seen[c.Word]; ok {
			continue
		}
		seen[c.Word] = struct{}{}
		distinct = append(distinct, c)
	}
	return distinct
}
