package wordvia

import (
	"context"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// frequentLetters is the bot's candidate alphabet, ordered by English
// letter frequency. The full alphabet is never tried.
var frequentLetters = []rune("EARIOTNSLCDG")

const (
	// maxCandidateCells bounds the number of strategic cells examined,
	// independent of board size.
	maxCandidateCells = 25
	// maxCandidateMoves bounds how many (cell, letter) pairs are sent to
	// the oracle.
	maxCandidateMoves = 20
	// maxSubwordsPerAxis is how many of the longest subwords per
	// direction are considered for a move.
	maxSubwordsPerAxis = 5
	// maxWordsPerMove caps oracle calls for a single candidate move.
	maxWordsPerMove = 6
)

// CandidateMove is one (cell, letter) pair the bot considered, with its
// evaluation components.
type CandidateMove struct {
	Pos               Position
	Letter            rune
	ImmediateScore    int
	BoardControlScore int
	FinalScore        float64
	Words             []string
}

// Bot picks moves using the same extraction and validation pipeline as
// human players. The random source is injected so that fixing the seed
// makes the bot deterministic.
type Bot struct {
	Difficulty Difficulty
	rng        *rand.Rand
	logger     *log.Logger
}

func NewBot(difficulty Difficulty, rng *rand.Rand, logger *log.Logger) *Bot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bot{Difficulty: difficulty, rng: rng, logger: logger}
}

// ChooseMove returns the bot's move for the given grid snapshot, or nil
// when the bot should pass. The grid is never mutated; trial letters are
// placed on clones.
func (b *Bot) ChooseMove(ctx context.Context, g *Grid, used *Registry, oracle Oracle) (*CandidateMove, error) {
	if !g.HasLetters() {
		// First move on an empty board: the center cell, with a random
		// letter from the frequent set. No word can form, so no oracle
		// call is needed.
		return &CandidateMove{Pos: g.Center(), Letter: b.pickLetter()}, nil
	}

	potential := b.gatherPotentialMoves(g, used)
	if len(potential) > maxCandidateMoves {
		potential = potential[:maxCandidateMoves]
	}

	candidates, err := b.validateMoves(ctx, g, potential, oracle)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("bot candidate search finished",
		"potential", len(potential), "validated", len(candidates))
	if len(candidates) == 0 {
		return nil, nil
	}
	return b.choose(candidates), nil
}

// Apply plays a chosen move through the exact placement pipeline a human
// move uses. Disambiguation prompts, including a queued one for the second
// direction, are resolved automatically by picking the longest valid,
// unused option; the bot never asks. A prompt with no usable option is
// cancelled, and a placement rejected as already used becomes a pass so
// the turn cannot get stuck.
func (b *Bot) Apply(ctx context.Context, g *Game, move *CandidateMove, oracle Oracle) (SubmitOutcome, error) {
	if err := g.SelectCell(move.Pos); err != nil {
		return SubmitOutcome{}, err
	}
	outcome, err := g.Submit(ctx, move.Letter, oracle)
	if err != nil {
		return outcome, err
	}
	if outcome.AlreadyUsed != "" {
		b.logger.Warn("bot move rejected as already used", "word", outcome.AlreadyUsed)
		return outcome, g.Pass()
	}
	for g.PendingChoice() != nil {
		best := ""
		for _, opt := range g.PendingChoice().Options {
			// Usable was computed when the prompt was built; a word
			// resolved from the first prompt may have gone stale since.
			if opt.Valid && opt.Usable && !g.Used.Contains(opt.Word) && len(opt.Word) > len(best) {
				best = opt.Word
			}
		}
		if best == "" {
			if err := g.CancelChoice(); err != nil {
				return outcome, err
			}
			continue
		}
		out, err := g.ResolveChoice(ctx, best, oracle)
		if err != nil {
			return outcome, err
		}
		if out.AlreadyUsed != "" || out.Restricted != nil {
			// Refused after all; drop the prompt rather than retry.
			if err := g.CancelChoice(); err != nil {
				return outcome, err
			}
		}
	}
	return outcome, nil
}

type potentialMove struct {
	pos    Position
	letter rune
	words  []string
}

// gatherPotentialMoves is the geometry-only pass: no oracle calls happen
// here. Cells that cannot produce a run of minimum length are skipped
// before any letter is tried.
func (b *Bot) gatherPotentialMoves(g *Grid, used *Registry) []potentialMove {
	var potential []potentialMove
	for _, pos := range strategicCells(g) {
		if !couldFormWord(g, pos) {
			continue
		}
		for _, letter := range frequentLetters {
			trial := g.Clone()
			trial.Cell(pos).Letter = letter
			words := possibleWords(trial, pos, used)
			if len(words) > 0 {
				potential = append(potential, potentialMove{pos: pos, letter: letter, words: words})
			}
		}
		if len(potential) >= maxCandidateMoves*2 {
			break
		}
	}
	return potential
}

// validateMoves fans the surviving moves out to the oracle concurrently.
// Each move tries at most maxWordsPerMove of its candidate words and keeps
// the words that validate cleanly; the longest one sets the immediate
// score. Oracle failures simply disqualify the word.
func (b *Bot) validateMoves(ctx context.Context, g *Grid, potential []potentialMove, oracle Oracle) ([]CandidateMove, error) {
	results := make([]*CandidateMove, len(potential))
	grp, ctx := errgroup.WithContext(ctx)
	for i, move := range potential {
		grp.Go(func() error {
			words := move.words
			if len(words) > maxWordsPerMove {
				words = words[:maxWordsPerMove]
			}
			var validWords []string
			best := 0
			for _, word := range words {
				v, err := oracle.Validate(ctx, word)
				if err != nil || !v.Scorable() {
					continue
				}
				validWords = append(validWords, word)
				if len(word) > best {
					best = len(word)
				}
			}
			if len(validWords) == 0 {
				return nil
			}
			results[i] = &CandidateMove{
				Pos:               move.pos,
				Letter:            move.letter,
				ImmediateScore:    best,
				BoardControlScore: boardControlScore(g, move.pos),
				Words:             validWords,
			}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	candidates := make([]CandidateMove, 0, len(results))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}

// choose evaluates the candidates for the bot's difficulty and picks one.
// Roughly 1 in 10 picks comes from the top three candidates instead of the
// single best, so the bot is not fully predictable.
func (b *Bot) choose(candidates []CandidateMove) *CandidateMove {
	for i := range candidates {
		candidates[i].FinalScore = b.evaluate(candidates[i])
	}
	slices.SortStableFunc(candidates, func(x, y CandidateMove) int {
		switch {
		case x.FinalScore > y.FinalScore:
			return -1
		case x.FinalScore < y.FinalScore:
			return 1
		}
		return 0
	})
	if len(candidates) > 1 && b.rng.Float64() < 0.1 {
		top := candidates
		if len(top) > 3 {
			top = top[:3]
		}
		pick := top[b.rng.IntN(len(top))]
		return &pick
	}
	return &candidates[0]
}

// evaluate combines the score components per difficulty: easy ignores them
// entirely, medium weights the immediate score, hard and expert add board
// control.
func (b *Bot) evaluate(move CandidateMove) float64 {
	switch b.Difficulty {
	case DifficultyEasy:
		return b.rng.Float64() * 10
	case DifficultyHard, DifficultyExpert:
		return float64(move.ImmediateScore)*3 + float64(move.BoardControlScore)*2
	default:
		return float64(move.ImmediateScore) * 3
	}
}

func (b *Bot) pickLetter() rune {
	return frequentLetters[b.rng.IntN(len(frequentLetters))]
}

// strategicCells returns the empty cells adjacent to at least one letter,
// ranked by number of filled neighbours, capped at maxCandidateCells.
func strategicCells(g *Grid) []Position {
	type ranked struct {
		pos   Position
		count int
	}
	var cells []ranked
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			pos := Position{Row: row, Col: col}
			if !g.Cell(pos).IsEmpty() {
				continue
			}
			if n := g.NumAdjacentLetters(pos); n > 0 {
				cells = append(cells, ranked{pos: pos, count: n})
			}
		}
	}
	slices.SortStableFunc(cells, func(a, b ranked) int {
		return b.count - a.count
	})
	if len(cells) > maxCandidateCells {
		cells = cells[:maxCandidateCells]
	}
	positions := make([]Position, len(cells))
	for i, c := range cells {
		positions[i] = c.pos
	}
	return positions
}

// couldFormWord reports whether filling the cell would produce a run of at
// least the minimum word length in either direction. This rejects moves
// before any validation work.
func couldFormWord(g *Grid, p Position) bool {
	for _, dir := range []Direction{Horizontal, Vertical} {
		length := 1
		dr, dc := 0, 1
		if dir == Vertical {
			dr, dc = 1, 0
		}
		for q := (Position{p.Row - dr, p.Col - dc}); g.InBounds(q) && !g.Cell(q).IsEmpty(); q = (Position{q.Row - dr, q.Col - dc}) {
			length++
		}
		for q := (Position{p.Row + dr, p.Col + dc}); g.InBounds(q) && !g.Cell(q).IsEmpty(); q = (Position{q.Row + dr, q.Col + dc}) {
			length++
		}
		if length >= MinWordLength {
			return true
		}
	}
	return false
}

// possibleWords unions the full words with the longest subwords in each
// direction, dropping words that are too short or already used.
func possibleWords(g *Grid, p Position, used *Registry) []string {
	seen := make(map[string]struct{})
	var words []string
	add := func(word string) {
		if len(word) < MinWordLength || used.Contains(word) {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	for _, c := range FullWords(g, p) {
		add(c.Word)
	}
	for _, dir := range []Direction{Horizontal, Vertical} {
		subs := Subwords(g, p, dir)
		if len(subs) > maxSubwordsPerAxis {
			subs = subs[:maxSubwordsPerAxis]
		}
		for _, c := range subs {
			add(c.Word)
		}
	}
	return words
}

// boardControlScore is 1 when the position sits within the central band of
// the board, 0 otherwise.
func boardControlScore(g *Grid, p Position) int {
	center := g.Center()
	dist := abs(p.Row-center.Row) + abs(p.Col-center.Col)
	if dist*3 <= g.Size {
		return 1
	}
	return 0
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
