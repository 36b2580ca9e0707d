package wordvia

import (
	"context"
	"errors"
)

// FallbackMeaning is submitted for a bot defender when no definition can be
// found anywhere.
const FallbackMeaning = "A valid English word"

var (
	ErrChallengeUnavailable = errors.New("word is not challengeable")
	ErrChallengeStale       = errors.New("challenge does not belong to the current turn")
)

// Challenge is a post-score dispute over one word of the current turn. The
// challenger is always the player whose turn is next; the defender is the
// scorer.
type Challenge struct {
	Word            string
	Points          int
	DefenderIndex   int
	ChallengerIndex int
	token           TurnToken
}

// StartChallenge opens a challenge against one of the words scored this
// turn. Challenge mode must be enabled and the word must be a valid result
// still on display.
func (g *Game) StartChallenge(word string) (*Challenge, error) {
	if g.Phase != PhasePlaying || !g.ChallengeMode || !g.awaitingExtend {
		return nil, ErrChallengeUnavailable
	}
	for _, res := range g.LastWordResults {
		if res.Word == word && res.Valid {
			return &Challenge{
				Word:            res.Word,
				Points:          res.Points,
				DefenderIndex:   g.CurrentPlayerIndex,
				ChallengerIndex: (g.CurrentPlayerIndex + 1) % len(g.Players),
				token:           g.token,
			}, nil
		}
	}
	return nil, ErrChallengeUnavailable
}

// ResolveChallenge applies the verdict. A failed defense revokes exactly
// the challenged word's points from the defender, clamped at zero. Either
// outcome advances the turn exactly once; a challenge raised in an earlier
// turn is discarded without touching state.
func (g *Game) ResolveChallenge(ch *Challenge, upheld bool) error {
	if ch.token != g.token {
		return ErrChallengeStale
	}
	if !upheld {
		g.RevokePoints(ch.DefenderIndex, ch.Points)
	}
	g.AdvanceTurn()
	return nil
}

// BotMeaning produces the meaning a bot defender submits for a challenged
// word: the definition capability first (offline lexicon, then the oracle),
// falling back to a generic string when nothing is available.
func BotMeaning(ctx context.Context, word string, oracle Oracle) string {
	if def, err := oracle.Definition(ctx, word); err == nil && def != "" {
		return def
	}
	if v, err := oracle.Validate(ctx, word); err == nil && v.Valid && v.Definition != "" {
		return v.Definition
	}
	return FallbackMeaning
}

// Arbitrate sends the defender's meaning to the judge and resolves the
// challenge with its verdict. A judge failure fails open: the defender is
// given the benefit of the doubt and keeps the points.
func (g *Game) Arbitrate(ctx context.Context, ch *Challenge, meaning string, judge Judge) (bool, error) {
	upheld, err := judge.VerifyMeaning(ctx, ch.Word, meaning)
	if err != nil {
		upheld = true
	}
	return upheld, g.ResolveChallenge(ch, upheld)
}
