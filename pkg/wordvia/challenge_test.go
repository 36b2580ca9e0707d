package wordvia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoreWord drives a real placement so the game is in the post-score window
// a challenge requires.
func scoreWord(t *testing.T, g *Game) {
	t.Helper()
	g.Grid.Cell(Position{3, 2}).Letter = 'O'
	require.NoError(t, g.SelectCell(Position{3, 3}))
	out, err := g.Submit(context.Background(), 'N', newFakeOracle("ON"))
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
}

func newChallengeGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(Config{
		PlayerNames:   []string{"Alice", "Bob"},
		GridSize:      7,
		ChallengeMode: true,
	})
	require.NoError(t, err)
	return g
}

func TestStartChallengeGuards(t *testing.T) {
	g := newTestGame(t) // challenge mode off
	scoreWord(t, g)
	_, err := g.StartChallenge("ON")
	assert.ErrorIs(t, err, ErrChallengeUnavailable)

	g = newChallengeGame(t)
	_, err = g.StartChallenge("ON")
	assert.ErrorIs(t, err, ErrChallengeUnavailable, "nothing is on display yet")

	scoreWord(t, g)
	_, err = g.StartChallenge("MISSING")
	assert.ErrorIs(t, err, ErrChallengeUnavailable)

	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)
	assert.Equal(t, "ON", ch.Word)
	assert.Equal(t, 2, ch.Points)
	assert.Equal(t, 0, ch.DefenderIndex)
	assert.Equal(t, 1, ch.ChallengerIndex)
}

func TestResolveChallengeRevokes(t *testing.T) {
	g := newChallengeGame(t)
	scoreWord(t, g)
	require.Equal(t, 2, g.Players[0].Score)

	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)

	require.NoError(t, g.ResolveChallenge(ch, false))
	assert.Zero(t, g.Players[0].Score, "a failed defense loses exactly the challenged points")
	assert.Equal(t, 1, g.CurrentPlayerIndex, "either verdict advances the turn once")
	assert.True(t, g.Used.Contains("ON"), "the word stays registered even after revocation")
}

func TestResolveChallengeUpheldKeepsPoints(t *testing.T) {
	g := newChallengeGame(t)
	scoreWord(t, g)

	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)

	require.NoError(t, g.ResolveChallenge(ch, true))
	assert.Equal(t, 2, g.Players[0].Score)
	assert.Equal(t, 1, g.CurrentPlayerIndex)
}

func TestResolveChallengeStaleToken(t *testing.T) {
	g := newChallengeGame(t)
	scoreWord(t, g)

	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)

	g.AdvanceTurn()
	score := g.Players[0].Score
	assert.ErrorIs(t, g.ResolveChallenge(ch, false), ErrChallengeStale)
	assert.Equal(t, score, g.Players[0].Score, "a stale challenge must not touch state")
}

func TestBotMeaning(t *testing.T) {
	ctx := context.Background()

	oracle := newFakeOracle("ON")
	assert.Equal(t, "a on", BotMeaning(ctx, "ON", oracle))

	assert.Equal(t, FallbackMeaning, BotMeaning(ctx, "ZZZ", oracle))

	oracle.failWords["ON"] = true
	assert.Equal(t, FallbackMeaning, BotMeaning(ctx, "ON", oracle))
}

func TestArbitrateFailsOpen(t *testing.T) {
	g := newChallengeGame(t)
	scoreWord(t, g)
	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)

	judge := &fakeJudge{fail: true}
	upheld, err := g.Arbitrate(context.Background(), ch, "some meaning", judge)
	require.NoError(t, err)
	assert.True(t, upheld, "an unreachable judge gives the defender the benefit of the doubt")
	assert.Equal(t, 2, g.Players[0].Score)
}

func TestArbitrateRejectedMeaning(t *testing.T) {
	g := newChallengeGame(t)
	scoreWord(t, g)
	ch, err := g.StartChallenge("ON")
	require.NoError(t, err)

	judge := &fakeJudge{verdict: false}
	upheld, err := g.Arbitrate(context.Background(), ch, "nonsense", judge)
	require.NoError(t, err)
	assert.False(t, upheld)
	assert.Zero(t, g.Players[0].Score)
	assert.Equal(t, []string{"ON"}, judge.asked)
}
