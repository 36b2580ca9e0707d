package wordvia

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(t)
	g.Grid.Cell(Position{3, 2}).Letter = 'O'
	require.NoError(t, g.SelectCell(Position{3, 3}))
	_, err := g.Submit(context.Background(), 'N', newFakeOracle("ON"))
	require.NoError(t, err)
	g.AdvanceTurn()

	data, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	restored, err := RestoreGame(&snap)
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, restored.Phase)
	assert.Equal(t, 1, restored.CurrentPlayerIndex)
	assert.Equal(t, 2, restored.Players[0].Score)
	assert.Equal(t, 'N', restored.Grid.Cell(Position{3, 3}).Letter)
	assert.True(t, restored.Used.Contains("ON"), "the registry is rebuilt from the word list")
	require.Len(t, restored.History, 1)

	// The restored game resumes at the top of a turn and stays playable.
	require.NoError(t, restored.SelectCell(Position{0, 0}))
	_, err = restored.Submit(context.Background(), 'A', newFakeOracle())
	require.NoError(t, err)
}

func TestRestoreGameRejectsBadSnapshots(t *testing.T) {
	g := newTestGame(t)
	snap := g.Snapshot()

	snap.Phase = PhaseSetup
	_, err := RestoreGame(snap)
	assert.Error(t, err, "only playing and ended games are restorable")

	snap = g.Snapshot()
	snap.Grid = nil
	_, err = RestoreGame(snap)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.CurrentPlayerIndex = 5
	_, err = RestoreGame(snap)
	assert.Error(t, err)

	snap = g.Snapshot()
	snap.Grid.Size = 3
	_, err = RestoreGame(snap)
	assert.Error(t, err)
}
