package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

func snapshotFixture(t *testing.T) *wordvia.Snapshot {
	t.Helper()
	g, err := wordvia.NewGame(wordvia.Config{
		PlayerNames: []string{"Alice", "Bob"},
		GridSize:    7,
	})
	require.NoError(t, err)
	g.Players[0].Score = 5
	g.Used.Add("ON")
	return g.Snapshot()
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save(snapshotFixture(t)))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, wordvia.PhasePlaying, loaded.Phase)
	assert.Equal(t, 5, loaded.Players[0].Score)
	assert.Equal(t, []string{"ON"}, loaded.UsedWords)
}

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(t.TempDir())

	loaded, err := s.Load()
	require.NoError(t, err, "a missing snapshot is not an error")
	assert.Nil(t, loaded)
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SnapshotFileName), []byte("{not json"), 0o644))

	s := NewFileStore(dir)
	_, err := s.Load()
	assert.Error(t, err)
}

func TestFileStoreOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	first := snapshotFixture(t)
	require.NoError(t, s.Save(first))

	second := snapshotFixture(t)
	second.Players[0].Score = 9
	require.NoError(t, s.Save(second))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Players[0].Score)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files do not linger")
}

func TestFileStoreFailedRenameLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, SnapshotFileName, "occupied"), 0o755))
	s := NewFileStore(dir)

	require.Error(t, s.Save(snapshotFixture(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the blocking directory remains")
}

func TestFileStoreClear(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Clear(), "clearing a missing snapshot is a no-op")

	require.NoError(t, s.Save(snapshotFixture(t)))
	require.NoError(t, s.Clear())

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	s := NewFileStore(dir)

	require.NoError(t, s.Save(snapshotFixture(t)))
	loaded, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
}
