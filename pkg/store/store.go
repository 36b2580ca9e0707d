// Package store persists a single game snapshot to disk. Writes are
// atomic so readers see either the previous snapshot or the new one, never
// a partial file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Mahatir-Ahmed-Tusher/WordVia/pkg/wordvia"
)

// SnapshotFileName is the fixed storage key for the saved game.
const SnapshotFileName = "wordvia_game_state.json"

// FileStore keeps the snapshot in a single JSON file under dir.
type FileStore struct {
	path string
}

var _ wordvia.Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, SnapshotFileName)}
}

// Load reads the saved snapshot. A missing file yields (nil, nil); a
// corrupted file yields an error so the caller can discard it rather than
// crash on startup.
func (s *FileStore) Load() (*wordvia.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved game: %w", err)
	}
	var snap wordvia.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("saved game is corrupted: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically: the data goes to a temporary file
// in the same directory, is synced, and is renamed over the target.
func (s *FileStore) Save(snap *wordvia.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Clear removes the saved snapshot, if any.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
