package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luoxia/jianghu/pkg/engine"
)

// FileStorage persists save games as JSON files under a directory, one
// file per slot.
type FileStorage struct {
	dir         string
	saveEnabled bool
}

// NewFileStorage creates storage rooted at dir, creating it if needed.
// Saving starts enabled; scripts gate it during cutscenes.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory %s: %w", dir, err)
	}
	return &FileStorage{dir: dir, saveEnabled: true}, nil
}

func (s *FileStorage) slotPath(slot int) string {
	return filepath.Join(s.dir, fmt.Sprintf("save%d.json", slot))
}

// SaveGame writes the snapshot to the slot file.
func (s *FileStorage) SaveGame(slot int, state *engine.SaveState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode save state: %w", err)
	}
	if err := os.WriteFile(s.slotPath(slot), data, 0o644); err != nil {
		return fmt.Errorf("failed to write save slot %d: %w", slot, err)
	}
	return nil
}

// LoadGame reads the snapshot from the slot file.
func (s *FileStorage) LoadGame(slot int) (*engine.SaveState, error) {
	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		return nil, fmt.Errorf("failed to read save slot %d: %w", slot, err)
	}
	var state engine.SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode save slot %d: %w", slot, err)
	}
	if state.Variables == nil {
		state.Variables = make(map[string]int64)
	}
	return &state, nil
}

// SetSaveEnabled gates player-initiated saving. Script-initiated
// SaveGame commands are not affected.
func (s *FileStorage) SetSaveEnabled(enabled bool) { s.saveEnabled = enabled }

// SaveEnabled reports whether the player save menu is allowed.
func (s *FileStorage) SaveEnabled() bool { return s.saveEnabled }
