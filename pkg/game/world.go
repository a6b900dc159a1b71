package game

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/luoxia/jianghu/pkg/fileutil"
	"github.com/luoxia/jianghu/pkg/logger"
)

// MapManager tracks the loaded map, its tile traps and its scripted time
// of day. Map data itself is out of scope here; the demo only needs the
// bookkeeping scripts observe.
type MapManager struct {
	fs  fileutil.FileSystem
	log *slog.Logger

	current string
	traps   map[int]string
	time    int
}

// NewMapManager creates a manager over the game file system. fs may be
// nil, in which case LoadMap accepts any name.
func NewMapManager(fs fileutil.FileSystem) *MapManager {
	return &MapManager{
		fs:    fs,
		log:   logger.GetLogger(),
		traps: make(map[int]string),
	}
}

// LoadMap switches to the named map. Traps are per-map and reset on
// every switch.
func (m *MapManager) LoadMap(name string) error {
	if m.fs != nil {
		if _, err := m.fs.ReadFile("map/" + strings.ToLower(name)); err != nil {
			return fmt.Errorf("map %s not found: %w", name, err)
		}
	}
	m.current = name
	m.traps = make(map[int]string)
	m.log.Debug("map loaded", "map", name)
	return nil
}

// Current returns the loaded map name.
func (m *MapManager) Current() string { return m.current }

func (m *MapManager) SetTrap(index int, scriptPath string) { m.traps[index] = scriptPath }
func (m *MapManager) ClearTrap(index int)                  { delete(m.traps, index) }

// Trap returns the script bound to a trap index, empty when unset.
func (m *MapManager) Trap(index int) string { return m.traps[index] }

func (m *MapManager) SetTime(t int) { m.time = t }

// Time returns the scripted time of day.
func (m *MapManager) Time() int { return m.time }
