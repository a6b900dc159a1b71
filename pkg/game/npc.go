package game

import "strings"

// Npc is one non-player character. Name matching throughout the manager
// is case-insensitive, matching script path handling.
type Npc struct {
	Name        string
	mover
	Dir         int
	Level       int
	Relation    int
	Hidden      bool
	Script      string
	DeathScript string
	Following   bool
}

// NpcManager tracks NPCs by name.
type NpcManager struct {
	npcs map[string]*Npc
}

// NewNpcManager creates an empty manager.
func NewNpcManager() *NpcManager {
	return &NpcManager{npcs: make(map[string]*Npc)}
}

func npcKey(name string) string { return strings.ToLower(name) }

// Get returns the named NPC, or nil.
func (m *NpcManager) Get(name string) *Npc { return m.npcs[npcKey(name)] }

// All returns every NPC; order is unspecified.
func (m *NpcManager) All() []*Npc {
	out := make([]*Npc, 0, len(m.npcs))
	for _, n := range m.npcs {
		out = append(out, n)
	}
	return out
}

func (m *NpcManager) Add(iniName string, x, y, dir int) {
	n := &Npc{Name: iniName, Dir: dir}
	n.setPos(x, y)
	m.npcs[npcKey(iniName)] = n
}

func (m *NpcManager) Del(name string) bool {
	if _, ok := m.npcs[npcKey(name)]; !ok {
		return false
	}
	delete(m.npcs, npcKey(name))
	return true
}

// Clear removes every NPC, typically ahead of a map change.
func (m *NpcManager) Clear() {
	m.npcs = make(map[string]*Npc)
}

func (m *NpcManager) SetPos(name string, x, y int) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.setPos(x, y)
	return true
}

func (m *NpcManager) SetDir(name string, dir int) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Dir = dir
	return true
}

func (m *NpcManager) WalkTo(name string, x, y int) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Following = false
	n.moveTo(x, y, walkStepMs)
	return true
}

// AtDestination reports arrival. A despawned NPC counts as arrived so a
// wait tied to its movement never hangs.
func (m *NpcManager) AtDestination(name string) bool {
	n := m.Get(name)
	if n == nil {
		return true
	}
	return n.arrived()
}

func (m *NpcManager) SpecialAction(name string, action int) bool {
	return m.Get(name) != nil
}

func (m *NpcManager) SetScript(name, path string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Script = path
	return true
}

func (m *NpcManager) SetDeathScript(name, path string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.DeathScript = path
	return true
}

func (m *NpcManager) Show(name string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Hidden = false
	return true
}

func (m *NpcManager) Hide(name string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Hidden = true
	return true
}

func (m *NpcManager) SetLevel(name string, level int) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Level = level
	return true
}

func (m *NpcManager) SetRelation(name string, relation int) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Relation = relation
	return true
}

func (m *NpcManager) FollowPlayer(name string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Following = true
	return true
}

func (m *NpcManager) Unfollow(name string) bool {
	n := m.Get(name)
	if n == nil {
		return false
	}
	n.Following = false
	return true
}

// Update advances NPC movement; followers trail the player's tile.
func (m *NpcManager) Update(deltaMs int64, player *Player) {
	for _, n := range m.npcs {
		if n.Following && player != nil {
			px, py := player.Position()
			// Retarget only when the player moved; re-issuing moveTo
			// every tick would reset the step accumulator.
			stale := n.targetX != px || n.targetY != py
			if (stale || !n.moving) && (n.x != px || n.y != py) {
				n.moveTo(px, py, walkStepMs)
			}
		}
		n.update(deltaMs)
	}
}
