package game

import (
	"math/rand"
	"strings"
)

// MagicManager tracks learned magic with per-skill level and experience.
type MagicManager struct {
	skills map[string]*magicSkill
}

type magicSkill struct {
	Level int
	Exp   int
	Uses  int
}

// NewMagicManager creates an empty manager.
func NewMagicManager() *MagicManager {
	return &MagicManager{skills: make(map[string]*magicSkill)}
}

// Knows reports whether the skill was learned.
func (m *MagicManager) Knows(iniName string) bool {
	_, ok := m.skills[strings.ToLower(iniName)]
	return ok
}

// Level returns the skill level, 0 when unknown.
func (m *MagicManager) Level(iniName string) int {
	if s, ok := m.skills[strings.ToLower(iniName)]; ok {
		return s.Level
	}
	return 0
}

func (m *MagicManager) Add(iniName string) {
	key := strings.ToLower(iniName)
	if _, ok := m.skills[key]; !ok {
		m.skills[key] = &magicSkill{Level: 1}
	}
}

func (m *MagicManager) Del(iniName string) bool {
	key := strings.ToLower(iniName)
	if _, ok := m.skills[key]; !ok {
		return false
	}
	delete(m.skills, key)
	return true
}

func (m *MagicManager) SetLevel(iniName string, level int) bool {
	s, ok := m.skills[strings.ToLower(iniName)]
	if !ok {
		return false
	}
	s.Level = level
	return true
}

func (m *MagicManager) AddExp(iniName string, amount int) bool {
	s, ok := m.skills[strings.ToLower(iniName)]
	if !ok {
		return false
	}
	s.Exp += amount
	return true
}

func (m *MagicManager) Use(iniName string) bool {
	s, ok := m.skills[strings.ToLower(iniName)]
	if !ok {
		return false
	}
	s.Uses++
	return true
}

// GoodsManager is the player inventory: item counts plus an equipped set.
type GoodsManager struct {
	counts   map[string]int
	equipped map[string]bool

	// RandomLists maps a list name to candidate items for AddRandom.
	RandomLists map[string][]string
}

// NewGoodsManager creates an empty inventory.
func NewGoodsManager() *GoodsManager {
	return &GoodsManager{
		counts:      make(map[string]int),
		equipped:    make(map[string]bool),
		RandomLists: make(map[string][]string),
	}
}

func goodsKey(name string) string { return strings.ToLower(name) }

func (g *GoodsManager) Add(iniName string, count int) {
	if count <= 0 {
		return
	}
	g.counts[goodsKey(iniName)] += count
}

func (g *GoodsManager) Del(iniName string, count int) bool {
	key := goodsKey(iniName)
	if g.counts[key] < count {
		return false
	}
	g.counts[key] -= count
	if g.counts[key] == 0 {
		delete(g.counts, key)
		delete(g.equipped, key)
	}
	return true
}

func (g *GoodsManager) Equip(iniName string) bool {
	key := goodsKey(iniName)
	if g.counts[key] == 0 {
		return false
	}
	g.equipped[key] = true
	return true
}

// Equipped reports whether the item is worn.
func (g *GoodsManager) Equipped(iniName string) bool {
	return g.equipped[goodsKey(iniName)]
}

func (g *GoodsManager) Count(iniName string) int { return g.counts[goodsKey(iniName)] }

func (g *GoodsManager) Clear() {
	g.counts = make(map[string]int)
	g.equipped = make(map[string]bool)
}

// AddRandom grants one item drawn from the named drop list. An unknown
// list grants nothing.
func (g *GoodsManager) AddRandom(listName string) {
	items := g.RandomLists[goodsKey(listName)]
	if len(items) == 0 {
		return
	}
	g.Add(items[rand.Intn(len(items))], 1)
}

// BuyManager runs shop sessions. A session stays open until the UI layer
// closes it; scripts block on SessionOpen.
type BuyManager struct {
	open     bool
	listName string
	selling  bool
}

// NewBuyManager creates a manager with no session.
func NewBuyManager() *BuyManager { return &BuyManager{} }

func (b *BuyManager) StartBuy(listName string) {
	b.open = true
	b.selling = false
	b.listName = listName
}

func (b *BuyManager) StartSell() {
	b.open = true
	b.selling = true
	b.listName = ""
}

func (b *BuyManager) SessionOpen() bool { return b.open }

// ListName returns the goods list of the open buy session.
func (b *BuyManager) ListName() string { return b.listName }

// Selling reports whether the open session is a sell session.
func (b *BuyManager) Selling() bool { return b.selling }

// Close ends the session; the UI layer calls this when the player leaves
// the shop.
func (b *BuyManager) Close() { b.open = false }
