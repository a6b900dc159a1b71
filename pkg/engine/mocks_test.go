package engine

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/luoxia/jianghu/pkg/fileutil"
	"github.com/luoxia/jianghu/pkg/script"
)

// memFS is an in-memory fileutil.FileSystem for tests. Keys are the
// normalized script paths the loader asks for.
type memFS struct {
	files map[string]string
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string]string)}
}

func (m *memFS) AddScript(path, text string) {
	m.files[script.NormalizePath(path)] = text
}

func (m *memFS) Open(name string) (fs.File, error) {
	return nil, fmt.Errorf("open not supported: %s", name)
}

func (m *memFS) ReadFile(name string) ([]byte, error) {
	if text, ok := m.files[strings.ToLower(name)]; ok {
		return []byte(text), nil
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func (m *memFS) FindFile(dir, filename string) (string, error) {
	return "", fmt.Errorf("file not found: %s/%s", dir, filename)
}

func (m *memFS) BasePath() string { return "" }
func (m *memFS) IsEmbedded() bool { return false }

var _ fileutil.FileSystem = (*memFS)(nil)

// fakeGui records UI calls and tracks the open dialog/selection.
type fakeGui struct {
	dialogs    []string
	messages   []string
	tips       []string
	selections [][]string
	faces      []string
	titles     []string
	inputOff   int
	inputOn    int
}

func (g *fakeGui) ShowDialog(text, speaker string) { g.dialogs = append(g.dialogs, text) }
func (g *fakeGui) ShowMessage(text string)         { g.messages = append(g.messages, text) }
func (g *fakeGui) ShowSelection(options []string)  { g.selections = append(g.selections, options) }
func (g *fakeGui) ShowTip(text string)             { g.tips = append(g.tips, text) }
func (g *fakeGui) ClearTip()                       {}
func (g *fakeGui) ShowFace(name string)            { g.faces = append(g.faces, name) }
func (g *fakeGui) HideFace()                       {}
func (g *fakeGui) ShowTitle(text string)           { g.titles = append(g.titles, text) }
func (g *fakeGui) ClearDialog()                    {}
func (g *fakeGui) SetInputEnabled(enabled bool) {
	if enabled {
		g.inputOn++
	} else {
		g.inputOff++
	}
}

// fakePlayer reports arrival after a configurable number of polls.
type fakePlayer struct {
	x, y         int
	dir          int
	life         int
	money        int
	fightOff     bool
	runOff       bool
	walkPolls    int // AtDestination returns false this many times
	walkRequests int
}

func (p *fakePlayer) SetPosition(x, y int)  { p.x, p.y = x, y }
func (p *fakePlayer) SetDirection(dir int)  { p.dir = dir }
func (p *fakePlayer) WalkTo(x, y int)       { p.x, p.y = x, y; p.walkRequests++ }
func (p *fakePlayer) RunTo(x, y int)        { p.x, p.y = x, y; p.walkRequests++ }
func (p *fakePlayer) AtDestination() bool {
	if p.walkPolls > 0 {
		p.walkPolls--
		return false
	}
	return true
}
func (p *fakePlayer) AddLife(amount int)  { p.life += amount }
func (p *fakePlayer) AddMana(amount int)  {}
func (p *fakePlayer) AddThew(amount int)  {}
func (p *fakePlayer) FullAll()            {}
func (p *fakePlayer) AddExp(amount int)   {}
func (p *fakePlayer) AddMoney(amount int) { p.money += amount }
func (p *fakePlayer) SetMoney(amount int) { p.money = amount }
func (p *fakePlayer) Money() int          { return p.money }
func (p *fakePlayer) SetState(state int)  {}

func (p *fakePlayer) SetFightEnabled(enabled bool) { p.fightOff = !enabled }
func (p *fakePlayer) SetRunEnabled(enabled bool)   { p.runOff = !enabled }

// fakeNpcs knows a fixed set of names; operations on other names fail.
type fakeNpcs struct {
	known   map[string]bool
	actions []string
}

func newFakeNpcs(names ...string) *fakeNpcs {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return &fakeNpcs{known: m}
}

func (n *fakeNpcs) has(name string, op string) bool {
	if !n.known[name] {
		return false
	}
	n.actions = append(n.actions, op+":"+name)
	return true
}

func (n *fakeNpcs) Add(iniName string, x, y, dir int) { n.known[iniName] = true }
func (n *fakeNpcs) Del(name string) bool              { return n.has(name, "del") }
func (n *fakeNpcs) SetPos(name string, x, y int) bool { return n.has(name, "setpos") }
func (n *fakeNpcs) SetDir(name string, dir int) bool  { return n.has(name, "setdir") }
func (n *fakeNpcs) WalkTo(name string, x, y int) bool { return n.has(name, "walk") }
func (n *fakeNpcs) AtDestination(name string) bool    { return true }
func (n *fakeNpcs) SpecialAction(name string, action int) bool {
	return n.has(name, "action")
}
func (n *fakeNpcs) SetScript(name, path string) bool      { return n.has(name, "script") }
func (n *fakeNpcs) SetDeathScript(name, path string) bool { return n.has(name, "deathscript") }
func (n *fakeNpcs) Show(name string) bool                 { return n.has(name, "show") }
func (n *fakeNpcs) Hide(name string) bool                 { return n.has(name, "hide") }
func (n *fakeNpcs) SetLevel(name string, level int) bool  { return n.has(name, "level") }
func (n *fakeNpcs) SetRelation(name string, r int) bool   { return n.has(name, "relation") }
func (n *fakeNpcs) FollowPlayer(name string) bool         { return n.has(name, "follow") }
func (n *fakeNpcs) Unfollow(name string) bool             { return n.has(name, "unfollow") }
func (n *fakeNpcs) Clear()                                { n.known = make(map[string]bool) }

type fakeObjs struct {
	known map[string]bool
}

func (o *fakeObjs) Add(iniName string, x, y, dir int) {
	if o.known == nil {
		o.known = make(map[string]bool)
	}
	o.known[iniName] = true
}
func (o *fakeObjs) Del(name string) bool              { return o.known[name] }
func (o *fakeObjs) SetScript(name, path string) bool  { return o.known[name] }
func (o *fakeObjs) OpenBox(name string) bool          { return o.known[name] }
func (o *fakeObjs) CloseBox(name string) bool         { return o.known[name] }
func (o *fakeObjs) ClearBody()                        {}

type fakeMagic struct {
	known map[string]bool
}

func (m *fakeMagic) Add(iniName string) {
	if m.known == nil {
		m.known = make(map[string]bool)
	}
	m.known[iniName] = true
}
func (m *fakeMagic) Del(iniName string) bool                { return m.known[iniName] }
func (m *fakeMagic) SetLevel(iniName string, lv int) bool   { return m.known[iniName] }
func (m *fakeMagic) AddExp(iniName string, amount int) bool { return m.known[iniName] }
func (m *fakeMagic) Use(iniName string) bool                { return m.known[iniName] }

type fakeGoods struct {
	counts map[string]int
}

func newFakeGoods() *fakeGoods { return &fakeGoods{counts: make(map[string]int)} }

func (g *fakeGoods) Add(iniName string, count int) { g.counts[iniName] += count }
func (g *fakeGoods) Del(iniName string, count int) bool {
	if g.counts[iniName] < count {
		return false
	}
	g.counts[iniName] -= count
	return true
}
func (g *fakeGoods) Equip(iniName string) bool  { return g.counts[iniName] > 0 }
func (g *fakeGoods) Count(iniName string) int   { return g.counts[iniName] }
func (g *fakeGoods) Clear()                     { g.counts = make(map[string]int) }
func (g *fakeGoods) AddRandom(listName string)  { g.counts[listName]++ }

// fakeBuy keeps the session open for a fixed number of polls.
type fakeBuy struct {
	openPolls int
	started   []string
}

func (b *fakeBuy) StartBuy(listName string) { b.started = append(b.started, listName) }
func (b *fakeBuy) StartSell()               { b.started = append(b.started, "<sell>") }
func (b *fakeBuy) SessionOpen() bool {
	if b.openPolls > 0 {
		b.openPolls--
		return true
	}
	return false
}

type fakeCamera struct {
	x, y      int
	fadePolls int
	movePolls int
	fades     int
}

func (c *fakeCamera) MoveTo(x, y int)  { c.x, c.y = x, y }
func (c *fakeCamera) SetPos(x, y int)  { c.x, c.y = x, y }
func (c *fakeCamera) ReturnToPlayer()  {}
func (c *fakeCamera) Shake(amount int) {}
func (c *fakeCamera) AtDestination() bool {
	if c.movePolls > 0 {
		c.movePolls--
		return false
	}
	return true
}
func (c *fakeCamera) FadeIn()  { c.fades++ }
func (c *fakeCamera) FadeOut() { c.fades++ }
func (c *fakeCamera) FadeFinished() bool {
	if c.fadePolls > 0 {
		c.fadePolls--
		return false
	}
	return true
}

type fakeMaps struct {
	loaded []string
	traps  map[int]string
	time   int
}

func (m *fakeMaps) LoadMap(name string) error {
	m.loaded = append(m.loaded, name)
	return nil
}
func (m *fakeMaps) SetTrap(index int, scriptPath string) {
	if m.traps == nil {
		m.traps = make(map[int]string)
	}
	m.traps[index] = scriptPath
}
func (m *fakeMaps) ClearTrap(index int) { delete(m.traps, index) }
func (m *fakeMaps) SetTime(t int)       { m.time = t }
func (m *fakeMaps) Time() int           { return m.time }

type fakeWeather struct {
	current string
}

func (w *fakeWeather) Rain()    { w.current = "rain" }
func (w *fakeWeather) Snow()    { w.current = "snow" }
func (w *fakeWeather) Thunder() { w.current = "thunder" }
func (w *fakeWeather) Stop()    { w.current = "" }

// fakeTimers is driven by Advance, matching how the host drives the real
// timer manager once per tick.
type fakeTimers struct {
	next      int
	remaining map[int]int64
	limit     string
}

func newFakeTimers() *fakeTimers { return &fakeTimers{remaining: make(map[int]int64)} }

func (t *fakeTimers) After(ms int64) int {
	t.next++
	t.remaining[t.next] = ms
	return t.next
}

func (t *fakeTimers) Expired(token int) bool {
	ms, ok := t.remaining[token]
	return !ok || ms <= 0
}

func (t *fakeTimers) Advance(deltaMs int64) {
	for token := range t.remaining {
		t.remaining[token] -= deltaMs
	}
}

func (t *fakeTimers) SetTimeLimit(ms int64, scriptPath string) { t.limit = scriptPath }
func (t *fakeTimers) ClearTimeLimit()                          { t.limit = "" }
func (t *fakeTimers) ShowWindow()                              {}
func (t *fakeTimers) HideWindow()                              {}

type fakeSound struct {
	music  []string
	sounds []string
	fail   bool
}

func (s *fakeSound) PlayMusic(fileName string) error {
	if s.fail {
		return fmt.Errorf("no such file: %s", fileName)
	}
	s.music = append(s.music, fileName)
	return nil
}
func (s *fakeSound) StopMusic() {}
func (s *fakeSound) PlaySound(fileName string) error {
	if s.fail {
		return fmt.Errorf("no such file: %s", fileName)
	}
	s.sounds = append(s.sounds, fileName)
	return nil
}

type fakeStorage struct {
	slots       map[int]*SaveState
	saveEnabled bool
}

func newFakeStorage() *fakeStorage { return &fakeStorage{slots: make(map[int]*SaveState)} }

func (s *fakeStorage) SaveGame(slot int, state *SaveState) error {
	s.slots[slot] = state
	return nil
}

func (s *fakeStorage) LoadGame(slot int) (*SaveState, error) {
	state, ok := s.slots[slot]
	if !ok {
		return nil, fmt.Errorf("empty slot %d", slot)
	}
	return state, nil
}

func (s *fakeStorage) SetSaveEnabled(enabled bool) { s.saveEnabled = enabled }

// testWorld bundles a Scheduler over in-memory scripts and fakes.
type testWorld struct {
	sched   *Scheduler
	fs      *memFS
	gui     *fakeGui
	player  *fakePlayer
	npcs    *fakeNpcs
	objs    *fakeObjs
	magic   *fakeMagic
	goods   *fakeGoods
	buy     *fakeBuy
	camera  *fakeCamera
	maps    *fakeMaps
	weather *fakeWeather
	timers  *fakeTimers
	sound   *fakeSound
	storage *fakeStorage
}

func newTestWorld(t *testing.T, scripts map[string]string) *testWorld {
	t.Helper()
	w := &testWorld{
		fs:      newMemFS(),
		gui:     &fakeGui{},
		player:  &fakePlayer{},
		npcs:    newFakeNpcs(),
		objs:    &fakeObjs{},
		magic:   &fakeMagic{},
		goods:   newFakeGoods(),
		buy:     &fakeBuy{},
		camera:  &fakeCamera{},
		maps:    &fakeMaps{},
		weather: &fakeWeather{},
		timers:  newFakeTimers(),
		sound:   &fakeSound{},
		storage: newFakeStorage(),
	}
	for path, text := range scripts {
		w.fs.AddScript(path, text)
	}
	api := &GameAPI{
		Gui:     w.gui,
		Player:  w.player,
		Npcs:    w.npcs,
		Objs:    w.objs,
		Magic:   w.magic,
		Goods:   w.goods,
		Buy:     w.buy,
		Camera:  w.camera,
		Maps:    w.maps,
		Weather: w.weather,
		Timers:  w.timers,
		Sound:   w.sound,
		Storage: w.storage,
	}
	w.sched = NewScheduler(api, script.NewLoader(w.fs))
	return w
}

// update runs one tick and drives the fake timers by the same delta.
func (w *testWorld) update(deltaMs int64) {
	w.timers.Advance(deltaMs)
	w.sched.Update(deltaMs)
}
