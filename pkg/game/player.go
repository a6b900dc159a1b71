// Package game provides in-memory implementations of the collaborator
// interfaces the script engine drives: player, NPCs, map objects,
// inventory, shops, camera, weather, timers and save storage. They hold
// enough state to run authored quest scripts end to end and back the
// demo player.
package game

// Movement step intervals in milliseconds per tile.
const (
	walkStepMs = 100
	runStepMs  = 50
)

// mover advances an integer tile position one step toward a target at a
// fixed interval. Arrival is level-triggered: no target means arrived.
type mover struct {
	x, y             int
	targetX, targetY int
	moving           bool
	stepMs           int64
	elapsedMs        int64
}

func (m *mover) setPos(x, y int) {
	m.x, m.y = x, y
	m.moving = false
}

func (m *mover) moveTo(x, y int, stepMs int64) {
	m.targetX, m.targetY = x, y
	m.stepMs = stepMs
	m.elapsedMs = 0
	m.moving = m.x != x || m.y != y
}

func (m *mover) arrived() bool { return !m.moving }

func (m *mover) update(deltaMs int64) {
	if !m.moving {
		return
	}
	m.elapsedMs += deltaMs
	for m.elapsedMs >= m.stepMs && m.moving {
		m.elapsedMs -= m.stepMs
		m.x += sign(m.targetX - m.x)
		m.y += sign(m.targetY - m.y)
		if m.x == m.targetX && m.y == m.targetY {
			m.moving = false
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Player is the player character: position, facing, stats and purse.
type Player struct {
	mover
	dir   int
	state int

	Life, LifeMax int
	Mana, ManaMax int
	Thew, ThewMax int
	Exp           int
	money         int

	fightEnabled bool
	runEnabled   bool
}

// NewPlayer creates a player at the origin with default stats.
func NewPlayer() *Player {
	p := &Player{
		LifeMax: 100, Life: 100,
		ManaMax: 100, Mana: 100,
		ThewMax: 100, Thew: 100,
	}
	p.fightEnabled = true
	p.runEnabled = true
	return p
}

func (p *Player) SetPosition(x, y int) { p.setPos(x, y) }
func (p *Player) SetDirection(dir int) { p.dir = dir }
func (p *Player) WalkTo(x, y int)      { p.moveTo(x, y, walkStepMs) }
func (p *Player) RunTo(x, y int)       { p.moveTo(x, y, runStepMs) }
func (p *Player) AtDestination() bool  { return p.arrived() }

// Position returns the current tile coordinates.
func (p *Player) Position() (int, int) { return p.x, p.y }

// Direction returns the current facing.
func (p *Player) Direction() int { return p.dir }

// State returns the scripted pose state.
func (p *Player) State() int { return p.state }

func (p *Player) AddLife(amount int) { p.Life = clampStat(p.Life+amount, p.LifeMax) }
func (p *Player) AddMana(amount int) { p.Mana = clampStat(p.Mana+amount, p.ManaMax) }
func (p *Player) AddThew(amount int) { p.Thew = clampStat(p.Thew+amount, p.ThewMax) }

func (p *Player) FullAll() {
	p.Life, p.Mana, p.Thew = p.LifeMax, p.ManaMax, p.ThewMax
}

func (p *Player) AddExp(amount int) { p.Exp += amount }

func (p *Player) AddMoney(amount int) {
	p.money += amount
	if p.money < 0 {
		p.money = 0
	}
}

func (p *Player) SetMoney(amount int) {
	if amount < 0 {
		amount = 0
	}
	p.money = amount
}

func (p *Player) Money() int         { return p.money }
func (p *Player) SetState(state int) { p.state = state }

func (p *Player) SetFightEnabled(enabled bool) { p.fightEnabled = enabled }
func (p *Player) SetRunEnabled(enabled bool)   { p.runEnabled = enabled }

// FightEnabled reports whether scripted combat lockout is lifted.
func (p *Player) FightEnabled() bool { return p.fightEnabled }

// RunEnabled reports whether the player may run instead of walk.
func (p *Player) RunEnabled() bool { return p.runEnabled }

// Update advances pending movement.
func (p *Player) Update(deltaMs int64) { p.update(deltaMs) }

func clampStat(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
