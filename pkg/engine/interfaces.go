package engine

// Collaborator interfaces consumed by the command handlers. The engine
// holds no gameplay logic: every command translates into exactly one call
// on one of these. Entity lookups report found=false for missing names so
// handlers can warn and no-op instead of failing the script.

// Gui is the shared UI singleton: dialog box, selection box, tips, faces.
type Gui interface {
	ShowDialog(text, speaker string)
	ShowMessage(text string)
	ShowSelection(options []string)
	ShowTip(text string)
	ClearTip()
	ShowFace(name string)
	HideFace()
	ShowTitle(text string)
	ClearDialog()
	SetInputEnabled(enabled bool)
}

// Player is the player character.
type Player interface {
	SetPosition(x, y int)
	SetDirection(dir int)
	WalkTo(x, y int)
	RunTo(x, y int)
	// AtDestination reports whether the last WalkTo/RunTo completed. It
	// must also return true when the destination became unreachable, so
	// waits tied to movement never hang.
	AtDestination() bool
	AddLife(amount int)
	AddMana(amount int)
	AddThew(amount int)
	FullAll()
	AddExp(amount int)
	AddMoney(amount int)
	SetMoney(amount int)
	Money() int
	SetState(state int)
	SetFightEnabled(enabled bool)
	SetRunEnabled(enabled bool)
}

// NpcManager manages non-player characters by name.
type NpcManager interface {
	Add(iniName string, x, y, dir int)
	Del(name string) bool
	SetPos(name string, x, y int) bool
	SetDir(name string, dir int) bool
	WalkTo(name string, x, y int) bool
	// AtDestination follows the same never-hang rule as Player: missing
	// NPCs and unreachable targets count as arrived.
	AtDestination(name string) bool
	SpecialAction(name string, action int) bool
	SetScript(name, path string) bool
	SetDeathScript(name, path string) bool
	Show(name string) bool
	Hide(name string) bool
	SetLevel(name string, level int) bool
	SetRelation(name string, relation int) bool
	FollowPlayer(name string) bool
	Unfollow(name string) bool
	Clear()
}

// ObjManager manages interactive map objects by name.
type ObjManager interface {
	Add(iniName string, x, y, dir int)
	Del(name string) bool
	SetScript(name, path string) bool
	OpenBox(name string) bool
	CloseBox(name string) bool
	ClearBody()
}

// MagicManager manages the player's learned magic.
type MagicManager interface {
	Add(iniName string)
	Del(iniName string) bool
	SetLevel(iniName string, level int) bool
	AddExp(iniName string, amount int) bool
	Use(iniName string) bool
}

// GoodsManager manages the player's inventory.
type GoodsManager interface {
	Add(iniName string, count int)
	Del(iniName string, count int) bool
	Equip(iniName string) bool
	Count(iniName string) int
	Clear()
	AddRandom(listName string)
}

// BuyManager runs shop sessions.
type BuyManager interface {
	StartBuy(listName string)
	StartSell()
	// SessionOpen reports whether a shop session is still on screen.
	SessionOpen() bool
}

// CameraController moves the view and runs screen transitions.
type CameraController interface {
	MoveTo(x, y int)
	SetPos(x, y int)
	ReturnToPlayer()
	Shake(amount int)
	// AtDestination reports whether the last MoveTo completed.
	AtDestination() bool
	FadeIn()
	FadeOut()
	// FadeFinished reports whether the running fade completed.
	FadeFinished() bool
}

// MapManager loads maps and manages tile-trigger traps.
type MapManager interface {
	LoadMap(name string) error
	SetTrap(index int, scriptPath string)
	ClearTrap(index int)
	SetTime(t int)
	Time() int
}

// WeatherManager drives ambient weather effects.
type WeatherManager interface {
	Rain()
	Snow()
	Thunder()
	Stop()
}

// TimerManager provides wall-clock waits and the countdown time limit.
// Update(deltaMs) must be driven once per tick by the host.
type TimerManager interface {
	// After registers a one-shot delay and returns its token.
	After(ms int64) int
	// Expired reports whether the token's delay elapsed. Unknown tokens
	// count as expired so waits never hang.
	Expired(token int) bool
	SetTimeLimit(ms int64, scriptPath string)
	ClearTimeLimit()
	ShowWindow()
	HideWindow()
}

// SoundPlayer plays background music and sound effects.
type SoundPlayer interface {
	PlayMusic(fileName string) error
	StopMusic()
	PlaySound(fileName string) error
}

// StorageManager persists and restores save games.
type StorageManager interface {
	SaveGame(slot int, state *SaveState) error
	LoadGame(slot int) (*SaveState, error)
	SetSaveEnabled(enabled bool)
}

// GameAPI bundles every collaborator. It is constructed once and passed
// by reference into the Scheduler; there is no ambient global lookup.
type GameAPI struct {
	Gui     Gui
	Player  Player
	Npcs    NpcManager
	Objs    ObjManager
	Magic   MagicManager
	Goods   GoodsManager
	Buy     BuyManager
	Camera  CameraController
	Maps    MapManager
	Weather WeatherManager
	Timers  TimerManager
	Sound   SoundPlayer
	Storage StorageManager
}
