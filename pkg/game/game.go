package game

import (
	"github.com/luoxia/jianghu/pkg/engine"
	"github.com/luoxia/jianghu/pkg/fileutil"
)

// World bundles one instance of every collaborator and wires it into an
// engine.GameAPI. It is the state the demo player runs scripts against.
type World struct {
	Gui     *Gui
	Player  *Player
	Npcs    *NpcManager
	Objs    *ObjManager
	Magic   *MagicManager
	Goods   *GoodsManager
	Buy     *BuyManager
	Camera  *Camera
	Maps    *MapManager
	Weather *Weather
	Timers  *Timers
	Storage *FileStorage
	Sound   engine.SoundPlayer
}

// NewWorld creates a world over the game file system. sound may be nil;
// a silent player is substituted so audio commands stay no-ops.
func NewWorld(fs fileutil.FileSystem, saveDir string, sound engine.SoundPlayer) (*World, error) {
	storage, err := NewFileStorage(saveDir)
	if err != nil {
		return nil, err
	}
	if sound == nil {
		sound = NullSound{}
	}
	return &World{
		Gui:     NewGui(),
		Player:  NewPlayer(),
		Npcs:    NewNpcManager(),
		Objs:    NewObjManager(),
		Magic:   NewMagicManager(),
		Goods:   NewGoodsManager(),
		Buy:     NewBuyManager(),
		Camera:  NewCamera(),
		Maps:    NewMapManager(fs),
		Weather: NewWeather(),
		Timers:  NewTimers(),
		Storage: storage,
		Sound:   sound,
	}, nil
}

// API exposes the world through the collaborator interfaces the engine
// dispatches against.
func (w *World) API() *engine.GameAPI {
	return &engine.GameAPI{
		Gui:     w.Gui,
		Player:  w.Player,
		Npcs:    w.Npcs,
		Objs:    w.Objs,
		Magic:   w.Magic,
		Goods:   w.Goods,
		Buy:     w.Buy,
		Camera:  w.Camera,
		Maps:    w.Maps,
		Weather: w.Weather,
		Timers:  w.Timers,
		Sound:   w.Sound,
		Storage: w.Storage,
	}
}

// Update advances everything that moves on game time. Call once per tick
// before Scheduler.Update, so waits observe this tick's movement.
func (w *World) Update(deltaMs int64) {
	w.Player.Update(deltaMs)
	w.Npcs.Update(deltaMs, w.Player)
	w.Camera.Update(deltaMs)
	w.Timers.Update(deltaMs)
}

// NullSound is a silent SoundPlayer for headless runs.
type NullSound struct{}

func (NullSound) PlayMusic(fileName string) error { return nil }
func (NullSound) StopMusic()                      {}
func (NullSound) PlaySound(fileName string) error { return nil }
