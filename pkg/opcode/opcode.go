// Package opcode defines the command set consumed by the script engine.
// The script loader emits Command values and the engine's dispatch table
// routes them by Cmd. Command names are a wire contract: authored scripts
// are data and are never recompiled against engine changes, so constants
// here must stay stable.
package opcode

import "strings"

// Cmd is a command name. Script source spells commands case-insensitively;
// the loader canonicalizes known names to the constants below and leaves
// unknown names as-is so the engine can skip them gracefully.
type Cmd string

// Dialog and UI commands.
const (
	// Say shows a dialog box and blocks until the player closes it.
	// Args: [text]
	Say Cmd = "Say"

	// Talk shows a dialog box with a speaker portrait and blocks until
	// the player closes it. Args: [npcName, text]
	Talk Cmd = "Talk"

	// Message shows a non-blocking message line. Args: [text]
	Message Cmd = "Message"

	// Select shows a selection box and blocks until the player picks an
	// option; the chosen index is written to the variable.
	// Args: [$var, option1, option2, ...]
	Select Cmd = "Select"

	ShowTip     Cmd = "ShowTip"     // Args: [text]
	ClearTip    Cmd = "ClearTip"    // Args: []
	ShowFace    Cmd = "ShowFace"    // Args: [faceName]
	HideFace    Cmd = "HideFace"    // Args: []
	ShowTitle   Cmd = "ShowTitle"   // Args: [text]
	ClearTitle  Cmd = "ClearTitle"  // Args: []
	ClearDialog Cmd = "ClearDialog" // Args: []
)

// Variable commands. All operate on the global variable store. The first
// argument is always the target variable.
const (
	Assign     Cmd = "Assign"     // Args: [$var, value]
	Add        Cmd = "Add"        // Args: [$var, value]
	Sub        Cmd = "Sub"        // Args: [$var, value]
	Mul        Cmd = "Mul"        // Args: [$var, value]
	Div        Cmd = "Div"        // Args: [$var, value]
	Mod        Cmd = "Mod"        // Args: [$var, value]
	RandAssign Cmd = "RandAssign" // Args: [$var, min, max]
	Copy       Cmd = "Copy"       // Args: [$dst, $src]
	Max        Cmd = "Max"        // Args: [$var, value] keep the larger
	Min        Cmd = "Min"        // Args: [$var, value] keep the smaller
)

// Flow-control commands.
const (
	// RunScript synchronously invokes another script; the caller resumes
	// when the callee finishes. Args: [path]
	RunScript Cmd = "RunScript"

	// QueueScript defers a script start to the next scheduling
	// opportunity without blocking the caller. Args: [path]
	QueueScript Cmd = "QueueScript"

	// RunParallelScript starts a background script after an optional
	// delay. Args: [path, delayMs]
	RunParallelScript Cmd = "RunParallelScript"

	StopAllScripts       Cmd = "StopAllScripts"       // Args: []
	ClearParallelScripts Cmd = "ClearParallelScripts" // Args: []

	// Goto jumps to a label within the current script. Args: [label]
	Goto Cmd = "Goto"

	// If jumps to a label when the comparison holds.
	// Args: [$var, op, value, label] where op is one of == != < <= > >=
	If Cmd = "If"

	// Return ends the current script immediately.
	Return Cmd = "Return"

	// Sleep blocks the script for the given wall-clock duration.
	// Args: [milliseconds]
	Sleep Cmd = "Sleep"
)

// Player commands.
const (
	SetPlayerPos   Cmd = "SetPlayerPos"   // Args: [x, y]
	SetPlayerDir   Cmd = "SetPlayerDir"   // Args: [dir]
	PlayerGoto     Cmd = "PlayerGoto"     // Args: [x, y] blocking walk
	PlayerRunTo    Cmd = "PlayerRunTo"    // Args: [x, y] blocking run
	AddLife        Cmd = "AddLife"        // Args: [amount]
	AddMana        Cmd = "AddMana"        // Args: [amount]
	AddThew        Cmd = "AddThew"        // Args: [amount]
	FullAll        Cmd = "FullAll"        // Args: []
	AddExp         Cmd = "AddExp"         // Args: [amount]
	AddMoney       Cmd = "AddMoney"       // Args: [amount]
	SetMoney       Cmd = "SetMoney"       // Args: [amount]
	GetMoney       Cmd = "GetMoney"       // Args: [$var]
	SetPlayerState Cmd = "SetPlayerState" // Args: [state]
	EnableFight    Cmd = "EnableFight"    // Args: []
	DisableFight   Cmd = "DisableFight"   // Args: []
	EnableRun      Cmd = "EnableRun"      // Args: []
	DisableRun     Cmd = "DisableRun"     // Args: []
)

// NPC commands. Commands with an empty name argument target the NPC the
// script is bound to.
const (
	AddNpc            Cmd = "AddNpc"            // Args: [iniName, x, y, dir]
	DelNpc            Cmd = "DelNpc"            // Args: [name]
	ClearNpc          Cmd = "ClearNpc"          // Args: []
	SetNpcPos         Cmd = "SetNpcPos"         // Args: [name, x, y]
	SetNpcDir         Cmd = "SetNpcDir"         // Args: [name, dir]
	NpcGoto           Cmd = "NpcGoto"           // Args: [name, x, y] blocking walk
	NpcSpecialAction  Cmd = "NpcSpecialAction"  // Args: [name, action]
	SetNpcScript      Cmd = "SetNpcScript"      // Args: [name, path]
	SetNpcDeathScript Cmd = "SetNpcDeathScript" // Args: [name, path]
	ShowNpc           Cmd = "ShowNpc"           // Args: [name]
	HideNpc           Cmd = "HideNpc"           // Args: [name]
	SetNpcLevel       Cmd = "SetNpcLevel"       // Args: [name, level]
	SetNpcRelation    Cmd = "SetNpcRelation"    // Args: [name, relation]
	FollowPlayer      Cmd = "FollowPlayer"      // Args: [name]
	StopNpcFollow     Cmd = "StopNpcFollow"     // Args: [name]
)

// Map object commands.
const (
	AddObj       Cmd = "AddObj"       // Args: [iniName, x, y, dir]
	DelObj       Cmd = "DelObj"       // Args: [name]
	SetObjScript Cmd = "SetObjScript" // Args: [name, path]
	OpenBox      Cmd = "OpenBox"      // Args: [name]
	CloseBox     Cmd = "CloseBox"     // Args: [name]
	ClearBody    Cmd = "ClearBody"    // Args: []
)

// Magic commands.
const (
	AddMagic      Cmd = "AddMagic"      // Args: [iniName]
	DelMagic      Cmd = "DelMagic"      // Args: [iniName]
	SetMagicLevel Cmd = "SetMagicLevel" // Args: [iniName, level]
	AddMagicExp   Cmd = "AddMagicExp"   // Args: [iniName, amount]
	UseMagic      Cmd = "UseMagic"      // Args: [iniName]
)

// Goods and economy commands.
const (
	AddGoods     Cmd = "AddGoods"     // Args: [iniName, count]
	DelGoods     Cmd = "DelGoods"     // Args: [iniName, count]
	EquipGoods   Cmd = "EquipGoods"   // Args: [iniName]
	GetGoodsNum  Cmd = "GetGoodsNum"  // Args: [iniName, $var]
	ClearGoods   Cmd = "ClearGoods"   // Args: []
	AddRandGoods Cmd = "AddRandGoods" // Args: [listName]

	// IfGoods jumps to a label when the player carries at least count of
	// the item. Args: [iniName, count, label]
	IfGoods Cmd = "IfGoods"

	// BuyGoods opens a buy session and blocks until the player closes
	// the shop. Args: [listName]
	BuyGoods  Cmd = "BuyGoods"
	SellGoods Cmd = "SellGoods" // Args: [] blocking sell session
)

// Camera and map commands.
const (
	LoadMap      Cmd = "LoadMap"      // Args: [mapName]
	FadeIn       Cmd = "FadeIn"       // Args: [] blocking
	FadeOut      Cmd = "FadeOut"      // Args: [] blocking
	MoveCamera   Cmd = "MoveCamera"   // Args: [x, y] blocking
	SetCameraPos Cmd = "SetCameraPos" // Args: [x, y]
	ReturnCamera Cmd = "ReturnCamera" // Args: [] snap back to player
	ShakeScreen  Cmd = "ShakeScreen"  // Args: [amount]
	SetMapTrap   Cmd = "SetMapTrap"   // Args: [index, path]
	ClearMapTrap Cmd = "ClearMapTrap" // Args: [index]
	SetMapTime   Cmd = "SetMapTime"   // Args: [time]
	GetMapTime   Cmd = "GetMapTime"   // Args: [$var]
)

// Weather commands.
const (
	Rain        Cmd = "Rain"        // Args: []
	Snow        Cmd = "Snow"        // Args: []
	Thunder     Cmd = "Thunder"     // Args: []
	StopWeather Cmd = "StopWeather" // Args: []
)

// Timer commands.
const (
	// SetTimeLimit starts a countdown that runs the given script on
	// expiry. Args: [milliseconds, path]
	SetTimeLimit    Cmd = "SetTimeLimit"
	ClearTimeLimit  Cmd = "ClearTimeLimit"  // Args: []
	ShowTimerWindow Cmd = "ShowTimerWindow" // Args: []
	HideTimerWindow Cmd = "HideTimerWindow" // Args: []
)

// Audio commands.
const (
	PlayMusic Cmd = "PlayMusic" // Args: [fileName]
	StopMusic Cmd = "StopMusic" // Args: []
	PlaySound Cmd = "PlaySound" // Args: [fileName]
)

// Save and input commands.
const (
	SaveGame     Cmd = "SaveGame"     // Args: [slot]
	LoadGame     Cmd = "LoadGame"     // Args: [slot]
	EnableSave   Cmd = "EnableSave"   // Args: []
	DisableSave  Cmd = "DisableSave"  // Args: []
	EnableInput  Cmd = "EnableInput"  // Args: []
	DisableInput Cmd = "DisableInput" // Args: []
)

// Label is the pseudo-command emitted for `@name:` lines. It is a no-op
// at execution time; jump targets are resolved at parse time.
const Label Cmd = "Label"

// Variable marks an argument as a variable reference ($name in source).
// The engine resolves it against the global variable store at dispatch
// time.
type Variable string

// Command is a single parsed script instruction. Args hold int64 for
// numeric literals, string for string literals, and Variable for
// variable references.
type Command struct {
	Cmd  Cmd
	Args []any
	// Line is the 1-based source line, kept for diagnostics and the
	// step-tracing debugger.
	Line int
}

// All enumerates every known command, used to build the canonical
// name lookup and to sanity-check dispatch registration in tests.
var All = []Cmd{
	Say, Talk, Message, Select, ShowTip, ClearTip, ShowFace, HideFace,
	ShowTitle, ClearTitle, ClearDialog,
	Assign, Add, Sub, Mul, Div, Mod, RandAssign, Copy, Max, Min,
	RunScript, QueueScript, RunParallelScript, StopAllScripts,
	ClearParallelScripts, Goto, If, Return, Sleep,
	SetPlayerPos, SetPlayerDir, PlayerGoto, PlayerRunTo, AddLife, AddMana,
	AddThew, FullAll, AddExp, AddMoney, SetMoney, GetMoney, SetPlayerState,
	EnableFight, DisableFight, EnableRun, DisableRun,
	AddNpc, DelNpc, ClearNpc, SetNpcPos, SetNpcDir, NpcGoto, NpcSpecialAction,
	SetNpcScript, SetNpcDeathScript, ShowNpc, HideNpc, SetNpcLevel,
	SetNpcRelation, FollowPlayer, StopNpcFollow,
	AddObj, DelObj, SetObjScript, OpenBox, CloseBox, ClearBody,
	AddMagic, DelMagic, SetMagicLevel, AddMagicExp, UseMagic,
	AddGoods, DelGoods, EquipGoods, GetGoodsNum, ClearGoods, AddRandGoods,
	IfGoods, BuyGoods, SellGoods,
	LoadMap, FadeIn, FadeOut, MoveCamera, SetCameraPos, ReturnCamera,
	ShakeScreen, SetMapTrap, ClearMapTrap, SetMapTime, GetMapTime,
	Rain, Snow, Thunder, StopWeather,
	SetTimeLimit, ClearTimeLimit, ShowTimerWindow, HideTimerWindow,
	PlayMusic, StopMusic, PlaySound,
	SaveGame, LoadGame, EnableSave, DisableSave, EnableInput, DisableInput,
	Label,
}

var canonical = func() map[string]Cmd {
	m := make(map[string]Cmd, len(All))
	for _, c := range All {
		m[strings.ToLower(string(c))] = c
	}
	return m
}()

// Canonical maps a command name from script source to its canonical Cmd.
// Unknown names are returned unchanged with ok=false; the engine logs and
// skips them so scripts authored against other engine versions degrade
// gracefully.
func Canonical(name string) (Cmd, bool) {
	if c, ok := canonical[strings.ToLower(name)]; ok {
		return c, true
	}
	return Cmd(name), false
}
