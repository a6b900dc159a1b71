package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Save, load and input-gate handlers. LoadGame does not tear the world
// down mid-command: it hands the loaded snapshot to the Scheduler, which
// applies it at the start of the next tick, and stops the current script.
func registerSaveCommands(d *Dispatcher) {
	d.register(opcode.SaveGame, cmdSaveGame)
	d.register(opcode.LoadGame, cmdLoadGame)
	d.register(opcode.EnableSave, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Storage.SetSaveEnabled(true)
		return done(), nil
	})
	d.register(opcode.DisableSave, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Storage.SetSaveEnabled(false)
		return done(), nil
	})
	d.register(opcode.EnableInput, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Gui.SetInputEnabled(true)
		return done(), nil
	})
	d.register(opcode.DisableInput, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Gui.SetInputEnabled(false)
		return done(), nil
	})
}

func cmdSaveGame(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	slot, err := d.argInt(opcode.SaveGame, args, 0)
	if err != nil {
		return done(), err
	}
	state := d.sched.CaptureSaveState()
	if err := d.api.Storage.SaveGame(int(slot), state); err != nil {
		d.log.Warn("save failed", "slot", slot, "error", err)
	}
	return done(), nil
}

func cmdLoadGame(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	slot, err := d.argInt(opcode.LoadGame, args, 0)
	if err != nil {
		return done(), err
	}
	state, err := d.api.Storage.LoadGame(int(slot))
	if err != nil {
		d.log.Warn("load failed", "slot", slot, "error", err)
		return done(), nil
	}
	d.sched.requestRestore(state)
	return stop(), nil
}
