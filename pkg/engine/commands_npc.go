package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// NPC handlers. An empty name argument targets the NPC the script is
// bound to. Lookups that fail are logged and ignored; a cutscene never
// dies because one actor despawned.
func registerNpcCommands(d *Dispatcher) {
	d.register(opcode.AddNpc, cmdAddNpc)
	d.register(opcode.DelNpc, npcByName(opcode.DelNpc, func(m NpcManager, name string) bool {
		return m.Del(name)
	}))
	d.register(opcode.SetNpcPos, cmdSetNpcPos)
	d.register(opcode.SetNpcDir, cmdSetNpcDir)
	d.register(opcode.NpcGoto, cmdNpcGoto)
	d.register(opcode.NpcSpecialAction, cmdNpcSpecialAction)
	d.register(opcode.SetNpcScript, npcWithPath(opcode.SetNpcScript, func(m NpcManager, name, path string) bool {
		return m.SetScript(name, path)
	}))
	d.register(opcode.SetNpcDeathScript, npcWithPath(opcode.SetNpcDeathScript, func(m NpcManager, name, path string) bool {
		return m.SetDeathScript(name, path)
	}))
	d.register(opcode.ShowNpc, npcByName(opcode.ShowNpc, func(m NpcManager, name string) bool {
		return m.Show(name)
	}))
	d.register(opcode.HideNpc, npcByName(opcode.HideNpc, func(m NpcManager, name string) bool {
		return m.Hide(name)
	}))
	d.register(opcode.SetNpcLevel, npcWithInt(opcode.SetNpcLevel, func(m NpcManager, name string, v int) bool {
		return m.SetLevel(name, v)
	}))
	d.register(opcode.SetNpcRelation, npcWithInt(opcode.SetNpcRelation, func(m NpcManager, name string, v int) bool {
		return m.SetRelation(name, v)
	}))
	d.register(opcode.FollowPlayer, npcByName(opcode.FollowPlayer, func(m NpcManager, name string) bool {
		return m.FollowPlayer(name)
	}))
	d.register(opcode.StopNpcFollow, npcByName(opcode.StopNpcFollow, func(m NpcManager, name string) bool {
		return m.Unfollow(name)
	}))
	d.register(opcode.ClearNpc, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Npcs.Clear()
		return done(), nil
	})
}

func npcByName(cmd opcode.Cmd, apply func(m NpcManager, name string) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.targetName(cmd, ctx, args, 0)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Npcs, name) {
			d.warnMissing(cmd, "npc", name)
		}
		return done(), nil
	}
}

func npcWithInt(cmd opcode.Cmd, apply func(m NpcManager, name string, v int) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.targetName(cmd, ctx, args, 0)
		if err != nil {
			return done(), err
		}
		v, err := d.argInt(cmd, args, 1)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Npcs, name, int(v)) {
			d.warnMissing(cmd, "npc", name)
		}
		return done(), nil
	}
}

func npcWithPath(cmd opcode.Cmd, apply func(m NpcManager, name, path string) bool) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		name, err := d.targetName(cmd, ctx, args, 0)
		if err != nil {
			return done(), err
		}
		path, err := d.argString(cmd, args, 1)
		if err != nil {
			return done(), err
		}
		if !apply(d.api.Npcs, name, path) {
			d.warnMissing(cmd, "npc", name)
		}
		return done(), nil
	}
}

func cmdAddNpc(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	iniName, err := d.argString(opcode.AddNpc, args, 0)
	if err != nil {
		return done(), err
	}
	x, y, err := d.argXY(opcode.AddNpc, args, 1)
	if err != nil {
		return done(), err
	}
	dir, err := d.optInt(opcode.AddNpc, args, 3, 0)
	if err != nil {
		return done(), err
	}
	d.api.Npcs.Add(iniName, x, y, int(dir))
	return done(), nil
}

func cmdSetNpcPos(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.targetName(opcode.SetNpcPos, ctx, args, 0)
	if err != nil {
		return done(), err
	}
	x, y, err := d.argXY(opcode.SetNpcPos, args, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Npcs.SetPos(name, x, y) {
		d.warnMissing(opcode.SetNpcPos, "npc", name)
	}
	return done(), nil
}

func cmdSetNpcDir(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.targetName(opcode.SetNpcDir, ctx, args, 0)
	if err != nil {
		return done(), err
	}
	dir, err := d.argInt(opcode.SetNpcDir, args, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Npcs.SetDir(name, int(dir)) {
		d.warnMissing(opcode.SetNpcDir, "npc", name)
	}
	return done(), nil
}

func cmdNpcGoto(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.targetName(opcode.NpcGoto, ctx, args, 0)
	if err != nil {
		return done(), err
	}
	x, y, err := d.argXY(opcode.NpcGoto, args, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Npcs.WalkTo(name, x, y) {
		d.warnMissing(opcode.NpcGoto, "npc", name)
		return done(), nil
	}
	npcs := d.api.Npcs
	return blocked(&BlockState{
		Kind: WaitPredicate,
		Done: func() bool { return npcs.AtDestination(name) },
	}), nil
}

func cmdNpcSpecialAction(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.targetName(opcode.NpcSpecialAction, ctx, args, 0)
	if err != nil {
		return done(), err
	}
	action, err := d.argInt(opcode.NpcSpecialAction, args, 1)
	if err != nil {
		return done(), err
	}
	if !d.api.Npcs.SpecialAction(name, int(action)) {
		d.warnMissing(opcode.NpcSpecialAction, "npc", name)
	}
	return done(), nil
}
