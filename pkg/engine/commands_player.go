package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Player handlers. PlayerGoto and PlayerRunTo block the script until the
// movement completes; AtDestination also reports true for unreachable
// targets so the wait cannot hang.
func registerPlayerCommands(d *Dispatcher) {
	d.register(opcode.SetPlayerPos, cmdSetPlayerPos)
	d.register(opcode.SetPlayerDir, cmdSetPlayerDir)
	d.register(opcode.PlayerGoto, cmdPlayerGoto)
	d.register(opcode.PlayerRunTo, cmdPlayerRunTo)
	d.register(opcode.AddLife, playerAmount(opcode.AddLife, func(p Player, n int) { p.AddLife(n) }))
	d.register(opcode.AddMana, playerAmount(opcode.AddMana, func(p Player, n int) { p.AddMana(n) }))
	d.register(opcode.AddThew, playerAmount(opcode.AddThew, func(p Player, n int) { p.AddThew(n) }))
	d.register(opcode.FullAll, cmdFullAll)
	d.register(opcode.AddExp, playerAmount(opcode.AddExp, func(p Player, n int) { p.AddExp(n) }))
	d.register(opcode.AddMoney, playerAmount(opcode.AddMoney, func(p Player, n int) { p.AddMoney(n) }))
	d.register(opcode.SetMoney, playerAmount(opcode.SetMoney, func(p Player, n int) { p.SetMoney(n) }))
	d.register(opcode.GetMoney, cmdGetMoney)
	d.register(opcode.SetPlayerState, cmdSetPlayerState)
	d.register(opcode.EnableFight, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Player.SetFightEnabled(true)
		return done(), nil
	})
	d.register(opcode.DisableFight, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Player.SetFightEnabled(false)
		return done(), nil
	})
	d.register(opcode.EnableRun, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Player.SetRunEnabled(true)
		return done(), nil
	})
	d.register(opcode.DisableRun, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Player.SetRunEnabled(false)
		return done(), nil
	})
}

// playerAmount adapts the single-integer player mutators.
func playerAmount(cmd opcode.Cmd, apply func(p Player, n int)) HandlerFunc {
	return func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		n, err := d.argInt(cmd, args, 0)
		if err != nil {
			return done(), err
		}
		apply(d.api.Player, int(n))
		return done(), nil
	}
}

func cmdSetPlayerPos(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	x, y, err := d.argXY(opcode.SetPlayerPos, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Player.SetPosition(x, y)
	return done(), nil
}

func cmdSetPlayerDir(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	dir, err := d.argInt(opcode.SetPlayerDir, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Player.SetDirection(int(dir))
	return done(), nil
}

func cmdPlayerGoto(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	x, y, err := d.argXY(opcode.PlayerGoto, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Player.WalkTo(x, y)
	player := d.api.Player
	return blocked(&BlockState{Kind: WaitPredicate, Done: player.AtDestination}), nil
}

func cmdPlayerRunTo(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	x, y, err := d.argXY(opcode.PlayerRunTo, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Player.RunTo(x, y)
	player := d.api.Player
	return blocked(&BlockState{Kind: WaitPredicate, Done: player.AtDestination}), nil
}

func cmdFullAll(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Player.FullAll()
	return done(), nil
}

func cmdGetMoney(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argVar(opcode.GetMoney, args, 0)
	if err != nil {
		return done(), err
	}
	d.vars.Set(name, int64(d.api.Player.Money()))
	return done(), nil
}

func cmdSetPlayerState(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	state, err := d.argInt(opcode.SetPlayerState, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Player.SetState(int(state))
	return done(), nil
}
