package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Camera and map handlers. Fades and camera pans block the script until
// the transition completes; SetCameraPos and ReturnCamera are immediate.
func registerCameraCommands(d *Dispatcher) {
	d.register(opcode.LoadMap, cmdLoadMap)
	d.register(opcode.FadeIn, cmdFadeIn)
	d.register(opcode.FadeOut, cmdFadeOut)
	d.register(opcode.MoveCamera, cmdMoveCamera)
	d.register(opcode.SetCameraPos, cmdSetCameraPos)
	d.register(opcode.ReturnCamera, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Camera.ReturnToPlayer()
		return done(), nil
	})
	d.register(opcode.ShakeScreen, cmdShakeScreen)
	d.register(opcode.SetMapTrap, cmdSetMapTrap)
	d.register(opcode.ClearMapTrap, cmdClearMapTrap)
	d.register(opcode.SetMapTime, cmdSetMapTime)
	d.register(opcode.GetMapTime, cmdGetMapTime)
}

func cmdGetMapTime(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argVar(opcode.GetMapTime, args, 0)
	if err != nil {
		return done(), err
	}
	d.vars.Set(name, int64(d.api.Maps.Time()))
	return done(), nil
}

func cmdLoadMap(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argString(opcode.LoadMap, args, 0)
	if err != nil {
		return done(), err
	}
	if err := d.api.Maps.LoadMap(name); err != nil {
		d.log.Warn("map load failed", "map", name, "error", err)
	}
	return done(), nil
}

func cmdFadeIn(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Camera.FadeIn()
	cam := d.api.Camera
	return blocked(&BlockState{Kind: WaitPredicate, Done: cam.FadeFinished}), nil
}

func cmdFadeOut(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Camera.FadeOut()
	cam := d.api.Camera
	return blocked(&BlockState{Kind: WaitPredicate, Done: cam.FadeFinished}), nil
}

func cmdMoveCamera(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	x, y, err := d.argXY(opcode.MoveCamera, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Camera.MoveTo(x, y)
	cam := d.api.Camera
	return blocked(&BlockState{Kind: WaitPredicate, Done: cam.AtDestination}), nil
}

func cmdSetCameraPos(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	x, y, err := d.argXY(opcode.SetCameraPos, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Camera.SetPos(x, y)
	return done(), nil
}

func cmdShakeScreen(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	amount, err := d.optInt(opcode.ShakeScreen, args, 0, 1)
	if err != nil {
		return done(), err
	}
	d.api.Camera.Shake(int(amount))
	return done(), nil
}

func cmdSetMapTrap(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	index, err := d.argInt(opcode.SetMapTrap, args, 0)
	if err != nil {
		return done(), err
	}
	path, err := d.argString(opcode.SetMapTrap, args, 1)
	if err != nil {
		return done(), err
	}
	d.api.Maps.SetTrap(int(index), path)
	return done(), nil
}

func cmdClearMapTrap(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	index, err := d.argInt(opcode.ClearMapTrap, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Maps.ClearTrap(int(index))
	return done(), nil
}

func cmdSetMapTime(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	t, err := d.argInt(opcode.SetMapTime, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Maps.SetTime(int(t))
	return done(), nil
}
