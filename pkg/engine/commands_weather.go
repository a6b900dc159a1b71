package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Weather handlers. Effects are fire-and-forget; a new effect replaces
// the running one.
func registerWeatherCommands(d *Dispatcher) {
	d.register(opcode.Rain, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Weather.Rain()
		return done(), nil
	})
	d.register(opcode.Snow, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Weather.Snow()
		return done(), nil
	})
	d.register(opcode.Thunder, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Weather.Thunder()
		return done(), nil
	})
	d.register(opcode.StopWeather, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Weather.Stop()
		return done(), nil
	})
}

// Timer handlers for the quest countdown.
func registerTimerCommands(d *Dispatcher) {
	d.register(opcode.SetTimeLimit, cmdSetTimeLimit)
	d.register(opcode.ClearTimeLimit, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Timers.ClearTimeLimit()
		return done(), nil
	})
	d.register(opcode.ShowTimerWindow, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Timers.ShowWindow()
		return done(), nil
	})
	d.register(opcode.HideTimerWindow, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Timers.HideWindow()
		return done(), nil
	})
}

func cmdSetTimeLimit(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	ms, err := d.argInt(opcode.SetTimeLimit, args, 0)
	if err != nil {
		return done(), err
	}
	path, err := d.argString(opcode.SetTimeLimit, args, 1)
	if err != nil {
		return done(), err
	}
	if ms <= 0 {
		return done(), newArgError(string(opcode.SetTimeLimit), "non-positive limit %d", ms)
	}
	d.api.Timers.SetTimeLimit(ms, path)
	return done(), nil
}
