package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// registerAll builds the full dispatch table. Every command the loader
// canonicalizes has a handler here; TestDispatchTableComplete enforces
// the pairing against opcode.All.
func registerAll(d *Dispatcher) {
	registerDialogCommands(d)
	registerVariableCommands(d)
	registerFlowCommands(d)
	registerPlayerCommands(d)
	registerNpcCommands(d)
	registerObjCommands(d)
	registerMagicCommands(d)
	registerGoodsCommands(d)
	registerCameraCommands(d)
	registerWeatherCommands(d)
	registerTimerCommands(d)
	registerAudioCommands(d)
	registerSaveCommands(d)

	// @label: lines survive parsing as jump anchors; executing one is a
	// no-op because targets were resolved at parse time.
	d.register(opcode.Label, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return done(), nil
	})
}
