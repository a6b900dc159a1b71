package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Dialog and UI handlers. Say, Talk and Select suspend the context on a
// UI wait; the Scheduler releases it when the player closes the dialog or
// picks an option.
func registerDialogCommands(d *Dispatcher) {
	d.register(opcode.Say, cmdSay)
	d.register(opcode.Talk, cmdTalk)
	d.register(opcode.Message, cmdMessage)
	d.register(opcode.Select, cmdSelect)
	d.register(opcode.ShowTip, cmdShowTip)
	d.register(opcode.ClearTip, cmdClearTip)
	d.register(opcode.ShowFace, cmdShowFace)
	d.register(opcode.HideFace, cmdHideFace)
	d.register(opcode.ShowTitle, cmdShowTitle)
	d.register(opcode.ClearTitle, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		d.api.Gui.ShowTitle("")
		return done(), nil
	})
	d.register(opcode.ClearDialog, cmdClearDialog)
}

func cmdSay(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	text, err := d.argString(opcode.Say, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowDialog(text, "")
	return blocked(&BlockState{Kind: WaitDialogClose}), nil
}

func cmdTalk(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	speaker, err := d.argString(opcode.Talk, args, 0)
	if err != nil {
		return done(), err
	}
	text, err := d.argString(opcode.Talk, args, 1)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowDialog(text, speaker)
	return blocked(&BlockState{Kind: WaitDialogClose}), nil
}

func cmdMessage(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	text, err := d.argString(opcode.Message, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowMessage(text)
	return done(), nil
}

func cmdSelect(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	resultVar, err := d.argVar(opcode.Select, args, 0)
	if err != nil {
		return done(), err
	}
	if len(args) < 2 {
		return done(), newArgError(string(opcode.Select), "no options given")
	}
	options := make([]string, 0, len(args)-1)
	for i := 1; i < len(args); i++ {
		opt, err := d.argString(opcode.Select, args, i)
		if err != nil {
			return done(), err
		}
		options = append(options, opt)
	}
	d.api.Gui.ShowSelection(options)
	return blocked(&BlockState{Kind: WaitSelection, ResultVar: resultVar}), nil
}

func cmdShowTip(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	text, err := d.argString(opcode.ShowTip, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowTip(text)
	return done(), nil
}

func cmdClearTip(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Gui.ClearTip()
	return done(), nil
}

func cmdShowFace(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argString(opcode.ShowFace, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowFace(name)
	return done(), nil
}

func cmdHideFace(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Gui.HideFace()
	return done(), nil
}

func cmdShowTitle(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	text, err := d.argString(opcode.ShowTitle, args, 0)
	if err != nil {
		return done(), err
	}
	d.api.Gui.ShowTitle(text)
	return done(), nil
}

func cmdClearDialog(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.api.Gui.ClearDialog()
	return done(), nil
}
