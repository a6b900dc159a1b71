package engine

import "github.com/luoxia/jianghu/pkg/opcode"

// Flow control. RunScript is a synchronous call: the callee runs on the
// caller's stack and the caller resumes at the next command when it
// returns. QueueScript and RunParallelScript hand off to the Scheduler.
func registerFlowCommands(d *Dispatcher) {
	d.register(opcode.RunScript, cmdRunScript)
	d.register(opcode.QueueScript, cmdQueueScript)
	d.register(opcode.RunParallelScript, cmdRunParallelScript)
	d.register(opcode.StopAllScripts, cmdStopAllScripts)
	d.register(opcode.ClearParallelScripts, cmdClearParallelScripts)
	d.register(opcode.Goto, cmdGoto)
	d.register(opcode.If, cmdIf)
	d.register(opcode.Return, cmdReturn)
	d.register(opcode.Sleep, cmdSleep)
}

func cmdRunScript(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	path, err := d.argString(opcode.RunScript, args, 0)
	if err != nil {
		return done(), err
	}
	prog, err := d.loader.Load(path)
	if err != nil {
		return done(), newArgError(string(opcode.RunScript), "cannot load %q: %v", path, err)
	}
	return call(prog), nil
}

func cmdQueueScript(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	path, err := d.argString(opcode.QueueScript, args, 0)
	if err != nil {
		return done(), err
	}
	d.sched.QueueScript(path)
	return done(), nil
}

func cmdRunParallelScript(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	path, err := d.argString(opcode.RunParallelScript, args, 0)
	if err != nil {
		return done(), err
	}
	delayMs, err := d.optInt(opcode.RunParallelScript, args, 1, 0)
	if err != nil {
		return done(), err
	}
	if err := d.sched.RunParallelScript(path, delayMs); err != nil {
		return done(), newArgError(string(opcode.RunParallelScript), "cannot load %q: %v", path, err)
	}
	return done(), nil
}

func cmdStopAllScripts(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.sched.StopAllScripts()
	// The main context just finished; stop unwinds any call stack too.
	return stop(), nil
}

func cmdClearParallelScripts(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	d.sched.ClearParallelScripts()
	return done(), nil
}

func cmdGoto(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	label, err := d.argString(opcode.Goto, args, 0)
	if err != nil {
		return done(), err
	}
	target, ok := ctx.prog.LabelTarget(label)
	if !ok {
		return done(), newArgError(string(opcode.Goto), "no label %q in %s", label, ctx.prog.Path)
	}
	return jumpTo(target), nil
}

func cmdIf(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argVar(opcode.If, args, 0)
	if err != nil {
		return done(), err
	}
	op, err := d.argString(opcode.If, args, 1)
	if err != nil {
		return done(), err
	}
	right, err := d.argInt(opcode.If, args, 2)
	if err != nil {
		return done(), err
	}
	label, err := d.argString(opcode.If, args, 3)
	if err != nil {
		return done(), err
	}

	left := d.vars.Get(name)
	var hold bool
	switch op {
	case "==":
		hold = left == right
	case "!=":
		hold = left != right
	case "<":
		hold = left < right
	case "<=":
		hold = left <= right
	case ">":
		hold = left > right
	case ">=":
		hold = left >= right
	default:
		return done(), newArgError(string(opcode.If), "unknown operator %q", op)
	}
	if !hold {
		return done(), nil
	}
	target, ok := ctx.prog.LabelTarget(label)
	if !ok {
		return done(), newArgError(string(opcode.If), "no label %q in %s", label, ctx.prog.Path)
	}
	return jumpTo(target), nil
}

func cmdReturn(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	return stop(), nil
}

func cmdSleep(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	ms, err := d.argInt(opcode.Sleep, args, 0)
	if err != nil {
		return done(), err
	}
	if ms <= 0 {
		return done(), nil
	}
	token := d.api.Timers.After(ms)
	timers := d.api.Timers
	return blocked(&BlockState{
		Kind: WaitPredicate,
		Done: func() bool { return timers.Expired(token) },
	}), nil
}
