package engine

// StepResult is the outcome of advancing a context within one tick.
type StepResult int

const (
	// StepAdvanced means the per-tick command budget ran out with the
	// context still runnable.
	StepAdvanced StepResult = iota
	StepBlocked
	StepFinished
	StepErrored
)

// maxCommandsPerTick bounds how many commands one context may execute in
// a single tick, so a script stuck in a label loop cannot stall the
// frame.
const maxCommandsPerTick = 1000

// step advances a running context: commands execute in order until the
// context blocks, finishes, errors, or exhausts the per-tick budget.
// Non-blocking scripts therefore run to completion in a single pass.
func (s *Scheduler) step(ctx *Context) StepResult {
	switch ctx.status {
	case StatusBlocked:
		return StepBlocked
	case StatusFinished:
		return StepFinished
	case StatusErrored:
		return StepErrored
	case StatusIdle:
		return StepAdvanced
	}

	for n := 0; n < maxCommandsPerTick; n++ {
		// A handler can finish this very context through the Scheduler
		// (StopAllScripts from the main script, ClearParallelScripts
		// from a parallel one), so the status must be rechecked.
		switch ctx.status {
		case StatusFinished:
			return StepFinished
		case StatusErrored:
			return StepErrored
		}

		if ctx.atEnd() {
			// End of program: resume the caller, or finish.
			if ctx.popCall() {
				continue
			}
			ctx.finish()
			return StepFinished
		}

		cmd := ctx.prog.Commands[ctx.pc]
		s.tracer.OnLineExecuted(ctx.prog.Path, cmd.Line)

		out, err := s.dispatch.Execute(ctx, cmd)
		if err != nil {
			// Fatal handler fault. The wait the context may have been
			// about to install never happened, and fail() drops any
			// held one, so input can never stay frozen.
			s.log.Error("script handler failed",
				"script", ctx.prog.Path, "line", cmd.Line,
				"cmd", string(cmd.Cmd), "error", err)
			ctx.fail()
			return StepErrored
		}

		switch out.Kind {
		case OutcomeDone:
			ctx.pc++

		case OutcomeJump:
			ctx.pc = out.Jump

		case OutcomeStop:
			// Ends the current program; an enclosing caller resumes on
			// the next loop iteration.
			ctx.pc = len(ctx.prog.Commands)

		case OutcomeCall:
			if !ctx.pushCall(out.Call) {
				s.log.Error("script call depth exceeded",
					"script", ctx.prog.Path, "line", cmd.Line,
					"callee", out.Call.Path, "depth", ctx.CallDepth())
				ctx.fail()
				return StepErrored
			}
			s.tracer.OnScriptStart(out.Call.Path, len(out.Call.Source), out.Call.Source)

		case OutcomeBlocked:
			ctx.block = out.Block
			ctx.status = StatusBlocked
			return StepBlocked
		}
	}

	s.log.Error("script hit per-tick command limit",
		"script", ctx.prog.Path, "pc", ctx.pc, "limit", maxCommandsPerTick)
	return StepAdvanced
}
