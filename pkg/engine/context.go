package engine

import "github.com/luoxia/jianghu/pkg/script"

// MaxCallDepth bounds nested RunScript invocations. Exceeding it aborts
// the invoking chain instead of corrupting the call stack.
const MaxCallDepth = 100

// Status is the lifecycle state of an execution context.
type Status int

const (
	// StatusIdle is a delayed parallel script that has not started yet.
	StatusIdle Status = iota
	StatusRunning
	StatusBlocked
	StatusFinished
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusRunning:
		return "Running"
	case StatusBlocked:
		return "Blocked"
	case StatusFinished:
		return "Finished"
	case StatusErrored:
		return "Errored"
	default:
		return "Unknown"
	}
}

// BoundKind identifies what a script is bound to.
type BoundKind int

const (
	BoundNone BoundKind = iota
	BoundNpc
	BoundObj
)

// Bound names the entity a script was triggered by. Commands with an
// empty name argument target it.
type Bound struct {
	Kind BoundKind
	Name string
}

// Frame is one saved caller position on the call stack.
type Frame struct {
	prog *script.Program
	pc   int
}

// Context is one running instance of a Program: program counter, call
// stack for nested script invocation, and the pending wait if any.
type Context struct {
	prog   *script.Program
	pc     int
	stack  []Frame
	block  *BlockState
	bound  Bound
	status Status
}

func newContext(prog *script.Program, bound Bound, status Status) *Context {
	return &Context{prog: prog, bound: bound, status: status}
}

// Status returns the context's lifecycle state.
func (c *Context) Status() Status { return c.status }

// PC returns the current program counter.
func (c *Context) PC() int { return c.pc }

// Program returns the program currently executing (the innermost one
// when nested calls are active).
func (c *Context) Program() *script.Program { return c.prog }

// Block returns the pending wait, or nil.
func (c *Context) Block() *BlockState { return c.block }

// Bound returns the entity the script is bound to.
func (c *Context) Bound() Bound { return c.bound }

// CallDepth returns the current nesting depth.
func (c *Context) CallDepth() int { return len(c.stack) }

// active reports whether the context still participates in scheduling.
func (c *Context) active() bool {
	return c.status == StatusRunning || c.status == StatusBlocked
}

// release clears the pending wait and resumes one command past the
// blocking one.
func (c *Context) release() {
	c.block = nil
	c.status = StatusRunning
	c.pc++
}

// finish forces the context to Finished, releasing any wait it held.
// Used by cancellation; the input-blocking flag a UI wait asserted is
// dropped atomically with the status change.
func (c *Context) finish() {
	c.block = nil
	c.stack = nil
	c.status = StatusFinished
}

// fail marks the context Errored, releasing any wait it held.
func (c *Context) fail() {
	c.block = nil
	c.stack = nil
	c.status = StatusErrored
}

// atEnd reports whether the program counter has run off the current
// program.
func (c *Context) atEnd() bool {
	return c.pc >= len(c.prog.Commands)
}

// pushCall enters a nested program, saving the caller position. The
// caller resumes at pc+1 when the callee completes.
func (c *Context) pushCall(callee *script.Program) bool {
	if len(c.stack) >= MaxCallDepth {
		return false
	}
	c.stack = append(c.stack, Frame{prog: c.prog, pc: c.pc + 1})
	c.prog = callee
	c.pc = 0
	return true
}

// popCall resumes the caller after a nested program completes. Returns
// false when there is no caller, meaning the context is done.
func (c *Context) popCall() bool {
	if len(c.stack) == 0 {
		return false
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.prog = top.prog
	c.pc = top.pc
	return true
}
