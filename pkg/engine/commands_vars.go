package engine

import (
	"math/rand"

	"github.com/luoxia/jianghu/pkg/opcode"
)

// Variable arithmetic. Every handler reads and writes the shared store,
// so parallel scripts observe each other's assignments within a tick.
func registerVariableCommands(d *Dispatcher) {
	d.register(opcode.Assign, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Assign, args, func(_, v int64) (int64, error) { return v, nil })
	})
	d.register(opcode.Add, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Add, args, func(cur, v int64) (int64, error) { return cur + v, nil })
	})
	d.register(opcode.Sub, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Sub, args, func(cur, v int64) (int64, error) { return cur - v, nil })
	})
	d.register(opcode.Mul, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Mul, args, func(cur, v int64) (int64, error) { return cur * v, nil })
	})
	d.register(opcode.Div, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Div, args, func(cur, v int64) (int64, error) {
			if v == 0 {
				return 0, newArgError(string(opcode.Div), "division by zero")
			}
			return cur / v, nil
		})
	})
	d.register(opcode.Mod, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Mod, args, func(cur, v int64) (int64, error) {
			if v == 0 {
				return 0, newArgError(string(opcode.Mod), "modulo by zero")
			}
			return cur % v, nil
		})
	})
	d.register(opcode.Max, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Max, args, func(cur, v int64) (int64, error) {
			if v > cur {
				return v, nil
			}
			return cur, nil
		})
	})
	d.register(opcode.Min, func(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
		return binOp(d, opcode.Min, args, func(cur, v int64) (int64, error) {
			if v < cur {
				return v, nil
			}
			return cur, nil
		})
	})
	d.register(opcode.RandAssign, cmdRandAssign)
	d.register(opcode.Copy, cmdCopy)
}

// binOp applies a two-operand update to a variable: the current value and
// the resolved second argument go in, the new value comes out.
func binOp(d *Dispatcher, cmd opcode.Cmd, args []any, f func(cur, v int64) (int64, error)) (Outcome, error) {
	name, err := d.argVar(cmd, args, 0)
	if err != nil {
		return done(), err
	}
	v, err := d.argInt(cmd, args, 1)
	if err != nil {
		return done(), err
	}
	next, err := f(d.vars.Get(name), v)
	if err != nil {
		return done(), err
	}
	d.vars.Set(name, next)
	return done(), nil
}

func cmdRandAssign(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	name, err := d.argVar(opcode.RandAssign, args, 0)
	if err != nil {
		return done(), err
	}
	lo, err := d.argInt(opcode.RandAssign, args, 1)
	if err != nil {
		return done(), err
	}
	hi, err := d.argInt(opcode.RandAssign, args, 2)
	if err != nil {
		return done(), err
	}
	if hi < lo {
		return done(), newArgError(string(opcode.RandAssign), "empty range [%d, %d]", lo, hi)
	}
	d.vars.Set(name, lo+rand.Int63n(hi-lo+1))
	return done(), nil
}

func cmdCopy(d *Dispatcher, ctx *Context, args []any) (Outcome, error) {
	dst, err := d.argVar(opcode.Copy, args, 0)
	if err != nil {
		return done(), err
	}
	src, err := d.argVar(opcode.Copy, args, 1)
	if err != nil {
		return done(), err
	}
	d.vars.Set(dst, d.vars.Get(src))
	return done(), nil
}
