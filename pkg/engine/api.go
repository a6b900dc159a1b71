package engine

import (
	"fmt"
	"log/slog"

	"github.com/luoxia/jianghu/pkg/opcode"
	"github.com/luoxia/jianghu/pkg/script"
)

// OutcomeKind classifies what a command handler asks the executor to do.
// Suspension is an explicit result, never a thrown signal.
type OutcomeKind int

const (
	// OutcomeDone advances the program counter by one.
	OutcomeDone OutcomeKind = iota
	// OutcomeBlocked installs a BlockState and holds the counter.
	OutcomeBlocked
	// OutcomeJump moves the counter to a resolved label target.
	OutcomeJump
	// OutcomeCall pushes a frame and transfers into another Program.
	OutcomeCall
	// OutcomeStop ends the current program immediately.
	OutcomeStop
)

// Outcome is a handler's result.
type Outcome struct {
	Kind  OutcomeKind
	Block *BlockState
	Jump  int
	Call  *script.Program
}

func done() Outcome                  { return Outcome{Kind: OutcomeDone} }
func blocked(b *BlockState) Outcome  { return Outcome{Kind: OutcomeBlocked, Block: b} }
func jumpTo(pc int) Outcome          { return Outcome{Kind: OutcomeJump, Jump: pc} }
func call(p *script.Program) Outcome { return Outcome{Kind: OutcomeCall, Call: p} }
func stop() Outcome                  { return Outcome{Kind: OutcomeStop} }

// HandlerFunc executes one command. Handlers are pure adapters: they
// translate arguments into exactly one collaborator call and report the
// outcome. Gameplay logic lives in the collaborators.
type HandlerFunc func(d *Dispatcher, ctx *Context, args []any) (Outcome, error)

// Dispatcher is the command dispatch table: a registry mapping command
// names to handlers plus the shared state handlers need (collaborators,
// variable store, loader). It holds no other state.
type Dispatcher struct {
	api    *GameAPI
	vars   *VariableStore
	loader *script.Loader
	sched  *Scheduler
	log    *slog.Logger

	handlers map[opcode.Cmd]HandlerFunc
}

func newDispatcher(api *GameAPI, vars *VariableStore, loader *script.Loader, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		api:      api,
		vars:     vars,
		loader:   loader,
		log:      log,
		handlers: make(map[opcode.Cmd]HandlerFunc),
	}
	registerAll(d)
	return d
}

// register adds a handler to the table. Registering the same command
// twice is a programming error.
func (d *Dispatcher) register(cmd opcode.Cmd, fn HandlerFunc) {
	if _, dup := d.handlers[cmd]; dup {
		panic(fmt.Sprintf("duplicate command handler: %s", cmd))
	}
	d.handlers[cmd] = fn
}

// Registered reports whether a handler exists for the command.
func (d *Dispatcher) Registered(cmd opcode.Cmd) bool {
	_, ok := d.handlers[cmd]
	return ok
}

// Execute runs one command against the dispatch table.
//
// Unknown commands are logged and skipped so scripts authored against
// other engine versions degrade gracefully. Argument mistakes are logged
// and skipped likewise. A panic inside a handler is caught here at the
// dispatch boundary and returned as a RuntimeError, which the executor
// turns into an Errored context.
func (d *Dispatcher) Execute(ctx *Context, cmd opcode.Command) (out Outcome, err error) {
	fn, ok := d.handlers[cmd.Cmd]
	if !ok {
		d.log.Warn("unknown command skipped",
			"cmd", string(cmd.Cmd), "script", ctx.prog.Path, "line", cmd.Line)
		return done(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = NewRuntimeError(string(cmd.Cmd), "handler panic: %v", r)
			out = done()
		}
	}()

	out, err = fn(d, ctx, cmd.Args)
	if err != nil {
		if argErr, ok := err.(*ArgError); ok {
			d.log.Warn("command skipped: bad arguments",
				"cmd", string(cmd.Cmd), "script", ctx.prog.Path,
				"line", cmd.Line, "reason", argErr.Msg)
			return done(), nil
		}
		return done(), err
	}
	return out, nil
}

// resolve converts a parsed argument into its runtime value, reading
// variable references from the global store.
func (d *Dispatcher) resolve(arg any) any {
	if v, ok := arg.(opcode.Variable); ok {
		return d.vars.Get(string(v))
	}
	return arg
}

// argInt returns args[i] as an integer, resolving variable references.
func (d *Dispatcher) argInt(cmd opcode.Cmd, args []any, i int) (int64, error) {
	if i >= len(args) {
		return 0, newArgError(string(cmd), "missing argument %d", i+1)
	}
	switch v := d.resolve(args[i]).(type) {
	case int64:
		return v, nil
	default:
		return 0, newArgError(string(cmd), "argument %d: expected number, got %T", i+1, args[i])
	}
}

// argString returns args[i] as a string.
func (d *Dispatcher) argString(cmd opcode.Cmd, args []any, i int) (string, error) {
	if i >= len(args) {
		return "", newArgError(string(cmd), "missing argument %d", i+1)
	}
	if s, ok := args[i].(string); ok {
		return s, nil
	}
	return "", newArgError(string(cmd), "argument %d: expected string, got %T", i+1, args[i])
}

// argVar returns args[i] as a variable name; the argument must be a
// $variable reference, not a literal.
func (d *Dispatcher) argVar(cmd opcode.Cmd, args []any, i int) (string, error) {
	if i >= len(args) {
		return "", newArgError(string(cmd), "missing argument %d", i+1)
	}
	if v, ok := args[i].(opcode.Variable); ok {
		return string(v), nil
	}
	return "", newArgError(string(cmd), "argument %d: expected $variable, got %T", i+1, args[i])
}

// argXY returns args[i] and args[i+1] as a coordinate pair.
func (d *Dispatcher) argXY(cmd opcode.Cmd, args []any, i int) (int, int, error) {
	x, err := d.argInt(cmd, args, i)
	if err != nil {
		return 0, 0, err
	}
	y, err := d.argInt(cmd, args, i+1)
	if err != nil {
		return 0, 0, err
	}
	return int(x), int(y), nil
}

// optInt returns args[i] as an integer, or def when the argument is
// absent.
func (d *Dispatcher) optInt(cmd opcode.Cmd, args []any, i int, def int64) (int64, error) {
	if i >= len(args) {
		return def, nil
	}
	return d.argInt(cmd, args, i)
}

// targetName resolves an entity name argument, substituting the bound
// entity for an empty name.
func (d *Dispatcher) targetName(cmd opcode.Cmd, ctx *Context, args []any, i int) (string, error) {
	name, err := d.argString(cmd, args, i)
	if err != nil {
		return "", err
	}
	if name == "" && ctx.bound.Kind != BoundNone {
		return ctx.bound.Name, nil
	}
	return name, nil
}

// warnMissing logs the common, non-fatal case of a command naming an
// entity that does not exist.
func (d *Dispatcher) warnMissing(cmd opcode.Cmd, kind, name string) {
	d.log.Warn("command ignored: entity not found",
		"cmd", string(cmd), "kind", kind, "name", name)
}
