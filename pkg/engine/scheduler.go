// Package engine executes quest scripts: it owns the single main context
// that gates player input, a list of delayed parallel contexts, the
// blocking resolver that releases suspended scripts, and the command
// dispatch table through which scripts mutate game state.
//
// Scheduling is strictly single-threaded and cooperative: all contexts
// are advanced from one Update call per game tick, the main context
// always first. Calls arriving from outside the tick loop (input
// handlers, a debugger) must be serialized onto the same goroutine that
// calls Update.
package engine

import (
	"log/slog"

	"github.com/luoxia/jianghu/pkg/logger"
	"github.com/luoxia/jianghu/pkg/script"
)

// ParallelSlot tracks one background script: its context, its remaining
// start delay, and the path it was started from (kept for save games).
type ParallelSlot struct {
	ctx              *Context
	filePath         string
	remainingDelayMs int64
}

// FilePath returns the normalized script path of the slot.
func (p *ParallelSlot) FilePath() string { return p.filePath }

// RemainingDelayMs returns the delay left before the slot starts.
func (p *ParallelSlot) RemainingDelayMs() int64 { return p.remainingDelayMs }

// Context returns the slot's execution context.
func (p *ParallelSlot) Context() *Context { return p.ctx }

type queuedScript struct {
	path  string
	bound Bound
}

// Scheduler owns the main execution context plus the parallel set and
// advances them once per game tick.
type Scheduler struct {
	loader   *script.Loader
	vars     *VariableStore
	dispatch *Dispatcher
	tracer   Tracer
	log      *slog.Logger

	main           *Context
	queue          []queuedScript
	parallels      []*ParallelSlot
	pendingRestore *SaveState
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithTracer attaches a step-tracing debugger.
func WithTracer(t Tracer) Option {
	return func(s *Scheduler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewScheduler creates a Scheduler over the given collaborators and
// script loader.
func NewScheduler(api *GameAPI, loader *script.Loader, opts ...Option) *Scheduler {
	s := &Scheduler{
		loader: loader,
		vars:   NewVariableStore(),
		tracer: noopTracer{},
		log:    logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatch = newDispatcher(api, s.vars, loader, s.log)
	s.dispatch.sched = s
	return s
}

// Vars returns the global variable store.
func (s *Scheduler) Vars() *VariableStore { return s.vars }

// Loader returns the script loader.
func (s *Scheduler) Loader() *script.Loader { return s.loader }

// Main returns the main context, or nil when none is running.
func (s *Scheduler) Main() *Context { return s.main }

// Parallels returns the current parallel slots.
func (s *Scheduler) Parallels() []*ParallelSlot { return s.parallels }

// Queued reports how many scripts are waiting for the main slot.
func (s *Scheduler) Queued() int { return len(s.queue) }

// RunScript synchronously installs a script as the main context,
// replacing whatever was running. Any wait the previous context held is
// dropped with it, so input is released. Load and parse failures are
// surfaced to the caller without touching the running state.
func (s *Scheduler) RunScript(path string) error {
	return s.RunScriptBound(path, Bound{})
}

// RunScriptBound is RunScript with the script bound to the entity that
// triggered it (an NPC dialog trigger, a map object).
func (s *Scheduler) RunScriptBound(path string, bound Bound) error {
	prog, err := s.loader.Load(path)
	if err != nil {
		return err
	}
	s.main = newContext(prog, bound, StatusRunning)
	s.tracer.OnScriptStart(prog.Path, len(prog.Source), prog.Source)
	s.log.Debug("main script started", "path", prog.Path)
	return nil
}

// QueueScript defers a script start to the next scheduling opportunity
// without blocking the caller. Queued scripts start in order, one per
// tick, whenever the main context is free. Load failures are logged when
// the start is attempted.
func (s *Scheduler) QueueScript(path string) {
	s.QueueScriptBound(path, Bound{})
}

// QueueScriptBound is QueueScript with a bound entity.
func (s *Scheduler) QueueScriptBound(path string, bound Bound) {
	s.queue = append(s.queue, queuedScript{path: path, bound: bound})
}

// RunParallelScript starts a background script after delayMs. A delay of
// zero starts it on the next tick.
func (s *Scheduler) RunParallelScript(path string, delayMs int64) error {
	return s.RunParallelScriptBound(path, delayMs, Bound{})
}

// RunParallelScriptBound is RunParallelScript with a bound entity.
func (s *Scheduler) RunParallelScriptBound(path string, delayMs int64, bound Bound) error {
	prog, err := s.loader.Load(path)
	if err != nil {
		return err
	}
	if delayMs < 0 {
		delayMs = 0
	}

	status := StatusIdle
	if delayMs == 0 {
		status = StatusRunning
		s.tracer.OnScriptStart(prog.Path, len(prog.Source), prog.Source)
	}

	s.parallels = append(s.parallels, &ParallelSlot{
		ctx:              newContext(prog, bound, status),
		filePath:         prog.Path,
		remainingDelayMs: delayMs,
	})
	s.log.Debug("parallel script registered", "path", prog.Path, "delayMs", delayMs)
	return nil
}

// StopAllScripts forces the main context to Finished and drops the
// pending queue. Any input-blocking wait is released atomically with the
// cancellation; remaining commands never run.
func (s *Scheduler) StopAllScripts() {
	if s.main != nil {
		s.main.finish()
		s.main = nil
	}
	s.queue = nil
}

// ClearParallelScripts force-finishes and drops every parallel slot.
func (s *Scheduler) ClearParallelScripts() {
	for _, slot := range s.parallels {
		slot.ctx.finish()
	}
	s.parallels = nil
}

// Reset returns the subsystem to its new-game state: all contexts
// cancelled, variables cleared, and the script cache invalidated. This
// is the only path that clears the cache; map transitions never do.
func (s *Scheduler) Reset() {
	s.StopAllScripts()
	s.ClearParallelScripts()
	s.vars.Clear()
	s.loader.Clear()
}

// IsRunning reports whether the main context is still executing or
// suspended. Parallel contexts do not count.
func (s *Scheduler) IsRunning() bool {
	return s.main != nil && s.main.active()
}

// IsWaitingForInput reports whether the main context is suspended on a
// UI wait. Only the main context ever gates player input.
func (s *Scheduler) IsWaitingForInput() bool {
	return s.main != nil && s.main.block != nil && s.main.block.blocksInput()
}

// OnDialogClosed releases the context waiting on a dialog close. There
// is at most one UI wait active system-wide since the UI is a shared
// singleton; extra calls are no-ops.
func (s *Scheduler) OnDialogClosed() {
	if ctx := s.findBlocked(WaitDialogClose); ctx != nil {
		ctx.release()
	}
}

// OnSelectionMade releases the context waiting on a selection and writes
// the chosen index into the wait's result variable.
func (s *Scheduler) OnSelectionMade(index int) {
	ctx := s.findBlocked(WaitSelection)
	if ctx == nil {
		return
	}
	if ctx.block.ResultVar != "" {
		s.vars.Set(ctx.block.ResultVar, int64(index))
	}
	ctx.release()
}

// ResolveEvent releases every context waiting on the given event token.
func (s *Scheduler) ResolveEvent(token string) {
	for _, ctx := range s.contexts() {
		if ctx.block != nil && ctx.block.Kind == WaitEvent && ctx.block.Token == token {
			ctx.release()
		}
	}
}

// findBlocked returns the first context suspended on the given wait
// kind, main first, then parallel slots in creation order.
func (s *Scheduler) findBlocked(kind BlockKind) *Context {
	for _, ctx := range s.contexts() {
		if ctx.block != nil && ctx.block.Kind == kind {
			return ctx
		}
	}
	return nil
}

// contexts lists all live contexts in scheduling order.
func (s *Scheduler) contexts() []*Context {
	out := make([]*Context, 0, 1+len(s.parallels))
	if s.main != nil {
		out = append(out, s.main)
	}
	for _, slot := range s.parallels {
		out = append(out, slot.ctx)
	}
	return out
}

// requestRestore schedules a save-state restore for the start of the
// next Update, keeping mid-tick LoadGame commands serialized with the
// tick loop.
func (s *Scheduler) requestRestore(state *SaveState) {
	s.pendingRestore = state
}

// Update advances the world by one game tick. The main context is always
// processed before any parallel context, because its writes (variables,
// NPC state) are observable by scripts started later in the same tick.
func (s *Scheduler) Update(deltaMs int64) {
	if s.pendingRestore != nil {
		state := s.pendingRestore
		s.pendingRestore = nil
		s.RestoreSaveState(state)
	}

	s.startQueued()

	// The parallel set is fixed before anything runs: a slot registered
	// during this tick (by the main script or by another parallel) keeps
	// its full delay and gets its first tick on the next Update.
	snapshot := s.parallels

	if s.main != nil {
		s.tick(s.main)
		if !s.main.active() {
			s.main = nil
		}
	}

	s.tickParallels(deltaMs, snapshot)
}

// startQueued installs the next queued script when the main context is
// free. One start per tick keeps queued scripts strictly ordered.
func (s *Scheduler) startQueued() {
	if s.main != nil && s.main.active() {
		return
	}
	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if err := s.RunScriptBound(next.path, next.bound); err != nil {
			// Fire-and-forget semantics: a queued script that fails to
			// load is dropped, and the next one gets its turn.
			s.log.Error("queued script failed to load", "path", next.path, "error", err)
			continue
		}
		return
	}
}

// tick resolves a context's wait if possible, then steps it.
func (s *Scheduler) tick(ctx *Context) {
	if ctx.status == StatusBlocked {
		if !tryResolve(ctx.block) {
			return
		}
		ctx.release()
	}
	s.step(ctx)
}

// tickParallels advances the parallel set: delays count down first, and
// a slot whose delay just reached zero starts within the same tick.
// Finished and errored slots are reaped; an error in one slot never
// touches the others. snapshot is the set as it stood when the tick
// began; slots added since then sit out this tick, so the filter runs
// over s.parallels to keep them.
func (s *Scheduler) tickParallels(deltaMs int64, snapshot []*ParallelSlot) {
	for _, slot := range snapshot {
		if slot.ctx.status == StatusIdle {
			slot.remainingDelayMs -= deltaMs
			if slot.remainingDelayMs > 0 {
				continue
			}
			slot.remainingDelayMs = 0
			slot.ctx.status = StatusRunning
			prog := slot.ctx.prog
			s.tracer.OnScriptStart(prog.Path, len(prog.Source), prog.Source)
		}

		s.tick(slot.ctx)
	}

	kept := make([]*ParallelSlot, 0, len(s.parallels))
	for _, slot := range s.parallels {
		if slot.ctx.status == StatusIdle || slot.ctx.active() {
			kept = append(kept, slot)
		}
	}
	s.parallels = kept
}
