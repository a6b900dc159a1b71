package engine

// SaveState is the script-engine portion of a saved game: the variable
// store plus every live parallel script. The main context is never
// saved; saving is only reachable from a non-blocked main script, so
// restoring with an empty main slot reproduces the observable state.
type SaveState struct {
	Variables       map[string]int64 `json:"variables"`
	ParallelScripts []SavedParallel  `json:"parallelScripts"`
}

// SavedParallel records one parallel script slot. A slot that already
// started is saved with zero wait and restarts from its first command
// on restore; mid-script positions are not persisted.
type SavedParallel struct {
	FilePath         string `json:"filePath"`
	WaitMilliseconds int64  `json:"waitMilliseconds"`
}

// CaptureSaveState snapshots the variable store and the parallel set.
// The snapshot is independent of the scheduler: later ticks do not
// mutate it.
func (s *Scheduler) CaptureSaveState() *SaveState {
	return &SaveState{
		Variables:       s.vars.Snapshot(),
		ParallelScripts: s.ParallelScriptsForSave(),
	}
}

// ParallelScriptsForSave lists the current parallel slots in creation
// order. Slots still counting down keep their remaining delay; started
// slots are recorded with zero wait.
func (s *Scheduler) ParallelScriptsForSave() []SavedParallel {
	out := make([]SavedParallel, 0, len(s.parallels))
	for _, slot := range s.parallels {
		saved := SavedParallel{FilePath: slot.filePath}
		if slot.ctx.status == StatusIdle {
			saved.WaitMilliseconds = slot.remainingDelayMs
		}
		out = append(out, saved)
	}
	return out
}

// RestoreSaveState replaces the engine state with a snapshot: main and
// queued scripts are dropped, variables are replaced wholesale, the
// script cache is cleared so edited files reload, and the saved
// parallel scripts are re-registered. Slots saved with zero wait start
// on the next tick.
func (s *Scheduler) RestoreSaveState(state *SaveState) {
	s.StopAllScripts()
	s.ClearParallelScripts()
	s.vars.Replace(state.Variables)
	s.loader.Clear()
	s.LoadParallelScriptsFromSave(state.ParallelScripts)
}

// LoadParallelScriptsFromSave registers saved parallel scripts. A file
// that fails to load is logged and skipped; the rest still start.
func (s *Scheduler) LoadParallelScriptsFromSave(saved []SavedParallel) {
	for _, sp := range saved {
		if err := s.RunParallelScript(sp.FilePath, sp.WaitMilliseconds); err != nil {
			s.log.Warn("skipping saved parallel script", "file", sp.FilePath, "error", err)
		}
	}
}
