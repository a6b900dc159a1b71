package engine

// BlockKind identifies why a context is suspended.
type BlockKind int

const (
	// WaitDialogClose waits for the player to close the dialog box.
	WaitDialogClose BlockKind = iota + 1
	// WaitSelection waits for the player to pick a selection option.
	WaitSelection
	// WaitPredicate polls a condition against collaborator state once
	// per tick (movement finished, fade finished, shop closed, ...).
	WaitPredicate
	// WaitEvent waits for an external event carrying a matching token.
	WaitEvent
)

func (k BlockKind) String() string {
	switch k {
	case WaitDialogClose:
		return "WaitDialogClose"
	case WaitSelection:
		return "WaitSelection"
	case WaitPredicate:
		return "WaitPredicate"
	case WaitEvent:
		return "WaitEvent"
	default:
		return "Unknown"
	}
}

// BlockState describes one pending wait. A context holds at most one at a
// time. Predicates must be written to always eventually resolve: a wait
// tied to movement reports done when the destination became unreachable
// rather than hanging the script.
type BlockState struct {
	Kind BlockKind

	// Done is the polled condition for WaitPredicate.
	Done func() bool

	// Token identifies the awaited event for WaitEvent.
	Token string

	// ResultVar receives the chosen option index for WaitSelection.
	ResultVar string
}

// blocksInput reports whether this wait gates player input. Only the two
// UI waits do; there is at most one UI wait active system-wide because
// the UI is a shared singleton.
func (b *BlockState) blocksInput() bool {
	return b.Kind == WaitDialogClose || b.Kind == WaitSelection
}

// tryResolve evaluates whether a polled wait is satisfied this tick.
// Event-driven waits (dialog, selection, event token) are released by
// external calls on the Scheduler, never here.
func tryResolve(b *BlockState) bool {
	if b.Kind != WaitPredicate || b.Done == nil {
		return false
	}
	return b.Done()
}
