package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSingleTickCompletionProperty checks that a script of N non-blocking
// commands always finishes within one Update call, regardless of N, and
// leaves the variable store reflecting every command.
func TestSingleTickCompletionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("non-blocking script finishes in one tick", prop.ForAll(
		func(n int) bool {
			var sb strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "Add($total, %d)\n", i+1)
			}

			w := newTestWorld(t, map[string]string{"gen.txt": sb.String()})
			if err := w.sched.RunScript("gen"); err != nil {
				return false
			}
			w.update(16)

			if w.sched.IsRunning() {
				return false
			}
			// 1 + 2 + ... + n
			return w.sched.Vars().Get("total") == int64(n)*int64(n+1)/2
		},
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}

// TestParallelDelayTickProperty checks the countdown arithmetic: a slot
// with delay D at fixed tick size dt executes its first command on tick
// ceil(D/dt), and never earlier.
func TestParallelDelayTickProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("first command lands on tick ceil(delay/tick)", prop.ForAll(
		func(delayMs, tickMs int) bool {
			w := newTestWorld(t, map[string]string{"bg.txt": `Assign($ran, 1)`})
			if err := w.sched.RunParallelScript("bg", int64(delayMs)); err != nil {
				return false
			}

			want := (delayMs + tickMs - 1) / tickMs
			if want < 1 {
				want = 1
			}

			for tick := 1; tick <= want; tick++ {
				if w.sched.Vars().Get("ran") != 0 {
					return false // ran before its tick
				}
				w.update(int64(tickMs))
			}
			return w.sched.Vars().Get("ran") == 1
		},
		gen.IntRange(0, 2000),
		gen.IntRange(10, 200),
	))

	properties.TestingRun(t)
}

// TestVariableStoreRoundTripProperty checks that save-state capture and
// restore preserve the variable store exactly.
func TestVariableStoreRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("capture then restore preserves variables", prop.ForAll(
		func(values []int64) bool {
			w := newTestWorld(t, map[string]string{})
			for i, v := range values {
				w.sched.Vars().Set(fmt.Sprintf("v%d", i), v)
			}

			state := w.sched.CaptureSaveState()

			w2 := newTestWorld(t, map[string]string{})
			w2.sched.RestoreSaveState(state)

			if w2.sched.Vars().Len() != len(values) {
				return false
			}
			for i, v := range values {
				if w2.sched.Vars().Get(fmt.Sprintf("v%d", i)) != v {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64()),
	))

	properties.TestingRun(t)
}
