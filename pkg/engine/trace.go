package engine

// Tracer receives execution events for an external step-tracing debugger.
// Implementations observe only; they must never influence control flow.
type Tracer interface {
	// OnScriptStart is called once when a context begins executing a
	// program, including nested RunScript calls.
	OnScriptStart(filePath string, totalLineCount int, allSourceLines []string)

	// OnLineExecuted is called once per command execution, before the
	// command's handler runs.
	OnLineExecuted(filePath string, lineNumber int)
}

type noopTracer struct{}

func (noopTracer) OnScriptStart(string, int, []string) {}
func (noopTracer) OnLineExecuted(string, int)          {}
