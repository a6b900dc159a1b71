package engine

import "fmt"

// ArgError reports malformed arguments for a command. It is an authoring
// mistake, not an engine fault: the dispatcher logs it and skips the
// command so the rest of the script keeps running.
type ArgError struct {
	Cmd string
	Msg string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s", e.Cmd, e.Msg)
}

func newArgError(cmd string, format string, args ...any) *ArgError {
	return &ArgError{Cmd: cmd, Msg: fmt.Sprintf(format, args...)}
}

// RuntimeError is a fault inside a command handler. Unlike ArgError it is
// fatal to the script: the executing context transitions to Errored.
type RuntimeError struct {
	Cmd string
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Cmd, e.Msg)
}

// NewRuntimeError creates a RuntimeError for the given command.
func NewRuntimeError(cmd string, format string, args ...any) *RuntimeError {
	return &RuntimeError{Cmd: cmd, Msg: fmt.Sprintf(format, args...)}
}
