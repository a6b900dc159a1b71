package script

import "fmt"

// ParseError describes malformed script text. A script that fails to parse
// is never partially cached; the error carries the file and line so the
// caller can report where authoring went wrong.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func newParseError(path string, line int, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Line: line, Msg: fmt.Sprintf(format, args...)}
}
