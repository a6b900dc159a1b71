package script

import (
	"strconv"
	"strings"

	"github.com/luoxia/jianghu/pkg/opcode"
)

// ParseProgram parses script text into a Program. The grammar is line
// oriented: blank lines and // comments are skipped, `@name:` declares a
// jump label, and every other line is a command of the form
//
//	Name(arg1, arg2, ...);
//
// with an optional trailing semicolon. Arguments are double-quoted
// strings, integer literals, or $variable references.
func ParseProgram(path, text string) (*Program, error) {
	lines := strings.Split(text, "\n")

	prog := &Program{
		Path:   path,
		Labels: make(map[string]int),
		Source: lines,
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "@") {
			name, ok := parseLabel(line)
			if !ok {
				return nil, newParseError(path, lineNo, "malformed label: %s", line)
			}
			key := strings.ToLower(name)
			if _, dup := prog.Labels[key]; dup {
				return nil, newParseError(path, lineNo, "duplicate label: %s", name)
			}
			prog.Labels[key] = len(prog.Commands)
			prog.Commands = append(prog.Commands, opcode.Command{
				Cmd:  opcode.Label,
				Args: []any{name},
				Line: lineNo,
			})
			continue
		}

		cmd, err := parseCommand(path, lineNo, line)
		if err != nil {
			return nil, err
		}
		prog.Commands = append(prog.Commands, cmd)
	}

	return prog, nil
}

// parseLabel parses `@name:` and returns the label name.
func parseLabel(line string) (string, bool) {
	body := strings.TrimPrefix(line, "@")
	body = strings.TrimSuffix(body, ";")
	if !strings.HasSuffix(body, ":") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimSuffix(body, ":"))
	if name == "" || !isIdent(name) {
		return "", false
	}
	return name, true
}

func parseCommand(path string, lineNo int, line string) (opcode.Command, error) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return opcode.Command{}, newParseError(path, lineNo, "expected '(' in command: %s", line)
	}

	name := strings.TrimSpace(line[:open])
	if name == "" || !isIdent(name) {
		return opcode.Command{}, newParseError(path, lineNo, "malformed command name: %q", name)
	}

	rest := strings.TrimSpace(line[open+1:])
	rest = strings.TrimSuffix(rest, ";")
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ")") {
		return opcode.Command{}, newParseError(path, lineNo, "expected ')' in command: %s", line)
	}
	argText := strings.TrimSuffix(rest, ")")

	args, err := parseArgs(path, lineNo, argText)
	if err != nil {
		return opcode.Command{}, err
	}

	// Unknown names are kept verbatim; the dispatcher logs and skips
	// them at run time instead of failing the whole file.
	cmd, _ := opcode.Canonical(name)

	return opcode.Command{Cmd: cmd, Args: args, Line: lineNo}, nil
}

func parseArgs(path string, lineNo int, text string) ([]any, error) {
	var args []any
	i := 0
	n := len(text)

	skipSpace := func() {
		for i < n && (text[i] == ' ' || text[i] == '\t') {
			i++
		}
	}

	skipSpace()
	if i >= n {
		return nil, nil
	}

	for {
		skipSpace()
		if i >= n {
			return nil, newParseError(path, lineNo, "trailing comma in argument list")
		}

		switch {
		case text[i] == '"':
			end := strings.IndexByte(text[i+1:], '"')
			if end < 0 {
				return nil, newParseError(path, lineNo, "unterminated string literal")
			}
			args = append(args, text[i+1:i+1+end])
			i += end + 2

		case text[i] == '$':
			start := i + 1
			j := start
			for j < n && isIdentByte(text[j]) {
				j++
			}
			if j == start {
				return nil, newParseError(path, lineNo, "malformed variable reference")
			}
			args = append(args, opcode.Variable(text[start:j]))
			i = j

		default:
			j := i
			for j < n && text[j] != ',' {
				j++
			}
			tok := strings.TrimSpace(text[i:j])
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, newParseError(path, lineNo, "invalid argument: %q", tok)
			}
			args = append(args, v)
			i = j
		}

		skipSpace()
		if i >= n {
			return args, nil
		}
		if text[i] != ',' {
			return nil, newParseError(path, lineNo, "expected ',' between arguments, got %q", string(text[i]))
		}
		i++
	}
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
