// Package script loads quest script files and parses them into immutable
// Programs. Loading is memoized by normalized path: the cache survives map
// transitions (scripts reference state that outlives a single map) and is
// cleared only on new game or load game.
package script

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/luoxia/jianghu/pkg/fileutil"
	"github.com/luoxia/jianghu/pkg/logger"
	"github.com/luoxia/jianghu/pkg/opcode"
)

// Ext is the script file extension. Lookups are case-insensitive and the
// extension is appended when a reference omits it.
const Ext = ".txt"

// Program is an immutable parsed script. Two loads of the same normalized
// path return the same *Program.
type Program struct {
	// Path is the normalized source path, the Program's identity.
	Path string
	// Commands is the ordered command sequence.
	Commands []opcode.Command
	// Labels maps lowercase label names to command indices.
	Labels map[string]int
	// Source holds the raw source lines for the step-tracing debugger.
	Source []string
}

// LabelTarget returns the command index for a label, case-insensitively.
func (p *Program) LabelTarget(name string) (int, bool) {
	pc, ok := p.Labels[strings.ToLower(name)]
	return pc, ok
}

// Loader reads script files and memoizes parsed Programs.
type Loader struct {
	fs  fileutil.FileSystem
	log *slog.Logger

	mu    sync.Mutex
	cache map[string]*Program
}

// NewLoader creates a Loader over the given file system.
func NewLoader(fsys fileutil.FileSystem) *Loader {
	return &Loader{
		fs:    fsys,
		log:   logger.GetLogger(),
		cache: make(map[string]*Program),
	}
}

// NormalizePath canonicalizes a script reference: forward slashes, lower
// case, .txt extension appended when missing.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(strings.ToLower(strings.TrimSpace(p)))
	if path.Ext(p) == "" {
		p += Ext
	}
	return p
}

// Load returns the Program for the given path, reading and parsing it on
// first use. A file that fails to parse is never cached, so a corrected
// file is picked up on the next load.
func (l *Loader) Load(p string) (*Program, error) {
	key := NormalizePath(p)

	l.mu.Lock()
	if prog, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return prog, nil
	}
	l.mu.Unlock()

	data, err := l.fs.ReadFile(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", key, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode script %s: %w", key, err)
	}

	prog, err := ParseProgram(key, text)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	// Another goroutine may have raced us here; keep the first identity.
	if cached, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return cached, nil
	}
	l.cache[key] = prog
	l.mu.Unlock()

	l.log.Debug("script loaded", "path", key, "commands", len(prog.Commands))
	return prog, nil
}

// Clear drops every cached Program. Called on new game / load game only,
// never on map transitions.
func (l *Loader) Clear() {
	l.mu.Lock()
	l.cache = make(map[string]*Program)
	l.mu.Unlock()
	l.log.Debug("script cache cleared")
}

// CachedCount returns the number of memoized Programs.
func (l *Loader) CachedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// decodeText converts raw script bytes to UTF-8. Scripts authored for the
// original engine ship in GB18030; files already valid as UTF-8 pass
// through untouched.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
