package engine

import "strings"

// VariableStore is the global name -> number mapping shared by every
// running script. Names are case-insensitive. It is the only shared
// mutable state in the subsystem; all mutation happens from command
// handlers invoked inside a tick, so no locking is needed.
type VariableStore struct {
	vars map[string]int64
}

// NewVariableStore creates an empty store.
func NewVariableStore() *VariableStore {
	return &VariableStore{vars: make(map[string]int64)}
}

// Get returns the value of a variable, or 0 when unset.
func (s *VariableStore) Get(name string) int64 {
	return s.vars[strings.ToLower(name)]
}

// Set assigns a variable.
func (s *VariableStore) Set(name string, value int64) {
	s.vars[strings.ToLower(name)] = value
}

// Clear removes every variable.
func (s *VariableStore) Clear() {
	s.vars = make(map[string]int64)
}

// Snapshot returns a copy of all variables, for save games.
func (s *VariableStore) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// Replace discards the current contents and installs the given set,
// for load games.
func (s *VariableStore) Replace(vars map[string]int64) {
	s.vars = make(map[string]int64, len(vars))
	for k, v := range vars {
		s.vars[strings.ToLower(k)] = v
	}
}

// Len returns the number of variables set.
func (s *VariableStore) Len() int {
	return len(s.vars)
}
