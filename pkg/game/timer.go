package game

// Timers provides one-shot delay tokens for timed script waits plus the
// quest countdown. The host drives it once per tick with Update; tokens
// and the countdown advance on game time, so pausing the game pauses
// every scripted wait with it.
type Timers struct {
	nextToken int
	pending   map[int]int64

	limitLeftMs int64
	limitScript string
	limitSet    bool
	windowShown bool

	// OnLimitExpired is invoked once when the countdown hits zero,
	// typically wired to queue a failure script.
	OnLimitExpired func(scriptPath string)
}

// NewTimers creates an empty timer set.
func NewTimers() *Timers {
	return &Timers{pending: make(map[int]int64)}
}

// After registers a one-shot delay and returns its token.
func (t *Timers) After(ms int64) int {
	t.nextToken++
	t.pending[t.nextToken] = ms
	return t.nextToken
}

// Expired reports whether a token's delay elapsed. Unknown tokens count
// as expired so stale waits resolve instead of hanging.
func (t *Timers) Expired(token int) bool {
	left, ok := t.pending[token]
	return !ok || left <= 0
}

// SetTimeLimit starts the quest countdown, replacing any running one.
func (t *Timers) SetTimeLimit(ms int64, scriptPath string) {
	t.limitLeftMs = ms
	t.limitScript = scriptPath
	t.limitSet = true
}

// ClearTimeLimit cancels the countdown.
func (t *Timers) ClearTimeLimit() {
	t.limitSet = false
	t.limitScript = ""
	t.limitLeftMs = 0
}

// LimitLeftMs returns the remaining countdown, 0 when none runs.
func (t *Timers) LimitLeftMs() int64 {
	if !t.limitSet {
		return 0
	}
	return t.limitLeftMs
}

func (t *Timers) ShowWindow() { t.windowShown = true }
func (t *Timers) HideWindow() { t.windowShown = false }

// WindowShown reports whether the countdown window is visible.
func (t *Timers) WindowShown() bool { return t.windowShown }

// Update advances delays and the countdown by one tick. Elapsed tokens
// are dropped; Expired treats unknown tokens as elapsed, so waits that
// poll after the drop still resolve.
func (t *Timers) Update(deltaMs int64) {
	for token, left := range t.pending {
		left -= deltaMs
		if left <= 0 {
			delete(t.pending, token)
			continue
		}
		t.pending[token] = left
	}

	if t.limitSet {
		t.limitLeftMs -= deltaMs
		if t.limitLeftMs <= 0 {
			script := t.limitScript
			t.ClearTimeLimit()
			t.windowShown = false
			if t.OnLimitExpired != nil {
				t.OnLimitExpired(script)
			}
		}
	}
}
