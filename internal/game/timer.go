package game

// Timer counts elapsed seconds up to a cooldown. A finished timer stays done
// until Start re-arms it.
type Timer struct {
	cooldown float64
	elapsed  float64
}

// NewTimer returns a timer with the given cooldown. When startDone is true the
// timer reports Done immediately.
func NewTimer(cooldown float64, startDone bool) *Timer {
	t := &Timer{cooldown: cooldown}
	if startDone {
		t.elapsed = cooldown
	}
	return t
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float64) {
	if t.elapsed < t.cooldown {
		t.elapsed += dt
	}
}

func (t *Timer) Done() bool { return t.elapsed >= t.cooldown }

// Start re-arms the timer from zero.
func (t *Timer) Start() { t.elapsed = 0 }

// Finish forces the timer into the done state.
func (t *Timer) Finish() { t.elapsed = t.cooldown }

func (t *Timer) SetCooldown(c float64) { t.cooldown = c }
func (t *Timer) Cooldown() float64     { return t.cooldown }
func (t *Timer) Elapsed() float64      { return t.elapsed }

// Remaining returns the seconds left before Done, never negative.
func (t *Timer) Remaining() float64 {
	if t.elapsed >= t.cooldown {
		return 0
	}
	return t.cooldown - t.elapsed
}
