package scoring

import "time"

// DefaultBudget is the answering time allowed per assessment before the
// session auto-submits.
const DefaultBudget = 10 * time.Minute

// Clock is the session clock for an in-progress assessment. It is
// advanced cooperatively by the host's 1-second tick and never advances
// after Stop. Elapsed is monotonic: ticks arriving late or out of order
// cannot move it backwards.
type Clock struct {
	budget  time.Duration
	elapsed time.Duration
	running bool
}

// NewClock returns a stopped clock with the given budget. A zero or
// negative budget falls back to DefaultBudget.
func NewClock(budget time.Duration) *Clock {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Clock{budget: budget}
}

// Start begins (or resumes) the clock. Starting a running clock is a no-op.
func (c *Clock) Start() {
	c.running = true
}

// Stop freezes the clock. Ticks after Stop are ignored, so a timer
// callback that fires after the session unmounts cannot advance it.
func (c *Clock) Stop() {
	c.running = false
}

// Tick advances the clock by one second. It reports whether the tick was
// applied; a stopped clock rejects ticks.
func (c *Clock) Tick() bool {
	if !c.running {
		return false
	}
	c.elapsed += time.Second
	return true
}

// Elapsed returns the time accumulated so far.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Remaining returns the budget not yet consumed, never negative.
func (c *Clock) Remaining() time.Duration {
	r := c.budget - c.elapsed
	if r < 0 {
		return 0
	}
	return r
}

// Expired reports whether the budget has been fully consumed.
func (c *Clock) Expired() bool {
	return c.elapsed >= c.budget
}
