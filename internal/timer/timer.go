// Package timer implements the exercise countdown: a one-second tick source
// that counts a fixed budget down to zero.
package timer

import (
	"fmt"
	"sync"
	"time"

	"task-board/internal/clock"
	"task-board/internal/logging"
)

// DefaultBudget is the length of the exercise
const DefaultBudget = 60 * time.Minute

const tickInterval = time.Second

// Urgency thresholds in seconds remaining
const (
	WarningThreshold  = 15 * 60
	CriticalThreshold = 5 * 60
)

// State is the lifecycle stage of a countdown
type State int

const (
	StateIdle State = iota
	StateRunning
	StateExpired
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Urgency classifies the remaining time for display
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyWarning
	UrgencyCritical
)

// String returns the urgency name
func (u Urgency) String() string {
	switch u {
	case UrgencyWarning:
		return "warning"
	case UrgencyCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Snapshot is a consistent view of a countdown
type Snapshot struct {
	Remaining int
	Budget    int
	State     State
	// StartedAt is the first start since the last reset; zero when idle
	StartedAt time.Time
}

// Expired reports whether the budget has run out
func (s Snapshot) Expired() bool {
	return s.State == StateExpired
}

// Running reports whether ticks are being delivered
func (s Snapshot) Running() bool {
	return s.State == StateRunning
}

// Formatted renders the remaining time with FormatTime
func (s Snapshot) Formatted() string {
	return FormatTime(s.Remaining)
}

// Urgency classifies the remaining time
func (s Snapshot) Urgency() Urgency {
	return UrgencyFor(s.Remaining)
}

// Countdown counts a budget of whole seconds down to zero.
// The zero value is not usable; call New.
type Countdown struct {
	mu        sync.Mutex
	clock     clock.Clock
	budget    int
	remaining int
	state     State
	startedAt time.Time
	onChange  func(Snapshot)

	// tick source; nil unless running
	gen  int
	stop chan struct{}
	done chan struct{}
}

// New returns an idle countdown with budget rounded down to whole seconds
func New(clk clock.Clock, budget time.Duration) *Countdown {
	if clk == nil {
		clk = clock.New()
	}
	seconds := int(budget / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		clock:     clk,
		budget:    seconds,
		remaining: seconds,
	}
}

// OnChange registers fn to receive a snapshot after every start, tick and
// reset. fn runs on the ticking goroutine for ticks and must not call Reset
// or Close.
func (c *Countdown) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns the current state
func (c *Countdown) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start begins ticking. It does nothing while already running or after the
// budget has expired.
func (c *Countdown) Start() {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}

	if c.startedAt.IsZero() {
		c.startedAt = c.clock.Now()
	}

	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateExpired
	} else {
		c.state = StateRunning
		c.gen++
		c.stop = make(chan struct{})
		c.done = make(chan struct{})
		go c.run(c.gen, c.clock.NewTicker(tickInterval), c.stop, c.done)
	}

	snap, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()

	logging.Debugf("countdown started with %s remaining", FormatTime(snap.Remaining))
	if notify != nil {
		notify(snap)
	}
}

// Reset stops ticking and restores the full budget
func (c *Countdown) Reset() {
	c.stopTicking()

	c.mu.Lock()
	c.remaining = c.budget
	c.state = StateIdle
	c.startedAt = time.Time{}
	snap, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()

	logging.Debugf("countdown reset to %s", FormatTime(snap.Remaining))
	if notify != nil {
		notify(snap)
	}
}

// Close stops ticking without changing the remaining time
func (c *Countdown) Close() {
	c.stopTicking()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		c.state = StateIdle
	}
}

// stopTicking ends the tick goroutine and waits for it to exit
func (c *Countdown) stopTicking() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.gen++
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (c *Countdown) run(gen int, ticker clock.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if !c.tick(gen) {
				return
			}
		}
	}
}

// tick decrements the remaining time and reports whether ticking continues
func (c *Countdown) tick(gen int) bool {
	c.mu.Lock()
	if gen != c.gen || c.state != StateRunning {
		c.mu.Unlock()
		return false
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateExpired
	}
	snap, notify := c.snapshotLocked(), c.onChange
	c.mu.Unlock()

	if snap.Expired() {
		logging.Debugln("countdown expired")
	}
	if notify != nil {
		notify(snap)
	}
	return !snap.Expired()
}

func (c *Countdown) snapshotLocked() Snapshot {
	return Snapshot{
		Remaining: c.remaining,
		Budget:    c.budget,
		State:     c.state,
		StartedAt: c.startedAt,
	}
}

// FormatTime renders seconds as H:MM:SS when at least an hour remains,
// otherwise as M:SS. Negative input renders as 0:00.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// UrgencyFor classifies remaining seconds
func UrgencyFor(remaining int) Urgency {
	switch {
	case remaining <= CriticalThreshold:
		return UrgencyCritical
	case remaining <= WarningThreshold:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
