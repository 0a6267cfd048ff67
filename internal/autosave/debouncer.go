package autosave

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a pending save fires.
const DefaultDelay = 30 * time.Second

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, fn func()) Timer

type Option func(*Debouncer)

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(after AfterFunc) Option {
	return func(d *Debouncer) {
		if after != nil {
			d.after = after
		}
	}
}

// Debouncer runs fn once the triggers stop for delay. Every Trigger restarts
// the wait, superseding the pending run.
type Debouncer struct {
	mu         sync.Mutex
	delay      time.Duration
	fn         func()
	after      AfterFunc
	timer      Timer
	generation uint64
}

func New(delay time.Duration, fn func(), opts ...Option) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer{
		delay: delay,
		fn:    fn,
		after: func(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Trigger (re)starts the countdown.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	generation := d.generation
	d.timer = d.after(d.delay, func() { d.fire(generation) })
}

// Pending reports whether a run is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending run, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Flush runs a pending fn immediately on the calling goroutine. It reports
// whether anything was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.run()
	return true
}

// fire ignores callbacks from timers that were superseded after they had
// already started.
func (d *Debouncer) fire(generation uint64) {
	d.mu.Lock()
	if generation != d.generation || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.generation++
	d.mu.Unlock()

	d.run()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}

func (d *Debouncer) run() {
	if d.fn != nil {
		d.fn()
	}
}
