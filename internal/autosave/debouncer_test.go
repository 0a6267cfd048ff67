package autosave_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/autosave"
)

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) after(_ time.Duration, fn func()) autosave.Timer {
	timer := &fakeTimer{fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

func TestTriggerRestartsCountdown(t *testing.T) {
	clock := &fakeClock{}
	var runs int
	d := autosave.New(time.Second, func() { runs++ }, autosave.WithAfterFunc(clock.after))

	d.Trigger()
	d.Trigger()

	if len(clock.timers) != 2 || !clock.timers[0].stopped {
		t.Fatalf("expected the first countdown to be cancelled")
	}

	clock.timers[0].fn()
	if runs != 0 {
		t.Fatalf("a superseded timer must not run")
	}
	clock.timers[1].fn()
	if runs != 1 || d.Pending() {
		t.Fatalf("expected one run and nothing pending, got runs=%d pending=%v", runs, d.Pending())
	}
	clock.timers[1].fn()
	if runs != 1 {
		t.Fatalf("a timer must fire at most once")
	}
}

func TestFlushAndStop(t *testing.T) {
	clock := &fakeClock{}
	var runs int
	d := autosave.New(time.Second, func() { runs++ }, autosave.WithAfterFunc(clock.after))

	if d.Flush() {
		t.Fatalf("nothing pending to flush")
	}

	d.Trigger()
	if !d.Flush() || runs != 1 {
		t.Fatalf("expected flush to run the pending save")
	}
	clock.timers[0].fn()
	if runs != 1 {
		t.Fatalf("flushed timer must not run again")
	}

	d.Trigger()
	d.Stop()
	clock.timers[1].fn()
	if runs != 1 || d.Pending() {
		t.Fatalf("stopped timer must not run")
	}
}

func TestRealTimerFires(t *testing.T) {
	var runs atomic.Int32
	done := make(chan struct{})
	d := autosave.New(10*time.Millisecond, func() {
		runs.Add(1)
		close(done)
	})

	d.Trigger()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced save did not fire")
	}
	if runs.Load() != 1 {
		t.Fatalf("expected one run, got %d", runs.Load())
	}
}
