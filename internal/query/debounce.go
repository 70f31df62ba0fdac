package query

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last input and the commit
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid input into a single commit: each Set cancels and
// restarts the pending timer, and the commit callback fires with the latest
// value once the delay elapses with no further input. Last write wins;
// intermediate values are never queued. The commit target is whatever the
// callback does with the value (a URL, a local store, a test harness).
type Debouncer struct {
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	timer   *time.Timer
	value   string
	pending bool
}

// NewDebouncer creates a Debouncer with the given delay and commit callback.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Set records a new value and restarts the debounce timer
func (d *Debouncer) Set(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = value
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	value := d.value
	d.pending = false
	d.mu.Unlock()

	d.commit(value)
}

// Flush commits a pending value immediately, cancelling the timer
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop cancels any pending commit without firing it
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
}
