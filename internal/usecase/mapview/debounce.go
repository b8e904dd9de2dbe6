package mapview

import (
	"sync"
	"time"
)

// SearchDebounce is how long a search input must be quiet before the query
// is applied. Shorter than the viewport debounce since typing pauses are
// briefer than pan gestures.
const SearchDebounce = 300 * time.Millisecond

// Debouncer coalesces a burst of values into one callback carrying the last
// value, fired after the input has been quiet for the configured interval.
type Debouncer struct {
	interval time.Duration
	fn       func(string)

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

// NewDebouncer builds a Debouncer invoking fn with the final value of each
// burst. A non-positive interval uses SearchDebounce.
func NewDebouncer(interval time.Duration, fn func(string)) *Debouncer {
	if interval <= 0 {
		interval = SearchDebounce
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Update records a new value and restarts the quiet-period clock.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = value
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

// Flush applies the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	d.timer = nil
	value := d.last
	d.mu.Unlock()
	d.fn(value)
}

// Stop discards any pending value.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	value := d.last
	d.mu.Unlock()
	d.fn(value)
}
