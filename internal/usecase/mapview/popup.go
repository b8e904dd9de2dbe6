package mapview

import (
	"sync"
	"time"
)

// PopupGrace is how long a popup stays up after the pointer leaves the
// marker, giving the user time to move the pointer onto the popup itself.
const PopupGrace = 300 * time.Millisecond

// PopupTimer delays popup dismissal. Leave starts the grace countdown and
// Enter cancels it, so moving from marker to popup keeps the popup open.
type PopupTimer struct {
	grace   time.Duration
	onClose func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewPopupTimer builds a PopupTimer that calls onClose when the grace period
// elapses without the pointer re-entering. A non-positive grace uses
// PopupGrace.
func NewPopupTimer(grace time.Duration, onClose func()) *PopupTimer {
	if grace <= 0 {
		grace = PopupGrace
	}
	return &PopupTimer{grace: grace, onClose: onClose}
}

// Leave starts (or restarts) the dismissal countdown.
func (p *PopupTimer) Leave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.grace, p.fire)
}

// Enter cancels a pending dismissal.
func (p *PopupTimer) Enter() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Stop cancels any pending dismissal without firing.
func (p *PopupTimer) Stop() {
	p.Enter()
}

func (p *PopupTimer) fire() {
	p.mu.Lock()
	if p.timer == nil {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	p.mu.Unlock()
	if p.onClose != nil {
		p.onClose()
	}
}
