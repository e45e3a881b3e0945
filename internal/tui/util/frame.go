package util

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

const DefaultFrameInterval = 16 * time.Millisecond

type FrameMsg struct {
	id int
}

// FrameLimiter coalesces requests into at most one FrameMsg per frame
// interval. Requests made while a frame is pending are folded into it, so
// the handler always sees the latest state.
type FrameLimiter struct {
	id       int
	interval time.Duration
	pending  bool
	stopped  bool
}

func NewFrameLimiter(interval time.Duration) *FrameLimiter {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameLimiter{
		id:       nextID(),
		interval: interval,
	}
}

// Schedule requests a frame. It returns nil when one is already pending.
func (f *FrameLimiter) Schedule() tea.Cmd {
	if f.pending || f.stopped {
		return nil
	}
	f.pending = true
	id := f.id
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return FrameMsg{id: id}
	})
}

// Accept reports whether msg is the pending frame of this limiter.
func (f *FrameLimiter) Accept(msg FrameMsg) bool {
	if f.stopped || !f.pending || msg.id != f.id {
		return false
	}
	f.pending = false
	return true
}

func (f *FrameLimiter) Pending() bool {
	return f.pending
}

// Stop drops the pending frame and ignores later requests.
func (f *FrameLimiter) Stop() {
	f.pending = false
	f.stopped = true
}
