package util

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

const DefaultDebounceDelay = 250 * time.Millisecond

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// DebounceMsg is delivered when a debounce timer fires. Only the message of
// the latest trigger is accepted by its Debouncer.
type DebounceMsg struct {
	id    int
	seq   int
	Value string
}

// Debouncer delays a value until no newer value has been triggered for the
// configured quiet period. Every trigger supersedes the pending one.
type Debouncer struct {
	id      int
	delay   time.Duration
	seq     int
	pending bool
	stopped bool
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{
		id:    nextID(),
		delay: delay,
	}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger starts a new quiet period for value, invalidating any pending
// one. It returns nil once the debouncer is stopped.
func (d *Debouncer) Trigger(value string) tea.Cmd {
	if d.stopped {
		return nil
	}
	d.seq++
	d.pending = true
	id, seq := d.id, d.seq
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return DebounceMsg{id: id, seq: seq, Value: value}
	})
}

// Accept returns the settled value if msg belongs to the latest trigger of
// this debouncer.
func (d *Debouncer) Accept(msg DebounceMsg) (string, bool) {
	if d.stopped || !d.pending || msg.id != d.id || msg.seq != d.seq {
		return "", false
	}
	d.pending = false
	return msg.Value, true
}

// Pending reports whether a triggered value has not settled yet.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Cancel drops the pending value, if any.
func (d *Debouncer) Cancel() {
	d.seq++
	d.pending = false
}

// Stop cancels the pending value and ignores every later trigger.
func (d *Debouncer) Stop() {
	d.Cancel()
	d.stopped = true
}
