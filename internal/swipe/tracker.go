// Package swipe turns horizontal drags on the top recipe card into
// like or pass decisions.
package swipe

import "time"

// Tracker follows one active drag and reports its horizontal offset and
// velocity. The zero value is idle.
type Tracker struct {
	active   bool
	offset   float64
	velocity float64
	last     time.Time
}

// Begin starts a drag. Only the top card is draggable, so Begin refuses
// and returns false when top is false or a drag is already active.
func (t *Tracker) Begin(top bool, at time.Time) bool {
	if !top || t.active {
		return false
	}
	*t = Tracker{active: true, last: at}
	return true
}

// Move records the pointer's total horizontal displacement since Begin
func (t *Tracker) Move(offset float64, at time.Time) {
	if !t.active {
		return
	}
	if dt := at.Sub(t.last).Seconds(); dt > 0 {
		t.velocity = (offset - t.offset) / dt
	}
	t.offset = offset
	t.last = at
}

// End finishes the drag and returns the final offset and velocity (px/s)
func (t *Tracker) End() (offset, velocity float64) {
	offset, velocity = t.offset, t.velocity
	*t = Tracker{}
	return offset, velocity
}

func (t *Tracker) Active() bool {
	return t.active
}

func (t *Tracker) Offset() float64 {
	return t.offset
}

func (t *Tracker) Velocity() float64 {
	return t.velocity
}
