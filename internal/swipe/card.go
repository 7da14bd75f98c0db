package swipe

import "time"

// Card is one draggable recipe card. Top marks the card that accepts drags.
// Super-like has no gesture and is handled by the caller.
type Card struct {
	Top          bool
	OnSwipeRight func()
	OnSwipeLeft  func()

	tracker Tracker
	x       float64
	decided bool
}

// Grab starts dragging the card. Cards beneath the top and cards that have
// already been swiped away refuse.
func (c *Card) Grab(at time.Time) bool {
	if c.decided {
		return false
	}
	return c.tracker.Begin(c.Top, at)
}

// Drag updates the card's horizontal displacement
func (c *Card) Drag(offset float64, at time.Time) {
	c.tracker.Move(offset, at)
}

// Release ends the drag, classifies it and fires the matching callback once.
// On None the card returns to the center.
func (c *Card) Release() Decision {
	if !c.tracker.Active() {
		return None
	}
	offset, velocity := c.tracker.End()

	d := Classify(offset, velocity)
	c.x = ExitTarget(d)
	switch d {
	case Like:
		c.decided = true
		if c.OnSwipeRight != nil {
			c.OnSwipeRight()
		}
	case Pass:
		c.decided = true
		if c.OnSwipeLeft != nil {
			c.OnSwipeLeft()
		}
	}
	return d
}

// X is the card's current horizontal position: the live drag offset while
// dragging, otherwise its resting or exit position.
func (c *Card) X() float64 {
	if c.tracker.Active() {
		return c.tracker.Offset()
	}
	return c.x
}

// Rotation in degrees for the card's current position
func (c *Card) Rotation() float64 {
	return Rotation(c.X())
}

func (c *Card) Opacity() float64 {
	return Opacity(c.X())
}

// Scale of the card; cards beneath the top use BackgroundScale
func (c *Card) Scale() float64 {
	if !c.Top {
		return BackgroundScale
	}
	return Scale(c.X())
}
