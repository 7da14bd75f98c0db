package swipe

// Decision is the outcome of a released drag
type Decision int

const (
	None Decision = iota
	Like
	Pass
)

const (
	// OffsetThreshold is how far (px) a card must travel to count as a swipe
	OffsetThreshold = 100
	// VelocityThreshold is how fast (px/s) a flick must be to count as a swipe
	VelocityThreshold = 500
	// ExitDistance is how far off screen a swiped card is animated
	ExitDistance = 1000
)

func (d Decision) String() string {
	switch d {
	case Like:
		return "like"
	case Pass:
		return "pass"
	default:
		return "none"
	}
}

// Classify decides a drag from its final offset and velocity. The like
// branch is tested first, so a drag is never both.
func Classify(offset, velocity float64) Decision {
	if offset > OffsetThreshold || velocity > VelocityThreshold {
		return Like
	}
	if offset < -OffsetThreshold || velocity < -VelocityThreshold {
		return Pass
	}
	return None
}

// ExitTarget is where the card animates to. None springs back to center.
func ExitTarget(d Decision) float64 {
	switch d {
	case Like:
		return ExitDistance
	case Pass:
		return -ExitDistance
	default:
		return 0
	}
}
