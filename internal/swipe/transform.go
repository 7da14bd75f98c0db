package swipe

// BackgroundScale is the fixed scale of the card beneath the top card
const BackgroundScale = 0.95

// Rotation tilts the card in degrees as it is dragged
func Rotation(x float64) float64 {
	return interpolate(x, []float64{-200, 200}, []float64{-30, 30})
}

// Opacity fades the card out once it is dragged past 150px either way
func Opacity(x float64) float64 {
	return interpolate(x, []float64{-200, -150, 0, 150, 200}, []float64{0, 1, 1, 1, 0})
}

// Scale shrinks the top card slightly as it leaves the center
func Scale(x float64) float64 {
	return interpolate(x, []float64{-200, 0, 200}, []float64{0.9, 1, 0.9})
}

func LikeBadgeOpacity(x float64) float64 {
	return interpolate(x, []float64{0, 100}, []float64{0, 1})
}

func LikeBadgeScale(x float64) float64 {
	return interpolate(x, []float64{0, 100}, []float64{0.8, 1})
}

func PassBadgeOpacity(x float64) float64 {
	return interpolate(x, []float64{-100, 0}, []float64{1, 0})
}

func PassBadgeScale(x float64) float64 {
	return interpolate(x, []float64{-100, 0}, []float64{1, 0.8})
}

// interpolate maps x piecewise-linearly from in onto out, clamping at both
// ends. in must be ascending and the same length as out.
func interpolate(x float64, in, out []float64) float64 {
	if x <= in[0] {
		return out[0]
	}
	last := len(in) - 1
	if x >= in[last] {
		return out[last]
	}
	for i := 1; i <= last; i++ {
		if x <= in[i] {
			t := (x - in[i-1]) / (in[i] - in[i-1])
			return out[i-1] + t*(out[i]-out[i-1])
		}
	}
	return out[last]
}
