package arcade

// ClampPaddleY keeps a paddle's top edge inside the court.
func ClampPaddleY(y float64) float64 {
	return clamp(y, 0, CourtHeight-PaddleHeight)
}

// MovePlayer applies one tick of input to the player paddle. Opposing keys
// cancel to no movement; the result is always in bounds.
func MovePlayer(y float64, in Input, frameScale float64) float64 {
	dir := 0.0
	if in.Down {
		dir++
	}
	if in.Up {
		dir--
	}
	return ClampPaddleY(y + dir*paddleSpeed*frameScale)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
