package arcade

// PredictY extrapolates where the ball will cross targetX, folding the raw
// height back into the court to account for wall bounces. A parked ball or
// one moving away from the target plane predicts its current height.
//
// The fold mirrors the overshoot across the nearest boundary up to
// predictFoldCap passes and returns the last folded value if the cap trips.
// Its only consumer is the AI's aim, so a bounded approximation beats exact
// reflected-ray geometry here.
func PredictY(b Ball, targetX float64) float64 {
	if b.VX == 0 {
		return b.Y
	}
	timeToReach := (targetX - b.X) / b.VX
	if timeToReach < 0 {
		return b.Y
	}

	y := b.Y + b.VY*timeToReach
	upper := CourtHeight - BallSize
	for i := 0; i < predictFoldCap; i++ {
		if y >= 0 && y <= upper {
			break
		}
		if y < 0 {
			y = -y
		} else {
			y = 2*upper - y
		}
	}
	return y
}
