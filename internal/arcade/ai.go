package arcade

import "math"

// AITarget picks the height the AI paddle steers toward. An approaching ball
// is met at its predicted crossing, smeared by uniform jitter so the opponent
// stays beatable; a receding ball sends the paddle back to center.
func AITarget(b Ball, paddleX float64, rng Rand) float64 {
	if b.VX <= 0 {
		return paddleCenterY()
	}
	jitter := 0.0
	if rng != nil {
		jitter = rng.Float64()*2*aiJitterSpan - aiJitterSpan
	}
	return PredictY(b, paddleX) - PaddleHeight/2 + jitter
}

// MoveAI advances the AI paddle toward target at its handicapped speed. The
// dead-zone stops it twitching once aligned.
func MoveAI(y, target, frameScale float64) float64 {
	diff := target - y
	if math.Abs(diff) <= aiDeadZone {
		return ClampPaddleY(y)
	}
	step := math.Min(math.Abs(diff), paddleSpeed*aiSpeedFactor*frameScale)
	if diff < 0 {
		step = -step
	}
	return ClampPaddleY(y + step)
}
