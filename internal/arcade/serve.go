package arcade

import "math"

// Serve draws the opening velocity for a rally: a shallow random angle fired
// toward a random side at the initial speed. A nil rng serves flat to the
// right.
func Serve(rng Rand) (vx, vy float64) {
	angle := 0.0
	toRight := true
	if rng != nil {
		angle = rng.Float64()*2*serveAngleSpan - serveAngleSpan
		toRight = rng.Intn(2) == 0
	}
	vx = speedInitial * math.Cos(angle)
	if !toRight {
		vx = -vx
	}
	vy = speedInitial * math.Sin(angle)
	return vx, vy
}
