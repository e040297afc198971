package arcade

import "math"

// StepBall integrates one tick of straight-line motion.
func StepBall(b Ball, frameScale float64) Ball {
	b.X += b.VX * frameScale
	b.Y += b.VY * frameScale
	return b
}

// CheckWallCollision pushes the ball back inside the court and forces its
// vertical velocity inward. Safe across successive overlapping frames: after
// resolution the ball always points back into play.
func CheckWallCollision(b Ball) (Ball, bool) {
	upper := CourtHeight - BallSize
	switch {
	case b.Y <= 0:
		b.Y = 0
		b.VY = math.Abs(b.VY)
		return b, true
	case b.Y >= upper:
		b.Y = upper
		b.VY = -math.Abs(b.VY)
		return b, true
	}
	return b, false
}

// PaddleSide identifies which paddle a collision check runs against. The
// player defends the left plane, the AI the right.
type PaddleSide int

const (
	SidePlayer PaddleSide = iota
	SideAI
)

// CheckPaddleHit resolves a collision against one paddle. The check is swept
// over the tick: prev is the ball before integration, b after. A hit requires
// the ball's travel segment to reach the paddle's contact plane, inbound
// horizontal velocity, and vertical overlap judged at the plane crossing, so
// a fast ball cannot pass through an aligned paddle in one tick. On a hit the
// exit velocity is rebuilt from the struck offset, speed grows up to the cap,
// and the ball snaps to the paddle's outer edge so it cannot tunnel or stick
// on the next tick.
func CheckPaddleHit(prev, b Ball, paddleY float64, side PaddleSide) (Ball, bool) {
	var contactX float64
	var crossed, inbound bool
	switch side {
	case SidePlayer:
		contactX = PlayerPaddleX + PaddleWidth
		inbound = b.VX < 0
		crossed = b.X <= contactX && prev.X+BallSize >= PlayerPaddleX
	case SideAI:
		contactX = AIPaddleX - BallSize
		inbound = b.VX > 0
		crossed = b.X >= contactX && prev.X <= AIPaddleX+PaddleWidth
	}
	if !crossed || !inbound {
		return b, false
	}

	// Fraction of the tick's travel at which the contact plane is reached.
	t := 0.0
	if b.X != prev.X {
		t = clamp((contactX-prev.X)/(b.X-prev.X), 0, 1)
	}
	yAtContact := prev.Y + (b.Y-prev.Y)*t
	ballCenter := yAtContact + BallSize/2
	if ballCenter < paddleY || ballCenter > paddleY+PaddleHeight {
		return b, false
	}

	// Normalized strike offset in [-1, 1] sets the deflection angle.
	offset := (ballCenter - (paddleY + PaddleHeight/2)) / (PaddleHeight / 2)
	angle := offset * maxDeflection

	b.Speed = math.Min(speedMax, b.Speed+speedIncrement)
	b.VX = b.Speed * math.Cos(angle)
	b.VY = b.Speed * math.Sin(angle)
	b.X = contactX
	b.Y = yAtContact

	if side == SideAI {
		b.VX = -b.VX
	}
	return b, true
}

// PointResult reports which side, if any, scored on a tick.
type PointResult int

const (
	NoPoint PointResult = iota
	PointPlayer
	PointAI
)

// CheckScore reports a point once the ball has left the court horizontally.
func CheckScore(b Ball) PointResult {
	if b.X < 0 {
		return PointAI
	}
	if b.X > CourtWidth {
		return PointPlayer
	}
	return NoPoint
}
