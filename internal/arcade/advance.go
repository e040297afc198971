package arcade

// Winner reports which side has reached the match point threshold.
func Winner(s Score) (PointResult, bool) {
	if s.Player >= winScore {
		return PointPlayer, true
	}
	if s.AI >= winScore {
		return PointAI, true
	}
	return NoPoint, false
}

// Advance runs one tick of the match: countdown bookkeeping, paddle motion,
// ball physics, scoring, and phase transitions. It is total and synchronous;
// the caller owns the returned value and replaces its copy each tick.
// A Finished match passes through untouched. Given a fixed rng the whole
// simulation is deterministic.
func Advance(m Match, elapsed float64, in Input, rng Rand) Match {
	if elapsed < 0 {
		elapsed = 0
	}

	switch m.Phase {
	case PhaseFinished:
		return m
	case PhaseCountdown:
		if m.Countdown > elapsed {
			m.Countdown -= elapsed
			return m
		}
		// The tick overshot the countdown: serve, then spend the remainder
		// on the first playing frame so pacing stays exact.
		elapsed -= m.Countdown
		m.Countdown = 0
		m.Phase = PhasePlaying
		m.Ball.Speed = speedInitial
		m.Ball.VX, m.Ball.VY = Serve(rng)
	}

	frameScale := elapsed * baseFrameRate

	m.PlayerY = MovePlayer(m.PlayerY, in, frameScale)
	m.AIY = MoveAI(m.AIY, AITarget(m.Ball, AIPaddleX, rng), frameScale)

	prev := m.Ball
	ball := StepBall(m.Ball, frameScale)
	ball, _ = CheckWallCollision(ball)

	// Left-then-right order breaks the (geometrically impossible) tie where
	// both paddles could claim the same tick.
	if resolved, hit := CheckPaddleHit(prev, ball, m.PlayerY, SidePlayer); hit {
		ball = resolved
	} else if resolved, hit := CheckPaddleHit(prev, ball, m.AIY, SideAI); hit {
		ball = resolved
	}
	m.Ball = ball

	switch CheckScore(m.Ball) {
	case PointPlayer:
		m.Score.Player++
	case PointAI:
		m.Score.AI++
	default:
		return m
	}

	if _, won := Winner(m.Score); won {
		// Freeze everything exactly as the scoring tick left it.
		m.Phase = PhaseFinished
		return m
	}

	m.Ball = centeredBall()
	m.Ball.Speed = speedInitial
	m.Ball.VX, m.Ball.VY = Serve(rng)
	return m
}
