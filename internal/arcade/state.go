// Package arcade implements the reward minigame: a continuous two-paddle
// ball simulation advanced one tick at a time by the hub. The package is
// host-free; every operation is a total function over match values.
package arcade

// Phase sequences a match: Countdown, then Playing, then Finished. The
// progression is forward-only; a finished match is replaced, never rewound.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Input is the player's control snapshot for one tick. Both booleans may be
// set at once; opposing directions cancel.
type Input struct {
	Up   bool
	Down bool
}

// Ball carries position, velocity components, and the scalar speed the
// collision resolver rebuilds velocity from.
type Ball struct {
	X     float64
	Y     float64
	VX    float64
	VY    float64
	Speed float64
}

// Score tallies rally points for both sides.
type Score struct {
	Player int
	AI     int
}

// Match is the authoritative state for one minigame. Advance treats it as a
// value: the hub replaces its copy each tick and nothing else mutates it.
type Match struct {
	Phase     Phase
	Countdown float64
	PlayerY   float64
	AIY       float64
	Ball      Ball
	Score     Score
}

// NewMatch returns a match in Countdown with the ball centered at rest and
// both paddles centered. There is no in-place reset; a new match is a new
// value.
func NewMatch() Match {
	return Match{
		Phase:     PhaseCountdown,
		Countdown: countdownSeconds,
		PlayerY:   paddleCenterY(),
		AIY:       paddleCenterY(),
		Ball:      centeredBall(),
	}
}

func paddleCenterY() float64 {
	return (CourtHeight - PaddleHeight) / 2
}

func centeredBall() Ball {
	return Ball{X: (CourtWidth - BallSize) / 2, Y: (CourtHeight - BallSize) / 2}
}
