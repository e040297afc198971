package arcade

const (
	// Court geometry in client pixels. The canvas renderer mirrors these.
	CourtWidth   = 640.0
	CourtHeight  = 480.0
	PaddleWidth  = 10.0
	PaddleHeight = 80.0
	BallSize     = 10.0

	// Paddle planes. The player defends the left side, the AI the right.
	PlayerPaddleX = 20.0
	AIPaddleX     = CourtWidth - 20.0 - PaddleWidth

	// Per-frame speeds at the 60 Hz reference rate. Advance scales them by
	// elapsed seconds so the hub tick rate stays independent.
	baseFrameRate  = 60.0
	paddleSpeed    = 6.0
	speedInitial   = 5.0
	speedMax       = 12.0
	speedIncrement = 0.4

	countdownSeconds = 3.0
	winScore         = 5

	// AI tuning. The handicap and jitter keep the opponent beatable.
	aiSpeedFactor = 0.9
	aiDeadZone    = 2.0
	aiJitterSpan  = 15.0

	maxDeflection  = 0.8 // radians, caps exit angle near ±46°
	serveAngleSpan = 0.4 // radians either side of horizontal

	predictFoldCap = 10
)
