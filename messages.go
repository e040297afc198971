package server

import (
	"tipdex/server/internal/arcade"
	"tipdex/server/internal/catalog"
)

// BallState is the wire form of the ball for state frames.
type BallState struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Speed float64 `json:"speed"`
}

// MatchView is the renderable slice of a session's match.
type MatchView struct {
	Phase     string    `json:"phase"`
	Countdown float64   `json:"countdown"`
	PlayerY   float64   `json:"playerY"`
	AIY       float64   `json:"aiY"`
	Ball      BallState `json:"ball"`
	Player    int       `json:"playerScore"`
	AI        int       `json:"aiScore"`
}

// StateMessage is pushed to a session every tick while it is subscribed.
type StateMessage struct {
	Ver        int                    `json:"ver"`
	Type       string                 `json:"type"`
	Tick       uint64                 `json:"tick"`
	Match      *MatchView             `json:"match,omitempty"`
	Tokens     catalog.LedgerSnapshot `json:"tokens"`
	ServerTime int64                  `json:"serverTime"`
}

// JoinResponse answers the join handshake.
type JoinResponse struct {
	Ver       int                    `json:"ver"`
	ID        string                 `json:"id"`
	Tokens    catalog.LedgerSnapshot `json:"tokens"`
	CourtW    float64                `json:"courtWidth"`
	CourtH    float64                `json:"courtHeight"`
	PaddleH   float64                `json:"paddleHeight"`
	PaddleW   float64                `json:"paddleWidth"`
	BallSize  float64                `json:"ballSize"`
	PlayerX   float64                `json:"playerPaddleX"`
	AIPaddleX float64                `json:"aiPaddleX"`
}

// DiagnosticsSession exposes heartbeat data for the diagnostics endpoint.
type DiagnosticsSession struct {
	ID            string `json:"id"`
	Phase         string `json:"phase"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rtt"`
}

func matchView(m arcade.Match) *MatchView {
	return &MatchView{
		Phase:     m.Phase.String(),
		Countdown: m.Countdown,
		PlayerY:   m.PlayerY,
		AIY:       m.AIY,
		Ball: BallState{
			X:     m.Ball.X,
			Y:     m.Ball.Y,
			VX:    m.Ball.VX,
			VY:    m.Ball.VY,
			Speed: m.Ball.Speed,
		},
		Player: m.Score.Player,
		AI:     m.Score.AI,
	}
}
