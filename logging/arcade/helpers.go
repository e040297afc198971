package arcade

import (
	"context"

	"tipdex/server/logging"
)

const (
	// EventMatchStarted is emitted when a session's countdown begins.
	EventMatchStarted logging.EventType = "arcade.match_started"
	// EventMatchFinished is emitted when a match reaches its terminal phase.
	EventMatchFinished logging.EventType = "arcade.match_finished"
	// EventMatchRefused is emitted when a match cannot start for lack of a token.
	EventMatchRefused logging.EventType = "arcade.match_refused"
)

// MatchStartedPayload records the token balance at the moment play unlocked.
type MatchStartedPayload struct {
	TokensRemaining uint64 `json:"tokensRemaining"`
}

// MatchStarted publishes the start of a countdown for a session.
func MatchStarted(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MatchStartedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMatchStarted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryArcade,
		Payload:  payload,
		Extra:    extra,
	})
}

// MatchFinishedPayload carries the final score.
type MatchFinishedPayload struct {
	PlayerScore int    `json:"playerScore"`
	AIScore     int    `json:"aiScore"`
	Winner      string `json:"winner"`
}

// MatchFinished publishes the terminal result of a match.
func MatchFinished(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MatchFinishedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMatchFinished,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryArcade,
		Payload:  payload,
		Extra:    extra,
	})
}

// MatchRefusedPayload names why a start request was turned down.
type MatchRefusedPayload struct {
	Reason string `json:"reason"`
}

// MatchRefused publishes a refused start request.
func MatchRefused(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload MatchRefusedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMatchRefused,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryArcade,
		Payload:  payload,
		Extra:    extra,
	})
}
