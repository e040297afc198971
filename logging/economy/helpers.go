package economy

import (
	"context"

	"tipdex/server/logging"
)

const (
	// EventTokenEarned is emitted when a catalog batch completes and banks a token.
	EventTokenEarned logging.EventType = "economy.token_earned"
	// EventTokenSpent is emitted when a finished match consumes a token.
	EventTokenSpent logging.EventType = "economy.token_spent"
)

// TokenEarnedPayload describes the batch that earned the token.
type TokenEarnedPayload struct {
	EntriesCatalogued uint64 `json:"entriesCatalogued"`
	Balance           uint64 `json:"balance"`
}

// TokenEarned publishes a token award.
func TokenEarned(ctx context.Context, pub logging.Publisher, actor logging.EntityRef, payload TokenEarnedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTokenEarned,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}

// TokenSpentPayload describes the spend and the remaining balance.
type TokenSpentPayload struct {
	Balance uint64 `json:"balance"`
}

// TokenSpent publishes a token spend.
func TokenSpent(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload TokenSpentPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventTokenSpent,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}
