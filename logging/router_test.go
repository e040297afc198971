package logging_test

import (
	"context"
	"testing"
	"time"

	"tipdex/server/logging"
	"tipdex/server/logging/sinks"
)

func waitForEvents(t *testing.T, sink *sinks.MemorySink, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := sink.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", want, len(sink.Events()))
	return nil
}

func TestRouterDeliversToSink(t *testing.T) {
	sink := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{{Name: "memory", Sink: sink}})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{
		Type:     "arcade.match_started",
		Tick:     7,
		Severity: logging.SeverityInfo,
		Actor:    logging.EntityRef{ID: "session-1", Kind: logging.EntityKindSession},
	})

	events := waitForEvents(t, sink, 1)
	if events[0].Type != "arcade.match_started" {
		t.Fatalf("expected match_started event, got %v", events[0].Type)
	}
	if events[0].Tick != 7 {
		t.Fatalf("expected tick 7, got %d", events[0].Tick)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected router to stamp event time")
	}
}

func TestRouterFiltersBelowMinimumSeverity(t *testing.T) {
	sink := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.MinimumSeverity = logging.SeverityWarn
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: sink}})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{Type: "economy.token_earned", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "system.drop", Severity: logging.SeverityWarn})

	events := waitForEvents(t, sink, 1)
	for _, event := range events {
		if event.Severity < logging.SeverityWarn {
			t.Fatalf("expected info events filtered, got %v", event.Type)
		}
	}
}

func TestRouterAttachesConfiguredFields(t *testing.T) {
	sink := sinks.NewMemorySink()
	cfg := logging.DefaultConfig()
	cfg.Fields = map[string]any{"service": "tipdex"}
	router, err := logging.NewRouter(nil, cfg, []logging.NamedSink{{Name: "memory", Sink: sink}})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{Type: "system.boot", Severity: logging.SeverityInfo})

	events := waitForEvents(t, sink, 1)
	if got := events[0].Extra["service"]; got != "tipdex" {
		t.Fatalf("expected service field attached, got %v", events[0].Extra)
	}
}

func TestRouterIgnoresEmptyEventType(t *testing.T) {
	sink := sinks.NewMemorySink()
	router, err := logging.NewRouter(nil, logging.DefaultConfig(), []logging.NamedSink{{Name: "memory", Sink: sink}})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	defer router.Close(context.Background())

	router.Publish(context.Background(), logging.Event{Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "system.boot", Severity: logging.SeverityInfo})

	events := waitForEvents(t, sink, 1)
	if len(events) != 1 || events[0].Type != "system.boot" {
		t.Fatalf("expected only the typed event, got %v", events)
	}
}
