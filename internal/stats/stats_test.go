package stats

import (
	"testing"

	"tipdex/server/internal/catalog"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalEntries != 0 {
		t.Fatalf("expected zero entries, got %d", summary.TotalEntries)
	}
	if summary.RacksInUse != 0 {
		t.Fatalf("expected zero racks, got %d", summary.RacksInUse)
	}
	if len(summary.ByTipType) != 0 {
		t.Fatalf("expected no type counts, got %v", summary.ByTipType)
	}
}

func TestSummarizeAggregates(t *testing.T) {
	entries := []catalog.Entry{
		{Rack: "A1", TipType: "P200", VolumeUL: 200, Filtered: true},
		{Rack: "A1", TipType: "P200", VolumeUL: 200},
		{Rack: "B3", TipType: "P1000", VolumeUL: 1000, Filtered: true},
	}
	summary := Summarize(entries)

	if summary.TotalEntries != 3 {
		t.Fatalf("expected 3 entries, got %d", summary.TotalEntries)
	}
	if summary.FilteredCount != 2 {
		t.Fatalf("expected 2 filtered, got %d", summary.FilteredCount)
	}
	if summary.TotalVolumeUL != 1400 {
		t.Fatalf("expected total volume 1400, got %v", summary.TotalVolumeUL)
	}
	if summary.RacksInUse != 2 {
		t.Fatalf("expected 2 racks in use, got %d", summary.RacksInUse)
	}
	if len(summary.ByTipType) != 2 {
		t.Fatalf("expected 2 type counts, got %v", summary.ByTipType)
	}
	if summary.ByTipType[0].TipType != "P200" || summary.ByTipType[0].Count != 2 {
		t.Fatalf("expected P200 first with count 2, got %+v", summary.ByTipType[0])
	}
}

func TestSummarizeTieBreaksAlphabetically(t *testing.T) {
	entries := []catalog.Entry{
		{Rack: "A1", TipType: "P300", VolumeUL: 300},
		{Rack: "A2", TipType: "P10", VolumeUL: 10},
	}
	summary := Summarize(entries)
	if summary.ByTipType[0].TipType != "P10" {
		t.Fatalf("expected P10 first on tie, got %v", summary.ByTipType[0].TipType)
	}
}
