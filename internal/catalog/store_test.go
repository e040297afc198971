package catalog

import "testing"

func TestStoreAddNormalizesAndAssignsID(t *testing.T) {
	store := NewStore()
	entry, err := store.Add(EntryDefinition{Rack: " b7 ", TipType: "universal", VolumeUL: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if entry.Rack != "B7" {
		t.Fatalf("expected normalized rack B7, got %q", entry.Rack)
	}
	if got, ok := store.Get(entry.ID); !ok || got.TipType != "universal" {
		t.Fatalf("expected to read back entry, got %+v ok=%v", got, ok)
	}
}

func TestStoreAddRejectsBadDefinitions(t *testing.T) {
	store := NewStore()
	cases := []EntryDefinition{
		{Rack: "Z9", TipType: "universal", VolumeUL: 200},
		{Rack: "B7", TipType: "", VolumeUL: 200},
		{Rack: "B7", TipType: "universal", VolumeUL: 0},
		{Rack: "B7", TipType: "universal", VolumeUL: -10},
	}
	for i, def := range cases {
		if _, err := store.Add(def); err == nil {
			t.Fatalf("case %d: expected rejection for %+v", i, def)
		}
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty store after rejections, count=%d", store.Count())
	}
}

func TestStoreListPreservesInsertionOrder(t *testing.T) {
	store := NewStore()
	racks := []string{"A1", "B2", "C3"}
	for _, rack := range racks {
		if _, err := store.Add(EntryDefinition{Rack: rack, TipType: "filter", VolumeUL: 20}); err != nil {
			t.Fatalf("add %s: %v", rack, err)
		}
	}
	entries := store.List()
	if len(entries) != len(racks) {
		t.Fatalf("expected %d entries, got %d", len(racks), len(entries))
	}
	for i, rack := range racks {
		if entries[i].Rack != rack {
			t.Fatalf("expected %s at index %d, got %s", rack, i, entries[i].Rack)
		}
	}
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()
	entry, err := store.Add(EntryDefinition{Rack: "D4", TipType: "universal", VolumeUL: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Remove(entry.ID) {
		t.Fatalf("expected removal to succeed")
	}
	if store.Remove(entry.ID) {
		t.Fatalf("expected second removal to fail")
	}
	if store.Count() != 0 {
		t.Fatalf("expected empty store, count=%d", store.Count())
	}
}
