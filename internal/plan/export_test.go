package plan

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStore_Export(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a", Name: "A"})
	s.Upsert(ctx, Plan{ID: "b", Name: "B"})

	at := time.Date(2024, 5, 1, 9, 30, 0, 123_000_000, time.FixedZone("CEST", 2*3600))
	snap := s.Export(at)

	if snap.Version != 1 {
		t.Errorf("Version = %d", snap.Version)
	}
	if snap.ExportedAt != "2024-05-01T07:30:00.123Z" {
		t.Errorf("ExportedAt = %q", snap.ExportedAt)
	}
	if len(snap.Plans) != 2 || snap.Plans[0].ID != "a" {
		t.Errorf("plans should follow collection order: %+v", snap.Plans)
	}

	snap.Plans[0].Name = "mutated"
	if p, _ := s.FindByID("a"); p.Name != "A" {
		t.Error("snapshot shares memory with the store")
	}
}

func TestSnapshot_Encode(t *testing.T) {
	s, _ := newTestStore(t)
	data, err := s.Export(time.UnixMilli(0)).Encode()
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	if !strings.Contains(text, "\n  \"version\": 1") {
		t.Errorf("expected 2-space indentation: %s", text)
	}
	if !strings.Contains(text, `"exportedAt": "1970-01-01T00:00:00.000Z"`) {
		t.Errorf("unexpected exportedAt: %s", text)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	plans, ok := decoded["plans"].([]any)
	if !ok || len(plans) != 0 {
		t.Errorf("empty store should export an empty plans array, got %v", decoded["plans"])
	}
}
