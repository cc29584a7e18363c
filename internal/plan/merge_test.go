package plan

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestParseImport(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{"plans array", `{"plans":[{"id":"a"}]}`, 1, false},
		{"empty array", `{"plans":[]}`, 0, false},
		{"extra fields", `{"version":1,"exportedAt":"x","plans":[{},{}]}`, 2, false},
		{"leading whitespace", "  \n{\"plans\":[]}", 0, false},
		{"missing plans", `{"version":1}`, 0, true},
		{"null plans", `{"plans":null}`, 0, true},
		{"plans not array", `{"plans":{}}`, 0, true},
		{"bare array", `[{"id":"a"}]`, 0, true},
		{"not json", `hello`, 0, true},
		{"empty", ``, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseImport([]byte(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImportFormat) {
					t.Errorf("err = %v, want ErrInvalidImportFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestStore_MergeAddsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a", Name: "A"})

	n, err := s.Import(ctx, []byte(`{"plans":[{"id":"a","name":"X"},{"id":"b","name":"B"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("added = %d, want 1", n)
	}

	a, _ := s.FindByID("a")
	if a.Name != "A" {
		t.Errorf("existing plan overwritten: %q", a.Name)
	}
	plans := s.List()
	if len(plans) != 2 || plans[1].ID != "b" {
		t.Errorf("new plan should be appended: %+v", plans)
	}
}

func TestStore_MergeSkipsInvalidElements(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	payload := `{"plans":[
		null, 42, "str", [], {},
		{"id":""},
		{"id":7},
		{"name":"no id"},
		{"id":"ok","name":"Fine","unknown":"kept"}
	]}`
	n, err := s.Import(ctx, []byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || s.Len() != 1 {
		t.Errorf("added = %d, len = %d, want 1", n, s.Len())
	}
	ok, _ := s.FindByID("ok")
	if string(ok.Extra["unknown"]) != `"kept"` {
		t.Errorf("unknown field should survive the merge, extra = %v", ok.Extra)
	}
}

func TestStore_MergeKeepsMistypedFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	payload := `{"plans":[
		{"id":"f","ts":1.7e12},
		{"id":"g","tags":"coast"},
		{"id":"h","name":5},
		{"id":"k","ts":1,"color":"blue"}
	]}`
	n, err := s.Import(ctx, []byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || s.Len() != 4 {
		t.Fatalf("added = %d, len = %d, want 4", n, s.Len())
	}

	data, err := s.Export(s.now()).Encode()
	if err != nil {
		t.Fatal(err)
	}
	var snap struct {
		Plans []map[string]json.RawMessage `json:"plans"`
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	want := []struct{ key, raw string }{
		{"ts", `1.7e12`},
		{"tags", `"coast"`},
		{"name", `5`},
		{"color", `"blue"`},
	}
	for i, w := range want {
		if got := string(snap.Plans[i][w.key]); got != w.raw {
			t.Errorf("plan %d %s = %s, want %s", i, w.key, got, w.raw)
		}
	}

	f, _ := s.FindByID("f")
	if f.TS != 1_700_000_000_000 {
		t.Errorf("float timestamp should still sort, TS = %d", f.TS)
	}
}

func TestStore_MergeAcceptsContentDuplicates(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a", Name: "Harbor", Style: StyleGrid})

	payload := `{"plans":[
		{"id":"b","name":"Harbor","style":"grid"},
		{"id":"c","name":"Harbor","style":"grid"}
	]}`
	n, err := s.Import(ctx, []byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || s.Len() != 3 {
		t.Errorf("records with new ids must be added regardless of content: added = %d, len = %d", n, s.Len())
	}
}

func TestStore_MergeDuplicateIDsInBatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	n, err := s.Import(ctx, []byte(`{"plans":[{"id":"x","name":"first"},{"id":"x","name":"second"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("added = %d, want 1", n)
	}
	x, _ := s.FindByID("x")
	if x.Name != "first" {
		t.Errorf("first occurrence should win, got %q", x.Name)
	}
}

func TestStore_MergeStoresAsGiven(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.Import(ctx, []byte(`{"plans":[{"id":"raw","name":"  spaced  ","style":"hexagonal","ts":3}]}`))

	p, _ := s.FindByID("raw")
	if p.Name != "  spaced  " || p.Style != "hexagonal" || p.TS != 3 {
		t.Errorf("imported plan was normalized: %+v", p)
	}
}

func TestStore_ImportInvalidLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a"})
	writes := slot.Writes()

	_, err := s.Import(ctx, []byte(`{"items":[]}`))
	if !errors.Is(err, ErrInvalidImportFormat) {
		t.Errorf("err = %v, want ErrInvalidImportFormat", err)
	}
	if s.Len() != 1 || slot.Writes() != writes {
		t.Error("invalid import must not touch the store")
	}
}

func TestStore_MergeFlushFailure(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	slot.FailWrites = errDiskFull

	n, err := s.Merge(ctx, []json.RawMessage{json.RawMessage(`{"id":"a"}`)})
	if !errors.Is(err, errDiskFull) || n != 0 {
		t.Errorf("n = %d, err = %v", n, err)
	}
	if s.Len() != 0 {
		t.Error("failed merge should leave the store empty")
	}
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestStore(t)
	src.Upsert(ctx, Plan{ID: "a", Name: "A", Tags: []string{"t"}, Services: map[string]bool{"Power": true}})
	src.Upsert(ctx, Plan{ID: "b", Name: "B"})

	data, err := src.Export(src.now()).Encode()
	if err != nil {
		t.Fatal(err)
	}

	dst, _ := newTestStore(t)
	n, err := dst.Import(ctx, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("added = %d, want 2", n)
	}

	n, err = dst.Import(ctx, data)
	if err != nil || n != 0 {
		t.Errorf("re-import added %d (err %v), want 0", n, err)
	}
}
