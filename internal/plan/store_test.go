package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/pablasso/planbook/internal/logging"
	"github.com/pablasso/planbook/internal/storage"
)

var errDiskFull = errors.New("disk full")

// newTestStore returns a store over a fresh memory slot with a fixed clock
// and sequential ids ("id-1", "id-2", ...).
func newTestStore(t *testing.T) (*Store, *storage.MemorySlot) {
	t.Helper()
	slot := storage.NewMemorySlot()
	s := NewStore(slot, logging.Discard())
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s.now = func() time.Time { return time.UnixMilli(5000) }
	return s, slot
}

func TestStore_LoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "not json"},
		{"wrong shape", `{"plans": "nope"}`},
		{"array", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, slot := newTestStore(t)
			if err := slot.Write(ctx, []byte(tt.data)); err != nil {
				t.Fatal(err)
			}
			if err := s.Load(ctx); err != nil {
				t.Fatalf("Load should recover, got %v", err)
			}
			if s.Len() != 0 {
				t.Errorf("expected empty store, got %d", s.Len())
			}
		})
	}
}

func TestStore_LoadDropsInvalid(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	data := `{"plans":[{"id":"a","name":"A"},{"id":"","name":"blank"},{"id":"a","name":"again"},{"id":"b","name":"B"}]}`
	slot.Write(ctx, []byte(data))

	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	plans := s.List()
	if len(plans) != 2 || plans[0].Name != "A" || plans[1].ID != "b" {
		t.Errorf("unexpected plans after load: %+v", plans)
	}
}

func TestStore_UpsertAppendsAndReplaces(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)

	if _, err := s.Upsert(ctx, Plan{ID: "a", Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Upsert(ctx, Plan{ID: "b", Name: "B"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Upsert(ctx, Plan{ID: "a", Name: "A2"}); err != nil {
		t.Fatal(err)
	}

	plans := s.List()
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if plans[0].ID != "a" || plans[0].Name != "A2" {
		t.Errorf("replace should keep position: %+v", plans)
	}
	if slot.Writes() != 3 {
		t.Errorf("expected a flush per mutation, got %d writes", slot.Writes())
	}
}

func TestStore_UpsertAssignsID(t *testing.T) {
	s, _ := newTestStore(t)
	p, err := s.Upsert(context.Background(), Plan{Name: "no id"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "id-1" {
		t.Errorf("expected generated id, got %q", p.ID)
	}
}

func TestStore_UpsertStoresCopy(t *testing.T) {
	s, _ := newTestStore(t)
	p := Plan{ID: "a", Tags: []string{"x"}}
	s.Upsert(context.Background(), p)
	p.Tags[0] = "mutated"

	got, _ := s.FindByID("a")
	if got.Tags[0] != "x" {
		t.Error("store should not share caller memory")
	}
}

func TestStore_FlushFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a", Name: "A"})
	before := s.List()

	slot.FailWrites = errDiskFull

	if _, err := s.Upsert(ctx, Plan{ID: "b"}); !errors.Is(err, errDiskFull) {
		t.Errorf("Upsert err = %v, want disk full", err)
	}
	if _, err := s.Upsert(ctx, Plan{ID: "a", Name: "changed"}); err == nil {
		t.Error("expected error replacing")
	}
	if err := s.Delete(ctx, "a"); err == nil {
		t.Error("expected error deleting")
	}
	if _, err := s.Duplicate(ctx, "a"); err == nil {
		t.Error("expected error duplicating")
	}

	if got := s.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("state changed after failed flush: %+v", got)
	}
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a", Name: "A", Tags: []string{"t"}, Services: map[string]bool{"Power": true}})
	s.Upsert(ctx, Plan{ID: "b", Name: "B"})

	reloaded := NewStore(slot, logging.Discard())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(reloaded.List(), s.List()) {
		t.Errorf("reloaded = %+v, want %+v", reloaded.List(), s.List())
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a"})
	s.Upsert(ctx, Plan{ID: "b"})

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.FindByID("a"); ok {
		t.Error("a should be gone")
	}

	writes := slot.Writes()
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("deleting unknown id should succeed, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("unknown delete changed the store: %d", s.Len())
	}
	if slot.Writes() != writes+1 {
		t.Error("delete should still flush")
	}
}

func TestStore_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Upsert(ctx, Plan{
		ID:       "orig",
		TS:       1,
		Name:     "Harbor",
		Tags:     []string{"coast"},
		Services: map[string]bool{"Water": true},
	})

	dup, err := s.Duplicate(ctx, "orig")
	if err != nil {
		t.Fatal(err)
	}
	if dup.ID == "orig" || dup.ID == "" {
		t.Errorf("duplicate needs a fresh id, got %q", dup.ID)
	}
	if dup.Name != "Harbor (copy)" {
		t.Errorf("Name = %q", dup.Name)
	}
	if dup.TS != 5000 {
		t.Errorf("TS = %d, want now", dup.TS)
	}

	dup.Tags[0] = "changed"
	orig, _ := s.FindByID("orig")
	if orig.Tags[0] != "coast" {
		t.Error("duplicate shares tags with the original")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 plans, got %d", s.Len())
	}
}

func TestStore_DuplicateUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Duplicate(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s, slot := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "a"})

	if err := s.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Error("store should be empty")
	}
	if _, err := slot.Read(ctx); !errors.Is(err, storage.ErrEmpty) {
		t.Errorf("slot should be cleared, read err = %v", err)
	}

	reloaded := NewStore(slot, logging.Discard())
	reloaded.Load(ctx)
	if reloaded.Len() != 0 {
		t.Error("reload after reset should be empty")
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	s.Upsert(ctx, Plan{ID: "old", TS: 1})
	s.Upsert(ctx, Plan{ID: "tie1", TS: 5})
	s.Upsert(ctx, Plan{ID: "new", TS: 9})
	s.Upsert(ctx, Plan{ID: "tie2", TS: 5})

	var ids []string
	for _, p := range s.ListNewestFirst() {
		ids = append(ids, p.ID)
	}
	want := []string{"new", "tie1", "tie2", "old"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}

	// collection order is untouched
	if s.List()[0].ID != "old" {
		t.Error("ListNewestFirst should not reorder the collection")
	}
}

// gatedSlot blocks every Write until release is closed, after signalling
// entered.
type gatedSlot struct {
	*storage.MemorySlot
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSlot) Write(ctx context.Context, data []byte) error {
	g.entered <- struct{}{}
	<-g.release
	return g.MemorySlot.Write(ctx, data)
}

func TestStore_ReadsDoNotWaitForFlush(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemorySlot()
	if err := mem.Write(ctx, []byte(`{"plans":[{"id":"a","name":"A"}]}`)); err != nil {
		t.Fatal(err)
	}
	slot := &gatedSlot{MemorySlot: mem, entered: make(chan struct{}), release: make(chan struct{})}
	s := NewStore(slot, logging.Discard())
	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Upsert(ctx, Plan{ID: "b", Name: "B"})
		done <- err
	}()
	<-slot.entered

	read := make(chan int, 1)
	go func() {
		if _, ok := s.FindByID("a"); !ok {
			read <- -1
			return
		}
		read <- len(s.ListNewestFirst()) + s.Len()
	}()

	select {
	case got := <-read:
		if got != 2 {
			t.Errorf("reads during a flush should see the committed collection, got %d", got)
		}
	case <-time.After(2 * time.Second):
		close(slot.release)
		t.Fatal("reads blocked behind a flush")
	}

	close(slot.release)
	if err := <-done; err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 plans after the flush, got %d", s.Len())
	}
}

func TestStore_DuplicateDropsVerbatimIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	if _, err := s.Import(ctx, []byte(`{"plans":[{"id":"a","name":5,"ts":1.7e12,"color":"blue"}]}`)); err != nil {
		t.Fatal(err)
	}

	dup, err := s.Duplicate(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(dup)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["id"] != dup.ID || got["name"] != "Plan (copy)" || got["ts"] != float64(5000) {
		t.Errorf("copy should carry its own id, name and ts: %s", data)
	}
	if got["color"] != "blue" {
		t.Errorf("copy should keep extra fields: %s", data)
	}
}
