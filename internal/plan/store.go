package plan

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/pablasso/planbook/internal/storage"
	"github.com/pablasso/planbook/internal/util"
)

// Slot is the durable key-value slot the store persists its collection to.
// Read returns storage.ErrEmpty when nothing has been written yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// persistedState is the JSON document kept in the slot.
type persistedState struct {
	Plans []Plan `json:"plans"`
}

// Store owns the ordered collection of plans and flushes it to a Slot after
// every mutation. A mutation that fails to flush leaves the collection as it
// was before the call. Reads never wait for a flush in progress.
type Store struct {
	// writeMu serializes mutations across their flush. mu guards plans and is
	// only held for the swap, so readers see the last committed collection.
	writeMu sync.Mutex
	mu      sync.RWMutex
	plans   []Plan

	slot Slot
	log  *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewStore creates an empty store backed by slot. Call Load to rehydrate it.
func NewStore(slot Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		slot:  slot,
		log:   logger,
		now:   time.Now,
		newID: util.NewID,
	}
}

// Load replaces the in-memory collection with the slot's content.
// Absent or undecodable content yields an empty collection; only errors
// reading the slot itself are returned.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.slot.Read(ctx)
	if err != nil && !errors.Is(err, storage.ErrEmpty) {
		return fmt.Errorf("failed to read plans: %w", err)
	}

	plans, decodeErr := decodeState(data)
	if decodeErr != nil {
		s.log.Warn("discarding persisted plans", "error", decodeErr)
	}

	plans = s.dropInvalid(plans)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.swap(plans)

	s.log.Debug("loaded plans", "count", len(plans))
	return nil
}

func decodeState(data []byte) ([]Plan, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	return st.Plans, nil
}

// dropInvalid removes records without an id and repeated ids so the loaded
// collection satisfies the identity invariant.
func (s *Store) dropInvalid(plans []Plan) []Plan {
	seen := make(map[string]bool, len(plans))
	kept := plans[:0]
	for _, p := range plans {
		if p.ID == "" || seen[p.ID] {
			s.log.Warn("skipping persisted plan", "id", p.ID, "name", p.Name)
			continue
		}
		seen[p.ID] = true
		kept = append(kept, p)
	}
	return kept
}

// Flush writes the current collection to the slot.
func (s *Store) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.write(ctx, s.plans)
}

func (s *Store) write(ctx context.Context, plans []Plan) error {
	if plans == nil {
		plans = []Plan{}
	}
	data, err := json.Marshal(persistedState{Plans: plans})
	if err != nil {
		return fmt.Errorf("failed to marshal plans: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write plans: %w", err)
	}
	return nil
}

// commit flushes next and only then makes it the live collection.
// Callers must hold s.writeMu, which also lets them read s.plans unlocked.
func (s *Store) commit(ctx context.Context, next []Plan) error {
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.swap(next)
	return nil
}

func (s *Store) swap(next []Plan) {
	s.mu.Lock()
	s.plans = next
	s.mu.Unlock()
}

// Upsert replaces the plan with p's id in place, or appends p when no such
// plan exists. A plan without an id is given a fresh one.
func (s *Store) Upsert(ctx context.Context, p Plan) (Plan, error) {
	p = p.Clone()
	if p.ID == "" {
		p.ID = s.newID()
		p.dropExtra("id")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := slices.Clone(s.plans)
	if i := indexOf(next, p.ID); i >= 0 {
		next[i] = p
	} else {
		next = append(next, p)
	}
	if err := s.commit(ctx, next); err != nil {
		return Plan{}, err
	}
	return p.Clone(), nil
}

// Delete removes the plan with the given id. Deleting an unknown id is not an
// error and leaves the collection unchanged.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := slices.Clone(s.plans)
	if i := indexOf(next, id); i >= 0 {
		next = slices.Delete(next, i, i+1)
	}
	return s.commit(ctx, next)
}

// FindByID returns a copy of the plan with the given id.
func (s *Store) FindByID(id string) (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.plans, id); i >= 0 {
		return s.plans[i].Clone(), true
	}
	return Plan{}, false
}

// Duplicate stores a deep copy of the plan with the given id under a new id,
// with a fresh timestamp and " (copy)" appended to its name.
func (s *Store) Duplicate(ctx context.Context, id string) (Plan, error) {
	orig, ok := s.FindByID(id)
	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	dup := orig.Clone()
	dup.ID = s.newID()
	dup.TS = s.now().UnixMilli()
	dup.Name = copyName(orig.Name)
	dup.dropExtra("id", "ts", "name")
	return s.Upsert(ctx, dup)
}

// Reset clears the slot and empties the collection.
func (s *Store) Reset(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear plans: %w", err)
	}
	s.swap(nil)
	return nil
}

// List returns copies of all plans in collection order.
func (s *Store) List() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, len(s.plans))
	for i, p := range s.plans {
		out[i] = p.Clone()
	}
	return out
}

// ListNewestFirst returns copies of all plans ordered by timestamp, newest
// first. Plans with equal timestamps keep collection order.
func (s *Store) ListNewestFirst() []Plan {
	plans := s.List()
	slices.SortStableFunc(plans, func(a, b Plan) int {
		return cmp.Compare(b.TS, a.TS)
	})
	return plans
}

// Len returns the number of stored plans.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

func indexOf(plans []Plan, id string) int {
	return slices.IndexFunc(plans, func(p Plan) bool { return p.ID == id })
}
