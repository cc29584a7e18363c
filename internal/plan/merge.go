package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
)

// importPayload is the accepted import shape. Fields other than plans are
// ignored.
type importPayload struct {
	Plans *[]json.RawMessage `json:"plans"`
}

// ParseImport extracts the plans array from an import payload. Anything
// other than a JSON object with a plans array is ErrInvalidImportFormat.
func ParseImport(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidImportFormat)
	}

	var payload importPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImportFormat, err)
	}
	if payload.Plans == nil {
		return nil, fmt.Errorf("%w: missing plans array", ErrInvalidImportFormat)
	}
	return *payload.Plans, nil
}

// decodeCandidate returns the plan carried by raw, or false when raw is not
// an object with a non-empty string id. No other field is checked; values of
// an unexpected type end up verbatim in Plan.Extra.
func decodeCandidate(raw json.RawMessage) (Plan, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Plan{}, false
	}
	var p Plan
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return Plan{}, false
	}
	return p, p.ID != ""
}

// Merge appends every incoming plan whose id is not already taken and returns
// how many were added. Incoming plans are stored as given, without
// normalization. Once a plan is accepted its id is taken, so later entries of
// the same batch carrying that id are skipped. The store is flushed once.
func (s *Store) Merge(ctx context.Context, incoming []json.RawMessage) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	taken := make(map[string]bool, len(s.plans))
	for _, p := range s.plans {
		taken[p.ID] = true
	}

	next := slices.Clone(s.plans)
	added := 0
	for _, raw := range incoming {
		p, ok := decodeCandidate(raw)
		if !ok || taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		next = append(next, p)
		added++
	}

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	s.log.Info("merged plans", "received", len(incoming), "added", added)
	return added, nil
}

// Import parses an import payload and merges its plans into the store.
// An invalid payload leaves the store untouched.
func (s *Store) Import(ctx context.Context, data []byte) (int, error) {
	incoming, err := ParseImport(data)
	if err != nil {
		return 0, err
	}
	return s.Merge(ctx, incoming)
}
