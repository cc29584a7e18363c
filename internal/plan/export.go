package plan

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the version tag written into every export.
const SnapshotVersion = 1

// isoMillis matches the ISO-8601 form with millisecond precision, e.g.
// 2024-05-01T09:30:00.000Z.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is a versioned, timestamped copy of the whole collection. Its JSON
// form is also the accepted import payload.
type Snapshot struct {
	Version    int    `json:"version"`
	ExportedAt string `json:"exportedAt"`
	Plans      []Plan `json:"plans"`
}

// Export returns a snapshot of the current collection taken at now.
func (s *Store) Export(now time.Time) Snapshot {
	plans := s.List()
	return Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now.UTC().Format(isoMillis),
		Plans:      plans,
	}
}

// Encode renders the snapshot as 2-space indented JSON.
func (snap Snapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}
