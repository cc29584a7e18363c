package util

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// newRandom is swapped in tests to simulate an unavailable random source.
var newRandom = uuid.NewRandom

// NewID returns a random (v4) UUID string for a new plan record.
// If the secure random source fails, it falls back to the unix time in
// milliseconds followed by a random fraction. The fallback is best effort:
// two calls in the same millisecond only differ by the fraction.
func NewID() string {
	id, err := newRandom()
	if err == nil {
		return id.String()
	}
	return fallbackID(time.Now())
}

func fallbackID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + strconv.FormatFloat(rand.Float64(), 'f', -1, 64)
}
