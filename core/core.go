package core

import "github.com/google/uuid"

// NewID generates a unique identifier for records, plans and sessions.
func NewID() string { return uuid.NewString() }

// Clamp bounds v to the [lo, hi] interval. Scores and confidences throughout
// the core live on [0, 1]; keeping the helper here avoids per-package copies.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
