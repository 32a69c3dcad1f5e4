package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/mothercore/mothercore/core"
)

// matches implements the shared recall predicate: an empty query matches
// everything, otherwise any query token appearing in the record's input or
// response text (case insensitive) is a hit. All stores share this predicate
// so swapping backends never changes recall semantics.
func matches(rec core.MemoryRecord, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	haystack := strings.ToLower(rec.InputText + " " + rec.ResponseText)
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}

// stamp fills in missing ID / timestamp fields so every persisted record is
// self-describing.
func stamp(rec core.MemoryRecord) core.MemoryRecord {
	if rec.ID == "" {
		rec.ID = core.NewID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return rec
}

// InMemoryStore is a volatile RecordStore keeping records in a process-local
// slice. It is safe for concurrent access and best suited for tests or
// ephemeral cores.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []core.MemoryRecord
}

var _ core.RecordStore = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory record store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Record appends a record. It never fails.
func (s *InMemoryStore) Record(rec core.MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, stamp(rec))
	return nil
}

// Recall returns matching records, most recent first. Repeated calls with no
// intervening Record return identical results.
func (s *InMemoryStore) Recall(query string, limit int) ([]core.MemoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.MemoryRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if matches(s.records[i], query) {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

// Len reports the number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
