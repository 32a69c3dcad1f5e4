package memory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/mothercore/mothercore/core"
)

// SQLiteStore is a durable RecordStore backed by a single-file SQLite
// database. Rows are never updated or deleted, so rowid order is insertion
// order and recall reads it in reverse for most-recent-first results.
type SQLiteStore struct {
	mu      sync.Mutex
	db      *sql.DB
	entropy *rand.Rand
}

var _ core.RecordStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a database at dbPath, creating parent
// directories as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id          TEXT PRIMARY KEY,
		ts          TEXT NOT NULL,
		input_text  TEXT NOT NULL,
		intent      TEXT NOT NULL,
		assessment  TEXT NOT NULL,
		verdict     TEXT NOT NULL,
		response    TEXT,
		plan_id     TEXT,
		state       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_ts ON records(ts DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Record inserts one row. The append-only contract holds: nothing ever
// updates or deletes rows. Failures wrap as
// *core.PersistenceUnavailableError.
func (s *SQLiteStore) Record(rec core.MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ULID ids keep rows lexically sortable by creation time; caller-supplied
	// ids are preserved as-is and insertion order still governs recall.
	if rec.ID == "" {
		rec.ID = s.newID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	assessment, err := json.Marshal(rec.Assessment)
	if err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	verdict, err := json.Marshal(rec.Verdict)
	if err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}

	_, err = s.db.Exec(
		`INSERT INTO records (id, ts, input_text, intent, assessment, verdict, response, plan_id, state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.Format(time.RFC3339Nano), rec.InputText, string(rec.IntentCategory),
		string(assessment), string(verdict), rec.ResponseText, rec.PlanID, string(rec.CorrigibilityState),
	)
	if err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	return nil
}

// Recall scans rows newest first and applies the shared match predicate.
func (s *SQLiteStore) Recall(query string, limit int) ([]core.MemoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, ts, input_text, intent, assessment, verdict, response, plan_id, state
		FROM records ORDER BY rowid DESC`)
	if err != nil {
		return nil, &core.PersistenceUnavailableError{Op: "recall", Err: err}
	}
	defer rows.Close()

	var out []core.MemoryRecord
	for rows.Next() {
		if limit > 0 && len(out) >= limit {
			break
		}
		var (
			rec                 core.MemoryRecord
			ts, intentCat       string
			assessment, verdict string
			state               string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.InputText, &intentCat, &assessment, &verdict, &rec.ResponseText, &rec.PlanID, &state); err != nil {
			return nil, &core.PersistenceUnavailableError{Op: "recall", Err: err}
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		rec.IntentCategory = core.IntentCategory(intentCat)
		rec.CorrigibilityState = core.CorrigibilityState(state)
		if err := json.Unmarshal([]byte(assessment), &rec.Assessment); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(verdict), &rec.Verdict); err != nil {
			continue
		}
		if matches(rec, query) {
			out = append(out, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceUnavailableError{Op: "recall", Err: err}
	}
	return out, nil
}
