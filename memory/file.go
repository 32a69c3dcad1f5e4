package memory

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/mothercore/mothercore/core"
)

// recordFileName is the single append-only log inside the memory directory.
const recordFileName = "memory.jsonl"

// DefaultMemoryDir returns the user-profile-relative memory location,
// ~/.mothercore, falling back to a relative .mothercore directory when the
// home directory cannot be resolved.
func DefaultMemoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mothercore"
	}
	return filepath.Join(home, ".mothercore")
}

// FileStore persists records as one JSON document per line in a per-user
// directory. The directory and file are created lazily on first write, so an
// absent or empty directory is always safe. Writes are serialized by a
// mutex; reads re-scan the file so recall always reflects the current store
// state.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	path string
}

var _ core.RecordStore = (*FileStore)(nil)

// NewFileStore constructs a store rooted at dir. An empty dir selects
// DefaultMemoryDir. Nothing touches the filesystem until the first Record.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultMemoryDir()
	}
	return &FileStore{dir: dir, path: filepath.Join(dir, recordFileName)}
}

// Dir returns the directory records are written to.
func (s *FileStore) Dir() string { return s.dir }

// Record appends one JSONL record, creating the directory on first use.
// Failures wrap as *core.PersistenceUnavailableError.
func (s *FileStore) Record(rec core.MemoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	defer f.Close()

	line, err := json.Marshal(stamp(rec))
	if err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return &core.PersistenceUnavailableError{Op: "record", Err: err}
	}
	return nil
}

// Recall scans the log, skipping malformed lines, and returns matches most
// recent first. A missing file yields an empty result, not an error.
func (s *FileStore) Recall(query string, limit int) ([]core.MemoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &core.PersistenceUnavailableError{Op: "recall", Err: err}
	}
	defer f.Close()

	var all []core.MemoryRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var rec core.MemoryRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		all = append(all, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &core.PersistenceUnavailableError{Op: "recall", Err: err}
	}

	var out []core.MemoryRecord
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if matches(all[i], query) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
