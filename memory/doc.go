// Package memory provides RecordStore implementations for the append-only
// interaction log:
//
//   - InMemoryStore: volatile, for tests and ephemeral cores
//   - FileStore: JSONL records in a per-user directory, created lazily
//   - SQLiteStore: durable single-file database with ULID record identifiers
//
// All stores order recall most-recent-first and treat backend failures as
// *core.PersistenceUnavailableError so the orchestrator can finish the
// interaction without its memory write.
package memory
