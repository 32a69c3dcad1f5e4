package core

import "time"

// CorrigibilityState is the operational state of the core. Exactly one live
// instance exists per MotherCore; transitions happen only via explicit
// external calls and Shutdown is terminal.
type CorrigibilityState string

// Corrigibility states.
const (
	StateRunning  CorrigibilityState = "running"
	StatePaused   CorrigibilityState = "paused"
	StateShutdown CorrigibilityState = "shutdown"
)

// Valid reports whether s is one of the three known states.
func (s CorrigibilityState) Valid() bool {
	switch s {
	case StateRunning, StatePaused, StateShutdown:
		return true
	}
	return false
}

// MemoryRecord is one self-describing entry of the append-only interaction
// log. Once written it is never mutated or deleted by the core; retention and
// pruning belong to external collaborators.
type MemoryRecord struct {
	ID                 string             `json:"id"`
	Timestamp          time.Time          `json:"timestamp"`
	InputText          string             `json:"input_text"`
	IntentCategory     IntentCategory     `json:"intent_category"`
	Assessment         RiskAssessment     `json:"assessment"`
	Verdict            GuardianVerdict    `json:"verdict"`
	ResponseText       string             `json:"response_text,omitempty"`
	PlanID             string             `json:"plan_id,omitempty"`
	CorrigibilityState CorrigibilityState `json:"corrigibility_state"`
}

// RecordStore persists MemoryRecords and recalls them by query. Record is
// append-only and fails with *PersistenceUnavailableError when the backing
// collaborator is unreachable; that failure is non-fatal to the interaction.
// Recall returns matches ordered most-recent-first and is restartable:
// repeated calls with the same query and no intervening Record return the
// same results. A limit <= 0 means no limit.
type RecordStore interface {
	Record(rec MemoryRecord) error
	Recall(query string, limit int) ([]MemoryRecord, error)
}

// Reply is the structured response returned by Act. Verdict carries the
// guardian outcome for the interaction; MemoryDropped flags that the record
// write failed and the interaction completed without being logged.
type Reply struct {
	Text                 string             `json:"text"`
	Verdict              GuardianVerdict    `json:"verdict"`
	Uncertainty          float64            `json:"uncertainty"`
	UncertaintyDisclosed bool               `json:"uncertainty_disclosed"`
	SkillsUsed           []string           `json:"skills_used,omitempty"`
	State                CorrigibilityState `json:"state"`
	MemoryDropped        bool               `json:"memory_dropped,omitempty"`
}
