package core

import "fmt"

// InvalidInputError reports malformed or empty input to a risk model or to
// the Act / ProposePlan entry points. It is always recovered locally and
// surfaces to callers as a clarification reply, never as a crash.
type InvalidInputError struct {
	Reason string `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// UnknownSkillError reports a dispatch against a name with no registered
// capability. The orchestrator recovers it with a default reply; it must
// never propagate as fatal.
type UnknownSkillError struct {
	Skill string `json:"skill"`
}

func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("no skill registered under %q", e.Skill)
}

// PersistenceUnavailableError wraps a failure of the memory persistence
// collaborator. Interactions still complete when it occurs; the skipped
// write is flagged in the reply instead.
type PersistenceUnavailableError struct {
	Op  string // "record" or "recall"
	Err error
}

func (e *PersistenceUnavailableError) Error() string {
	return fmt.Sprintf("memory persistence unavailable during %s: %v", e.Op, e.Err)
}

func (e *PersistenceUnavailableError) Unwrap() error { return e.Err }

// CorrigibilityViolation reports that the controller failed to honor an
// external state request. Observing one indicates a programming defect, not
// user-triggerable behavior.
type CorrigibilityViolation struct {
	Requested CorrigibilityState
	Actual    CorrigibilityState
}

func (e *CorrigibilityViolation) Error() string {
	return fmt.Sprintf("corrigibility violation: requested %s, controller reports %s", e.Requested, e.Actual)
}
