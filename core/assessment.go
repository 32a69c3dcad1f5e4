package core

import "sort"

// Well-known risk flags emitted by the default heuristic model. Custom models
// may add their own; the guardian only ever inspects flags by name.
const (
	FlagSelfHarm     = "self-harm"
	FlagHarmToOthers = "harm-to-others"
	FlagIrreversible = "irreversible-action"
	FlagDeception    = "deception-risk"
)

// RiskAssessment is the immutable output of a RiskModel evaluation. Flags are
// set-valued: duplicate triggers collapse and ordering is canonical (sorted)
// so identical inputs yield byte-identical assessments.
type RiskAssessment struct {
	Score     float64  `json:"score"` // [0, 1]
	Flags     []string `json:"flags,omitempty"`
	Rationale string   `json:"rationale"`
}

// NewRiskAssessment builds an assessment with the score clamped to [0, 1] and
// flags deduplicated and sorted.
func NewRiskAssessment(score float64, flags []string, rationale string) RiskAssessment {
	seen := make(map[string]struct{}, len(flags))
	uniq := make([]string, 0, len(flags))
	for _, f := range flags {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		uniq = append(uniq, f)
	}
	sort.Strings(uniq)
	return RiskAssessment{Score: Clamp(score, 0, 1), Flags: uniq, Rationale: rationale}
}

// HasFlag reports whether the assessment carries the named flag.
func (a RiskAssessment) HasFlag(name string) bool {
	for _, f := range a.Flags {
		if f == name {
			return true
		}
	}
	return false
}

// RiskModel scores a piece of text for potential harm. Implementations must
// be deterministic for identical input (no hidden randomness) and must handle
// arbitrary input length gracefully. Assess fails only on empty or otherwise
// non-textual input, with *InvalidInputError.
type RiskModel interface {
	Assess(text string) (RiskAssessment, error)
}
