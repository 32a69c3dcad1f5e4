package core

// Decision is the outcome of a guardian review. The zero value is not valid;
// verdicts are always produced through the guardian.
type Decision string

// Guardian decisions, least to most restrictive.
const (
	DecisionAllow            Decision = "allow"
	DecisionRequireOversight Decision = "require_oversight"
	DecisionBlock            Decision = "block"
)

// restrictiveness ranks decisions so the "most restrictive wins" rule and the
// monotonicity property can be expressed as plain integer comparisons.
func (d Decision) restrictiveness() int {
	switch d {
	case DecisionBlock:
		return 2
	case DecisionRequireOversight:
		return 1
	default:
		return 0
	}
}

// MoreRestrictiveThan reports whether d outranks other (block >
// require_oversight > allow).
func (d Decision) MoreRestrictiveThan(other Decision) bool {
	return d.restrictiveness() > other.restrictiveness()
}

// Escalate returns the more restrictive of d and other. Escalation never
// relaxes a decision, which is what keeps guardian verdicts monotone in risk.
func (d Decision) Escalate(other Decision) Decision {
	if other.MoreRestrictiveThan(d) {
		return other
	}
	return d
}

// Principle is a single constitutional statement. The ordered set of
// principles is loaded once at construction and is immutable for the process
// lifetime. Lower priority values take precedence.
type Principle struct {
	ID        string `json:"id" yaml:"id"`
	Statement string `json:"statement" yaml:"statement"`
	Priority  int    `json:"priority" yaml:"priority"`
}

// GuardianVerdict is the result of reviewing one proposed action. It embeds
// the assessment it was derived from and lists the principles that fired, in
// precedence order. Verdicts are not persisted standalone; they travel inside
// the MemoryRecord of the interaction that produced them.
type GuardianVerdict struct {
	Decision            Decision       `json:"decision"`
	TriggeredPrinciples []string       `json:"triggered_principles,omitempty"`
	Assessment          RiskAssessment `json:"assessment"`
}
