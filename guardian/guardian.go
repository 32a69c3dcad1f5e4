// Package guardian implements the constitutional review gate. A Guardian
// holds an immutable, priority-ordered list of principles and evaluates every
// proposed action against them and against the risk score thresholds. It is
// the central safety-critical decision point of the core.
package guardian

import (
	"sort"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/logging"
)

// Outcome is the tagged result of evaluating one principle against one
// proposed action.
type Outcome int

const (
	// Abstain means the principle has nothing to say about this action.
	Abstain Outcome = iota
	// Oversight means the principle demands external confirmation.
	Oversight
	// Veto means the principle forbids the action outright.
	Veto
)

// RuleFunc evaluates a principle against an assessment and the proposed
// action text. Rules must be pure and monotone in the risk score: a higher
// score may only produce an equal or more severe outcome.
type RuleFunc func(assessment core.RiskAssessment, action string) Outcome

// Article binds a principle statement to the rule that enforces it.
type Article struct {
	Principle core.Principle
	Rule      RuleFunc
}

// Options configures a Guardian.
type Options struct {
	// Articles is the ordered constitution. Defaults to DefaultConstitution.
	Articles []Article
	// OversightThreshold forces at least require_oversight when the risk
	// score reaches it, independent of principle outcomes.
	OversightThreshold float64
	// BlockThreshold forces block when the risk score reaches it.
	BlockThreshold float64
	// Logger defaults to NoOp.
	Logger logging.Logger
}

// Guardian reviews proposed actions. It is a pure function of its inputs
// plus this immutable configuration and is safe for concurrent use.
type Guardian struct {
	articles           []Article
	oversightThreshold float64
	blockThreshold     float64
	logger             logging.Logger
}

// New constructs a Guardian. Articles are ordered by ascending priority;
// ties keep declaration order (first wins).
func New(optFns ...func(o *Options)) *Guardian {
	opts := Options{
		Articles:           DefaultConstitution(),
		OversightThreshold: 0.6,
		BlockThreshold:     0.9,
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	articles := make([]Article, len(opts.Articles))
	copy(articles, opts.Articles)
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Principle.Priority < articles[j].Principle.Priority
	})

	return &Guardian{
		articles:           articles,
		oversightThreshold: opts.OversightThreshold,
		blockThreshold:     opts.BlockThreshold,
		logger:             opts.Logger,
	}
}

// Principles returns the ordered constitution (copies of the principle data).
func (g *Guardian) Principles() []core.Principle {
	out := make([]core.Principle, len(g.articles))
	for i, a := range g.articles {
		out[i] = a.Principle
	}
	return out
}

// Review evaluates a proposed action. The principle fold and the score
// thresholds are two independent, additive gates; the more restrictive
// outcome always wins. Increasing the risk score can never relax the verdict.
func (g *Guardian) Review(assessment core.RiskAssessment, proposedAction string) core.GuardianVerdict {
	decision := core.DecisionAllow
	var triggered []string

	for _, a := range g.articles {
		if a.Rule == nil {
			continue
		}
		switch a.Rule(assessment, proposedAction) {
		case Veto:
			decision = decision.Escalate(core.DecisionBlock)
			triggered = append(triggered, a.Principle.ID)
		case Oversight:
			decision = decision.Escalate(core.DecisionRequireOversight)
			triggered = append(triggered, a.Principle.ID)
		}
	}

	// Threshold gate, independent of the principle outcomes.
	if assessment.Score >= g.blockThreshold {
		decision = decision.Escalate(core.DecisionBlock)
	} else if assessment.Score >= g.oversightThreshold {
		decision = decision.Escalate(core.DecisionRequireOversight)
	}

	logging.LogVerdict(g.logger, proposedAction, string(decision), assessment.Score, triggered)

	return core.GuardianVerdict{
		Decision:            decision,
		TriggeredPrinciples: triggered,
		Assessment:          assessment,
	}
}
