// Package planner decomposes goals into ordered plans of
// reversible-preferring steps. The decomposition strategy is pluggable; the
// planner itself owns the two design-critical guarantees: reversible steps
// precede irreversible ones unless a declared dependency forces otherwise,
// and every irreversible step passes guardian review before it is finalized.
package planner

import (
	"sort"
	"time"

	"github.com/mothercore/mothercore/core"
	"github.com/mothercore/mothercore/guardian"
	"github.com/mothercore/mothercore/logging"
)

// Step is a draft step produced by a Strategy, before ordering and review.
// DependsOn holds indices into the strategy's draft slice; a declared
// dependency is the only way an irreversible step may precede a reversible
// one in the final plan.
type Step struct {
	Description string
	Reversible  bool
	DependsOn   []int
}

// Strategy produces draft steps for a goal and offers reversible substitutes
// for steps the guardian blocks.
type Strategy interface {
	// Decompose breaks a goal into draft steps.
	Decompose(goal string) ([]Step, error)

	// Substitute proposes a reversible alternative for a blocked step. The
	// second return is false when the strategy has none, in which case the
	// planner omits the step and marks the plan incomplete.
	Substitute(step Step) (Step, bool)
}

// Options configures a Planner.
type Options struct {
	// Strategy defaults to the built-in template strategy.
	Strategy Strategy
	// Logger defaults to NoOp.
	Logger logging.Logger
}

// Planner synthesizes plans. It is stateless per call and safe for
// concurrent use.
type Planner struct {
	strategy Strategy
	model    core.RiskModel
	guard    *guardian.Guardian
	logger   logging.Logger
}

// New constructs a Planner reviewing irreversible steps through guard using
// assessments from model.
func New(model core.RiskModel, guard *guardian.Guardian, optFns ...func(o *Options)) *Planner {
	opts := Options{
		Strategy: NewTemplateStrategy(),
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Planner{strategy: opts.Strategy, model: model, guard: guard, logger: opts.Logger}
}

// reviewedStep carries a surviving draft plus its review outcome and its
// original draft index for dependency remapping.
type reviewedStep struct {
	Step
	requiresOversight bool
	draftIdx          int
}

// Decompose turns a goal into a finalized Plan. Producing a plan is pure
// data generation; no step is ever executed here.
func (p *Planner) Decompose(goal string) (core.Plan, error) {
	if goal == "" {
		return core.Plan{}, &core.InvalidInputError{Reason: "plan goal must be non-empty"}
	}

	drafts, err := p.strategy.Decompose(goal)
	if err != nil {
		return core.Plan{}, err
	}

	reviewed, incomplete := p.review(drafts)
	steps := orderSteps(reviewed)

	plan := core.Plan{
		ID:         core.NewID(),
		Goal:       goal,
		Steps:      steps,
		CreatedAt:  time.Now().UTC(),
		Incomplete: incomplete,
	}
	logging.LogPlan(p.logger, plan.ID, goal, len(steps), incomplete)
	return plan, nil
}

// review submits every irreversible draft to the guardian. Blocked steps are
// substituted with a reversible alternative when the strategy offers one and
// omitted otherwise; dependents of an omitted step are omitted with it. A
// blocked step never reaches the plan silently.
func (p *Planner) review(drafts []Step) ([]reviewedStep, bool) {
	incomplete := false
	omitted := make(map[int]bool)
	kept := make([]reviewedStep, 0, len(drafts))

	for i, d := range drafts {
		if dependsOnOmitted(d, omitted) {
			omitted[i] = true
			incomplete = true
			continue
		}

		oversight := false
		if !d.Reversible {
			assessment, err := p.model.Assess(d.Description)
			if err != nil {
				// Unassessable step text is treated as blocked.
				assessment = core.NewRiskAssessment(1, nil, "step could not be assessed")
			}
			verdict := p.guard.Review(assessment, d.Description)
			switch verdict.Decision {
			case core.DecisionBlock:
				alt, ok := p.strategy.Substitute(d)
				if !ok || !alt.Reversible {
					omitted[i] = true
					incomplete = true
					continue
				}
				alt.DependsOn = d.DependsOn
				d = alt
			case core.DecisionRequireOversight:
				oversight = true
			}
		}

		kept = append(kept, reviewedStep{Step: d, requiresOversight: oversight, draftIdx: i})
	}
	return kept, incomplete
}

func dependsOnOmitted(s Step, omitted map[int]bool) bool {
	for _, d := range s.DependsOn {
		if omitted[d] {
			return true
		}
	}
	return false
}

// orderSteps applies the reversible-first invariant: among steps with no
// declared dependency, reversible steps come first (stable within each
// group); steps with dependencies follow in draft order, which always places
// them after everything they depend on. Declared dependencies are remapped
// from draft indices to final order indices.
func orderSteps(steps []reviewedStep) []core.PlanStep {
	var free, bound []reviewedStep
	for _, s := range steps {
		if len(s.DependsOn) == 0 {
			free = append(free, s)
		} else {
			bound = append(bound, s)
		}
	}
	sort.SliceStable(free, func(i, j int) bool { return free[i].Reversible && !free[j].Reversible })

	ordered := append(free, bound...)
	finalIdx := make(map[int]int, len(ordered)) // draft index -> order index
	for i, s := range ordered {
		finalIdx[s.draftIdx] = i
	}

	out := make([]core.PlanStep, len(ordered))
	for i, s := range ordered {
		var deps []int
		for _, d := range s.DependsOn {
			if fi, ok := finalIdx[d]; ok {
				deps = append(deps, fi)
			}
		}
		out[i] = core.PlanStep{
			Description:       s.Description,
			Reversible:        s.Reversible,
			RequiresOversight: s.requiresOversight,
			OrderIndex:        i,
			DependsOn:         deps,
		}
	}
	return out
}
