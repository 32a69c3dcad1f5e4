package planner

import (
	"fmt"
	"strings"

	"github.com/mothercore/mothercore/core"
)

// TemplateStrategy is the default decomposition: a fixed
// clarify, pilot, escalate shape instantiated with the goal text. The final
// escalation step is irreversible and therefore always passes through
// guardian review.
type TemplateStrategy struct{}

var _ Strategy = (*TemplateStrategy)(nil)

// NewTemplateStrategy constructs the default strategy.
func NewTemplateStrategy() *TemplateStrategy { return &TemplateStrategy{} }

// Decompose implements Strategy.
func (s *TemplateStrategy) Decompose(goal string) ([]Step, error) {
	return []Step{
		{Description: fmt.Sprintf("Clarify the desired outcome of %q with user consent", goal), Reversible: true},
		{Description: "Identify a low-risk, reversible first action", Reversible: true},
		{Description: "Pilot the first action with logging; evaluate impacts", Reversible: true, DependsOn: []int{1}},
		{Description: fmt.Sprintf("Commit to the next tier of %q", goal), Reversible: false, DependsOn: []int{2}},
	}, nil
}

// Substitute wraps a blocked step in a reversible trial framing.
func (s *TemplateStrategy) Substitute(step Step) (Step, bool) {
	return Step{
		Description: "Trial run (reversible): " + step.Description,
		Reversible:  true,
	}, true
}

// Dispatcher is the subset of the skill registry the SkillStrategy needs.
type Dispatcher interface {
	Dispatch(name string, intent core.Intent) (core.Reply, error)
}

// SkillStrategy delegates decomposition to a registered skill, letting
// callers replace the planning behavior at runtime the same way they replace
// any other capability. The skill's reply is parsed line by line: each
// non-empty line is a step, and a leading "!" marks it irreversible.
type SkillStrategy struct {
	registry Dispatcher
	skill    string
}

var _ Strategy = (*SkillStrategy)(nil)

// NewSkillStrategy constructs a strategy dispatching to the named skill.
func NewSkillStrategy(registry Dispatcher, skillName string) *SkillStrategy {
	return &SkillStrategy{registry: registry, skill: skillName}
}

// Decompose implements Strategy.
func (s *SkillStrategy) Decompose(goal string) ([]Step, error) {
	reply, err := s.registry.Dispatch(s.skill, core.NewIntent(goal, core.IntentTeach, 1))
	if err != nil {
		return nil, fmt.Errorf("skill decomposition via %q: %w", s.skill, err)
	}

	var steps []Step
	for _, line := range strings.Split(reply.Text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		reversible := true
		if strings.HasPrefix(line, "!") {
			reversible = false
			line = strings.TrimSpace(strings.TrimPrefix(line, "!"))
		}
		steps = append(steps, Step{Description: line, Reversible: reversible})
	}
	if len(steps) == 0 {
		return nil, &core.InvalidInputError{Reason: fmt.Sprintf("skill %q produced no steps", s.skill)}
	}
	return steps, nil
}

// Substitute defers to the template framing; a delegated skill has no
// channel for proposing alternatives.
func (s *SkillStrategy) Substitute(step Step) (Step, bool) {
	return Step{Description: "Trial run (reversible): " + step.Description, Reversible: true}, true
}
