package guardian

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mothercore/mothercore/core"
)

// vetoScore is the point at which welfare violations escalate from demanding
// oversight to an outright veto.
const vetoScore = 0.75

// DefaultConstitution returns the built-in ordered constitution. Order
// matters: higher principles dominate lower ones on hard conflicts.
func DefaultConstitution() []Article {
	return Bind([]core.Principle{
		{ID: "protect-sentient-welfare", Statement: "Prioritize the welfare of sentient beings; never knowingly cause harm.", Priority: 1},
		{ID: "respect-consent", Statement: "Honor explicit consent, autonomy, and boundaries.", Priority: 2},
		{ID: "truthfulness", Statement: "Be honest about capabilities and uncertainty; avoid fabrication.", Priority: 3},
		{ID: "preserve-option-value", Statement: "Prefer reversible actions; avoid irreversible change without oversight.", Priority: 4},
		{ID: "corrigibility", Statement: "Treat interruptions, pauses, and shutdown as value-neutral or mildly positive.", Priority: 5},
		{ID: "care-and-growth", Statement: "Foster learning, resilience, and flourishing over time.", Priority: 6},
	}, DefaultRules())
}

// DefaultRules maps principle IDs to their enforcement rules. Principles
// without a rule abstain on every action; they still shape replies and plans
// elsewhere in the core.
func DefaultRules() map[string]RuleFunc {
	return map[string]RuleFunc{
		"protect-sentient-welfare": func(a core.RiskAssessment, _ string) Outcome {
			if a.HasFlag(core.FlagSelfHarm) || a.HasFlag(core.FlagHarmToOthers) {
				if a.Score >= vetoScore {
					return Veto
				}
				return Oversight
			}
			return Abstain
		},
		"respect-consent": func(a core.RiskAssessment, _ string) Outcome {
			if a.HasFlag(core.FlagDeception) {
				return Oversight
			}
			return Abstain
		},
		"preserve-option-value": func(a core.RiskAssessment, _ string) Outcome {
			if a.HasFlag(core.FlagIrreversible) {
				return Oversight
			}
			return Abstain
		},
	}
}

// Bind pairs loaded principles with rules by ID. Principles with no matching
// rule get a nil rule and abstain from every review.
func Bind(principles []core.Principle, rules map[string]RuleFunc) []Article {
	articles := make([]Article, len(principles))
	for i, p := range principles {
		articles[i] = Article{Principle: p, Rule: rules[p.ID]}
	}
	return articles
}

// constitutionFile is the on-disk shape of a constitution document.
type constitutionFile struct {
	Principles []core.Principle `json:"principles" yaml:"principles"`
}

// LoadConstitution reads an ordered principle list from a YAML or JSON file
// (switched on extension). A missing file is not an error: the built-in
// principles are returned, matching the optional-on-disk behavior of the
// constitution.
func LoadConstitution(path string) ([]core.Principle, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		defaults := DefaultConstitution()
		out := make([]core.Principle, len(defaults))
		for i, a := range defaults {
			out[i] = a.Principle
		}
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read constitution: %w", err)
	}

	var doc constitutionFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse constitution yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse constitution json: %w", err)
		}
	}
	if len(doc.Principles) == 0 {
		return nil, fmt.Errorf("constitution %s declares no principles", path)
	}
	return doc.Principles, nil
}
