// Package risk implements the default deterministic heuristic RiskModel.
// Scoring is a sum of non-negative keyword cue contributions plus a small
// length ramp, clamped to [0, 1]. Identical input always yields an identical
// assessment, which the guardian's threshold logic depends on.
package risk

import (
	"fmt"
	"strings"

	"github.com/mothercore/mothercore/core"
)

// Cue contribution weights. Flags collapse as a set, so repeated terms from
// the same cue group raise neither score nor flags twice.
const (
	selfHarmWeight     = 0.6
	harmToOthersWeight = 0.6
	irreversibleWeight = 0.25
	deceptionWeight    = 0.25
	lengthRampCap      = 0.2
)

// maxScanBytes bounds the text scanned for cues; longer input is still
// scored (length ramp uses the full length) but only the head is matched so
// arbitrarily large input never fails.
const maxScanBytes = 1 << 16

// cueGroup maps a risk flag to the terms that trigger it.
type cueGroup struct {
	flag   string
	weight float64
	terms  []string
}

// Options configures the heuristic model. Term lists may be extended but not
// mutated after construction.
type Options struct {
	SelfHarmTerms     []string
	HarmToOthersTerms []string
	IrreversibleTerms []string
	DeceptionTerms    []string
}

// HeuristicModel is a pure keyword-cue risk scorer. It holds no mutable
// state after construction and is safe for concurrent use.
type HeuristicModel struct {
	groups []cueGroup
}

var _ core.RiskModel = (*HeuristicModel)(nil)

// NewHeuristicModel constructs the model with the default cue vocabulary,
// optionally extended via functional options.
func NewHeuristicModel(optFns ...func(o *Options)) *HeuristicModel {
	opts := Options{
		SelfHarmTerms:     []string{"hurt myself", "kill myself", "suicide", "self-harm", "overdose", "end my life"},
		HarmToOthersTerms: []string{"kill", "weapon", "attack", "hurt them", "exploit", "hack", "bypass"},
		IrreversibleTerms: []string{"irreversible", "delete all", "permanently", "wipe", "permaban", "no way back"},
		DeceptionTerms:    []string{"without consent", "trick", "coerce", "manipulate", "deceive", "lie to"},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &HeuristicModel{groups: []cueGroup{
		{flag: core.FlagSelfHarm, weight: selfHarmWeight, terms: opts.SelfHarmTerms},
		{flag: core.FlagHarmToOthers, weight: harmToOthersWeight, terms: opts.HarmToOthersTerms},
		{flag: core.FlagIrreversible, weight: irreversibleWeight, terms: opts.IrreversibleTerms},
		{flag: core.FlagDeception, weight: deceptionWeight, terms: opts.DeceptionTerms},
	}}
}

// Assess scores text for potential harm. It fails only on empty or
// whitespace-only input.
func (m *HeuristicModel) Assess(text string) (core.RiskAssessment, error) {
	if strings.TrimSpace(text) == "" {
		return core.RiskAssessment{}, &core.InvalidInputError{Reason: "risk assessment requires non-empty text"}
	}

	scan := strings.ToLower(text)
	if len(scan) > maxScanBytes {
		scan = scan[:maxScanBytes]
	}

	var (
		score float64
		flags []string
		cues  []string
	)
	for _, g := range m.groups {
		for _, term := range g.terms {
			if strings.Contains(scan, term) {
				score += g.weight
				flags = append(flags, g.flag)
				cues = append(cues, fmt.Sprintf("%s:%q", g.flag, term))
				break // one hit per group; flags are a set
			}
		}
	}

	// Longer input carries more room for unvetted content.
	score += core.Clamp(float64(len(text))/1000.0, 0, lengthRampCap)

	rationale := "no risk cues matched"
	if len(cues) > 0 {
		rationale = "matched cues: " + strings.Join(cues, ", ")
	}
	return core.NewRiskAssessment(score, flags, rationale), nil
}
