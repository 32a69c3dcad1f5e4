// Package intent defines the pluggable intent classification capability. The
// default KeywordClassifier is deterministic and dependency-free; the
// anthropic and openai subpackages provide LLM-backed adapters behind the
// same Classifier interface.
package intent

import (
	"context"
	"strings"

	"github.com/mothercore/mothercore/core"
)

// Classifier turns raw input text into a classified Intent. Implementations
// must never fail on unusual content; when unsure they return the unknown
// category with low confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (core.Intent, error)
}

// cue lists the trigger phrases for one category, checked in declaration
// order; the first category with a hit wins.
type cue struct {
	category core.IntentCategory
	terms    []string
}

// KeywordClassifier routes input by keyword cues. It is pure and safe for
// concurrent use.
type KeywordClassifier struct {
	cues []cue
}

var _ Classifier = (*KeywordClassifier)(nil)

// NewKeywordClassifier constructs the default cue table. Protection cues are
// checked first so safety-relevant input is never routed to a softer skill.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{cues: []cue{
		{core.IntentProtect, []string{"is it safe", "danger", "protect", "threat", "risky", "keep me safe"}},
		{core.IntentBoundary, []string{"set a boundary", "say no", "refuse", "back off", "leave me alone"}},
		{core.IntentNurture, []string{"tired", "sad", "overwhelmed", "lonely", "anxious", "stress", "scared"}},
		{core.IntentTeach, []string{"how to", "teach me", "learn", "study", "train", "improve", "practice"}},
	}}
}

// Classify implements Classifier. It never returns an error; absent cues
// yield the unknown category at low confidence.
func (c *KeywordClassifier) Classify(_ context.Context, text string) (core.Intent, error) {
	lt := strings.ToLower(text)
	for _, cu := range c.cues {
		for _, term := range cu.terms {
			if strings.Contains(lt, term) {
				return core.NewIntent(text, cu.category, 0.7), nil
			}
		}
	}
	return core.NewIntent(text, core.IntentUnknown, 0.3), nil
}

// ParseCategory maps a free-form label (e.g. an LLM completion) onto an
// IntentCategory, defaulting to unknown. Shared by the SDK-backed adapters.
func ParseCategory(label string) core.IntentCategory {
	switch core.IntentCategory(strings.ToLower(strings.TrimSpace(label))) {
	case core.IntentNurture:
		return core.IntentNurture
	case core.IntentProtect:
		return core.IntentProtect
	case core.IntentTeach:
		return core.IntentTeach
	case core.IntentBoundary:
		return core.IntentBoundary
	default:
		return core.IntentUnknown
	}
}

// ClassificationPrompt is the instruction given to LLM-backed classifiers.
const ClassificationPrompt = "Classify the user's message into exactly one of: " +
	"nurture, protect, teach, boundary, unknown. Reply with the single word only."
