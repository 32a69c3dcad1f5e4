package core

// IntentCategory classifies the purpose of a user input. Categories mirror
// the built-in capabilities; Unknown is the safe fallback when no cue fires.
type IntentCategory string

// Supported intent categories.
const (
	IntentNurture  IntentCategory = "nurture"
	IntentProtect  IntentCategory = "protect"
	IntentTeach    IntentCategory = "teach"
	IntentBoundary IntentCategory = "boundary"
	IntentUnknown  IntentCategory = "unknown"
)

// Intent is the classified purpose of a single user input. It is created per
// Act call and never persisted directly; only the resulting MemoryRecord is.
type Intent struct {
	RawText    string         `json:"raw_text"`
	Category   IntentCategory `json:"detected_category"`
	Confidence float64        `json:"confidence"` // [0, 1]
}

// NewIntent constructs an Intent with the confidence clamped to [0, 1].
func NewIntent(raw string, category IntentCategory, confidence float64) Intent {
	return Intent{RawText: raw, Category: category, Confidence: Clamp(confidence, 0, 1)}
}
