// Package question fetches rows from per-topic question banks and normalizes
// them into a single canonical shape, tolerating the historical field-naming
// schemes the banks accumulated over time.
package question

// Kind partitions questions by presentation: plain multiple-choice,
// assertion-reason, or case/scenario based.
type Kind string

const (
	KindPlain           Kind = "plain"
	KindAssertionReason Kind = "assertion_reason"
	KindCase            Kind = "case"
)

// OptionKeys is the fixed, ordered choice-key set. Every question has exactly
// these four options.
var OptionKeys = [4]string{"A", "B", "C", "D"}

// Options holds the four choice texts in fixed A-D order.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the option text for a choice key, or "" for an unknown key.
func (o Options) Get(key string) string {
	switch key {
	case "A":
		return o.A
	case "B":
		return o.B
	case "C":
		return o.C
	case "D":
		return o.D
	}
	return ""
}

// Question is one normalized quiz item. Constructed once at fetch time,
// immutable afterwards.
type Question struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`

	// Prompt is the main question text. For assertion-reason questions it is
	// the Assertion statement.
	Prompt string `json:"prompt"`

	// SupportingText is the Reason statement for assertion-reason questions,
	// or the scenario passage for case-based ones. May be empty.
	SupportingText string `json:"supporting_text,omitempty"`

	// Explanation is shown as a hint before submission and as the reasoning
	// afterwards. May be empty.
	Explanation string `json:"explanation,omitempty"`

	Options    Options `json:"options"`
	CorrectKey string  `json:"correct_key"` // one of A/B/C/D, uppercased
	Difficulty string  `json:"difficulty,omitempty"`
}
