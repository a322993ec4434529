package question

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Row is one raw bank row, keyed by column name. The banks went through
// several schema revisions, so the same logical field can arrive under any
// of its historical names.
type Row map[string]string

// fieldAliases maps each canonical field to its historical column names, in
// precedence order (newest schema first).
var fieldAliases = map[string][]string{
	"id":          {"id"},
	"prompt":      {"question_text", "text", "prompt"},
	"type":        {"question_type", "type", "kind"},
	"supporting":  {"scenario_reason_text", "scenario_reason", "context", "passage"},
	"explanation": {"explanation_text", "explanation", "reason"},
	"correct":     {"correct_answer_key", "correct_answer", "answer"},
	"option_a":    {"option_a"},
	"option_b":    {"option_b"},
	"option_c":    {"option_c"},
	"option_d":    {"option_d"},
	"difficulty":  {"difficulty"},
}

func (r Row) field(canonical string) string {
	for _, col := range fieldAliases[canonical] {
		if v, ok := r[col]; ok && v != "" {
			return v
		}
	}
	return ""
}

// options resolves the four choice texts. Newer banks use option_a..option_d
// columns; one revision stored a single JSON object column instead.
func (r Row) options() Options {
	o := Options{
		A: CleanMarkup(r.field("option_a")),
		B: CleanMarkup(r.field("option_b")),
		C: CleanMarkup(r.field("option_c")),
		D: CleanMarkup(r.field("option_d")),
	}
	if o == (Options{}) {
		if raw, ok := r["options"]; ok && raw != "" {
			var parsed Options
			if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
				o = Options{
					A: CleanMarkup(parsed.A),
					B: CleanMarkup(parsed.B),
					C: CleanMarkup(parsed.C),
					D: CleanMarkup(parsed.D),
				}
			}
		}
	}
	return o
}

// Normalize converts a raw row into the canonical Question. Missing fields
// fall back to empty strings; a row is never rejected, so question numbering
// stays stable against what the bank reported.
func (r Row) Normalize() Question {
	prompt := CleanMarkup(r.field("prompt"))
	supporting := CleanMarkup(r.field("supporting"))
	rawType := r.field("type")

	q := Question{
		ID:          r.field("id"),
		Kind:        Classify(rawType, prompt),
		Explanation: StripLabels(CleanMarkup(r.field("explanation"))),
		Options:     r.options(),
		CorrectKey:  strings.ToUpper(strings.TrimSpace(r.field("correct"))),
		Difficulty:  r.field("difficulty"),
	}

	if q.Kind == KindAssertionReason {
		var ok bool
		q.Prompt, q.SupportingText, ok = SplitAssertionReason(prompt, supporting)
		if !ok && q.Explanation == "" {
			// Reason genuinely absent from the data; rendered as an empty
			// Reason section. Recorded so bad rows can be traced upstream.
			slog.Warn("assertion-reason question has no resolvable reason text",
				"question_id", q.ID)
		}
	} else {
		q.Prompt = prompt
		q.SupportingText = StripLabels(supporting)
	}
	return q
}

// NormalizeRows maps every fetched row, keeping order and count.
func NormalizeRows(rows []Row) []Question {
	out := make([]Question, 0, len(rows))
	for i, r := range rows {
		q := r.Normalize()
		if q.ID == "" {
			// Stable fallback id keeps answer bookkeeping intact for rows
			// that predate the id column.
			q.ID = fmt.Sprintf("row-%d", i+1)
		}
		out = append(out, q)
	}
	return out
}
