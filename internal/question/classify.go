package question

import (
	"regexp"
	"strings"
)

// Classify determines the question kind. Precedence: the bank's type field is
// consulted first; when it is silent, a prompt that mentions "assertion" still
// classifies as assertion-reason. That second rule is a safety net against
// rows whose type tag was never filled in.
func Classify(rawType, prompt string) Kind {
	t := strings.ToLower(rawType)
	switch {
	case strings.Contains(t, "ar") || strings.Contains(t, "assertion"):
		return KindAssertionReason
	case strings.Contains(t, "case"):
		return KindCase
	}
	if strings.Contains(strings.ToLower(prompt), "assertion") {
		return KindAssertionReason
	}
	return KindPlain
}

// Recognized label prefixes, longest alternatives first so "Reason (R):" wins
// over "Reason:". Separator is an optional colon or dash.
var labelRe = regexp.MustCompile(`(?i)^\s*(assertion\s*\(\s*a\s*\)|reason\s*\(\s*r\s*\)|reasoning|reason|assertion|context|scenario)\s*[:\-]\s*`)

// StripLabels removes any recognized label prefix from the front of s,
// repeatedly until no prefix matches. Doubled labels in source data
// ("Reason: Reason (R): ...") collapse to the bare text. Idempotent.
func StripLabels(s string) string {
	for {
		out := labelRe.ReplaceAllString(s, "")
		if out == s {
			return strings.TrimSpace(out)
		}
		s = out
	}
}

var reasonMarkerRe = regexp.MustCompile(`(?i)reason\s*\(\s*r\s*\)\s*[:\-]?\s*`)

// SplitAssertionReason resolves the assertion and reason texts for an
// assertion-reason question. Some rows store both statements concatenated in
// the prompt with an embedded "Reason (R):" marker; when the supporting field
// is empty and the marker is present, the prompt is split there. The returned
// bool reports whether a reason was resolved by either strategy.
func SplitAssertionReason(prompt, supporting string) (assertion, reason string, ok bool) {
	if strings.TrimSpace(supporting) != "" {
		return StripLabels(prompt), StripLabels(supporting), true
	}
	loc := reasonMarkerRe.FindStringIndex(prompt)
	if loc == nil {
		return StripLabels(prompt), "", false
	}
	return StripLabels(prompt[:loc[0]]), StripLabels(prompt[loc[1]:]), true
}

var markupReplacer = strings.NewReplacer(
	"$$", "",
	"$", "",
	`\(`, "",
	`\)`, "",
	`\[`, "",
	`\]`, "",
)

// CleanMarkup drops KaTeX delimiters that leak through from authoring tools.
func CleanMarkup(s string) string {
	return strings.TrimSpace(markupReplacer.Replace(s))
}
