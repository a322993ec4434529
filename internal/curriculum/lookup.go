package curriculum

import (
	"strings"
	"unicode"
)

// normalizeKey folds a chapter title or table id into a lookup key:
// lowercase, every "quiz" removed, underscores/hyphens/whitespace removed.
// "Force and Pressure", "force_and_pressure_quiz" and "ForceAndPressure"
// all collapse to the same key.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "quiz", "")
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '_' || r == '-':
		case unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PrettyTitle derives a display title from a raw topic slug when the index
// has no match: digits, underscores and "quiz" are dropped, then each word
// is title-cased. "force_and_pressure_8_quiz" becomes "Force And Pressure".
func PrettyTitle(slug string) string {
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r == '_' || unicode.IsDigit(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	for _, label := range []string{"quiz", "Quiz", "QUIZ"} {
		s = strings.ReplaceAll(s, label, "")
	}
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// HeaderTitle formats the page header shown above the quiz.
func HeaderTitle(classID, subject, chapterTitle string) string {
	title := strings.TrimSpace(stripQuizWord(chapterTitle))
	return "Class " + classID + ": " + subject + " - " + title + " Worksheet"
}

func stripQuizWord(s string) string {
	for _, label := range []string{"quiz", "Quiz", "QUIZ"} {
		s = strings.ReplaceAll(s, label, "")
	}
	return s
}
