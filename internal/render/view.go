// Package render maps quiz state to view descriptions. Everything here is a
// pure function of its inputs; no package state, no side effects.
package render

import (
	"fmt"
	"strings"

	"github.com/classworks/quiz-gateway/internal/question"
)

// OptionState is the visual state of one option. Exactly one state applies
// per option at any time.
type OptionState string

const (
	// OptionNeutral is the resting state.
	OptionNeutral OptionState = "neutral"
	// OptionSelected marks the chosen option before submission.
	OptionSelected OptionState = "selected"
	// OptionCorrect marks the correct option, shown only after submission.
	OptionCorrect OptionState = "correct"
	// OptionWrong marks a chosen option that turned out incorrect.
	OptionWrong OptionState = "wrong"
)

type OptionView struct {
	Key      string      `json:"key"`
	Text     string      `json:"text"`
	State    OptionState `json:"state"`
	Disabled bool        `json:"disabled"`
}

// QuestionView is the presentation of one question. Kind decides which of
// the optional sections are populated.
type QuestionView struct {
	Number int           `json:"number"` // 1-based
	Kind   question.Kind `json:"kind"`

	Prompt string `json:"prompt"`

	// Assertion-reason sections.
	Assertion string `json:"assertion,omitempty"`
	Reason    string `json:"reason,omitempty"`

	// Case-based scenario panel.
	Context string `json:"context,omitempty"`

	Hint      string `json:"hint,omitempty"`      // explanation before submission
	Reasoning string `json:"reasoning,omitempty"` // explanation after submission

	Options [4]OptionView `json:"options"`
}

// arOptionTexts is the canonical assertion-reason option set. It replaces
// whatever option text the bank row carries; the four logical relationships
// are a content invariant of the format itself.
var arOptionTexts = map[string]string{
	"A": "Both A and R are true and R is the correct explanation of A.",
	"B": "Both A and R are true but R is not the correct explanation of A.",
	"C": "A is true but R is false.",
	"D": "A is false but R is true.",
}

// Question builds the view for one question given the selected choice key
// (empty when unanswered) and whether the session has been submitted.
func Question(q question.Question, number int, selected string, submitted bool) QuestionView {
	selected = strings.ToUpper(strings.TrimSpace(selected))
	v := QuestionView{Number: number, Kind: q.Kind}

	switch q.Kind {
	case question.KindAssertionReason:
		v.Assertion = q.Prompt
		v.Reason = q.SupportingText
		if v.Reason == "" {
			v.Reason = q.Explanation
		}
	case question.KindCase:
		v.Prompt = q.Prompt
		v.Context = q.SupportingText
		if !submitted {
			v.Hint = q.Explanation
		}
	default:
		v.Prompt = q.Prompt
		if submitted {
			v.Reasoning = q.Explanation
		} else {
			v.Hint = q.Explanation
		}
	}

	for i, key := range question.OptionKeys {
		text := q.Options.Get(key)
		if q.Kind == question.KindAssertionReason {
			text = arOptionTexts[key]
		}
		v.Options[i] = OptionView{
			Key:      key,
			Text:     text,
			State:    optionState(key, q.CorrectKey, selected, submitted),
			Disabled: submitted,
		}
	}
	return v
}

func optionState(key, correct, selected string, submitted bool) OptionState {
	switch {
	case submitted && key == correct:
		return OptionCorrect
	case submitted && key == selected:
		return OptionWrong
	case !submitted && key == selected:
		return OptionSelected
	default:
		return OptionNeutral
	}
}

// NavView describes the prev/next/submit controls. The first question hides
// "previous"; the last hides "next" and shows "submit" instead, until the
// session is submitted.
type NavView struct {
	Counter    string `json:"counter"` // "3 / 10"
	ShowPrev   bool   `json:"show_prev"`
	ShowNext   bool   `json:"show_next"`
	ShowSubmit bool   `json:"show_submit"`
}

func Navigation(index, total int, submitted bool) NavView {
	return NavView{
		Counter:    fmt.Sprintf("%d / %d", index+1, total),
		ShowPrev:   index > 0,
		ShowNext:   index < total-1,
		ShowSubmit: index == total-1 && !submitted,
	}
}
