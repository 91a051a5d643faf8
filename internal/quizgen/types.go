package quizgen

import (
	"fmt"
	"strings"
)

// Difficulty is the requested difficulty level of a quiz.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists the accepted levels in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty maps a case-insensitive name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want Easy, Medium or Hard)", s)
}

// Request holds the user's quiz parameters.
type Request struct {
	Subject    string
	Topic      string
	Difficulty Difficulty
}

// Validate checks that subject and topic are present and the difficulty
// is known.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Subject) == "" || strings.TrimSpace(r.Topic) == "" {
		return &InputValidationError{Field: "subject", Message: MsgMissingSubjectTopic}
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return &InputValidationError{Field: "difficulty", Message: err.Error()}
	}
	return nil
}

// Question is one multiple-choice item as produced by the model.
// Fields are kept exactly as received.
type Question struct {
	// Text is the question prompt.
	Text string `json:"question"`

	// Options holds four answers, each prefixed with its identifier,
	// e.g. "a: Paris".
	Options []string `json:"options"`

	// CorrectOption is the identifier of the right answer, e.g. "b".
	CorrectOption string `json:"correct_option"`
}

// CorrectLabel returns the normalized identifier of the correct option.
func (q Question) CorrectLabel() string {
	return strings.ToLower(strings.TrimSpace(q.CorrectOption))
}

// OptionText returns the option whose identifier is label, or "".
func (q Question) OptionText(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, o := range q.Options {
		if Label(o) == label {
			return o
		}
	}
	return ""
}

// CorrectText returns the full text of the correct option.
func (q Question) CorrectText() string {
	return q.OptionText(q.CorrectLabel())
}

// Label returns the leading identifier of an option, lowercased:
// "B: 4" and " b) 4" both yield "b".
func Label(option string) string {
	s := strings.TrimSpace(option)
	if i := strings.IndexAny(s, ":).\t "); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}
