package quizgen

import (
	"fmt"
	"slices"
	"strings"
)

var validLabels = []string{"a", "b", "c", "d"}

// StructuralValidator checks the question text and option count.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q Question) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if len(q.Options) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected 4 options, got %d", len(q.Options)),
		}
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
	}
	return nil
}

// LabelValidator checks that the options carry the identifiers a to d
// once each and that correct_option names one of them.
type LabelValidator struct{}

func (v *LabelValidator) Name() string { return "labels" }

func (v *LabelValidator) Validate(q Question) *ValidationError {
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		l := Label(o)
		if !isValidLabel(l) {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %q has no a-d identifier", o)}
		}
		if seen[l] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("identifier %q used twice", l)}
		}
		seen[l] = true
	}

	c := q.CorrectLabel()
	if !isValidLabel(c) {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("correct_option %q is not a-d", q.CorrectOption)}
	}
	if !seen[c] {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("correct_option %q matches no option", q.CorrectOption)}
	}
	return nil
}

func isValidLabel(l string) bool {
	return slices.Contains(validLabels, l)
}
