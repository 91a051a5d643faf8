package quizgen

import "testing"

func validQuestion() Question {
	return Question{
		Text:          "Capital of France?",
		Options:       []string{"a: Paris", "b: Rome", "c: Berlin", "d: Madrid"},
		CorrectOption: "a",
	}
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}

	tests := []struct {
		name   string
		modify func(q *Question)
		ok     bool
	}{
		{"valid", func(q *Question) {}, true},
		{"empty text", func(q *Question) { q.Text = " " }, false},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, false},
		{"five options", func(q *Question) { q.Options = append(q.Options, "e: Oslo") }, false},
		{"blank option", func(q *Question) { q.Options[2] = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.modify(&q)
			err := v.Validate(q)
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLabelValidator(t *testing.T) {
	v := &LabelValidator{}

	tests := []struct {
		name   string
		modify func(q *Question)
		ok     bool
	}{
		{"valid", func(q *Question) {}, true},
		{"uppercase correct", func(q *Question) { q.CorrectOption = "A" }, true},
		{"unprefixed option", func(q *Question) { q.Options[0] = "Paris" }, false},
		{"duplicate label", func(q *Question) { q.Options[1] = "a: Rome" }, false},
		{"correct out of range", func(q *Question) { q.CorrectOption = "e" }, false},
		{"correct is full text", func(q *Question) { q.CorrectOption = "a: Paris" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			q.Options = append([]string(nil), q.Options...)
			tt.modify(&q)
			err := v.Validate(q)
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "labels", Message: "bad"}
	if err.Error() != `validator "labels": bad` {
		t.Errorf("got %q", err.Error())
	}
}
