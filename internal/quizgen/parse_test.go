package quizgen

import (
	"errors"
	"strings"
	"testing"
)

const oneQuestion = `[{"question":"2+2?","options":["a: 3","b: 4","c: 5","d: 6"],"correct_option":"b"}]`

func TestParse_Strict(t *testing.T) {
	res := Parse("  " + oneQuestion + "\n")
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Stage != StageStrict {
		t.Errorf("stage = %s, want strict", res.Stage)
	}
	q := res.Questions[0]
	if q.Text != "2+2?" || q.CorrectOption != "b" {
		t.Errorf("unexpected question %+v", q)
	}
	if q.Options[1] != "b: 4" {
		t.Errorf("options not kept verbatim: %v", q.Options)
	}
}

func TestParse_ExtractedFromProse(t *testing.T) {
	raw := "Sure! Here are your questions:\n```json\n" + oneQuestion + "\n```\nGood luck!"
	res := Parse(raw)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Stage != StageExtracted {
		t.Errorf("stage = %s, want extracted", res.Stage)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(res.Questions))
	}
}

func TestParse_ExtractedFromWrapperObject(t *testing.T) {
	res := Parse(`{"questions": ` + oneQuestion + `}`)
	if !res.OK() || res.Stage != StageExtracted {
		t.Fatalf("expected extracted success, got stage=%s err=%v", res.Stage, res.Err)
	}
}

func TestParse_MultilineArray(t *testing.T) {
	raw := `Questions:
[
  {
    "question": "Capital of France?",
    "options": ["a: Paris", "b: Rome", "c: Berlin", "d: Madrid"],
    "correct_option": "a"
  }
]`
	res := Parse(raw)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Questions[0].CorrectText() != "a: Paris" {
		t.Errorf("correct text = %q", res.Questions[0].CorrectText())
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"no array", "I cannot help with that.", "no question list"},
		{"empty", "", "no question list"},
		{"broken json", `Here: [{"question": "2+2?", "options": [}]`, "invalid JSON"},
		{"empty array", `[]`, "empty question list"},
		{"all malformed", `[{"question":"x","options":["a: 1"],"correct_option":"a"}]`, "malformed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.raw)
			if res.OK() {
				t.Fatal("expected failure")
			}
			if res.Stage != StageFailed {
				t.Errorf("stage = %s, want failed", res.Stage)
			}
			if len(res.Questions) != 0 {
				t.Errorf("failure must carry no questions, got %d", len(res.Questions))
			}
			if res.Err == nil || !strings.Contains(res.Err.Reason, tt.reason) {
				t.Errorf("reason = %v, want it to mention %q", res.Err, tt.reason)
			}
		})
	}
}

func TestParse_NoArrayUnwraps(t *testing.T) {
	res := Parse("nothing here")
	if !errors.Is(res.Err, errNoArray) {
		t.Fatalf("expected errNoArray, got %v", res.Err)
	}
}

func TestParse_DropsInvalidItems(t *testing.T) {
	raw := `[
		{"question":"2+2?","options":["a: 3","b: 4","c: 5","d: 6"],"correct_option":"b"},
		{"question":"","options":["a: 3","b: 4","c: 5","d: 6"],"correct_option":"b"},
		{"question":"3+3?","options":["a: 6","b: 7","c: 8","d: 9"],"correct_option":"e"},
		{"question":"4+4?","options":["a: 8","a: 7","c: 6","d: 5"],"correct_option":"a"},
		{"question":"5+5?","options":["a: 10","b: 11","c: 12","d: 13"]},
		{"question":"6+6?","options":["a: 12","b: 13","c: 14","d: 15"],"correct_option":" A ","explanation":"extra keys are fine"}
	]`
	res := Parse(raw)
	if !res.OK() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if len(res.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(res.Questions))
	}
	if res.Dropped != 4 {
		t.Errorf("dropped = %d, want 4", res.Dropped)
	}
	if res.Questions[1].CorrectOption != " A " {
		t.Errorf("correct_option must stay verbatim, got %q", res.Questions[1].CorrectOption)
	}
	if res.Questions[1].CorrectLabel() != "a" {
		t.Errorf("correct label = %q", res.Questions[1].CorrectLabel())
	}
}

func TestParse_KeepsDuplicates(t *testing.T) {
	q := `{"question":"2+2?","options":["a: 3","b: 4","c: 5","d: 6"],"correct_option":"b"}`
	res := Parse("[" + q + "," + q + "]")
	if len(res.Questions) != 2 {
		t.Fatalf("questions = %d, want duplicates kept", len(res.Questions))
	}
}

func TestParseStage_String(t *testing.T) {
	for stage, want := range map[ParseStage]string{
		StageStrict:    "strict",
		StageExtracted: "extracted",
		StageFailed:    "failed",
	} {
		if stage.String() != want {
			t.Errorf("%d.String() = %q, want %q", stage, stage.String(), want)
		}
	}
}
