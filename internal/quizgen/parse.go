package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/abhisek/quizcrafter/internal/llm"
)

// ParseStage records how a question list was recovered.
type ParseStage int

const (
	// StageFailed means no usable list was found.
	StageFailed ParseStage = iota
	// StageStrict means the whole reply was a JSON array.
	StageStrict
	// StageExtracted means the array was cut out of surrounding text.
	StageExtracted
)

func (s ParseStage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageExtracted:
		return "extracted"
	}
	return "failed"
}

// ParseResult is either a non-empty question list or a failure reason,
// never both.
type ParseResult struct {
	Questions []Question
	Stage     ParseStage

	// Dropped counts items that were recovered but failed validation.
	Dropped int

	Err *ParseError
}

// OK reports whether questions were recovered.
func (r ParseResult) OK() bool {
	return r.Err == nil && len(r.Questions) > 0
}

// arrayPattern matches from the first '[' to the last ']', across lines.
var arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

var errNoArray = errors.New("no JSON array found in response")

// DefaultValidators is the chain applied to every recovered item.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}, &LabelValidator{}}
}

// Parse turns a raw model reply into questions using the default
// validator chain.
func Parse(raw string) ParseResult {
	return ParseWith(raw, DefaultValidators())
}

// ParseWith runs the two-stage parse: the trimmed reply as a JSON array,
// then the bracket-delimited span inside it. Items that fail the schema
// or any validator are dropped.
func ParseWith(raw string, validators []Validator) ParseResult {
	text := strings.TrimSpace(raw)

	stage := StageStrict
	items, err := decodeArray(text)
	if err != nil {
		stage = StageExtracted
		span := arrayPattern.FindString(text)
		if span == "" {
			return failed(StageExtracted, "no question list", errNoArray)
		}
		items, err = decodeArray(span)
		if err != nil {
			return failed(StageExtracted, "invalid JSON", err)
		}
	}

	res := ParseResult{Stage: stage}
	for _, item := range items {
		q, ok := decodeItem(item, validators)
		if !ok {
			res.Dropped++
			continue
		}
		res.Questions = append(res.Questions, q)
	}

	if len(res.Questions) == 0 {
		reason := "empty question list"
		if res.Dropped > 0 {
			reason = fmt.Sprintf("all %d questions were malformed", res.Dropped)
		}
		out := failed(stage, reason, nil)
		out.Dropped = res.Dropped
		return out
	}
	return res
}

func failed(stage ParseStage, reason string, err error) ParseResult {
	return ParseResult{
		Stage: StageFailed,
		Err:   &ParseError{Stage: stage, Reason: reason, Err: err},
	}
}

func decodeArray(s string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeItem(raw json.RawMessage, validators []Validator) (Question, bool) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return Question{}, false
	}
	if err := llm.ValidateValue(ItemSchema, generic); err != nil {
		return Question{}, false
	}

	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return Question{}, false
	}
	for _, v := range validators {
		if verr := v.Validate(q); verr != nil {
			return Question{}, false
		}
	}
	return q, true
}
