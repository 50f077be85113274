package exercise

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decodeList(t *testing.T, raw string) []Exercise {
	t.Helper()
	var out []Exercise
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestValidatePayloads(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			"mcq without options",
			`[{"type": "mcq_single", "question": "q", "answer": [0]}]`,
			"options",
		},
		{
			"mcq answer out of range",
			`[{"type": "mcq_single", "question": "q", "options": ["a"], "answer": [3]}]`,
			"answer",
		},
		{
			"word_fill without answers",
			`[{"type": "word_fill", "question": "q", "sentence_parts": ["a", "b"]}]`,
			"answers",
		},
		{
			"dropdown blank count mismatch",
			`[{"type": "fill_blanks_dropdown", "question": "q",
			   "sentence_parts": ["a", "b"],
			   "options_for_blanks": [["x"], ["y"]],
			   "answers": ["x"]}]`,
			"answers",
		},
		{
			"sequence answer length mismatch",
			`[{"type": "sequence_audio", "question": "q",
			   "audio_options": [{"option": "a"}, {"option": "b"}],
			   "answer": [0]}]`,
			"answer",
		},
		{
			"order answer length mismatch",
			`[{"type": "order_phrase", "question": "q",
			   "phrase_shuffled": ["b", "a"],
			   "answer": ["a"]}]`,
			"answer",
		},
		{
			"image_tagging without image",
			`[{"type": "image_tagging", "question": "q",
			   "tags": [{"id": "t", "label": "l"}],
			   "answer": {"t": [1, 2]}}]`,
			"media",
		},
		{
			"nested multi_questions",
			`[{"type": "multi_questions", "question": "q",
			   "questions": [{"type": "multi_questions", "question": "inner", "questions": []}]}]`,
			"type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(decodeList(t, tt.raw))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("err = %v; want SchemaError", err)
			}
			if se.Field != tt.wantField {
				t.Errorf("field = %q; want %q", se.Field, tt.wantField)
			}
		})
	}
}

func TestValidateAcceptsUnsupportedKind(t *testing.T) {
	exercises := decodeList(t, `[{"type": "categorization", "question": "legacy"}]`)
	if err := Validate(exercises); err != nil {
		t.Errorf("unsupported kind should pass validation, got %v", err)
	}
}

func TestValidateChildError(t *testing.T) {
	exercises := decodeList(t, `[{
		"type": "multi_questions",
		"question": "q",
		"questions": [{"type": "mcq_single", "question": "part", "answer": [0]}]
	}]`)
	err := Validate(exercises)
	if err == nil || !strings.Contains(err.Error(), "part 1") {
		t.Errorf("err = %v; want part-qualified message", err)
	}
}

func TestWarningsMCQSingleMultiAnswer(t *testing.T) {
	exercises := decodeList(t, `[{
		"type": "mcq_single",
		"question": "q",
		"options": ["a", "b", "c"],
		"answer": [0, 2]
	}]`)
	warnings := Warnings(exercises)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings; want 1", len(warnings))
	}
	if !strings.Contains(warnings[0], "mcq_single") {
		t.Errorf("warning = %q", warnings[0])
	}
}
