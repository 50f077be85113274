package evaluate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

func mustExercise(t *testing.T, raw string) *exercise.Exercise {
	t.Helper()
	var ex exercise.Exercise
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		t.Fatalf("decode exercise: %v", err)
	}
	return &ex
}

func TestSingleChoice(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "mcq_single",
		"question": "Pick one",
		"options": ["a", "b", "c"],
		"answer": [1]
	}`)

	tests := []struct {
		name    string
		sub     Submission
		want    bool
		invalid bool
	}{
		{"correct", SingleChoice(1), true, false},
		{"incorrect", SingleChoice(0), false, false},
		{"no selection", SingleChoice(-1), false, true},
		{"wrong shape", MultiChoice{1}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, tt.invalid)
		})
	}
}

func TestSingleChoiceMultipleAcceptable(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "mcq_single",
		"question": "Pick one",
		"options": ["a", "b", "c"],
		"answer": [0, 2]
	}`)

	for _, choice := range []SingleChoice{0, 2} {
		got, err := Evaluate(ex, choice)
		if err != nil || !got {
			t.Errorf("Evaluate(%d) = %v, %v; want true", choice, got, err)
		}
	}
	if got, _ := Evaluate(ex, SingleChoice(1)); got {
		t.Error("Evaluate(1) = true; want false")
	}
}

func TestMultiChoice(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "mcq_multiple",
		"question": "Pick all",
		"options": ["a", "b", "c", "d"],
		"answer": [0, 2]
	}`)

	tests := []struct {
		name    string
		sub     Submission
		want    bool
		invalid bool
	}{
		{"exact set", MultiChoice{0, 2}, true, false},
		{"order ignored", MultiChoice{2, 0}, true, false},
		{"subset", MultiChoice{0}, false, false},
		{"superset", MultiChoice{0, 1, 2}, false, false},
		{"empty", MultiChoice{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, tt.invalid)
		})
	}
}

func TestWordFillCaseInsensitive(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "word_fill",
		"question": "Fill",
		"sentence_parts": ["Je ", " une ", "."],
		"answers": ["suis", "Femme"]
	}`)

	tests := []struct {
		name string
		sub  Texts
		want bool
	}{
		{"exact", Texts{"suis", "Femme"}, true},
		{"case folded", Texts{"SUIS", "femme"}, true},
		{"whitespace trimmed", Texts{" suis ", "femme"}, true},
		{"wrong word", Texts{"es", "Femme"}, false},
		{"wrong count", Texts{"suis"}, false},
		{"order matters", Texts{"Femme", "suis"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, false)
		})
	}
}

func TestFillBlanksDropdownExact(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "fill_blanks_dropdown",
		"question": "Choose",
		"sentence_parts": ["Il ", " du pain."],
		"options_for_blanks": [[" ", "mange", "Mange"]],
		"answers": ["mange"]
	}`)

	if got, _ := Evaluate(ex, Texts{"mange"}); !got {
		t.Error("exact choice rejected")
	}
	if got, _ := Evaluate(ex, Texts{"Mange"}); got {
		t.Error("dropdown comparison must be case sensitive")
	}
}

func TestMappingKinds(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "match_phrases",
		"question": "Match",
		"pairs": [
			{"source": "Je", "targets": [" ", "suis", "es"]},
			{"source": "Tu", "targets": [" ", "suis", "es"]}
		],
		"answer": {"Je": "suis", "Tu": "es"}
	}`)

	tests := []struct {
		name string
		sub  Mapping
		want bool
	}{
		{"complete and correct", Mapping{"Je": "suis", "Tu": "es"}, true},
		{"one wrong", Mapping{"Je": "es", "Tu": "es"}, false},
		{"incomplete", Mapping{"Je": "suis"}, false},
		{"extra key", Mapping{"Je": "suis", "Tu": "es", "Il": "est"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, false)
		})
	}
}

func TestOrdering(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "order_phrase",
		"question": "Order",
		"phrase_shuffled": ["b", "a", "c"],
		"answer": ["a", "b", "c"]
	}`)

	if got, _ := Evaluate(ex, Ordering{"a", "b", "c"}); !got {
		t.Error("correct order rejected")
	}
	if got, _ := Evaluate(ex, Ordering{"b", "a", "c"}); got {
		t.Error("wrong order accepted")
	}
	if got, _ := Evaluate(ex, Ordering{"a", "b"}); got {
		t.Error("short order accepted")
	}
}

func TestSequence(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "sequence_audio",
		"question": "Sequence",
		"audio_options": [{"option": "x"}, {"option": "y"}, {"option": "z"}],
		"answer": [2, 0, 1]
	}`)

	if got, _ := Evaluate(ex, Sequence{2, 0, 1}); !got {
		t.Error("correct sequence rejected")
	}
	if got, _ := Evaluate(ex, Sequence{0, 1, 2}); got {
		t.Error("wrong sequence accepted")
	}

	_, err := Evaluate(ex, Sequence{2, 0})
	var inv *InvalidSubmissionError
	if !errors.As(err, &inv) {
		t.Errorf("incomplete sequence: err = %v; want InvalidSubmissionError", err)
	}
}

func TestTagPlacement(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "image_tagging",
		"question": "Tag",
		"media": {"image": "map.png"},
		"tags": [{"id": "t1", "label": "Paris"}, {"id": "t2", "label": "Lyon"}],
		"answer": {"t1": [100, 100], "t2": [300, 200]}
	}`)

	tests := []struct {
		name    string
		sub     TagPlacements
		want    bool
		invalid bool
	}{
		{
			"exact",
			TagPlacements{Positions: map[string]exercise.Point{
				"t1": {X: 100, Y: 100}, "t2": {X: 300, Y: 200},
			}},
			true, false,
		},
		{
			"within tolerance",
			TagPlacements{Positions: map[string]exercise.Point{
				"t1": {X: 130, Y: 140}, "t2": {X: 300, Y: 250},
			}},
			true, false,
		},
		{
			"just outside tolerance",
			TagPlacements{Positions: map[string]exercise.Point{
				"t1": {X: 100, Y: 151}, "t2": {X: 300, Y: 200},
			}},
			false, false,
		},
		{
			"missing tag",
			TagPlacements{Positions: map[string]exercise.Point{
				"t1": {X: 100, Y: 100},
			}},
			false, false,
		},
		{
			"unknown alternative",
			TagPlacements{Alternative: 3, Positions: map[string]exercise.Point{}},
			false, true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, tt.invalid)
		})
	}
}

func TestTagPlacementAlternative(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "image_tagging",
		"question": "Tag",
		"media": {"image": "map_fr.png"},
		"tags": [{"id": "t1", "label": "Paris"}],
		"answer": {"t1": [10, 10]},
		"alternatives": [{
			"media": {"image": "map_de.png"},
			"tags": [{"id": "t1", "label": "Berlin"}],
			"button_label": "Germany",
			"answer": {"t1": [500, 500]}
		}]
	}`)

	sub := TagPlacements{
		Alternative: 1,
		Positions:   map[string]exercise.Point{"t1": {X: 510, Y: 490}},
	}
	got, err := Evaluate(ex, sub)
	if err != nil || !got {
		t.Errorf("alternative grading = %v, %v; want true", got, err)
	}

	sub.Positions["t1"] = exercise.Point{X: 10, Y: 10}
	if got, _ := Evaluate(ex, sub); got {
		t.Error("alternative graded against the wrong answer set")
	}
}

func TestMultiQuestions(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "multi_questions",
		"question": "Both parts",
		"questions": [
			{"type": "mcq_single", "question": "p1", "options": ["a", "b"], "answer": [0]},
			{"type": "word_fill", "question": "p2", "sentence_parts": ["x ", ""], "answers": ["ok"]}
		]
	}`)

	tests := []struct {
		name    string
		sub     MultiAnswers
		want    bool
		invalid bool
	}{
		{"all correct", MultiAnswers{0: SingleChoice(0), 1: Texts{"ok"}}, true, false},
		{"one wrong", MultiAnswers{0: SingleChoice(1), 1: Texts{"ok"}}, false, false},
		{"unanswered part", MultiAnswers{0: SingleChoice(0)}, false, false},
		{"invalid part surfaces", MultiAnswers{0: SingleChoice(-1), 1: Texts{"ok"}}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ex, tt.sub)
			checkResult(t, got, err, tt.want, tt.invalid)
		})
	}
}

func TestUnsupportedKind(t *testing.T) {
	ex := &exercise.Exercise{Kind: "categorization"}
	_, err := Evaluate(ex, SingleChoice(0))
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v; want UnsupportedTypeError", err)
	}
}

// Evaluate must be repeatable: same inputs, same verdict, no mutation.
func TestEvaluateIsPure(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "mcq_multiple",
		"question": "Pick",
		"options": ["a", "b", "c"],
		"answer": [1, 2]
	}`)

	sub := MultiChoice{2, 1}
	for i := 0; i < 3; i++ {
		got, err := Evaluate(ex, sub)
		if err != nil || !got {
			t.Fatalf("call %d: Evaluate = %v, %v; want true", i, got, err)
		}
	}
}

func checkResult(t *testing.T, got bool, err error, want, wantInvalid bool) {
	t.Helper()
	if wantInvalid {
		var inv *InvalidSubmissionError
		if !errors.As(err, &inv) {
			t.Fatalf("err = %v; want InvalidSubmissionError", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Evaluate = %v; want %v", got, want)
	}
}
