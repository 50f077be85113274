package player

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/Emily9121/WifeyMOOC/internal/evaluate"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/render"
)

func mustExercise(t *testing.T, raw string) *exercise.Exercise {
	t.Helper()
	var ex exercise.Exercise
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		t.Fatalf("decode exercise: %v", err)
	}
	return &ex
}

func TestParseSingleChoice(t *testing.T) {
	ex := mustExercise(t, `{"type": "mcq_single", "question": "q", "options": ["a", "b", "c"], "answer": [1]}`)

	sub, err := ParseSubmission(ex, " 2 ", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sub != evaluate.SingleChoice(1) {
		t.Errorf("sub = %v; want SingleChoice(1)", sub)
	}

	for _, bad := range []string{"", "0", "4", "x"} {
		if _, err := ParseSubmission(ex, bad, 0, nil); err == nil {
			t.Errorf("input %q accepted", bad)
		}
	}
}

func TestParseMultiChoice(t *testing.T) {
	ex := mustExercise(t, `{"type": "list_pick", "question": "q", "options": ["a", "b", "c"], "answer": [0, 2]}`)

	sub, err := ParseSubmission(ex, "3, 1, 3", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, evaluate.MultiChoice{2, 0}) {
		t.Errorf("sub = %v; want de-duplicated {2, 0}", sub)
	}
}

func TestParseTexts(t *testing.T) {
	ex := mustExercise(t, `{"type": "word_fill", "question": "q", "sentence_parts": ["a ", " b ", ""], "answers": ["x", "y"]}`)

	sub, err := ParseSubmission(ex, " x ; y ", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, evaluate.Texts{"x", "y"}) {
		t.Errorf("sub = %v", sub)
	}
}

func TestParseMatchPhrases(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "match_phrases",
		"question": "q",
		"pairs": [
			{"source": "Je", "targets": ["suis", "es"]},
			{"source": "Tu", "targets": ["suis", "es"]}
		],
		"answer": {"Je": "suis", "Tu": "es"}
	}`)

	sub, err := ParseSubmission(ex, "1:1, 2:2", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := evaluate.Mapping{"Je": "suis", "Tu": "es"}
	if !reflect.DeepEqual(sub, want) {
		t.Errorf("sub = %v; want %v", sub, want)
	}

	if _, err := ParseSubmission(ex, "1:1, 1:2", 0, nil); err == nil {
		t.Error("duplicate source accepted")
	}
	if _, err := ParseSubmission(ex, "1:9", 0, nil); err == nil {
		t.Error("target out of range accepted")
	}
}

func TestParseMatchSentence(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "match_sentence",
		"question": "q",
		"pairs": [
			{"sentence": "s1", "image_path": "i1.png"},
			{"sentence": "s2", "image_path": "i2.png"}
		],
		"answer": {"i1.png": "s1", "i2.png": "s2"}
	}`)

	// Letters follow the displayed order, which here inverts storage
	// order.
	images := []render.LabeledImage{
		{Label: "A", ImagePath: "i2.png"},
		{Label: "B", ImagePath: "i1.png"},
	}

	sub, err := ParseSubmission(ex, "a:2, B:1", 0, images)
	if err != nil {
		t.Fatal(err)
	}
	want := evaluate.Mapping{"i2.png": "s2", "i1.png": "s1"}
	if !reflect.DeepEqual(sub, want) {
		t.Errorf("sub = %v; want %v", sub, want)
	}

	if _, err := ParseSubmission(ex, "C:1", 0, images); err == nil {
		t.Error("unknown image letter accepted")
	}
}

// A learner answering faithfully to the letters on screen must grade
// correct no matter how the images were shuffled.
func TestMatchSentenceGradesDisplayedLabels(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "match_sentence",
		"question": "q",
		"pairs": [
			{"sentence": "s1", "image_path": "i1.png"},
			{"sentence": "s2", "image_path": "i2.png"},
			{"sentence": "s3", "image_path": "i3.png"},
			{"sentence": "s4", "image_path": "i4.png"}
		],
		"answer": {"i1.png": "s1", "i2.png": "s2", "i3.png": "s3", "i4.png": "s4"}
	}`)

	sentenceNumber := func(path string) int {
		for i, p := range ex.Pairs {
			if p.ImagePath == path {
				return i + 1
			}
		}
		t.Fatalf("no pair for %q", path)
		return 0
	}

	for seed := uint64(0); seed < 8; seed++ {
		plan := render.Build(ex, 1, render.Options{
			Target: render.Interactive,
			Rand:   rand.New(rand.NewPCG(seed, 0)),
		})
		images := planImages(plan)
		if len(images) != len(ex.Pairs) {
			t.Fatalf("seed %d: %d labeled images; want %d", seed, len(images), len(ex.Pairs))
		}

		var parts []string
		for _, img := range images {
			parts = append(parts, fmt.Sprintf("%s:%d", img.Label, sentenceNumber(img.ImagePath)))
		}
		sub, err := ParseSubmission(ex, strings.Join(parts, ", "), 0, images)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		correct, err := evaluate.Evaluate(ex, sub)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !correct {
			t.Errorf("seed %d: display-faithful answer %q graded incorrect", seed, strings.Join(parts, ", "))
		}
	}
}

func TestParseOrdering(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "order_phrase",
		"question": "q",
		"phrase_shuffled": ["second", "first", "third"],
		"answer": ["first", "second", "third"]
	}`)

	sub, err := ParseSubmission(ex, "2,1,3", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := evaluate.Ordering{"first", "second", "third"}
	if !reflect.DeepEqual(sub, want) {
		t.Errorf("sub = %v; want %v", sub, want)
	}

	if _, err := ParseSubmission(ex, "2,1", 0, nil); err == nil {
		t.Error("partial order accepted")
	}
}

func TestParseSequence(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "sequence_audio",
		"question": "q",
		"audio_options": [{"option": "x"}, {"option": "y"}],
		"answer": [1, 0]
	}`)

	sub, err := ParseSubmission(ex, "2,1", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, evaluate.Sequence{1, 0}) {
		t.Errorf("sub = %v", sub)
	}
}

func TestParsePlacements(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "image_tagging",
		"question": "q",
		"media": {"image": "m.png"},
		"tags": [{"id": "paris", "label": "Paris"}, {"id": "lyon", "label": "Lyon"}],
		"answer": {"paris": [100, 100], "lyon": [200, 200]}
	}`)

	sub, err := ParseSubmission(ex, "1:120,80; 2:190.5,210", 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	placed, ok := sub.(evaluate.TagPlacements)
	if !ok {
		t.Fatalf("sub = %T", sub)
	}
	if placed.Positions["paris"] != (exercise.Point{X: 120, Y: 80}) {
		t.Errorf("paris = %v", placed.Positions["paris"])
	}
	if placed.Positions["lyon"] != (exercise.Point{X: 190.5, Y: 210}) {
		t.Errorf("lyon = %v", placed.Positions["lyon"])
	}

	for _, bad := range []string{"", "1:120", "3:1,1", "1:x,y"} {
		if _, err := ParseSubmission(ex, bad, 0, nil); err == nil {
			t.Errorf("input %q accepted", bad)
		}
	}
}

func TestParseMultiQuestionsRejected(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "multi_questions",
		"question": "q",
		"questions": [{"type": "mcq_single", "question": "p", "options": ["a"], "answer": [0]}]
	}`)
	if _, err := ParseSubmission(ex, "1", 0, nil); err == nil {
		t.Error("multi_questions must be assembled per part, not parsed whole")
	}
}
