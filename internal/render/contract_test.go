package render

import (
	"encoding/json"
	"math/rand/v2"
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

const mcqWithImage = `{
	"type": "mcq_single",
	"question": "Quelle ville ?",
	"media": {"image": "city.png", "audio": "city.mp3"},
	"options": ["Paris", "Lyon"],
	"answer": [0]
}`

func TestImageDeferralPolicy(t *testing.T) {
	ex := mustExercise(t, mcqWithImage)

	print := Build(ex, 4, Options{Target: Print})
	if print.InlineImage != "" {
		t.Errorf("print target rendered image inline: %q", print.InlineImage)
	}
	if len(print.Deferred) != 1 || print.Deferred[0].Path != "city.png" {
		t.Fatalf("deferred = %+v", print.Deferred)
	}
	if print.Deferred[0].ExerciseNumber != 4 || print.Deferred[0].Question != "Quelle ville ?" {
		t.Errorf("deferred annotation = %+v", print.Deferred[0])
	}
	if print.Audio != "city.mp3" {
		t.Errorf("audio dropped: %q", print.Audio)
	}

	interactive := Build(ex, 4, Options{Target: Interactive})
	if interactive.InlineImage != "city.png" || len(interactive.Deferred) != 0 {
		t.Errorf("interactive target: inline %q, deferred %v", interactive.InlineImage, interactive.Deferred)
	}
}

func TestImageTaggingNeverDefers(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "image_tagging",
		"question": "Tag",
		"media": {"image": "map.png"},
		"tags": [{"id": "t1", "label": "Paris"}],
		"answer": {"t1": [1, 2]}
	}`)

	plan := Build(ex, 1, Options{Target: Print})
	if len(plan.Deferred) != 0 || plan.InlineImage != "" {
		t.Errorf("image_tagging image left the tag board: inline %q, deferred %v", plan.InlineImage, plan.Deferred)
	}
	board, ok := plan.Elements[0].(TagBoard)
	if !ok {
		t.Fatalf("element = %T; want TagBoard", plan.Elements[0])
	}
	if board.Image != "map.png" || len(board.Tags) != 1 {
		t.Errorf("board = %+v", board)
	}
}

func TestUnsupportedKindPlan(t *testing.T) {
	ex := mustExercise(t, `{"type": "categorization", "question": "legacy"}`)
	plan := Build(ex, 1, Options{})
	if !plan.Unsupported {
		t.Error("legacy kind not marked unsupported")
	}
	if len(plan.Elements) != 0 {
		t.Errorf("unsupported plan has elements: %v", plan.Elements)
	}
}

func TestMatchSentenceShuffle(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "match_sentence",
		"question": "Match",
		"pairs": [
			{"sentence": "s1", "image_path": "i1.png"},
			{"sentence": "s2", "image_path": "i2.png"},
			{"sentence": "s3", "image_path": "i3.png"},
			{"sentence": "s4", "image_path": "i4.png"}
		],
		"answer": {"i1.png": "s1", "i2.png": "s2", "i3.png": "s3", "i4.png": "s4"}
	}`)

	rng := rand.New(rand.NewPCG(1, 2))
	plan := Build(ex, 1, Options{Target: Interactive, Rand: rng})

	images, ok := plan.Elements[0].(ShuffledImages)
	if !ok {
		t.Fatalf("element 0 = %T; want ShuffledImages", plan.Elements[0])
	}
	if len(images.Images) != 4 {
		t.Fatalf("got %d images; want 4", len(images.Images))
	}

	// Labels run A..D in display order and the image set is intact.
	seen := make(map[string]bool)
	for i, img := range images.Images {
		if want := string(rune('A' + i)); img.Label != want {
			t.Errorf("label[%d] = %q; want %q", i, img.Label, want)
		}
		seen[img.ImagePath] = true
	}
	for _, path := range []string{"i1.png", "i2.png", "i3.png", "i4.png"} {
		if !seen[path] {
			t.Errorf("image %q lost in shuffle", path)
		}
	}

	sentences, ok := plan.Elements[1].(SentenceList)
	if !ok {
		t.Fatalf("element 1 = %T; want SentenceList", plan.Elements[1])
	}
	if len(sentences.Sentences) != 4 || sentences.Sentences[0] != "s1" {
		t.Errorf("sentences = %v; want document order", sentences.Sentences)
	}

	// Same seed, same permutation.
	again := Build(ex, 1, Options{Target: Interactive, Rand: rand.New(rand.NewPCG(1, 2))})
	a := again.Elements[0].(ShuffledImages)
	for i := range a.Images {
		if a.Images[i].ImagePath != images.Images[i].ImagePath {
			t.Errorf("seeded shuffle not reproducible at %d", i)
		}
	}
}

func TestImageLabels(t *testing.T) {
	cases := []struct {
		pos  int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tc := range cases {
		if got := imageLabel(tc.pos); got != tc.want {
			t.Errorf("imageLabel(%d) = %q; want %q", tc.pos, got, tc.want)
		}
	}

	// Past Z the labels stay letters instead of running off the
	// alphabet.
	pairs := make([]exercise.Pair, 30)
	for i := range pairs {
		pairs[i] = exercise.Pair{Sentence: "s", ImagePath: "i.png"}
	}
	for i, img := range shuffleImages(pairs, rand.New(rand.NewPCG(0, 0))) {
		for _, r := range img.Label {
			if r < 'A' || r > 'Z' {
				t.Errorf("label[%d] = %q contains non-letter %q", i, img.Label, r)
			}
		}
	}
}

func TestMultiQuestionsChildren(t *testing.T) {
	ex := mustExercise(t, `{
		"type": "multi_questions",
		"question": "Block",
		"questions": [
			{"type": "mcq_single", "question": "p1", "options": ["a"], "answer": [0]},
			{"type": "word_fill", "question": "p2", "sentence_parts": ["x ", ""], "answers": ["y"]}
		]
	}`)

	plan := Build(ex, 2, Options{})
	if len(plan.Children) != 2 {
		t.Fatalf("children = %d; want 2", len(plan.Children))
	}
	if plan.Children[0].Kind != exercise.MCQSingle || plan.Children[1].Kind != exercise.WordFill {
		t.Errorf("child kinds = %q, %q", plan.Children[0].Kind, plan.Children[1].Kind)
	}
	if plan.Children[0].Number != 2 {
		t.Errorf("child number = %d; want parent's 2", plan.Children[0].Number)
	}
}
