package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Emily9121/WifeyMOOC/internal/evaluate"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

const twoQuestionSet = `[
	{
		"type": "mcq_single",
		"question": "Comment dit-on hello ?",
		"options": ["Bonjour", "Au revoir"],
		"answer": [0]
	},
	{
		"type": "word_fill",
		"question": "Je ___ une femme.",
		"sentence_parts": ["Je ", " une femme."],
		"answers": ["suis"]
	}
]`

func loadSet(t *testing.T, content string) *exercise.Set {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write set: %v", err)
	}
	set, err := exercise.Load(path)
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	return set
}

func TestSessionFlow(t *testing.T) {
	sess := New(loadSet(t, twoQuestionSet))

	if sess.Completed() {
		t.Fatal("fresh session reports completed")
	}
	if sess.Current().Kind != exercise.MCQSingle {
		t.Fatalf("current kind = %q", sess.Current().Kind)
	}

	// Wrong answer: no score, no recorded answer, retry open.
	correct, err := sess.Submit(evaluate.SingleChoice(1))
	if err != nil || correct {
		t.Fatalf("wrong answer: got %v, %v", correct, err)
	}
	if sess.Progress.Score != 0 {
		t.Errorf("score after wrong answer = %d", sess.Progress.Score)
	}
	if _, answered := sess.Progress.Answered(0); answered {
		t.Error("wrong answer was recorded")
	}

	// Retry correct.
	correct, err = sess.Submit(evaluate.SingleChoice(0))
	if err != nil || !correct {
		t.Fatalf("correct answer: got %v, %v", correct, err)
	}
	if sess.Progress.Score != 1 {
		t.Errorf("score = %d; want 1", sess.Progress.Score)
	}
	if val, answered := sess.Progress.Answered(0); !answered || val != 0 {
		t.Errorf("recorded answer = %v, %v", val, answered)
	}

	sess.Advance()
	correct, err = sess.Submit(evaluate.Texts{"SUIS"})
	if err != nil || !correct {
		t.Fatalf("word_fill: got %v, %v", correct, err)
	}
	sess.Advance()

	if !sess.Completed() {
		t.Error("session not completed after final advance")
	}
	if sess.Current() != nil {
		t.Error("Current() after completion should be nil")
	}
	if _, err := sess.Submit(evaluate.SingleChoice(0)); err == nil {
		t.Error("Submit after completion should fail")
	}
}

// Repeating a correct submission must not double-count the score.
func TestScoreCountsOncePerExercise(t *testing.T) {
	sess := New(loadSet(t, twoQuestionSet))

	for i := 0; i < 3; i++ {
		if _, err := sess.Submit(evaluate.SingleChoice(0)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if sess.Progress.Score != 1 {
		t.Errorf("score = %d; want 1", sess.Progress.Score)
	}
}

func TestInvalidSubmissionDoesNotScore(t *testing.T) {
	sess := New(loadSet(t, twoQuestionSet))

	_, err := sess.Submit(evaluate.SingleChoice(-1))
	var inv *evaluate.InvalidSubmissionError
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v; want InvalidSubmissionError", err)
	}
	if sess.Progress.Score != 0 {
		t.Errorf("score = %d after invalid submission", sess.Progress.Score)
	}
}

func TestSaveAndResume(t *testing.T) {
	set := loadSet(t, twoQuestionSet)
	sess := New(set)

	if _, err := sess.Submit(evaluate.SingleChoice(0)); err != nil {
		t.Fatal(err)
	}
	sess.Advance()
	sess.PlaceTag(Scope(1), "t1", exercise.Point{X: 12, Y: 34})

	savePath := filepath.Join(t.TempDir(), "save.json")
	if err := sess.SaveProgress(savePath); err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}

	resumed, err := Resume(savePath)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if resumed.Progress.Position != 1 {
		t.Errorf("position = %d; want 1", resumed.Progress.Position)
	}
	if resumed.Progress.Score != 1 {
		t.Errorf("score = %d; want 1", resumed.Progress.Score)
	}
	if _, answered := resumed.Progress.Answered(0); !answered {
		t.Error("recorded answer lost across resume")
	}
	if got := resumed.Progress.TagsFor(Scope(1)); got["t1"] != (exercise.Point{X: 12, Y: 34}) {
		t.Errorf("tag positions lost: %v", got)
	}

	// The restored scored set must keep index 0 from re-scoring.
	resumed.Progress.RecordAnswer(0, 0, true)
	if resumed.Progress.Score != 1 {
		t.Errorf("score re-counted after resume: %d", resumed.Progress.Score)
	}
}

func TestResumeMissingSetFile(t *testing.T) {
	set := loadSet(t, twoQuestionSet)
	sess := New(set)

	savePath := filepath.Join(t.TempDir(), "save.json")
	if err := sess.SaveProgress(savePath); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(set.Path); err != nil {
		t.Fatal(err)
	}

	_, err := Resume(savePath)
	var re *ResumeError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v; want ResumeError", err)
	}
	if re.Path != set.Path {
		t.Errorf("ResumeError.Path = %q; want %q", re.Path, set.Path)
	}
}

func TestResumeGarbageSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte(`{"score": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Resume(path); err == nil {
		t.Error("garbage snapshot resumed without error")
	}
}
