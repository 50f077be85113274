package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// Snapshot is the on-disk progress format. It references the exercise
// set by path, never by embedding it, so the set file must still exist
// and parse to resume.
type Snapshot struct {
	QuestionFile    string                               `json:"question_file"`
	CurrentQuestion int                                  `json:"current_question"`
	StudentAnswers  map[string]any                       `json:"student_answers"`
	Score           int                                  `json:"score"`
	TagPositions    map[string]map[string]exercise.Point `json:"tag_positions_dict"`
}

// ResumeError reports a snapshot whose referenced exercise-set file is
// missing or unreadable. Resume aborts; no partial state is loaded.
type ResumeError struct {
	Path string
	Err  error
}

func (e *ResumeError) Error() string {
	return fmt.Sprintf("cannot resume: exercise set %q: %v", e.Path, e.Err)
}

func (e *ResumeError) Unwrap() error { return e.Err }

// Snapshot serializes the progress for the set file at questionFile.
func (p *Progress) Snapshot(questionFile string) *Snapshot {
	return &Snapshot{
		QuestionFile:    questionFile,
		CurrentQuestion: p.Position,
		StudentAnswers:  p.Answers,
		Score:           p.Score,
		TagPositions:    p.TagPositions,
	}
}

// restoreProgress rebuilds a Progress from a decoded snapshot.
// The scored set is rebuilt from the recorded answers: an answer is only
// recorded once its exercise was answered correctly.
func restoreProgress(snap *Snapshot) *Progress {
	p := NewProgress()
	p.Position = snap.CurrentQuestion
	p.Score = snap.Score
	if snap.StudentAnswers != nil {
		p.Answers = snap.StudentAnswers
	}
	if snap.TagPositions != nil {
		p.TagPositions = snap.TagPositions
	}
	for key := range p.Answers {
		p.scored[key] = true
	}
	return p
}

// ReadSnapshot decodes a snapshot blob and verifies the referenced
// exercise-set file is readable. Failures are *ResumeError; the caller's
// session state stays untouched.
func ReadSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse progress snapshot: %w", err)
	}
	if snap.QuestionFile == "" {
		return nil, &ResumeError{Path: "", Err: fmt.Errorf("snapshot has no question_file")}
	}
	if _, err := os.Stat(snap.QuestionFile); err != nil {
		return nil, &ResumeError{Path: snap.QuestionFile, Err: err}
	}
	return &snap, nil
}
