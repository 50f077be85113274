package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Emily9121/WifeyMOOC/internal/evaluate"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// Session ties one exercise set to one attempt's progress. Per exercise
// the state machine is: unanswered → submitted-incorrect (retry allowed,
// no lockout) → submitted-correct → advanced. Globally the session is
// completed once position reaches the set length.
type Session struct {
	// ID identifies this attempt; it is not persisted in the snapshot.
	ID       string
	Set      *exercise.Set
	Progress *Progress
}

// New starts a fresh session over a loaded set.
func New(set *exercise.Set) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Set:      set,
		Progress: NewProgress(),
	}
}

// Resume rebuilds a session from a snapshot file. The referenced
// exercise set is reloaded from its recorded path; a missing or
// unreadable path is a *ResumeError and leaves no partial session.
func Resume(snapshotPath string) (*Session, error) {
	data, err := os.ReadFile(snapshotPath)
	if err != nil {
		return nil, fmt.Errorf("read progress snapshot: %w", err)
	}
	snap, err := ReadSnapshot(data)
	if err != nil {
		return nil, err
	}
	set, err := exercise.Load(snap.QuestionFile)
	if err != nil {
		return nil, &ResumeError{Path: snap.QuestionFile, Err: err}
	}
	return &Session{
		ID:       uuid.NewString(),
		Set:      set,
		Progress: restoreProgress(snap),
	}, nil
}

// Current returns the exercise at the session position, or nil once
// completed.
func (s *Session) Current() *exercise.Exercise {
	if s.Completed() {
		return nil
	}
	return &s.Set.Exercises[s.Progress.Position]
}

// Completed reports the global terminal state.
func (s *Session) Completed() bool {
	return s.Progress.Completed(s.Set.Len())
}

// Submit evaluates sub against the current exercise. A correct result
// records the answer and scores the index at most once; an incorrect
// result changes nothing and the exercise stays open for retry.
// Invalid submissions surface as *evaluate.InvalidSubmissionError
// without consuming an attempt.
func (s *Session) Submit(sub evaluate.Submission) (bool, error) {
	ex := s.Current()
	if ex == nil {
		return false, fmt.Errorf("session already completed")
	}
	correct, err := evaluate.Evaluate(ex, sub)
	if err != nil {
		return false, err
	}
	if correct {
		s.Progress.RecordAnswer(s.Progress.Position, recordedValue(sub), true)
	}
	return correct, nil
}

// Advance moves to the next exercise; no-op once completed.
func (s *Session) Advance() {
	s.Progress.Advance(s.Set.Len())
}

// PlaceTag records a drag placement, independent of submission.
func (s *Session) PlaceTag(key ScopeKey, tagID string, pos exercise.Point) {
	s.Progress.PlaceTag(key, tagID, pos)
}

// SaveProgress writes the snapshot next to wherever the caller chose.
func (s *Session) SaveProgress(path string) error {
	snap := s.Progress.Snapshot(s.Set.Path)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress snapshot: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write progress snapshot: %w", err)
	}
	return nil
}

// recordedValue converts a submission to the plain JSON shape the
// snapshot stores. Multi-question blocks store the completion marker the
// original file format uses.
func recordedValue(sub evaluate.Submission) any {
	switch v := sub.(type) {
	case evaluate.SingleChoice:
		return int(v)
	case evaluate.MultiChoice:
		return []int(v)
	case evaluate.Texts:
		return []string(v)
	case evaluate.Mapping:
		return map[string]string(v)
	case evaluate.Ordering:
		return []string(v)
	case evaluate.Sequence:
		return []int(v)
	case evaluate.TagPlacements:
		placed := make(map[string]exercise.Point, len(v.Positions))
		for id, pos := range v.Positions {
			placed[id] = pos
		}
		return placed
	case evaluate.MultiAnswers:
		return "multi_question_completed"
	default:
		return nil
	}
}
