package session

import (
	"strconv"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// Progress is the mutable state of one attempt at an exercise set.
// It references the set only by path (through the snapshot); it never
// owns the exercise data.
type Progress struct {
	// Position indexes the current exercise; Position == set length
	// means the session is completed.
	Position int

	// Answers records the last correct submission per exercise index,
	// string-keyed as in the snapshot file.
	Answers map[string]any

	// Score counts exercises answered correctly at least once.
	Score int

	// TagPositions holds last-known tag placements per scope key,
	// updated continuously by drag gestures rather than on submit.
	TagPositions map[string]map[string]exercise.Point

	// scored guards Score: an index contributes at most once however
	// often it is revisited.
	scored map[string]bool
}

// NewProgress returns a fresh Progress positioned at the first exercise.
func NewProgress() *Progress {
	return &Progress{
		Answers:      make(map[string]any),
		TagPositions: make(map[string]map[string]exercise.Point),
		scored:       make(map[string]bool),
	}
}

// Advance moves to the next exercise. Past length it is a no-op:
// Completed is terminal.
func (p *Progress) Advance(length int) {
	if p.Position < length {
		p.Position++
	}
}

// Completed reports whether the whole set has been worked through.
func (p *Progress) Completed(length int) bool {
	return p.Position >= length
}

// RecordAnswer stores value for the exercise at index. When correct, the
// score is incremented exactly once per index; repeat-correct
// submissions never double-count.
func (p *Progress) RecordAnswer(index int, value any, correct bool) {
	key := strconv.Itoa(index)
	p.Answers[key] = value
	if correct && !p.scored[key] {
		p.scored[key] = true
		p.Score++
	}
}

// Answered returns the recorded answer for index, if any.
func (p *Progress) Answered(index int) (any, bool) {
	v, ok := p.Answers[strconv.Itoa(index)]
	return v, ok
}

// PlaceTag updates a tag's last-known position inside its scope.
func (p *Progress) PlaceTag(key ScopeKey, tagID string, pos exercise.Point) {
	scope := key.String()
	tags := p.TagPositions[scope]
	if tags == nil {
		tags = make(map[string]exercise.Point)
		p.TagPositions[scope] = tags
	}
	tags[tagID] = pos
}

// TagsFor returns the placements recorded under key. The map is shared;
// callers must not mutate it.
func (p *Progress) TagsFor(key ScopeKey) map[string]exercise.Point {
	return p.TagPositions[key.String()]
}
