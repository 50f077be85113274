package evaluate

import "github.com/Emily9121/WifeyMOOC/internal/exercise"

// Submission is a candidate answer in the shape its exercise kind
// expects. The concrete types below are the only implementations.
type Submission interface {
	submission()
}

// SingleChoice is a selected option index for mcq_single.
// A negative value means "nothing selected".
type SingleChoice int

// MultiChoice is the set of selected option indices for
// mcq_multiple and list_pick.
type MultiChoice []int

// Texts holds one typed string per blank for word_fill and
// fill_blanks_dropdown, in sentence order.
type Texts []string

// Mapping is a key→value submission for match_phrases (source→target),
// match_sentence (image path→sentence) and categorization_multiple
// (stimulus key→category).
type Mapping map[string]string

// Ordering is the learner's full reordering for order_phrase.
type Ordering []string

// Sequence holds 0-based option indices in listening order
// for sequence_audio.
type Sequence []int

// TagPlacements holds drag positions for one image_tagging alternative.
type TagPlacements struct {
	// Alternative selects which image/tag set the positions belong to
	// (0 is the exercise's own set).
	Alternative int
	Positions   map[string]exercise.Point
}

// MultiAnswers maps child index to that child's submission for a
// multi_questions block. A missing child counts as unanswered.
type MultiAnswers map[int]Submission

func (SingleChoice) submission()  {}
func (MultiChoice) submission()   {}
func (Texts) submission()         {}
func (Mapping) submission()       {}
func (Ordering) submission()      {}
func (Sequence) submission()      {}
func (TagPlacements) submission() {}
func (MultiAnswers) submission()  {}
