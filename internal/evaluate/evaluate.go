package evaluate

import (
	"fmt"
	"math"
	"strings"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// TagTolerance is the maximum Euclidean distance, in source-image pixels,
// between a placed tag and its expected position for image_tagging.
// It is fixed to the original image scale and does not follow rescaling.
const TagTolerance = 50.0

// InvalidSubmissionError marks a submission that is malformed or
// incomplete for its kind. Distinct from "incorrect": it does not
// consume a scoring attempt and is reported inline.
type InvalidSubmissionError struct {
	Reason string
}

func (e *InvalidSubmissionError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &InvalidSubmissionError{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedTypeError marks an exercise whose kind is outside the
// catalogue: it is ungradable, never silently correct.
type UnsupportedTypeError struct {
	Kind exercise.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported exercise type %q", e.Kind)
}

// strategy grades one exercise kind.
type strategy interface {
	grade(ex *exercise.Exercise, sub Submission) (bool, error)
}

// strategies routes by kind, one entry per supported catalogue member.
var strategies = map[exercise.Kind]strategy{
	exercise.MCQSingle:          singleChoiceStrategy{},
	exercise.MCQMultiple:        multiChoiceStrategy{},
	exercise.ListPick:           multiChoiceStrategy{},
	exercise.WordFill:           textsStrategy{caseFold: true},
	exercise.FillBlanksDropdown: textsStrategy{},
	exercise.MatchPhrases:       mappingStrategy{},
	exercise.MatchSentence:      mappingStrategy{},
	exercise.Categorization:     mappingStrategy{},
	exercise.OrderPhrase:        orderingStrategy{},
	exercise.SequenceAudio:      sequenceStrategy{},
	exercise.ImageTagging:       tagStrategy{},
	exercise.MultiQuestions:     multiQuestionStrategy{},
}

// Evaluate returns whether sub is a correct answer for ex. It never
// mutates the exercise and is safe to call repeatedly; the caller owns
// score bookkeeping. A malformed submission returns a
// *InvalidSubmissionError, an out-of-catalogue kind a
// *UnsupportedTypeError.
func Evaluate(ex *exercise.Exercise, sub Submission) (bool, error) {
	s, ok := strategies[ex.Kind]
	if !ok {
		return false, &UnsupportedTypeError{Kind: ex.Kind}
	}
	return s.grade(ex, sub)
}

type singleChoiceStrategy struct{}

func (singleChoiceStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	choice, ok := sub.(SingleChoice)
	if !ok {
		return false, invalid("%s expects a single selection", ex.Kind)
	}
	if choice < 0 {
		return false, invalid("please select an answer")
	}
	for _, idx := range ex.AnswerIndices() {
		if int(choice) == idx {
			return true, nil
		}
	}
	return false, nil
}

type multiChoiceStrategy struct{}

func (multiChoiceStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	choices, ok := sub.(MultiChoice)
	if !ok {
		return false, invalid("%s expects a set of selections", ex.Kind)
	}
	if len(choices) == 0 {
		return false, invalid("please select at least one option")
	}
	return intSetEqual(choices, ex.AnswerIndices()), nil
}

// textsStrategy grades blank-fill answers element-wise, in order.
// word_fill folds case; fill_blanks_dropdown compares exactly.
type textsStrategy struct {
	caseFold bool
}

func (s textsStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	texts, ok := sub.(Texts)
	if !ok {
		return false, invalid("%s expects one text per blank", ex.Kind)
	}
	expected := ex.Answers
	if len(texts) != len(expected) {
		return false, nil
	}
	for i, want := range expected {
		got := strings.TrimSpace(texts[i])
		if s.caseFold {
			if !strings.EqualFold(got, want) {
				return false, nil
			}
		} else if got != want {
			return false, nil
		}
	}
	return true, nil
}

type mappingStrategy struct{}

func (mappingStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	m, ok := sub.(Mapping)
	if !ok {
		return false, invalid("%s expects a full matching", ex.Kind)
	}
	expected := ex.AnswerMapping()
	if len(m) != len(expected) {
		return false, nil
	}
	for key, want := range expected {
		if m[key] != want {
			return false, nil
		}
	}
	return true, nil
}

type orderingStrategy struct{}

func (orderingStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	order, ok := sub.(Ordering)
	if !ok {
		return false, invalid("order_phrase expects the full reordered list")
	}
	expected := ex.AnswerOrder()
	if len(order) != len(expected) {
		return false, nil
	}
	for i := range expected {
		if order[i] != expected[i] {
			return false, nil
		}
	}
	return true, nil
}

type sequenceStrategy struct{}

func (sequenceStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	seq, ok := sub.(Sequence)
	if !ok {
		return false, invalid("sequence_audio expects a numeric sequence")
	}
	expected := ex.AnswerIndices()
	if len(seq) != len(expected) {
		return false, invalid("please complete the sequence")
	}
	for i := range expected {
		if seq[i] != expected[i] {
			return false, nil
		}
	}
	return true, nil
}

// tagStrategy checks every expected tag of the current alternative
// against the placed position. A tag never placed sits at an effectively
// infinite distance and fails; the first failure short-circuits.
type tagStrategy struct{}

func (tagStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	placed, ok := sub.(TagPlacements)
	if !ok {
		return false, invalid("image_tagging expects tag placements")
	}
	alts := ex.TagAlternatives()
	if placed.Alternative < 0 || placed.Alternative >= len(alts) {
		return false, invalid("alternative %d does not exist", placed.Alternative)
	}
	for tagID, want := range alts[placed.Alternative].Answer {
		got, ok := placed.Positions[tagID]
		if !ok {
			return false, nil
		}
		if math.Hypot(want.X-got.X, want.Y-got.Y) > TagTolerance {
			return false, nil
		}
	}
	return true, nil
}

// multiQuestionStrategy ANDs the children: every child must evaluate
// correct under its own rule, using only that child's recorded
// submission. An unanswered child counts as incorrect. A child with an
// invalid submission surfaces as invalid for the whole block.
type multiQuestionStrategy struct{}

func (multiQuestionStrategy) grade(ex *exercise.Exercise, sub Submission) (bool, error) {
	answers, ok := sub.(MultiAnswers)
	if !ok {
		return false, invalid("multi_questions expects per-part answers")
	}
	for i := range ex.Children {
		child := &ex.Children[i]
		childSub, answered := answers[i]
		if !answered {
			return false, nil
		}
		correct, err := Evaluate(child, childSub)
		if err != nil {
			if inv, isInvalid := err.(*InvalidSubmissionError); isInvalid {
				return false, invalid("part %d: %s", i+1, inv.Reason)
			}
			return false, err
		}
		if !correct {
			return false, nil
		}
	}
	return true, nil
}

func intSetEqual(a, b []int) bool {
	as := make(map[int]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[int]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
