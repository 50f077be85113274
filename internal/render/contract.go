// Package render describes, per exercise kind, what a renderer must show.
// Plans are pure data: the interactive player, the worksheet writer and
// an authoring preview all consume the same plan and apply their own
// styling, so the three targets cannot drift apart.
package render

import (
	"math/rand/v2"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// Target selects the rendering policy variant.
type Target int

const (
	// Interactive renders media inline at the point of use.
	Interactive Target = iota
	// Print defers images of simple kinds to a reference section.
	Print
)

// Options control a single render pass.
type Options struct {
	Target Target

	// Rand drives label randomization. It is drawn fresh per render
	// pass; the resulting permutation is never persisted. Nil falls
	// back to the shared global source.
	Rand *rand.Rand

	// TagAlternative selects the image/tag set shown for a standalone
	// image_tagging exercise.
	TagAlternative int

	// ChildTagAlternatives selects per-child alternatives inside a
	// multi_questions block, keyed by child index.
	ChildTagAlternatives map[int]int
}

// ImageRef is an image pushed to the end-of-document reference section,
// keyed by path and annotated with its owning exercise.
type ImageRef struct {
	Path           string
	ExerciseNumber int
	Question       string
}

// LabeledImage is one image shown under a randomized letter label.
type LabeledImage struct {
	Label     string // "A", "B", ...
	ImagePath string
}

// Element is one structural piece of an exercise's rendering.
// The concrete types below are the only implementations.
type Element interface {
	element()
}

// OptionList enumerates selectable options. Multi selects checkbox
// semantics over radio semantics; nothing is pre-selected.
type OptionList struct {
	Options []exercise.Option
	Multi   bool
}

// ClozeText is a sentence with typed blanks: Parts interleave with
// Blanks empty entry lines of fixed width.
type ClozeText struct {
	Parts  []string
	Blanks int
}

// DropdownBlanks is a sentence whose blanks each carry their own
// choice list; an unanswered blank is an empty dropdown.
type DropdownBlanks struct {
	Parts   []string
	Choices [][]string
}

// MatchSources lists phrase beginnings with their per-source target
// choices; unanswered shows an empty line per source.
type MatchSources struct {
	Pairs []exercise.Pair
}

// ShuffledImages presents images in randomized lettered order so
// position carries no pairing information.
type ShuffledImages struct {
	Images []LabeledImage
}

// SentenceList numbers the sentences to be matched against images.
type SentenceList struct {
	Sentences []string
}

// PhraseList numbers phrases to be reordered; each gets an empty
// position slot.
type PhraseList struct {
	Phrases []string
}

// AudioSequence numbers listening items, each with an empty order slot.
type AudioSequence struct {
	Labels []string
}

// CategoryBank enumerates the available category labels.
type CategoryBank struct {
	Categories []string
}

// StimulusList enumerates the items to be categorized, each with an
// empty category slot.
type StimulusList struct {
	Stimuli []exercise.Stimulus
}

// TagBoard is the draggable-tag surface of one image_tagging
// alternative. Alternatives > 1 means the renderer must offer cycling.
type TagBoard struct {
	Image        string
	Tags         []exercise.TagSpot
	ButtonLabel  string
	Alternative  int
	Alternatives int
}

func (OptionList) element()     {}
func (ClozeText) element()      {}
func (DropdownBlanks) element() {}
func (MatchSources) element()   {}
func (ShuffledImages) element() {}
func (SentenceList) element()   {}
func (PhraseList) element()     {}
func (AudioSequence) element()  {}
func (CategoryBank) element()   {}
func (StimulusList) element()   {}
func (TagBoard) element()       {}

// Plan is everything a renderer must show for one exercise.
type Plan struct {
	Number    int
	Kind      exercise.Kind
	Question  string
	Hint      string
	LessonPDF string

	// Audio and Video are always referenced by name, never embedded.
	Audio string
	Video string

	// InlineImage is the exercise image to render at the point of use;
	// empty when there is none or when policy deferred it.
	InlineImage string

	// Deferred carries images pushed to the reference section
	// (Print target, simple kinds only).
	Deferred []ImageRef

	Elements []Element

	// Unsupported marks an out-of-catalogue kind: render a visible
	// placeholder, grade nothing.
	Unsupported bool

	// Children holds sub-plans for a multi_questions block.
	Children []Plan
}

// Build produces the render plan for one exercise. number is the
// 1-based presentation number used for headings and image references.
func Build(ex *exercise.Exercise, number int, opts Options) Plan {
	plan := Plan{
		Number:   number,
		Kind:     ex.Kind,
		Question: ex.Question,
		Hint:     ex.Hint,
	}
	if ex.Lesson != nil {
		plan.LessonPDF = ex.Lesson.PDF
	}
	if !ex.Kind.Supported() {
		plan.Unsupported = true
		return plan
	}

	if ex.Media != nil {
		plan.Audio = ex.Media.Audio
		plan.Video = ex.Media.Video
		if img := ex.Media.Image; img != "" && ex.Kind != exercise.ImageTagging {
			if opts.Target == Print && ex.Kind.Simple() {
				plan.Deferred = append(plan.Deferred, ImageRef{
					Path:           img,
					ExerciseNumber: number,
					Question:       ex.Question,
				})
			} else {
				plan.InlineImage = img
			}
		}
	}

	switch ex.Kind {
	case exercise.MCQSingle:
		plan.Elements = append(plan.Elements, OptionList{Options: ex.Options})
	case exercise.MCQMultiple, exercise.ListPick:
		plan.Elements = append(plan.Elements, OptionList{Options: ex.Options, Multi: true})
	case exercise.WordFill:
		plan.Elements = append(plan.Elements, ClozeText{Parts: ex.SentenceParts, Blanks: len(ex.Answers)})
	case exercise.FillBlanksDropdown:
		plan.Elements = append(plan.Elements, DropdownBlanks{Parts: ex.SentenceParts, Choices: ex.OptionsForBlanks})
	case exercise.MatchPhrases:
		plan.Elements = append(plan.Elements, MatchSources{Pairs: ex.Pairs})
	case exercise.MatchSentence:
		plan.Elements = append(plan.Elements,
			ShuffledImages{Images: shuffleImages(ex.Pairs, opts.Rand)},
			SentenceList{Sentences: pairSentences(ex.Pairs)},
		)
	case exercise.OrderPhrase:
		plan.Elements = append(plan.Elements, PhraseList{Phrases: ex.PhraseShuffled})
	case exercise.SequenceAudio:
		labels := make([]string, len(ex.AudioOptions))
		for i, opt := range ex.AudioOptions {
			labels[i] = opt.Option
		}
		plan.Elements = append(plan.Elements, AudioSequence{Labels: labels})
	case exercise.Categorization:
		plan.Elements = append(plan.Elements,
			CategoryBank{Categories: ex.Categories},
			StimulusList{Stimuli: ex.Stimuli},
		)
	case exercise.ImageTagging:
		alts := ex.TagAlternatives()
		idx := opts.TagAlternative
		if idx < 0 || idx >= len(alts) {
			idx = 0
		}
		alt := alts[idx]
		board := TagBoard{
			Tags:         alt.Tags,
			ButtonLabel:  alt.ButtonLabel,
			Alternative:  idx,
			Alternatives: len(alts),
		}
		if alt.Media != nil {
			board.Image = alt.Media.Image
		}
		plan.Elements = append(plan.Elements, board)
	case exercise.MultiQuestions:
		for i := range ex.Children {
			childOpts := opts
			childOpts.TagAlternative = opts.ChildTagAlternatives[i]
			plan.Children = append(plan.Children, Build(&ex.Children[i], number, childOpts))
		}
	}

	return plan
}

// shuffleImages draws a fresh permutation of the pair images for this
// render pass. Only the set of labels is stable, never their order.
func shuffleImages(pairs []exercise.Pair, rng *rand.Rand) []LabeledImage {
	perm := make([]int, len(pairs))
	for i := range perm {
		perm[i] = i
	}
	shuffle := func(i, j int) { perm[i], perm[j] = perm[j], perm[i] }
	if rng != nil {
		rng.Shuffle(len(perm), shuffle)
	} else {
		rand.Shuffle(len(perm), shuffle)
	}

	images := make([]LabeledImage, len(perm))
	for pos, orig := range perm {
		images[pos] = LabeledImage{
			Label:     imageLabel(pos),
			ImagePath: pairs[orig].ImagePath,
		}
	}
	return images
}

// imageLabel spells position 0..25 as A..Z, then AA, AB, and so on.
func imageLabel(pos int) string {
	var label string
	for pos >= 0 {
		label = string(rune('A'+pos%26)) + label
		pos = pos/26 - 1
	}
	return label
}

func pairSentences(pairs []exercise.Pair) []string {
	sentences := make([]string, len(pairs))
	for i, p := range pairs {
		sentences[i] = p.Sentence
	}
	return sentences
}
