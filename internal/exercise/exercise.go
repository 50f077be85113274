package exercise

import (
	"encoding/json"
	"fmt"
)

// Kind is the type tag selecting an exercise variant. The catalogue is
// closed: anything outside it loads, but renders as an unsupported
// placeholder and can never be graded.
type Kind string

const (
	MCQSingle          Kind = "mcq_single"
	MCQMultiple        Kind = "mcq_multiple"
	ListPick           Kind = "list_pick"
	WordFill           Kind = "word_fill"
	FillBlanksDropdown Kind = "fill_blanks_dropdown"
	MatchPhrases       Kind = "match_phrases"
	MatchSentence      Kind = "match_sentence"
	OrderPhrase        Kind = "order_phrase"
	SequenceAudio      Kind = "sequence_audio"
	Categorization     Kind = "categorization_multiple"
	ImageTagging       Kind = "image_tagging"
	MultiQuestions     Kind = "multi_questions"
)

// Kinds lists the supported catalogue in presentation order.
var Kinds = []Kind{
	MCQSingle, MCQMultiple, ListPick, WordFill, FillBlanksDropdown,
	MatchPhrases, MatchSentence, OrderPhrase, SequenceAudio,
	Categorization, ImageTagging, MultiQuestions,
}

// Supported returns true if k is in the closed catalogue.
func (k Kind) Supported() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Simple reports whether k follows the image-deferral policy: its image,
// if any, is pushed to the end-of-document reference section in print
// output instead of being rendered inline.
func (k Kind) Simple() bool {
	switch k {
	case MCQSingle, MCQMultiple, ListPick, FillBlanksDropdown, WordFill, SequenceAudio, OrderPhrase:
		return true
	}
	return false
}

// Media holds optional media references attached to an exercise.
// Paths are as authored; resolve them against the set's base directory.
type Media struct {
	Video string `json:"video,omitempty"`
	Audio string `json:"audio,omitempty"`
	Image string `json:"image,omitempty"`
}

// Lesson references a supplementary document for an exercise.
type Lesson struct {
	PDF string `json:"pdf,omitempty"`
}

// Option is one MCQ/list option: either a bare string or an
// {image, text} object on the wire.
type Option struct {
	Text  string
	Image string
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var obj struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("option must be a string or {image, text}: %w", err)
	}
	o.Text = obj.Text
	o.Image = obj.Image
	return nil
}

func (o Option) MarshalJSON() ([]byte, error) {
	if o.Image == "" {
		return json.Marshal(o.Text)
	}
	return json.Marshal(struct {
		Text  string `json:"text"`
		Image string `json:"image"`
	}{o.Text, o.Image})
}

// Pair is one matching pair. match_phrases uses Source/Targets,
// match_sentence uses Sentence/ImagePath; the wire key is "pairs" for both.
type Pair struct {
	Source    string   `json:"source,omitempty"`
	Targets   []string `json:"targets,omitempty"`
	Sentence  string   `json:"sentence,omitempty"`
	ImagePath string   `json:"image_path,omitempty"`
}

// Stimulus is one categorization item: text, an image, or both.
type Stimulus struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// Key returns the identifier the answer map uses for this stimulus:
// the text when present, otherwise the image path.
func (s Stimulus) Key() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Image
}

// AudioOption is one sequence_audio item.
type AudioOption struct {
	Option string `json:"option"`
}

// TagSpot is one draggable tag on an image_tagging exercise.
type TagSpot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Point is a 2D position in source-image pixel space.
// On the wire it is a two-element [x, y] array.
type Point struct {
	X float64
	Y float64
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("point must be [x, y], got %d elements", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

// Alternative is an alternate image/tag set for an image_tagging exercise.
// The parent exercise's own media/tags/answer form alternative 0.
type Alternative struct {
	Media       *Media           `json:"media,omitempty"`
	Tags        []TagSpot        `json:"tags,omitempty"`
	ButtonLabel string           `json:"button_label,omitempty"`
	Answer      map[string]Point `json:"answer,omitempty"`
}

// Exercise is one testable item. Payload fields are populated per Kind;
// the typed answer accessors are filled during decode and empty for kinds
// they do not apply to.
type Exercise struct {
	Kind     Kind    `json:"type"`
	Question string  `json:"question"`
	Media    *Media  `json:"media,omitempty"`
	Hint     string  `json:"hint,omitempty"`
	Lesson   *Lesson `json:"lesson,omitempty"`

	Options          []Option      `json:"options,omitempty"`
	SentenceParts    []string      `json:"sentence_parts,omitempty"`
	OptionsForBlanks [][]string    `json:"options_for_blanks,omitempty"`
	Pairs            []Pair        `json:"pairs,omitempty"`
	PhraseShuffled   []string      `json:"phrase_shuffled,omitempty"`
	AudioOptions     []AudioOption `json:"audio_options,omitempty"`
	Stimuli          []Stimulus    `json:"stimuli,omitempty"`
	Categories       []string      `json:"categories,omitempty"`
	Tags             []TagSpot     `json:"tags,omitempty"`
	ButtonLabel      string        `json:"button_label,omitempty"`
	Alternatives     []Alternative `json:"alternatives,omitempty"`
	Children         []Exercise    `json:"questions,omitempty"`

	// Answer is the canonical answer as authored; its shape depends on
	// Kind. word_fill and fill_blanks_dropdown use Answers instead.
	Answer  json.RawMessage `json:"answer,omitempty"`
	Answers []string        `json:"answers,omitempty"`

	// Decoded views of Answer, filled by decodeAnswer.
	answerIndices []int
	answerOrder   []string
	answerMap     map[string]string
	answerTags    map[string]Point
}

// AnswerIndices returns the canonical option indices
// (mcq_single, mcq_multiple, list_pick, sequence_audio).
func (e *Exercise) AnswerIndices() []int { return e.answerIndices }

// AnswerOrder returns the canonical ordered phrase list (order_phrase).
func (e *Exercise) AnswerOrder() []string { return e.answerOrder }

// AnswerMapping returns the canonical key→value mapping
// (match_phrases, match_sentence, categorization_multiple).
func (e *Exercise) AnswerMapping() map[string]string { return e.answerMap }

// TagAlternatives returns all image/tag sets for an image_tagging
// exercise: the exercise's own set first, then any authored alternatives.
func (e *Exercise) TagAlternatives() []Alternative {
	alts := make([]Alternative, 0, 1+len(e.Alternatives))
	label := e.ButtonLabel
	if label == "" {
		label = "Alternative 1"
	}
	alts = append(alts, Alternative{
		Media:       e.Media,
		Tags:        e.Tags,
		ButtonLabel: label,
		Answer:      e.answerTags,
	})
	return append(alts, e.Alternatives...)
}

func (e *Exercise) UnmarshalJSON(data []byte) error {
	type wire Exercise
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Exercise(w)
	return e.decodeAnswer()
}

// decodeAnswer parses the raw answer into the typed view for the kind.
// A malformed answer is a decode error here, not a grading-time surprise.
func (e *Exercise) decodeAnswer() error {
	if len(e.Answer) == 0 {
		return nil
	}
	switch e.Kind {
	case MCQSingle, MCQMultiple, ListPick, SequenceAudio:
		if err := json.Unmarshal(e.Answer, &e.answerIndices); err != nil {
			return fmt.Errorf("%s answer must be a list of indices: %w", e.Kind, err)
		}
	case OrderPhrase:
		if err := json.Unmarshal(e.Answer, &e.answerOrder); err != nil {
			return fmt.Errorf("order_phrase answer must be a list of phrases: %w", err)
		}
	case MatchPhrases, MatchSentence, Categorization:
		if err := json.Unmarshal(e.Answer, &e.answerMap); err != nil {
			return fmt.Errorf("%s answer must be a string mapping: %w", e.Kind, err)
		}
	case ImageTagging:
		if err := json.Unmarshal(e.Answer, &e.answerTags); err != nil {
			return fmt.Errorf("image_tagging answer must map tag ids to [x, y]: %w", err)
		}
	}
	return nil
}
