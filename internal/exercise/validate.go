package exercise

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// setShapeSchema is the structural schema every exercise-set file must
// satisfy before per-kind validation runs: a bare array of exercise
// objects, or an object wrapping one under "questions". Each record must
// carry a string "type" tag; payload requirements are per-kind Go checks.
var setShapeSchema = map[string]any{
	"$defs": map[string]any{
		"exercise": map[string]any{
			"type":     "object",
			"required": []any{"type"},
			"properties": map[string]any{
				"type":     map[string]any{"type": "string"},
				"question": map[string]any{"type": "string"},
			},
		},
		"exerciseList": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/exercise"},
		},
	},
	"oneOf": []any{
		map[string]any{"$ref": "#/$defs/exerciseList"},
		map[string]any{
			"type":     "object",
			"required": []any{"questions"},
			"properties": map[string]any{
				"questions": map[string]any{"$ref": "#/$defs/exerciseList"},
			},
		},
	},
}

var (
	shapeOnce   sync.Once
	shapeSchema *jsonschema.Schema
	shapeErr    error
)

// validateShape checks raw set JSON against setShapeSchema.
func validateShape(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	shapeOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://exercise-set.json", setShapeSchema); err != nil {
			shapeErr = fmt.Errorf("add resource: %w", err)
			return
		}
		shapeSchema, shapeErr = c.Compile("schema://exercise-set.json")
	})
	if shapeErr != nil {
		return fmt.Errorf("compile exercise-set schema: %w", shapeErr)
	}

	if err := shapeSchema.Validate(parsed); err != nil {
		return fmt.Errorf("exercise set must be an array or an object with a \"questions\" key: %w", err)
	}
	return nil
}

// Validate checks every exercise's payload for its kind. Unsupported
// kinds pass (they render as placeholders); supported kinds with missing
// required content fail with a *SchemaError naming the index and field.
func Validate(exercises []Exercise) error {
	for i := range exercises {
		if err := validateOne(&exercises[i], i, -1); err != nil {
			return err
		}
	}
	return nil
}

// Warnings reports authoring smells that are accepted for compatibility,
// such as an mcq_single answer listing more than one index.
func Warnings(exercises []Exercise) []string {
	var warnings []string
	for i := range exercises {
		ex := &exercises[i]
		if ex.Kind == MCQSingle && len(ex.answerIndices) > 1 {
			warnings = append(warnings, fmt.Sprintf(
				"exercise %d: mcq_single lists %d correct indices; the player offers a single selection",
				i+1, len(ex.answerIndices)))
		}
		for c := range ex.Children {
			if ex.Children[c].Kind == MCQSingle && len(ex.Children[c].answerIndices) > 1 {
				warnings = append(warnings, fmt.Sprintf(
					"exercise %d, part %d: mcq_single lists multiple correct indices", i+1, c+1))
			}
		}
	}
	return warnings
}

func validateOne(ex *Exercise, index, child int) error {
	if !ex.Kind.Supported() {
		return nil
	}

	switch ex.Kind {
	case MCQSingle, MCQMultiple, ListPick:
		if len(ex.Options) == 0 {
			return schemaErr(index, child, "options", "required for %s", ex.Kind)
		}
		if len(ex.answerIndices) == 0 {
			return schemaErr(index, child, "answer", "required for %s", ex.Kind)
		}
		for _, idx := range ex.answerIndices {
			if idx < 0 || idx >= len(ex.Options) {
				return schemaErr(index, child, "answer", "index %d out of range (have %d options)", idx, len(ex.Options))
			}
		}

	case WordFill:
		if len(ex.SentenceParts) == 0 {
			return schemaErr(index, child, "sentence_parts", "required for word_fill")
		}
		if len(ex.Answers) == 0 {
			return schemaErr(index, child, "answers", "required for word_fill")
		}

	case FillBlanksDropdown:
		if len(ex.SentenceParts) == 0 {
			return schemaErr(index, child, "sentence_parts", "required for fill_blanks_dropdown")
		}
		if len(ex.OptionsForBlanks) == 0 {
			return schemaErr(index, child, "options_for_blanks", "required for fill_blanks_dropdown")
		}
		if len(ex.Answers) != len(ex.OptionsForBlanks) {
			return schemaErr(index, child, "answers",
				"%d answers for %d blanks", len(ex.Answers), len(ex.OptionsForBlanks))
		}

	case MatchPhrases:
		if len(ex.Pairs) == 0 {
			return schemaErr(index, child, "pairs", "required for match_phrases")
		}
		for _, p := range ex.Pairs {
			if p.Source == "" {
				return schemaErr(index, child, "pairs", "every pair needs a source")
			}
		}
		if len(ex.answerMap) == 0 {
			return schemaErr(index, child, "answer", "required for match_phrases")
		}

	case MatchSentence:
		if len(ex.Pairs) == 0 {
			return schemaErr(index, child, "pairs", "required for match_sentence")
		}
		for _, p := range ex.Pairs {
			if p.ImagePath == "" {
				return schemaErr(index, child, "pairs", "every pair needs an image_path")
			}
		}
		if len(ex.answerMap) == 0 {
			return schemaErr(index, child, "answer", "required for match_sentence")
		}

	case OrderPhrase:
		if len(ex.PhraseShuffled) == 0 {
			return schemaErr(index, child, "phrase_shuffled", "required for order_phrase")
		}
		if len(ex.answerOrder) != len(ex.PhraseShuffled) {
			return schemaErr(index, child, "answer",
				"%d phrases in answer, %d shuffled", len(ex.answerOrder), len(ex.PhraseShuffled))
		}

	case SequenceAudio:
		if len(ex.AudioOptions) == 0 {
			return schemaErr(index, child, "audio_options", "required for sequence_audio")
		}
		if len(ex.answerIndices) != len(ex.AudioOptions) {
			return schemaErr(index, child, "answer",
				"%d positions in answer for %d options", len(ex.answerIndices), len(ex.AudioOptions))
		}
		for _, idx := range ex.answerIndices {
			if idx < 0 || idx >= len(ex.AudioOptions) {
				return schemaErr(index, child, "answer", "index %d out of range", idx)
			}
		}

	case Categorization:
		if len(ex.Stimuli) == 0 {
			return schemaErr(index, child, "stimuli", "required for categorization_multiple")
		}
		if len(ex.Categories) == 0 {
			return schemaErr(index, child, "categories", "required for categorization_multiple")
		}
		if len(ex.answerMap) == 0 {
			return schemaErr(index, child, "answer", "required for categorization_multiple")
		}

	case ImageTagging:
		for alt, a := range ex.TagAlternatives() {
			if a.Media == nil || a.Media.Image == "" {
				return schemaErr(index, child, "media", "alternative %d needs an image for image_tagging", alt+1)
			}
			if len(a.Tags) == 0 {
				return schemaErr(index, child, "tags", "alternative %d has no tags", alt+1)
			}
			for _, tag := range a.Tags {
				if tag.ID == "" {
					return schemaErr(index, child, "tags", "every tag needs an id")
				}
			}
			if len(a.Answer) == 0 {
				return schemaErr(index, child, "answer", "alternative %d has no expected positions", alt+1)
			}
		}

	case MultiQuestions:
		if child >= 0 {
			return schemaErr(index, child, "type", "multi_questions cannot nest")
		}
		if len(ex.Children) == 0 {
			return schemaErr(index, child, "questions", "required for multi_questions")
		}
		for c := range ex.Children {
			if err := validateOne(&ex.Children[c], index, c); err != nil {
				return err
			}
		}
	}

	return nil
}
