// Package editor provides authoring operations on an exercise set:
// per-kind starter templates and ordered insert/remove/move mutations.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// templates are starter payloads per kind, complete enough to grade.
var templates = map[exercise.Kind]string{
	exercise.MCQSingle: `{
		"type": "mcq_single",
		"question": "Choose the best answer!",
		"options": ["Option A", "Option B", "Option C"],
		"answer": [0]
	}`,
	exercise.MCQMultiple: `{
		"type": "mcq_multiple",
		"question": "Pick all the right answers!",
		"options": ["Option A", "Option B", "Option C"],
		"answer": [0, 1]
	}`,
	exercise.ListPick: `{
		"type": "list_pick",
		"question": "Pick all the options you want!",
		"options": ["Option 1", "Option 2", "Option 3"],
		"answer": [0]
	}`,
	exercise.WordFill: `{
		"type": "word_fill",
		"question": "Fill in the blanks!",
		"sentence_parts": ["Fill this ", " with the perfect word ", " please!"],
		"answers": ["blank", "darling"]
	}`,
	exercise.FillBlanksDropdown: `{
		"type": "fill_blanks_dropdown",
		"question": "Choose from the dropdowns!",
		"sentence_parts": ["Choose ", " and then ", " from these dropdowns."],
		"options_for_blanks": [[" ", "option1", "option2"], [" ", "choice1", "choice2"]],
		"answers": ["option1", "choice1"]
	}`,
	exercise.MatchPhrases: `{
		"type": "match_phrases",
		"question": "Match the phrase beginnings with their endings!",
		"pairs": [{"source": "Beginning of phrase 1...", "targets": [" ", "ending A", "ending B"]}],
		"answer": {"Beginning of phrase 1...": "ending A"}
	}`,
	exercise.MatchSentence: `{
		"type": "match_sentence",
		"question": "Match the sentences with images!",
		"pairs": [
			{"sentence": "Sentence 1", "image_path": "image1.jpg"},
			{"sentence": "Sentence 2", "image_path": "image2.jpg"}
		],
		"answer": {"image1.jpg": "Sentence 1", "image2.jpg": "Sentence 2"}
	}`,
	exercise.OrderPhrase: `{
		"type": "order_phrase",
		"question": "Put these phrases in the right order!",
		"phrase_shuffled": ["Second phrase", "First phrase", "Third phrase"],
		"answer": ["First phrase", "Second phrase", "Third phrase"]
	}`,
	exercise.SequenceAudio: `{
		"type": "sequence_audio",
		"question": "Put these sounds in order!",
		"audio_options": [{"option": "First sound"}, {"option": "Second sound"}],
		"answer": [0, 1],
		"media": {"audio": "audio.mp3"}
	}`,
	exercise.Categorization: `{
		"type": "categorization_multiple",
		"question": "Categorize these items!",
		"stimuli": [{"text": "Item 1"}, {"text": "Item 2"}],
		"categories": [" ", "Category A", "Category B"],
		"answer": {"Item 1": "Category A", "Item 2": "Category B"}
	}`,
	exercise.ImageTagging: `{
		"type": "image_tagging",
		"question": "Place each label on the image!",
		"media": {"image": "diagram.png"},
		"tags": [{"id": "t1", "label": "Label 1"}],
		"answer": {"t1": [100, 100]}
	}`,
	exercise.MultiQuestions: `{
		"type": "multi_questions",
		"question": "Answer every part!",
		"questions": [
			{
				"type": "mcq_single",
				"question": "Part one?",
				"options": ["Option A", "Option B"],
				"answer": [0]
			}
		]
	}`,
}

// Template returns a fresh starter exercise of the given kind.
func Template(kind exercise.Kind) (*exercise.Exercise, error) {
	raw, ok := templates[kind]
	if !ok {
		return nil, fmt.Errorf("no template for exercise type %q", kind)
	}
	var ex exercise.Exercise
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return nil, fmt.Errorf("template for %q: %w", kind, err)
	}
	return &ex, nil
}

// Insert places ex at index, shifting later exercises down. An index at
// or past the end appends.
func Insert(set *exercise.Set, index int, ex exercise.Exercise) {
	if index < 0 {
		index = 0
	}
	if index >= len(set.Exercises) {
		set.Exercises = append(set.Exercises, ex)
		return
	}
	set.Exercises = append(set.Exercises, exercise.Exercise{})
	copy(set.Exercises[index+1:], set.Exercises[index:])
	set.Exercises[index] = ex
}

// Remove deletes the exercise at index.
func Remove(set *exercise.Set, index int) error {
	if index < 0 || index >= len(set.Exercises) {
		return fmt.Errorf("no exercise at index %d", index)
	}
	set.Exercises = append(set.Exercises[:index], set.Exercises[index+1:]...)
	return nil
}

// Move shifts the exercise at from to position to, preserving the
// relative order of everything else.
func Move(set *exercise.Set, from, to int) error {
	n := len(set.Exercises)
	if from < 0 || from >= n {
		return fmt.Errorf("no exercise at index %d", from)
	}
	if to < 0 || to >= n {
		return fmt.Errorf("no exercise at index %d", to)
	}
	if from == to {
		return nil
	}
	ex := set.Exercises[from]
	set.Exercises = append(set.Exercises[:from], set.Exercises[from+1:]...)
	set.Exercises = append(set.Exercises[:to], append([]exercise.Exercise{ex}, set.Exercises[to:]...)...)
	return nil
}

// Replace swaps the exercise at index for ex.
func Replace(set *exercise.Set, index int, ex exercise.Exercise) error {
	if index < 0 || index >= len(set.Exercises) {
		return fmt.Errorf("no exercise at index %d", index)
	}
	set.Exercises[index] = ex
	return nil
}
