package render

import "testing"

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{
			"index list",
			`{"type": "mcq_multiple", "question": "q", "options": ["a", "b", "c"], "answer": [0, 2]}`,
			"0, 2", true,
		},
		{
			"phrase list",
			`{"type": "order_phrase", "question": "q", "phrase_shuffled": ["b", "a"], "answer": ["a", "b"]}`,
			"a, b", true,
		},
		{
			"sorted mapping",
			`{"type": "categorization_multiple", "question": "q",
			  "stimuli": [{"text": "chien"}, {"text": "chat"}],
			  "categories": ["Animal"],
			  "answer": {"chien": "Animal", "chat": "Animal"}}`,
			"chat: Animal | chien: Animal", true,
		},
		{
			"tag positions",
			`{"type": "image_tagging", "question": "q",
			  "media": {"image": "m.png"},
			  "tags": [{"id": "t1", "label": "l"}],
			  "answer": {"t1": [10, 20.5]}}`,
			"t1: 10, 20.5", true,
		},
		{
			"answers plural is skipped",
			`{"type": "word_fill", "question": "q", "sentence_parts": ["a ", ""], "answers": ["x"]}`,
			"", false,
		},
		{
			"no answer at all",
			`{"type": "multi_questions", "question": "q",
			  "questions": [{"type": "mcq_single", "question": "p", "options": ["a"], "answer": [0]}]}`,
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := mustExercise(t, tt.raw)
			got, ok := FormatAnswer(ex)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FormatAnswer = %q, %v; want %q, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
