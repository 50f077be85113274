package player

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Emily9121/WifeyMOOC/internal/evaluate"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/render"
)

// ParseSubmission converts one line of player input into a typed
// submission for the given exercise. Numbering in the input is 1-based;
// multi_questions blocks are assembled child by child and never parsed
// from a single line. images carries the labeled images of the current
// render pass; match_sentence letters resolve against it, since label
// order changes on every shuffle.
func ParseSubmission(ex *exercise.Exercise, input string, tagAlternative int, images []render.LabeledImage) (evaluate.Submission, error) {
	input = strings.TrimSpace(input)

	switch ex.Kind {
	case exercise.MCQSingle:
		n, err := parseIndex(input, len(ex.Options))
		if err != nil {
			return nil, err
		}
		return evaluate.SingleChoice(n), nil

	case exercise.MCQMultiple, exercise.ListPick:
		indices, err := parseIndexList(input, len(ex.Options))
		if err != nil {
			return nil, err
		}
		return evaluate.MultiChoice(indices), nil

	case exercise.WordFill, exercise.FillBlanksDropdown:
		parts := strings.Split(input, ";")
		texts := make([]string, len(parts))
		for i, p := range parts {
			texts[i] = strings.TrimSpace(p)
		}
		return evaluate.Texts(texts), nil

	case exercise.MatchPhrases:
		assign, err := parseAssignments(input)
		if err != nil {
			return nil, err
		}
		mapping := make(map[string]string, len(assign))
		for src, tgt := range assign {
			srcIdx, err := parseIndex(src, len(ex.Pairs))
			if err != nil {
				return nil, fmt.Errorf("phrase %q: %w", src, err)
			}
			pair := ex.Pairs[srcIdx]
			tgtIdx, err := parseIndex(tgt, len(pair.Targets))
			if err != nil {
				return nil, fmt.Errorf("ending %q: %w", tgt, err)
			}
			mapping[pair.Source] = pair.Targets[tgtIdx]
		}
		return evaluate.Mapping(mapping), nil

	case exercise.MatchSentence:
		// "A:2" pairs the displayed image letter A with sentence 2.
		assign, err := parseAssignments(input)
		if err != nil {
			return nil, err
		}
		mapping := make(map[string]string, len(assign))
		for label, sentence := range assign {
			path, ok := imageForLabel(images, label)
			if !ok {
				return nil, fmt.Errorf("no image labeled %q", label)
			}
			sIdx, err := parseIndex(sentence, len(ex.Pairs))
			if err != nil {
				return nil, fmt.Errorf("sentence %q: %w", sentence, err)
			}
			mapping[path] = ex.Pairs[sIdx].Sentence
		}
		return evaluate.Mapping(mapping), nil

	case exercise.OrderPhrase:
		indices, err := parseIndexSequence(input, len(ex.PhraseShuffled))
		if err != nil {
			return nil, err
		}
		ordered := make([]string, len(indices))
		for i, idx := range indices {
			ordered[i] = ex.PhraseShuffled[idx]
		}
		return evaluate.Ordering(ordered), nil

	case exercise.SequenceAudio:
		indices, err := parseIndexSequence(input, len(ex.AudioOptions))
		if err != nil {
			return nil, err
		}
		return evaluate.Sequence(indices), nil

	case exercise.Categorization:
		assign, err := parseAssignments(input)
		if err != nil {
			return nil, err
		}
		mapping := make(map[string]string, len(assign))
		for stim, cat := range assign {
			stimIdx, err := parseIndex(stim, len(ex.Stimuli))
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", stim, err)
			}
			catIdx, err := parseIndex(cat, len(ex.Categories))
			if err != nil {
				return nil, fmt.Errorf("category %q: %w", cat, err)
			}
			mapping[ex.Stimuli[stimIdx].Key()] = ex.Categories[catIdx]
		}
		return evaluate.Mapping(mapping), nil

	case exercise.ImageTagging:
		alts := ex.TagAlternatives()
		if tagAlternative < 0 || tagAlternative >= len(alts) {
			tagAlternative = 0
		}
		tags := alts[tagAlternative].Tags
		positions, err := parsePlacements(input, tags)
		if err != nil {
			return nil, err
		}
		return evaluate.TagPlacements{Alternative: tagAlternative, Positions: positions}, nil
	}

	return nil, fmt.Errorf("no input parser for exercise type %q", ex.Kind)
}

// parseIndex reads a 1-based index and returns it 0-based.
func parseIndex(s string, n int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", s)
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("number %d out of range 1-%d", v, n)
	}
	return v - 1, nil
}

// parseIndexList reads "1,3" into unique 0-based indices.
func parseIndexList(s string, n int) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	seen := make(map[int]bool, len(parts))
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := parseIndex(p, n)
		if err != nil {
			return nil, err
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out, nil
}

// parseIndexSequence reads "2,1,3" into 0-based indices, requiring each
// position exactly once.
func parseIndexSequence(s string, n int) ([]int, error) {
	indices, err := parseIndexList(s, n)
	if err != nil {
		return nil, err
	}
	if len(indices) != n {
		return nil, fmt.Errorf("expected all %d positions, got %d", n, len(indices))
	}
	return indices, nil
}

// parseAssignments reads "1:2, 3:1" into a key/value map. Values may
// not repeat a key.
func parseAssignments(s string) (map[string]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty input")
	}
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected key:value, got %q", strings.TrimSpace(part))
		}
		key = strings.TrimSpace(key)
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("duplicate entry for %q", key)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// parsePlacements reads "1:120,80; 2:300,40" into tag positions keyed
// by tag ID, with tag numbers matching display order.
func parsePlacements(s string, tags []exercise.TagSpot) (map[string]exercise.Point, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty input")
	}
	out := make(map[string]exercise.Point)
	for _, part := range strings.Split(s, ";") {
		tag, coords, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("expected tag:x,y, got %q", strings.TrimSpace(part))
		}
		tagIdx, err := parseIndex(tag, len(tags))
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", strings.TrimSpace(tag), err)
		}
		xs, ys, ok := strings.Cut(coords, ",")
		if !ok {
			return nil, fmt.Errorf("expected x,y for tag %s", strings.TrimSpace(tag))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return nil, fmt.Errorf("bad x coordinate %q", strings.TrimSpace(xs))
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return nil, fmt.Errorf("bad y coordinate %q", strings.TrimSpace(ys))
		}
		out[tags[tagIdx].ID] = exercise.Point{X: x, Y: y}
	}
	return out, nil
}

// imageForLabel resolves a typed letter against the labels of the
// current render pass.
func imageForLabel(images []render.LabeledImage, label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, img := range images {
		if strings.EqualFold(img.Label, label) {
			return img.ImagePath, true
		}
	}
	return "", false
}
