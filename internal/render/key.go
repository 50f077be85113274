package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

// FormatAnswer renders an exercise's canonical answer for the answer-key
// section: lists joined by comma, mappings as sorted "key: value" pairs.
// ok is false for exercises without a defined answer (word_fill and
// fill_blanks_dropdown store theirs under "answers"; multi_questions
// derives from its children). Those are skipped from the key.
func FormatAnswer(ex *exercise.Exercise) (text string, ok bool) {
	if len(ex.Answer) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(ex.Answer, &v); err != nil {
		return "", false
	}
	return formatValue(v), true
}

func formatValue(v any) string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return "N/A"
		}
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = formatValue(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %s", k, formatValue(t[k]))
		}
		return strings.Join(parts, " | ")
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "N/A"
	default:
		return fmt.Sprint(t)
	}
}
