package exercise

import "fmt"

// SchemaError reports a malformed or incomplete exercise record.
// Index is the exercise's position in the set; Child is the sub-question
// index inside a multi_questions block, or -1.
type SchemaError struct {
	Index int
	Child int
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	where := fmt.Sprintf("exercise %d", e.Index+1)
	if e.Child >= 0 {
		where = fmt.Sprintf("exercise %d, part %d", e.Index+1, e.Child+1)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", where, e.Field, e.Msg)
	}
	return fmt.Sprintf("%s: %s", where, e.Msg)
}

func schemaErr(index, child int, field, format string, args ...any) *SchemaError {
	return &SchemaError{
		Index: index,
		Child: child,
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// MediaMissingError reports a referenced media file that does not exist.
// Non-fatal: renderers degrade to a textual placeholder.
type MediaMissingError struct {
	Path string
}

func (e *MediaMissingError) Error() string {
	return fmt.Sprintf("media file not found: %s", e.Path)
}
