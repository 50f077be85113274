package session

import (
	"fmt"
	"strconv"
	"strings"
)

// ScopeKey addresses one tag surface inside a set: an exercise, an
// optional child of a multi-part block, and an optional image
// alternative. It encodes as "3", "3-1", or "3-1#2" in snapshots.
type ScopeKey struct {
	// Exercise is the 0-based exercise index.
	Exercise int

	// Child is the 0-based part index inside a multi-part block,
	// or -1 for the exercise itself.
	Child int

	// Alternative is the image alternative index; 0 is the default
	// surface and stays out of the encoding.
	Alternative int
}

// Scope addresses a top-level exercise.
func Scope(exercise int) ScopeKey {
	return ScopeKey{Exercise: exercise, Child: -1}
}

// ChildScope addresses one part of a multi-part block.
func ChildScope(exercise, child int) ScopeKey {
	return ScopeKey{Exercise: exercise, Child: child}
}

// WithAlternative returns the same scope on another image alternative.
func (k ScopeKey) WithAlternative(alt int) ScopeKey {
	k.Alternative = alt
	return k
}

// String encodes the key in its snapshot form.
func (k ScopeKey) String() string {
	s := strconv.Itoa(k.Exercise)
	if k.Child >= 0 {
		s += "-" + strconv.Itoa(k.Child)
	}
	if k.Alternative > 0 {
		s += "#" + strconv.Itoa(k.Alternative)
	}
	return s
}

// ParseScopeKey decodes a snapshot-form key.
func ParseScopeKey(s string) (ScopeKey, error) {
	key := ScopeKey{Child: -1}

	if base, alt, ok := strings.Cut(s, "#"); ok {
		n, err := strconv.Atoi(alt)
		if err != nil || n < 1 {
			return ScopeKey{}, fmt.Errorf("bad scope key %q", s)
		}
		key.Alternative = n
		s = base
	}
	if base, child, ok := strings.Cut(s, "-"); ok {
		n, err := strconv.Atoi(child)
		if err != nil || n < 0 {
			return ScopeKey{}, fmt.Errorf("bad scope key %q", s)
		}
		key.Child = n
		s = base
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return ScopeKey{}, fmt.Errorf("bad scope key %q", s)
	}
	key.Exercise = n
	return key, nil
}
