package exercise

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Set is an ordered sequence of exercises loaded from one file.
// Insertion order is presentation order and drives question numbering.
type Set struct {
	Exercises []Exercise

	// Path is the file the set was loaded from; empty for in-memory sets.
	Path string
}

// Load reads and parses an exercise-set file. The file may be a bare JSON
// array of exercises or an object with a "questions" key holding one.
// The whole sequence is schema-validated before it is returned; a bad
// record aborts the load with a *SchemaError.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exercise set: %w", err)
	}
	exercises, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(exercises); err != nil {
		return nil, err
	}
	return &Set{Exercises: exercises, Path: path}, nil
}

// Parse decodes exercise-set JSON, accepting both container forms.
func Parse(data []byte) ([]Exercise, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}

	var list []Exercise
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Questions []Exercise `json:"questions"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse exercise set: %w", err)
	}
	return wrapped.Questions, nil
}

// Len returns the number of exercises in the set.
func (s *Set) Len() int { return len(s.Exercises) }

// BaseDir returns the directory relative media paths resolve against.
func (s *Set) BaseDir() string {
	if s.Path == "" {
		return "."
	}
	return filepath.Dir(s.Path)
}

// ResolveMedia resolves a media path from an exercise: absolute paths are
// used as-is, relative paths are joined to the set file's directory.
func (s *Set) ResolveMedia(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.BaseDir(), path)
}

// CheckMedia resolves the path and verifies the file exists.
// Returns a *MediaMissingError when it does not.
func (s *Set) CheckMedia(path string) (string, error) {
	resolved := s.ResolveMedia(path)
	if _, err := os.Stat(resolved); err != nil {
		return resolved, &MediaMissingError{Path: resolved}
	}
	return resolved, nil
}

// Save writes the set back to path as a pretty-printed bare list,
// the same form the authoring editor produces.
func (s *Set) Save(path string) error {
	data, err := json.MarshalIndent(s.Exercises, "", "  ")
	if err != nil {
		return fmt.Errorf("encode exercise set: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write exercise set: %w", err)
	}
	s.Path = path
	return nil
}
