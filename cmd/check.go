package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

var checkCmd = &cobra.Command{
	Use:   "check <questions.json>",
	Short: "Validate a question file and its media references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		set, err := exercise.Load(args[0])
		if err != nil {
			return err
		}

		for _, w := range exercise.Warnings(set.Exercises) {
			fmt.Fprintln(out, "warning:", w)
		}

		missing := 0
		for _, path := range collectMedia(set.Exercises) {
			if _, err := set.CheckMedia(path); err != nil {
				var m *exercise.MediaMissingError
				if errors.As(err, &m) {
					fmt.Fprintln(out, "missing media:", m.Path)
					missing++
					continue
				}
				return err
			}
		}

		if missing > 0 {
			return fmt.Errorf("%d media file(s) missing", missing)
		}
		fmt.Fprintf(out, "%s: %d exercises, all media present\n", args[0], set.Len())
		return nil
	},
}

// collectMedia gathers every referenced media and lesson path, in
// document order with duplicates removed.
func collectMedia(exercises []exercise.Exercise) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	var walk func(ex *exercise.Exercise)
	walk = func(ex *exercise.Exercise) {
		if ex.Media != nil {
			add(ex.Media.Video)
			add(ex.Media.Audio)
			add(ex.Media.Image)
		}
		if ex.Lesson != nil {
			add(ex.Lesson.PDF)
		}
		for _, opt := range ex.Options {
			add(opt.Image)
		}
		for _, pair := range ex.Pairs {
			add(pair.ImagePath)
		}
		for _, st := range ex.Stimuli {
			add(st.Image)
		}
		for _, alt := range ex.Alternatives {
			if alt.Media != nil {
				add(alt.Media.Image)
			}
		}
		for i := range ex.Children {
			walk(&ex.Children[i])
		}
	}

	for i := range exercises {
		walk(&exercises[i])
	}
	return out
}
