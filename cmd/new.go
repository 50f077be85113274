package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Emily9121/WifeyMOOC/internal/editor"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
)

var newCmd = &cobra.Command{
	Use:   "new <questions.json>",
	Short: "Append a starter exercise to a question file",
	Long: "Appends a fresh starter exercise of the given type to the question file, " +
		"creating the file if it does not exist. Available types: " + strings.Join(kindNames(), ", ") + ".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindName, _ := cmd.Flags().GetString("type")
		tmpl, err := editor.Template(exercise.Kind(kindName))
		if err != nil {
			return err
		}

		set := &exercise.Set{Path: args[0]}
		if _, statErr := os.Stat(args[0]); statErr == nil {
			set, err = exercise.Load(args[0])
			if err != nil {
				return err
			}
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}

		editor.Insert(set, set.Len(), *tmpl)
		if err := set.Save(args[0]); err != nil {
			return fmt.Errorf("save question file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s exercise to %s (%d total)\n", kindName, args[0], set.Len())
		return nil
	},
}

func init() {
	newCmd.Flags().String("type", string(exercise.MCQSingle), "Exercise type to add")
}

func kindNames() []string {
	names := make([]string, len(exercise.Kinds))
	for i, k := range exercise.Kinds {
		names[i] = string(k)
	}
	return names
}
