package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/logger"
	"github.com/Emily9121/WifeyMOOC/internal/worksheet"
)

var paperCmd = &cobra.Command{
	Use:   "paper <questions.json>",
	Short: "Render a printable HTML worksheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := exercise.Load(args[0])
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			out = base + ".html"
		}
		noAnswers, _ := cmd.Flags().GetBool("no-answers")

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create worksheet file: %w", err)
		}
		defer f.Close()

		opts := worksheet.Options{
			Title:         cfg.Worksheet.Title,
			SkipAnswerKey: noAnswers,
		}
		if err := worksheet.WriteHTML(f, set, opts); err != nil {
			return fmt.Errorf("write worksheet: %w", err)
		}

		logger.Get().Info("worksheet written",
			zap.String("in", args[0]),
			zap.String("out", out),
			zap.Int("exercises", set.Len()),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Worksheet written to %s (%d exercises)\n", out, set.Len())
		return nil
	},
}

func init() {
	paperCmd.Flags().String("out", "", "Output HTML file (default: next to the question file)")
	paperCmd.Flags().Bool("no-answers", false, "Leave out the answer key section")
}
