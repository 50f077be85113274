package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Emily9121/WifeyMOOC/internal/app"
	"github.com/Emily9121/WifeyMOOC/internal/exercise"
	"github.com/Emily9121/WifeyMOOC/internal/logger"
	"github.com/Emily9121/WifeyMOOC/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play <questions.json>",
	Short: "Start or resume a quiz",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetString("resume")
		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		if file == "" && resume == "" {
			return fmt.Errorf("provide a question file or --resume")
		}
		return runPlay(cmd, file, resume)
	},
}

func init() {
	playCmd.Flags().String("resume", "", "Path to a saved progress file")
	playCmd.Flags().String("save", "", "Where to write progress (default: derived from the question file)")
}

// runPlay builds the session and launches the TUI.
func runPlay(cmd *cobra.Command, file, resume string) error {
	var sess *session.Session
	var err error
	if resume != "" {
		sess, err = session.Resume(resume)
		if err != nil {
			return err
		}
	} else {
		set, err := exercise.Load(file)
		if err != nil {
			return err
		}
		for _, w := range exercise.Warnings(set.Exercises) {
			logger.Get().Warn("question file", zap.String("warning", w))
		}
		sess = session.New(set)
	}

	savePath, _ := cmd.Flags().GetString("save")
	if savePath == "" {
		savePath = defaultSavePath(sess.Set.Path)
	}
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}

	logger.Get().Info("session start",
		zap.String("file", sess.Set.Path),
		zap.Int("exercises", sess.Set.Len()),
		zap.String("session_id", sess.ID),
	)

	return app.Run(app.Options{Session: sess, SavePath: savePath})
}

// defaultSavePath puts the snapshot in the configured progress
// directory, named after the question file.
func defaultSavePath(questionFile string) string {
	base := strings.TrimSuffix(filepath.Base(questionFile), filepath.Ext(questionFile))
	return filepath.Join(cfg.Progress.Dir, base+"_save.json")
}
