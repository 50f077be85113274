package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Emily9121/WifeyMOOC/internal/config"
	"github.com/Emily9121/WifeyMOOC/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wifeymooc [questions.json]",
	Short: "Language-learning quiz player",
	Long:  "WifeyMOOC is a terminal quiz player for self-contained JSON exercise sets, with printable worksheets and resumable progress.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runPlay(cmd, args[0], "")
	},
}

func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}

var cfg *config.Config

func init() {
	cobra.OnInitialize(func() {
		var err error
		cfg, err = config.Load()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("load config: %w", err))
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			cobra.CheckErr(fmt.Errorf("initialize logger: %w", err))
		}
	})

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(versionCmd)
}
