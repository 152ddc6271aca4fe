package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/build"
	"github.com/accountmgr/amkit/internal/executor"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the application with the configured packager",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		dry, _ := cmd.Flags().GetBool("dry-run")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b := &build.Builder{Cfg: cfg, Runner: executor.New(dry, cmdTimeout), DryRun: dry}
		if err := b.Build(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("build completed")
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolP("dry-run", "n", false, "Show the command but do not run it")
	rootCmd.AddCommand(buildCmd)
}
