package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/build"
	"github.com/accountmgr/amkit/internal/executor"
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Build the application and its installer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		dry, _ := cmd.Flags().GetBool("dry-run")
		skipBuild, _ := cmd.Flags().GetBool("skip-build")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b := &build.Builder{Cfg: cfg, Runner: executor.New(dry, cmdTimeout), DryRun: dry}
		if !skipBuild {
			if err := b.Build(cmd.Context()); err != nil {
				return err
			}
		}
		if err := b.Package(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("package completed")
		return nil
	},
}

func init() {
	packageCmd.Flags().BoolP("dry-run", "n", false, "Show the commands but do not run them")
	packageCmd.Flags().Bool("skip-build", false, "Reuse the existing build output")
	rootCmd.AddCommand(packageCmd)
}
