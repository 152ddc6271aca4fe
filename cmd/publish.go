package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/build"
	"github.com/accountmgr/amkit/internal/db"
	"github.com/accountmgr/amkit/internal/executor"
	"github.com/accountmgr/amkit/internal/release"
	"github.com/accountmgr/amkit/internal/store"
	"github.com/accountmgr/amkit/internal/utils"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build, tag, and publish a release of the application",
	Long:  "Build the executable and installer, then create (or replace) the version tag, push it, and publish a release with the artifacts attached. Use --resume to retry only the steps that did not complete.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		dry, _ := cmd.Flags().GetBool("dry-run")
		skipBuild, _ := cmd.Flags().GetBool("skip-build")
		resume, _ := cmd.Flags().GetBool("resume")
		yes, _ := cmd.Flags().GetBool("yes")

		// A missing or malformed version must fail here, before any tag
		// or network operation.
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		runner := executor.New(dry, cmdTimeout)
		b := &build.Builder{Cfg: cfg, Runner: runner, DryRun: dry}
		if !skipBuild {
			if err := b.Build(cmd.Context()); err != nil {
				return err
			}
			if err := b.Package(cmd.Context()); err != nil {
				return err
			}
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		p := &release.Publisher{
			Cfg:    cfg,
			Runner: runner,
			Repo:   store.NewRepository(dbConn),
			Resume: resume,
			DryRun: dry,
		}
		if !dry {
			if err := p.Preflight(); err != nil {
				return err
			}
		}
		if !yes && !dry {
			if !utils.Confirm(fmt.Sprintf("Publish %s %s as %s?", cfg.App.Name, cfg.App.Version, cfg.TagName())) {
				fmt.Println("aborted (use --yes to skip confirmation)")
				return nil
			}
		}
		if err := p.Publish(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("publish completed")
		return nil
	},
}

func init() {
	publishCmd.Flags().BoolP("dry-run", "n", false, "Show the commands but do not run them")
	publishCmd.Flags().Bool("skip-build", false, "Reuse existing build output and installer")
	publishCmd.Flags().Bool("resume", false, "Skip steps already completed for this version and commit")
	publishCmd.Flags().Bool("yes", false, "Assume yes for prompts")
	rootCmd.AddCommand(publishCmd)
}
