package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/db"
	"github.com/accountmgr/amkit/internal/install"
	"github.com/accountmgr/amkit/internal/store"
	"github.com/accountmgr/amkit/internal/utils"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the built application onto this machine",
	Long:  "Copy the build output into the install directory (staged, then committed atomically), write the uninstaller, create shortcuts, and register the application. Use --dry-run to preview actions.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("path")
		source, _ := cmd.Flags().GetString("source")
		dry, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		inst := &install.Installer{Cfg: cfg, Repo: store.NewRepository(dbConn)}
		opts := install.Options{SourceDir: source, Dir: path, DryRun: dry}
		actions, target, err := inst.Plan(opts)
		if err != nil {
			return err
		}
		fmt.Printf("Planned actions for install to %s:\n", target)
		for _, a := range actions {
			fmt.Printf("- %s\n", a)
		}
		if dry {
			return nil
		}
		if !yes {
			if !utils.Confirm("Proceed?") {
				fmt.Println("aborted (use --yes to skip confirmation)")
				return nil
			}
		}
		if err := inst.Execute(opts); err != nil {
			return err
		}
		fmt.Println("install completed")
		return nil
	},
}

func init() {
	installCmd.Flags().String("path", "", "Custom target directory for the install")
	installCmd.Flags().String("source", "", "Build output directory (default from config)")
	installCmd.Flags().BoolP("dry-run", "n", false, "Show actions but do not perform them")
	installCmd.Flags().Bool("yes", false, "Assume yes for prompts")
	rootCmd.AddCommand(installCmd)
}
