package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/db"
	"github.com/accountmgr/amkit/internal/install"
	"github.com/accountmgr/amkit/internal/store"
	"github.com/accountmgr/amkit/internal/utils"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the application (remove files, shortcuts, and registration)",
	Long:  "Remove the install directory, shortcuts, OS registration, and the install record. Safe to run repeatedly; a second run is a no-op. Works without the release config when --app is given.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		app, _ := cmd.Flags().GetString("app")
		dry, _ := cmd.Flags().GetBool("dry-run")
		yes, _ := cmd.Flags().GetBool("yes")

		// The uninstaller copied into the install directory runs far away
		// from any release.toml, so the config is optional here.
		publisher := ""
		if cfg, err := loadConfig(); err == nil {
			if app == "" {
				app = cfg.App.Name
			}
			publisher = cfg.App.Publisher
		}
		if app == "" {
			return fmt.Errorf("no release config found; specify the application with --app")
		}

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		repo := store.NewRepository(dbConn)

		opts := install.UninstallOptions{AppName: app, Publisher: publisher, DryRun: dry}
		actions, err := install.PlanUninstall(repo, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Planned actions for uninstall of %s:\n", app)
		for _, a := range actions {
			fmt.Printf("- %s\n", a)
		}
		if dry {
			return nil
		}
		if !yes {
			if !utils.Confirm("Proceed with uninstall?") {
				fmt.Println("aborted (use --yes to skip confirmation)")
				return nil
			}
		}
		if err := install.Uninstall(repo, os.Stdout, opts); err != nil {
			return err
		}
		fmt.Println("uninstall completed")
		return nil
	},
}

func init() {
	uninstallCmd.Flags().String("app", "", "Application name (default from config)")
	uninstallCmd.Flags().BoolP("dry-run", "n", false, "Show actions but do not perform them")
	uninstallCmd.Flags().Bool("yes", false, "Assume yes for prompts")
	rootCmd.AddCommand(uninstallCmd)
}
