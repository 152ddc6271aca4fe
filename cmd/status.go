package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/db"
	"github.com/accountmgr/amkit/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the install record and publish journal state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initLogging(); err != nil {
			return err
		}
		app, _ := cmd.Flags().GetString("app")
		var version string
		if cfg, err := loadConfig(); err == nil {
			if app == "" {
				app = cfg.App.Name
			}
			version = cfg.App.Version
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

		rec, err := repo.GetInstallRecord(app)
		if err != nil {
			return err
		}
		fmt.Printf("%s status:\n", app)
		if rec != nil {
			fmt.Printf("- Installed: %s %s at %s (since %s)\n", rec.AppName, rec.Version, rec.InstallDir, rec.InstalledAt)
		} else {
			fmt.Printf("- Installed: no\n")
		}
		if version != "" {
			entries, err := repo.JournalEntries(version)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("- Publish journal for %s: empty\n", version)
			} else {
				fmt.Printf("- Publish journal for %s:\n", version)
				for _, e := range entries {
					fmt.Printf("  %s done at %s (commit %s)\n", e.Step, e.CompletedAt, e.CommitSHA)
				}
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().String("app", "", "Application name (default from config)")
	rootCmd.AddCommand(statusCmd)
}
