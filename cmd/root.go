package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/accountmgr/amkit/internal/config"
	"github.com/accountmgr/amkit/internal/logging"
)

var (
	cfgFile     string
	verbose     bool
	cmdTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "amkit",
	Short: "amkit builds, installs, and publishes the AccountManager desktop application",
	Long:  "amkit drives the AccountManager packaging lifecycle: build the executable with the configured packager, install or uninstall it on this machine, and tag and publish releases with artifacts",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("amkit: run 'amkit --help' to see available commands")
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "Path to the release config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Mirror log diagnostics to the console")
	rootCmd.PersistentFlags().DurationVar(&cmdTimeout, "timeout", 10*time.Minute, "Time budget for each external command")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// initLogging sets up the rotating log file. Only commands that do real work
// call it; version and help must not create the data directory.
func initLogging() error {
	return logging.Init(verbose)
}
