package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var settingsPath string

var rootCmd = &cobra.Command{
	Use:   "yumlog-manager",
	Short: "Control page for the Yumlog screen recording toolset",
	Long: `Yumlog Manager serves a local control page for the Yumlog PowerShell toolset.

The page builds the launcher commands to run:
  - record.ps1 and capture.ps1 invocations from the quick start form
  - yumlog.ps1 statistics and configuration commands
  - instructions to save config\tools.json

Nothing is executed by the manager, commands are copied and run in PowerShell.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "yumlog-manager", version)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Settings file (default: ~/.config/yumlog-manager/settings.json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(commandCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(versionCmd)
}
