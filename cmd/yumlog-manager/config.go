package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/darbotlabs/yumlog-manager/toolsconfig"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Launcher configuration helpers",
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the default launcher configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), toolsconfig.Default())
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Print the command that saves a configuration document",
	Long: `Print the command that writes a configuration document to config\tools.json.

The document is read from the file argument or from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}

		instructions, err := toolsconfig.Save(string(data))
		if errors.Is(err, toolsconfig.ErrEmptyConfig) {
			return errors.New(toolsconfig.EmptyMessage)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, instructions.Heading)
		for i, step := range instructions.Steps {
			fmt.Fprintf(out, "%d. %s\n", i+1, step)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, instructions.Command)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configSaveCmd)
}
