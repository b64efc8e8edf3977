package main

import (
	"fmt"

	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/spf13/cobra"
)

var (
	cmdFPS      string
	cmdDuration string
	cmdOutFile  string
	cmdOutDir   string
)

var commandCmd = &cobra.Command{
	Use:   "command",
	Short: "Print launcher commands",
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Print the record.ps1 command",
	Run: func(cmd *cobra.Command, args []string) {
		inv := command.Record(command.RecordParams{
			FPS:         cmdFPS,
			DurationSec: cmdDuration,
			OutFile:     cmdOutFile,
		})
		fmt.Fprintln(cmd.OutOrStdout(), inv)
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Print the capture.ps1 command",
	Run: func(cmd *cobra.Command, args []string) {
		inv := command.Capture(command.CaptureParams{
			FPS:         cmdFPS,
			DurationSec: cmdDuration,
			OutDir:      cmdOutDir,
		})
		fmt.Fprintln(cmd.OutOrStdout(), inv)
	},
}

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Print the commands reference",
	Run: func(cmd *cobra.Command, args []string) {
		for i, example := range command.Reference() {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), example.Comment)
			for _, c := range example.Commands {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
		}
	},
}

func init() {
	commandCmd.PersistentFlags().StringVar(&cmdFPS, "fps", command.DefaultFPS, "Frames per second")
	commandCmd.PersistentFlags().StringVar(&cmdDuration, "duration", command.DefaultDurationSec, "Duration in seconds")
	recordCmd.Flags().StringVarP(&cmdOutFile, "out", "o", command.DefaultOutFile, "Output file")
	captureCmd.Flags().StringVar(&cmdOutDir, "out-dir", "", "Output directory for the screenshots")

	commandCmd.AddCommand(recordCmd)
	commandCmd.AddCommand(captureCmd)
	commandCmd.AddCommand(referenceCmd)
}
