package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/darbotlabs/yumlog-manager/audit"
	"github.com/spf13/cobra"
)

var (
	auditTimeout time.Duration
	auditMaxLoad time.Duration
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Run the UI audit checks against a page",
	Long: `Load a page in headless Chrome and run the UI audit checks:
title, error text, single h1, load time, https, security headers
and horizontal overflow on mobile and tablet viewports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), auditTimeout)
		defer cancel()

		report, err := audit.Run(ctx, args[0], audit.Options{MaxLoadTime: auditMaxLoad})
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.String())
		if !report.Passed() {
			return errors.New("audit failed")
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", time.Minute, "Overall audit timeout")
	auditCmd.Flags().DurationVar(&auditMaxLoad, "max-load", 5*time.Second, "Maximum page load time")
}
