package main

import (
	yumlog "github.com/darbotlabs/yumlog-manager"
	"github.com/darbotlabs/yumlog-manager/settings"
	"github.com/spf13/cobra"
)

var (
	serveAddress string
	serveSilence bool
	saveSettings bool
)

func loadSettings() (settings.Settings, error) {
	path := settingsPath
	if path == "" {
		path = settings.Path()
	}
	return settings.Load(path)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the control page",
	Long: `Serve the Yumlog Manager control page and its API.

Flags override the values of the settings file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("address") {
			s.Address = serveAddress
		}
		if cmd.Flags().Changed("silence") {
			s.Silence = serveSilence
		}
		if saveSettings {
			path := settingsPath
			if path == "" {
				path = settings.Path()
			}
			if err := settings.Save(path, s); err != nil {
				return err
			}
		}

		server := &yumlog.Server{
			Name:    s.Name,
			Silence: s.Silence,
			Defaults: yumlog.Defaults{
				Record:        s.Page.Record,
				RecordingsDir: s.Page.RecordingsDir,
			},
		}
		if err := server.StartWithError(s.Address); err != nil {
			return err
		}
		server.WaitClose()
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddress, "address", "a", settings.DefaultAddress, "Listen address")
	serveCmd.Flags().BoolVar(&serveSilence, "silence", false, "Suppress console output")
	serveCmd.Flags().BoolVar(&saveSettings, "save", false, "Write the effective settings back to the settings file")
}
