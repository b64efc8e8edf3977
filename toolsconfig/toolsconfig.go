// Package toolsconfig holds the launcher configuration document shown in the
// configuration editor: the canned default and the save instructions.
//
// The editor content is free text. It is never validated, valid JSON is only
// compacted before being embedded in the save command.
package toolsconfig

import (
	"errors"
	"strings"

	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Path of the launcher configuration file, relative to the toolset root
const Path = `config\tools.json`

// SaveHeading heading of the save instructions
const SaveHeading = "To save the configuration:"

// EmptyMessage is shown when a save is requested without configuration
const EmptyMessage = "Please load or enter configuration first"

// ErrEmptyConfig the editor has no configuration to save
var ErrEmptyConfig = errors.New("toolsconfig: empty configuration")

// defaults per mode, capture and record keep their own defaultFps
var defaults = []struct {
	path  string
	value any
}{
	{"capture.defaultFps", 1},
	{"capture.defaultDurationSec", 10},
	{"capture.outputDir", "./yumlogs/screens"},
	{"capture.format", "png"},
	{"record.defaultFps", 30},
	{"record.defaultDurationSec", 10},
	{"record.outputFile", command.DefaultOutFile},
	{"record.codec", "libx264"},
	{"ffmpeg.autoInstall", true},
	{"ffmpeg.path", "ffmpeg"},
}

// Default returns the canned configuration document, indented with two spaces
func Default() string {
	doc := "{}"
	for _, d := range defaults {
		var err error
		doc, err = sjson.Set(doc, d.path, d.value)
		if err != nil {
			// static paths, sjson only fails on malformed paths
			panic(err)
		}
	}
	return strings.TrimSpace(gjson.Get(doc, "@pretty").Raw)
}

// LoadMessage is raised when the editor is filled with the default configuration
func LoadMessage() string {
	return "The active configuration is managed by the Yumlog CLI.\n\n" +
		"Run this in PowerShell to print it:\n" +
		command.Yumlog(command.VerbConfig).String() + "\n\n" +
		"The default configuration will be loaded into the editor."
}

// Instructions to persist an edited configuration
type Instructions struct {
	Heading string   `json:"heading"`
	Target  string   `json:"target"`
	Steps   []string `json:"steps"`
	Command string   `json:"command"`
}

// Compact returns doc without insignificant whitespace when it is valid JSON,
// anything else is returned trimmed
func Compact(doc string) string {
	doc = strings.TrimSpace(doc)
	if !gjson.Valid(doc) {
		return doc
	}
	return gjson.Get(doc, "@ugly").Raw
}

// psQuote single quotes a PowerShell literal
func psQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// Save returns the instructions to write doc into the configuration file
func Save(doc string) (Instructions, error) {
	if strings.TrimSpace(doc) == "" {
		return Instructions{}, ErrEmptyConfig
	}
	return Instructions{
		Heading: SaveHeading,
		Target:  Path,
		Steps: []string{
			"Open PowerShell in the toolset folder",
			"Run the command below to write " + Path,
			"Check the result with " + command.Yumlog(command.VerbConfig).String(),
		},
		Command: "Set-Content -Path " + Path + " -Encoding UTF8 -Value " + psQuote(Compact(doc)),
	}, nil
}
