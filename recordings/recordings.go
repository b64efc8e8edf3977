// Package recordings produces the instructions for the recordings folder.
// The manager never touches the filesystem, it tells the user what to run.
package recordings

import (
	"github.com/darbotlabs/yumlog-manager/command"
)

// DefaultDir recordings directory prefilled on the page
const DefaultDir = "./yumlogs"

// BrowseTitle heading of the browse instructions
const BrowseTitle = "To browse recordings:"

// Info block rendered under the recordings management form
type Info struct {
	Title     string   `json:"title"`
	Directory string   `json:"directory"`
	Steps     []string `json:"steps"`
}

// Browse returns the steps to list the recordings stored in dir,
// dir is used as typed, empty included
func Browse(dir string) Info {
	return Info{
		Title:     BrowseTitle,
		Directory: dir,
		Steps: []string{
			"Open PowerShell in the toolset folder",
			"List the recordings: Get-ChildItem " + command.Quote(dir),
			"Or show the latest one: " + command.Yumlog(command.VerbGet).String(),
		},
	}
}

// OpenFolderMessage tells how to open dir in the file explorer
func OpenFolderMessage(dir string) string {
	return "Browsers can't open local folders.\n\n" +
		"Run this in PowerShell to open the recordings folder:\n" +
		"explorer " + command.Quote(dir)
}
