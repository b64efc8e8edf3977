// Package command renders the PowerShell invocations shown by the manager.
// Nothing here executes a launcher; the strings are meant to be copied.
package command

import "strings"

// LauncherDir is the folder, relative to the toolset root, holding the launcher scripts.
const LauncherDir = `.\launchers\`

// Launcher script names
const (
	RecordScript   = "record.ps1"
	CaptureScript  = "capture.ps1"
	YumlogScript   = "yumlog.ps1"
	InstallScript  = "install.ps1"
	RunTestsScript = "run-tests.ps1"
)

// Default recording values used to prefill the quick start form
const (
	DefaultFPS         = "30"
	DefaultDurationSec = "10"
	DefaultOutFile     = "./yumlogs/yumlog.mp4"
)

// Arg is a single -Name value pair of a launcher invocation
type Arg struct {
	Name  string
	Value string
}

// Invocation of a launcher script.
//
// Verb: optional subcommand written right after the script (yumlog.ps1 count)
//
// Args: parameters in the order they are rendered
type Invocation struct {
	Script string
	Verb   string
	Args   []Arg
}

// String renders the invocation as a single PowerShell line
func (inv Invocation) String() string {
	var b strings.Builder
	b.WriteString(LauncherDir)
	b.WriteString(inv.Script)
	if inv.Verb != "" {
		b.WriteString(" ")
		b.WriteString(inv.Verb)
	}
	for _, arg := range inv.Args {
		b.WriteString(" -")
		b.WriteString(arg.Name)
		if arg.Value != "" {
			b.WriteString(" ")
			b.WriteString(arg.Value)
		}
	}
	return b.String()
}

// Quote wraps a value in double quotes
func Quote(value string) string {
	return `"` + value + `"`
}

// RecordParams values of the record form, taken literally from the input fields
type RecordParams struct {
	FPS         string `json:"fps"`
	DurationSec string `json:"duration"`
	OutFile     string `json:"outFile"`
}

// CaptureParams values of the capture form, OutDir is optional
type CaptureParams struct {
	FPS         string `json:"fps"`
	DurationSec string `json:"duration"`
	OutDir      string `json:"outDir,omitempty"`
}

// DefaultRecordParams returns the quick start defaults
func DefaultRecordParams() RecordParams {
	return RecordParams{
		FPS:         DefaultFPS,
		DurationSec: DefaultDurationSec,
		OutFile:     DefaultOutFile,
	}
}

// Record builds the record.ps1 invocation
func Record(p RecordParams) Invocation {
	return Invocation{
		Script: RecordScript,
		Args: []Arg{
			{"Fps", p.FPS},
			{"DurationSec", p.DurationSec},
			{"OutFile", Quote(p.OutFile)},
		},
	}
}

// Capture builds the capture.ps1 invocation
func Capture(p CaptureParams) Invocation {
	inv := Invocation{
		Script: CaptureScript,
		Args: []Arg{
			{"Fps", p.FPS},
			{"DurationSec", p.DurationSec},
		},
	}
	if p.OutDir != "" {
		inv.Args = append(inv.Args, Arg{"OutDir", Quote(p.OutDir)})
	}
	return inv
}

// Yumlog builds an invocation of the unified CLI
func Yumlog(verb string) Invocation {
	return Invocation{Script: YumlogScript, Verb: verb}
}

// Unified CLI verbs
const (
	VerbStart  = "start"
	VerbGet    = "get"
	VerbCount  = "count"
	VerbSize   = "size"
	VerbConfig = "config"
)
