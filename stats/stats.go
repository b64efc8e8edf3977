package stats

import (
	"strconv"
	"strings"

	"github.com/darbotlabs/yumlog-manager/command"
)

// NotAvailable is shown when there is no latest recording
const NotAvailable = "N/A"

// Snapshot of the recordings statistics panel
type Snapshot struct {
	Count       int     `json:"count"`
	TotalSizeMB float64 `json:"totalSizeMB"`
	Latest      string  `json:"latest"`
}

// Empty returns the snapshot displayed on a fresh page
func Empty() Snapshot {
	return Snapshot{}
}

// CountLabel text for the total recordings card
func (s Snapshot) CountLabel() string {
	return strconv.Itoa(s.Count)
}

// SizeLabel text for the total size card
func (s Snapshot) SizeLabel() string {
	return strconv.FormatFloat(s.TotalSizeMB, 'f', -1, 64) + " MB"
}

// LatestLabel text for the latest recording card
func (s Snapshot) LatestLabel() string {
	if s.Latest == "" {
		return NotAvailable
	}
	return s.Latest
}

// RefreshMessage is raised instead of computing statistics,
// the numbers come from the unified CLI
func RefreshMessage() string {
	var b strings.Builder
	b.WriteString("Statistics are computed by the Yumlog CLI.\n\n")
	b.WriteString("Run these commands in PowerShell from the toolset folder:\n")
	for _, c := range command.StatisticsCommands() {
		b.WriteString(c)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
