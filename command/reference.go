package command

// Example is a commented group of reference commands
type Example struct {
	Comment  string
	Commands []string
}

// Reference returns the command examples listed on the reference section
func Reference() []Example {
	return []Example{
		{
			Comment: "# Start a screen recording",
			Commands: []string{Invocation{
				Script: RecordScript,
				Args:   []Arg{{"Fps", "30"}, {"DurationSec", "10"}, {"OutFile", `.\myvideo.mp4`}},
			}.String()},
		},
		{
			Comment: "# Capture periodic screenshots",
			Commands: []string{Invocation{
				Script: CaptureScript,
				Args:   []Arg{{"Fps", "2"}, {"DurationSec", "5"}, {"OutDir", `.\myscreens`}},
			}.String()},
		},
		{
			Comment: "# Using the unified CLI",
			Commands: []string{
				Yumlog(VerbStart).String(),
				Yumlog(VerbGet).String(),
				Yumlog(VerbCount).String(),
				Yumlog(VerbSize).String(),
				Yumlog(VerbConfig).String(),
			},
		},
		{
			Comment:  "# Install FFmpeg (if needed)",
			Commands: []string{Invocation{Script: InstallScript}.String()},
		},
		{
			Comment:  "# Run tests",
			Commands: []string{Invocation{Script: RunTestsScript}.String()},
		},
	}
}

// StatisticsCommands lists the unified CLI calls that report recording statistics
func StatisticsCommands() []string {
	return []string{
		Yumlog(VerbCount).String(),
		Yumlog(VerbSize).String(),
		Yumlog(VerbGet).String(),
	}
}
