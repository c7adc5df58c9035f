package main

// GlobalFlags holds persistent flags shared by all commands
type GlobalFlags struct {
	ConfigPath string
}

// RunFlags holds flags for the root (full sequence) command
type RunFlags struct {
	SkipEnvCheck bool
}

// StopFlags holds flags for the stop command
type StopFlags struct {
	Target string
}

// LaunchFlags holds flags for the launch command
type LaunchFlags struct {
	SkipEnvCheck bool
}

// HistoryFlags holds flags for the history command
type HistoryFlags struct {
	Limit int
}
