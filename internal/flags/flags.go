package flags

// Package flags defines canonical CLI flag names shared across commands.
// Keeping these as constants avoids drift between Cobra flag wiring and help
// or guidance text that references flags by name.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	FlagRepo    = "repo"
	FlagPolicy  = "policy"
	FlagFormat  = "format"
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
)
