package svgx

import (
	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
)

// AllFlags collects the process-level options shared by svgx tooling.
type AllFlags struct {
	logger.Flags

	// CachePath is the sqlite variant database location. Empty means the
	// default under ~/.cache/svgx.
	CachePath string

	// NoCache keeps variants in memory only, so nothing persists.
	NoCache bool

	// ReadOnly disables variant generation: cache misses fall back to the
	// source document.
	ReadOnly bool

	// Sanitize scrubs active content from documents on load.
	Sanitize bool
}

var Flags = AllFlags{
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds the shared flags to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) *AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVar(&Flags.CachePath, "cache", "", "Variant cache database path (default ~/.cache/svgx/variants.db)")
	flags.BoolVar(&Flags.NoCache, "no-cache", false, "Keep variants in memory only")
	flags.BoolVar(&Flags.ReadOnly, "read-only", false, "Serve cached variants without generating new ones")
	flags.BoolVar(&Flags.Sanitize, "sanitize", false, "Scrub active content from documents on load")

	return &Flags
}

// UseFlags applies the parsed flags to the process.
func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
}
