package svgpreview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/commons/logger"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/flanksource/svgpreview/formatters"
	"github.com/flanksource/svgpreview/host"
)

type AllFlags struct {
	formatters.RenderOptions
	host.WatchOptions
	ConfigFile  string
	Concurrency int
	logger.Flags
}

var Flags AllFlags = AllFlags{
	WatchOptions: host.WatchOptions{
		Debounce: host.DefaultDebounce,
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds logging, render and watch flags to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")

	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.StringVarP(&Flags.ConfigFile, "config", "c", "", "Render configuration file (default "+DefaultConfigFile+" when present)")
	formatters.BindPFlags(flags, &Flags.RenderOptions)

	flags.IntVarP(&Flags.Concurrency, "concurrency", "j", 0, "Files rendered in parallel (0 = one per CPU)")
	flags.DurationVar(&Flags.WatchOptions.Debounce, "debounce", host.DefaultDebounce, "Quiet period before a changed file is re-rendered")

	return Flags
}

func (a AllFlags) String() string {
	out, _ := yaml.Marshal(a)
	return string(out)
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
	logger.Debugf("Using flags: %s", a)
	if a.RenderOptions.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
