package main

import (
	"github.com/spf13/pflag"
)

var (
	flagFiles     []string
	flagToolbox   string
	flagLogLevel  string
	flagLogFormat string
)

// sharedFlags returns the flags every subcommand understands.
func sharedFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.StringArrayVarP(&flagFiles, "file", "f", nil,
		"block definition file, JSON or YAML (repeatable; default: ~/.config/"+appName+"/blocks/*)")
	fs.StringVar(&flagToolbox, "toolbox", "",
		"toolbox JSON document (default: ~/.config/"+appName+"/toolbox.json)")
	fs.StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&flagLogFormat, "log-format", "text", "log format: text or json")
	return fs
}
