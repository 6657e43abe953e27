package main

import (
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for gojson-gen, allowing callers to
// customize flag names while keeping sensible defaults via NewConfig.
type Flags struct {
	Output   string
	Package  string
	LogLevel string
}

// Config holds CLI flag values for gojson-gen.
//
// Create instances with NewConfig and register CLI flags with
// Config.RegisterFlags.
type Config struct {
	Flags    Flags
	Output   string
	Package  string
	LogLevel string
}

// NewConfig returns a new Config with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output:   "output",
		Package:  "package",
		LogLevel: "log-level",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds gojson-gen flags to the given *pflag.FlagSet.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"output file path (defaults to <input>_gojson.go next to the first input file)")
	flags.StringVarP(&c.Package, c.Flags.Package, "p", "",
		"package name for the generated file (defaults to the input file's package)")
	flags.StringVar(&c.LogLevel, c.Flags.LogLevel, "info",
		"diagnostic log level, one of: debug, info, warn, error")
}
