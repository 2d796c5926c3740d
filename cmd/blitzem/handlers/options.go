package handlers

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/imamik/blitzem/internal/provisioning"
)

// Options carries the global CLI flags.
type Options struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	Trace           bool
	MetricsFile     string
	AllowDuplicates bool
	Order           string
	Parallel        bool
}

func (o *Options) runOptions() (provisioning.Options, error) {
	run := provisioning.Options{Parallel: o.Parallel}
	if o.AllowDuplicates {
		run.CreatePolicy = provisioning.CreateAlways
	}
	switch o.Order {
	case "", "topological":
		run.Order = provisioning.OrderTopological
	case "declared":
		run.Order = provisioning.OrderDeclared
	default:
		return run, fmt.Errorf("invalid order %q: must be topological or declared", o.Order)
	}
	return run, nil
}

func (o *Options) logLevel() (zerolog.Level, error) {
	if o.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return level, nil
}
