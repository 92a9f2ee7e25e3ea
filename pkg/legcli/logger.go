// Package legcli holds the ambient CLI concerns shared by cmd/legrag's
// subcommands: logger setup, duration/summary formatting, and exit-code
// policy, kept out of main.go so each subcommand stays a thin RunE.
package legcli

import (
	"go.uber.org/zap"
)

// NewLogger builds the process-wide structured logger. Verbose selects
// development encoding (human-readable, debug level); otherwise
// production JSON encoding at info level, matching the teacher corpus's
// convention of a single logger built once at startup and threaded
// through rather than a package-level global.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	return cfg.Build()
}
