// Package logging provides logger construction and sanitization
// helpers for values that end up in logs or the audit trail.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger builds the service logger. Local environments get the
// human-readable development encoder; everything else logs JSON.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
