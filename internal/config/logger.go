package config

import "go.uber.org/zap"

// NewLogger builds the zap logger used across the application. Operator
// notices go to stdout through the terminal package; the logger is the
// diagnostics channel.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg != nil && cfg.LogFormat == "json" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
