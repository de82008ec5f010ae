package app

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger. APP_ENV=production switches
// to JSON output; anything else gets the human-readable development config.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
