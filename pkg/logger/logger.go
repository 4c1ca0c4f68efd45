// Package logger builds the shared zap logger for the application.
package logger

import (
	"os"

	"go.uber.org/zap"
)

// New returns a production zap logger, or a development one when APP_ENV is
// "development".
func New() *zap.Logger {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
