package logger

import (
	"go.uber.org/zap"
)

// New builds the console logger for the given environment. Development
// gets the human-readable zap config, everything else the production
// JSON config.
func New(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
