package app

import (
	"os"

	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/logx"
)

// NewLogger builds the JSON stdout logger at the configured level.
func NewLogger(cfg *config.Config) logx.Logger {
	return logx.NewJSON(os.Stdout, cfg.LogLevel).With(logx.String("service", serviceName))
}
