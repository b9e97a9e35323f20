package main

import (
	"os"

	"quillpad/internal/app"
	"quillpad/internal/config"
	"quillpad/internal/logger"
)

func main() {
	cfg := config.Load()
	log := buildLogger(cfg)

	log.Info("Main", "starting", map[string]interface{}{
		"app":     app.AppName,
		"version": app.AppVersion,
	})

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		log.Error("Main", err, nil)
		os.Exit(1)
	}

	log.Info("Main", "terminated", nil)
}

func buildLogger(cfg config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.JSONLogs {
		return logger.NewJSONLogger(level)
	}
	return logger.NewConsoleLogger(level)
}
