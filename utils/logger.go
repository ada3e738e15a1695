package utils

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Every part of the auction engine logs through these helpers so the whole
// process emits one JSON line format with ISO 8601 timestamps.
func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})

	log.SetOutput(os.Stdout)

	log.SetLevel(log.InfoLevel)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := log.ParseLevel(raw); err == nil {
			log.SetLevel(level)
		}
	}
}

// Info logs a message at info level with optional fields
func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

// Warn logs a message at warning level with optional fields
func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

// Error logs a message at error level with optional fields
func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}

// Fatal logs a message at fatal level and exits the process
func Fatal(message string, fields map[string]any) {
	log.WithFields(fields).Fatal(message)
}
