package logging

import (
	"log/slog"
	"os"

	"gorm.io/gorm"
)

// Setup installs the JSON stdout logger as the process default. Once the
// database is connected, AttachDB upgrades it to also persist ERROR+ records.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// AttachDB swaps the default logger for one that fans out to stdout and the
// async Postgres batch handler. It returns the handler so the caller can
// drain it on shutdown.
func AttachDB(db *gorm.DB) *PGHandler {
	pg := NewPGHandler(db)
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), pg)))
	return pg
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
