package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON logger on stdout as the process default. main swaps
// in a MultiHandler later, once the database sink is available.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
