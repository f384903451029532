package common

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// NewLogger builds the JSON logger shared by every command. --quiet drops
// everything below errors, --verbose enables debug output.
func NewLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("quiet") {
		level = slog.LevelError
	}
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// TruncateString shortens s to max runes with an ellipsis for table cells.
func TruncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max || max < 4 {
		return s
	}
	return string(runes[:max-3]) + "..."
}
