package logger

import (
	"log/slog"
	"os"
)

// L is the process-wide logger. Binaries may swap it via Set before
// serving; everything else logs through it.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Set replaces the process-wide logger. A nil logger is ignored.
func Set(l *slog.Logger) {
	if l != nil {
		L = l
	}
}
