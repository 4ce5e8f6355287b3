package worldview

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w at the given level, with
// timestamps formatted as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "worldview",
	})
}

// defaultLogger reports warnings and errors to stderr.
func defaultLogger() *log.Logger {
	return NewLogger(os.Stderr, log.WarnLevel)
}
