package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"retool/internal/history"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// ShouldColorize reports whether writer is a terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func statusColor(status history.Status) string {
	switch status {
	case history.StatusOK:
		return ansiGreen
	case history.StatusNoTitles:
		return ansiYellow
	case history.StatusFailed:
		return ansiRed
	default:
		return ""
	}
}

func paintStatus(status history.Status, colorize bool) string {
	label := string(status)
	if !colorize {
		return label
	}
	if color := statusColor(status); color != "" {
		return color + label + ansiReset
	}
	return label
}
