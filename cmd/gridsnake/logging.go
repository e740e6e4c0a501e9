package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/config"
)

// logPath resolves --log-file. Backends own the terminal, so logs go to a
// file unless "-" asks for stderr.
func logPath(flag string) string {
	switch {
	case flag == "-":
		return "-"
	case flag == "":
		dir := config.Dir()
		if dir == "" {
			return ""
		}
		return filepath.Join(dir, "gridsnake.log")
	case strings.HasPrefix(flag, "~"):
		home, err := os.UserHomeDir()
		if err != nil {
			return flag
		}
		return filepath.Join(home, flag[1:])
	default:
		return flag
	}
}

// newLogger opens the session logger. The returned func closes the log file.
func newLogger(flag string, verbose bool) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}

	switch path := logPath(flag); path {
	case "":
	case "-":
		w = os.Stderr
	default:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, closeFn, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closeFn, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridsnake",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}
