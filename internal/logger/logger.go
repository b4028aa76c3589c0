// Package logger configures the process-wide phuslu/log logger.
package logger

import (
	"os"

	"github.com/phuslu/log"
)

// Init installs the default logger at the given level ("debug", "info", ...).
// JSON output goes to stdout; otherwise a console writer on stderr is used.
func Init(level string, json bool) {
	l := log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "2006-01-02 15:04:05",
	}
	if json {
		l.Writer = &log.IOWriter{Writer: os.Stdout}
	} else {
		l.Writer = &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: log.IsTerminal(os.Stderr.Fd()),
		}
	}
	log.DefaultLogger = l
}
