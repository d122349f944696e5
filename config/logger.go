package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const logFormat = `%%{time:2006-01-02T15:04:05.000Z07:00} %s %%{program}[%%{pid}] %%{level:.4s} %%{shortfunc} ▶ %%{message}`

// SetupLogging installs the process-wide go-logging backend writing to w.
// Records carry timestamp, host, pid and program name.
func SetupLogging(level string, w io.Writer) error {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}

	formatter, err := logging.NewStringFormatter(fmt.Sprintf(logFormat, host))
	if err != nil {
		return fmt.Errorf("invalid log format: %w", err)
	}

	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}
