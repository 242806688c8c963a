// Package log writes wrapper diagnostics to a file under the system temp
// directory. The wrapper's own stdout and stderr belong to git once the
// handoff happens, and the waiting indicator is the only thing allowed on
// them before it, so nothing here ever touches the process's visible streams.
// Enable verbose event tracing by setting GW_DEBUG=1.
package log

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	DebugEnabled bool
	DebugLog     *log.Logger

	logFile *os.File
)

var logFileName = filepath.Join(os.TempDir(), "gitwait.log")

// Initialize opens the log file and sets up the package-level loggers.
// On any failure the loggers fall back to io.Discard so callers never need
// nil checks.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		InfoLog = log.New(io.Discard, "", 0)
		WarningLog = log.New(io.Discard, "", 0)
		ErrorLog = log.New(io.Discard, "", 0)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}
	logFile = f

	flags := log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
	InfoLog = log.New(f, "INFO: ", flags)
	WarningLog = log.New(f, "WARNING: ", flags)
	ErrorLog = log.New(f, "ERROR: ", flags)

	if os.Getenv("GW_DEBUG") == "1" {
		DebugEnabled = true
		DebugLog = log.New(f, "DEBUG: ", flags)
	} else {
		DebugLog = log.New(io.Discard, "", 0)
	}
}

// Close closes the log file. Call before handing the process off.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Debug logs a debug message if GW_DEBUG=1 was set at Initialize time.
func Debug(format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf(format, v...)
	}
}
