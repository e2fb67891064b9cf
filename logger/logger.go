// Package logger configures the global zerolog logger from the environment.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const milliTimeFormat = "15:04:05.000"

// Init sets the global log level from LOG_LEVEL (default info), writes to stderr
// and, when LOG_FILE is set, appends to that file too. debug forces debug level.
// The returned function closes the log file, if any.
func Init(debug bool) func() {
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }

	const callerWidth = 20
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		path := fmt.Sprintf("%s:%d", filepath.Base(file), line)
		if len(path) >= callerWidth {
			return path[len(path)-callerWidth:]
		}
		return path + strings.Repeat(" ", callerWidth-len(path))
	}

	level := parseLevel(os.Getenv("LOG_LEVEL"))
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: milliTimeFormat,
		NoColor:    os.Getenv("DEV") != "true",
	}
	closeFile := func() {}
	logFile := os.Getenv("LOG_FILE")
	var openErr error
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			openErr = err
		} else {
			output = io.MultiWriter(output, f)
			closeFile = func() {
				if err := f.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "failed to close log file %s: %v\n", logFile, err)
				}
			}
		}
	}

	log.Logger = log.Output(output).With().Caller().Logger()
	if openErr != nil {
		log.Warn().Err(openErr).Str("file", logFile).Msg("failed to open log file, logging to stderr only")
	}
	log.Debug().Str("level", level.String()).Msg("logger initialized")
	return closeFile
}

func parseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
