package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const appName = "importsteps"

// Options controls where the global logger writes
type Options struct {
	// Verbosity is the -v count
	Verbosity int
	// Console receives human readable output. Nil means stderr.
	Console io.Writer
	// LogFile overrides the XDG state path. Ignored when NoFile is set.
	LogFile string
	NoFile  bool
}

// SetupLogger configures the global logger for a -v count, writing to stderr
// and to the log file under the XDG state directory
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity})
}

// Setup installs the global logger described by opts and returns the log
// file in use, or "" when logging to the console only
func Setup(opts Options) string {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	var (
		logPath string
		fileErr error
	)
	if !opts.NoFile {
		logPath = opts.LogFile
		if logPath == "" {
			logPath = DefaultLogFile()
		}
		var f *os.File
		if f, fileErr = openLogFile(logPath); fileErr == nil {
			writers = append(writers, f)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Log file unavailable, logging to console only")
		logPath = ""
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logPath).Msg("Logger initialized")
	return logPath
}

// LevelFor maps a -v count to a zerolog level
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Timed logs operation at debug level and returns a func that logs its
// duration. Typical use is defer logging.Timed(logger, "end_batch")().
func Timed(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

// DefaultLogFile is importsteps/importsteps.log under the XDG state home
func DefaultLogFile() string {
	if xdg.StateHome == "" {
		return appName + ".log"
	}
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
