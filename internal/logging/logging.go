// Package logging configures the process-wide structured logger.
//
// Logs are discarded unless debug logging is enabled, in which case they are
// written as JSON to a file: either the configured path or a uuid-named file
// in the log directory, which is rotated to keep at most MaxFiles logs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Options controls Initialize.
type Options struct {
	Debug bool
	// File is an explicit log file path. It disables rotation.
	File string
	// Dir receives uuid-named log files when File is empty.
	Dir string
	// MaxFiles is the number of log files kept in Dir; 0 keeps everything.
	MaxFiles int
	// Verbose mirrors log records to Stderr as text.
	Verbose bool
	Stderr  io.Writer
}

var (
	current = func() *atomic.Pointer[slog.Logger] {
		var p atomic.Pointer[slog.Logger]
		p.Store(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		return &p
	}()
	debugEnabled atomic.Bool
)

// Logger returns the process-wide logger. It is never nil.
func Logger() *slog.Logger {
	return current.Load()
}

// SetLogger replaces the process-wide logger; tests use it to capture output.
func SetLogger(l *slog.Logger) {
	current.Store(l)
}

// DebugEnabled reports whether debug logging was turned on.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Initialize sets up the logger. It returns the log file path, or "" when
// logs are not written to a file.
func Initialize(opts Options) (string, error) {
	if os.Getenv("REVIEWWATCH_DEBUG") == "1" {
		opts.Debug = true
	}
	if envFile := os.Getenv("REVIEWWATCH_LOG_FILE"); envFile != "" && opts.File == "" {
		opts.File = envFile
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	var handlers []slog.Handler
	if opts.Verbose {
		handlers = append(handlers, slog.NewTextHandler(opts.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	var logFilePath string
	if opts.Debug || opts.File != "" {
		path, err := openPath(opts)
		if err != nil {
			return "", err
		}

		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return "", fmt.Errorf("failed to create log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
		logFilePath = path
		debugEnabled.Store(true)
	}

	switch len(handlers) {
	case 0:
		SetLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	case 1:
		SetLogger(slog.New(handlers[0]))
	default:
		SetLogger(slog.New(fanout(handlers)))
	}

	if logFilePath != "" {
		Logger().Info("debug logging initialized", "log_file", logFilePath)
	}
	return logFilePath, nil
}

func openPath(opts Options) (string, error) {
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return "", fmt.Errorf("failed to create log directory: %w", err)
		}
		return opts.File, nil
	}

	if opts.Dir == "" {
		return "", fmt.Errorf("no log directory configured")
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	if opts.MaxFiles > 0 {
		if err := rotateLogs(opts.Dir, opts.MaxFiles); err != nil {
			// Rotation failure shouldn't prevent logging
			fmt.Fprintf(opts.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}
	return filepath.Join(opts.Dir, uuid.New().String()+".log"), nil
}

// rotateLogs removes the oldest .log files so that, after one more is
// created, at most maxLogFiles remain.
func rotateLogs(logDir string, maxLogFiles int) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			path:    filepath.Join(logDir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(logFiles) < maxLogFiles {
		return nil
	}

	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.Before(logFiles[j].modTime)
	})

	numToDelete := len(logFiles) - maxLogFiles + 1
	for i := 0; i < numToDelete && i < len(logFiles); i++ {
		if err := os.Remove(logFiles[i].path); err != nil {
			return fmt.Errorf("failed to delete old log file %s: %w", logFiles[i].path, err)
		}
	}
	return nil
}
