package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// TaskStarted logs the start of a task execution
func (l *Logger) TaskStarted(task string, blocks int) {
	l.Info("task started",
		"task", task,
		"blocks", blocks)
}

// TaskCompleted logs the completion of a task execution
func (l *Logger) TaskCompleted(task string, executed int, duration time.Duration) {
	l.Info("task completed",
		"task", task,
		"blocks_executed", executed,
		"duration", duration.Round(time.Millisecond))
}

// BlockExecuting logs the dispatch of a code block to its runtime
func (l *Logger) BlockExecuting(lang, command, mode string) {
	l.Debug("executing block",
		"lang", lang,
		"command", command,
		"mode", mode)
}

// BlockSkipped logs when a code block is skipped
func (l *Logger) BlockSkipped(reason string) {
	l.Debug("block skipped",
		"reason", reason)
}

// ExecError logs a failed block execution
func (l *Logger) ExecError(lang string, err error) {
	l.Error("block execution failed",
		"lang", lang,
		"error", err)
}

// SectionsExtracted logs the result of a document extraction
func (l *Logger) SectionsExtracted(count, level int) {
	l.Debug("sections extracted",
		"count", count,
		"heading_level", level)
}

// TempFileWritten logs the creation of a File-mode temp file
func (l *Logger) TempFileWritten(path string) {
	l.Debug("temp file written",
		"path", path)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, runtimes, level int) {
	l.Debug("config loaded",
		"path", path,
		"runtimes", runtimes,
		"heading_level", level)
}
