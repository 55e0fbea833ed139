// Package logging provides the leveled logger used across the engine.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level orders log messages by severity.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case insensitive) into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

// Logger writes every message at or above its level to the console and,
// when opened with a file, every message of any level to that file.
type Logger struct {
	level         Level
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
}

// New creates a console-only logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		level:         level,
		consoleLogger: log.New(w, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, ERROR+1)
}

// Open creates a logger writing to stdout and appending to the file at path.
// An empty path yields a console-only logger.
func Open(path string, level Level) (*Logger, error) {
	l := New(os.Stdout, level)
	if path == "" {
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = file
	l.fileLogger = log.New(file, "", log.LstdFlags)
	return l, nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

// Level returns the minimum console level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Tracef(format string, args ...interface{}) { l.logf(TRACE, format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(ERROR, format, args...) }

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	message := fmt.Sprintf("[%s] %s", level, fmt.Sprintf(format, args...))
	if l.fileLogger != nil {
		l.fileLogger.Println(message)
	}
	if level >= l.level {
		l.consoleLogger.Println(message)
	}
}
