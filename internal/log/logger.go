// Package log provides logging functionality to both console and file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"
)

// Logger writes output to both console and a log file.
type Logger struct {
	file     *os.File
	writer   io.Writer
	fileOnly bool
}

// FileName is the name of the log file inside the log directory.
const FileName = "skilltrail.log"

// New creates a new logger that writes to both console and a log file
// in logDir.
func New(logDir string) (*Logger, error) {
	file, err := openLogFile(logDir)
	if err != nil {
		return nil, err
	}

	return &Logger{
		file:   file,
		writer: io.MultiWriter(os.Stdout, file),
	}, nil
}

// NewFileOnly creates a logger that writes only to the log file. The MCP
// server uses it because stdout carries the JSON-RPC stream.
func NewFileOnly(logDir string) (*Logger, error) {
	file, err := openLogFile(logDir)
	if err != nil {
		return nil, err
	}
	return &Logger{file: file, writer: file, fileOnly: true}, nil
}

func openLogFile(logDir string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, FileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...interface{}) {
	msg := fmt.Sprintln(args...)
	_, _ = fmt.Fprint(l.writer, msg)
}

// Errorf writes a formatted error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	formatted := fmt.Sprintf("[%s] %s\n", timestamp, msg)
	if !l.fileOnly {
		_, _ = fmt.Fprint(os.Stderr, formatted)
	}
	_, _ = fmt.Fprint(l.file, formatted)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Global logger instance
var globalLogger *Logger

// Init initializes the global logger writing to console and file.
// Also redirects Go's standard log package to the log file.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	setGlobal(logger)
	return nil
}

// InitFileOnly initializes the global logger without console output.
func InitFileOnly(logDir string) error {
	logger, err := NewFileOnly(logDir)
	if err != nil {
		return err
	}
	setGlobal(logger)
	return nil
}

// Global returns the global logger, or nil before Init.
func Global() *Logger {
	return globalLogger
}

func setGlobal(logger *Logger) {
	globalLogger = logger

	// Keep stray log.Printf output off the terminal
	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}
