// Package logging provides the structured JSON logger used by the analysis
// audit trail and the process entrypoint.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines logger configuration.
type Config struct {
	Level      string
	Output     string // stdout, stderr, buffer, file
	FilePath   string
	Buffer     *bytes.Buffer
	Async      bool
	BufferSize int
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
}

// Fields represents log fields.
type Fields map[string]interface{}

// Level represents log level.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

type message struct {
	Timestamp time.Time
	Level     string
	Message   string
	Fields    Fields
	Error     error
}

// Stats tracks logging statistics.
type Stats struct {
	TotalLogs int64
	Dropped   int64
}

// Logger writes structured JSON log lines, optionally asynchronously, with
// size-based rotation for file output.
type Logger struct {
	config    *Config
	writer    io.Writer
	level     Level
	asyncChan chan *message
	stats     Stats
}

// New creates a structured logger.
func New(config *Config) (*Logger, error) {
	l := &Logger{
		config: config,
		level:  parseLevel(config.Level),
	}

	if err := l.setupWriter(); err != nil {
		return nil, err
	}

	if config.Async {
		size := config.BufferSize
		if size == 0 {
			size = 1000
		}
		l.asyncChan = make(chan *message, size)
		go l.processAsync()
	}

	return l, nil
}

func (l *Logger) setupWriter() error {
	switch l.config.Output {
	case "stderr":
		l.writer = os.Stderr
	case "buffer":
		if l.config.Buffer == nil {
			l.config.Buffer = &bytes.Buffer{}
		}
		l.writer = l.config.Buffer
	case "file":
		if l.config.FilePath == "" {
			return fmt.Errorf("file path required for file output")
		}
		if err := os.MkdirAll(filepath.Dir(l.config.FilePath), 0755); err != nil {
			return err
		}
		l.writer = &lumberjack.Logger{
			Filename:   l.config.FilePath,
			MaxSize:    l.config.MaxSize,
			MaxBackups: l.config.MaxBackups,
			MaxAge:     l.config.MaxAge,
		}
	default:
		l.writer = os.Stdout
	}
	return nil
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.level > DebugLevel {
		return
	}
	l.log("debug", msg, fields, nil)
}

// Info logs an info message.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	if l.level > InfoLevel {
		return
	}
	l.log("info", msg, fields, nil)
}

// Warn logs a warning message.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.level > WarnLevel {
		return
	}
	l.log("warn", msg, fields, nil)
}

// Error logs an error message.
func (l *Logger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log("error", msg, fields, err)
}

func (l *Logger) log(level, msg string, fields Fields, err error) {
	m := &message{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Fields:    fields,
		Error:     err,
	}
	atomic.AddInt64(&l.stats.TotalLogs, 1)

	if l.config.Async {
		select {
		case l.asyncChan <- m:
		default:
			atomic.AddInt64(&l.stats.Dropped, 1)
		}
		return
	}
	l.write(m)
}

func (l *Logger) write(m *message) {
	entry := map[string]interface{}{
		"timestamp": m.Timestamp.Format(time.RFC3339),
		"level":     m.Level,
		"message":   m.Message,
	}
	if m.Fields != nil {
		entry["fields"] = m.Fields
	}
	if m.Error != nil {
		entry["error"] = m.Error.Error()
	}

	data, _ := json.Marshal(entry)
	_, _ = l.writer.Write(append(data, '\n'))
}

func (l *Logger) processAsync() {
	for m := range l.asyncChan {
		l.write(m)
	}
}

// Flush drains any buffered async logs.
func (l *Logger) Flush() {
	if l.config.Async && l.asyncChan != nil {
		close(l.asyncChan)
		time.Sleep(10 * time.Millisecond)
	}
}

// GetStats returns logging statistics.
func (l *Logger) GetStats() Stats {
	return Stats{
		TotalLogs: atomic.LoadInt64(&l.stats.TotalLogs),
		Dropped:   atomic.LoadInt64(&l.stats.Dropped),
	}
}

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
