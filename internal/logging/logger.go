package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents log severity levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Fields carries structured context on a log line.
type Fields map[string]interface{}

// Entry is one JSON log line.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
}

// FileOptions configures rotation for file output.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Logger writes structured JSON lines. Derived loggers share the parent's
// writer and lock.
type Logger struct {
	mu     *sync.Mutex
	output io.Writer
	level  Level
	fields Fields
}

// New creates a Logger writing to stdout at info level.
func New() *Logger {
	return &Logger{
		mu:     &sync.Mutex{},
		output: os.Stdout,
		level:  LevelInfo,
		fields: Fields{},
	}
}

// NewFile creates a Logger writing to a rotating file.
func NewFile(opts FileOptions) *Logger {
	l := New()
	l.output = &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	return l
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	return l
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	return l
}

// Close releases the underlying writer when it is closable.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if c, ok := l.output.(io.Closer); ok && l.output != os.Stdout && l.output != os.Stderr {
		return c.Close()
	}
	return nil
}

// Component returns a logger tagged with a component name.
func (l *Logger) Component(name string) *Logger {
	return l.WithFields(Fields{"component": name})
}

// WithFields returns a new logger with additional fields.
func (l *Logger) WithFields(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{
		mu:     l.mu,
		output: l.output,
		level:  l.level,
		fields: merged,
	}
}

func (l *Logger) Debug(msg string, fields ...Fields) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Fields)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Fields)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Fields) { l.log(LevelError, msg, fields) }

func (l *Logger) log(level Level, msg string, extra []Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
	}

	if len(l.fields) > 0 || len(extra) > 0 {
		entry.Fields = make(Fields, len(l.fields))
		for k, v := range l.fields {
			entry.Fields[k] = v
		}
		for _, f := range extra {
			for k, v := range f {
				if err, ok := v.(error); ok {
					v = err.Error()
				}
				entry.Fields[k] = v
			}
		}
		if len(entry.Fields) == 0 {
			entry.Fields = nil
		}
	}

	data, err := json.Marshal(entry)
	if err != nil {
		_, _ = io.WriteString(l.output, entry.Timestamp+" "+entry.Level+" "+msg+"\n")
		return
	}
	_, _ = l.output.Write(append(data, '\n'))
}

// Default is the process-wide fallback logger.
var Default = New()

func Debug(msg string, fields ...Fields) { Default.Debug(msg, fields...) }
func Info(msg string, fields ...Fields)  { Default.Info(msg, fields...) }
func Warn(msg string, fields ...Fields)  { Default.Warn(msg, fields...) }
func Error(msg string, fields ...Fields) { Default.Error(msg, fields...) }
