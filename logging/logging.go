// Package logging provides leveled console output for swarm runs.
// The outcome slice returned by a run is the record of what happened; this
// package exists for real-time monitoring of pacing, permit flips, and
// window resets while a batch is in flight.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// Logger writes structured log lines to a single output.
// Child loggers created with WithComponent and WithWorker share the output
// and minimum level with their parent.
type Logger struct {
	mu        *sync.Mutex
	output    io.Writer
	minLevel  *Level
	component string
	workerID  string
}

// New creates a new Logger writing to stdout at info level.
func New() *Logger {
	min := LevelInfo
	return &Logger{
		mu:       &sync.Mutex{},
		output:   os.Stdout,
		minLevel: &min,
	}
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() *Logger {
	min := Level("NONE")
	return &Logger{
		mu:       &sync.Mutex{},
		output:   io.Discard,
		minLevel: &min,
	}
}

// priority returns the numeric priority for a level.
// Unknown levels filter out everything.
func priority(l Level) int {
	if p, ok := levelPriority[l]; ok {
		return p
	}
	return int(^uint(0) >> 1)
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		mu:        l.mu,
		output:    l.output,
		minLevel:  l.minLevel,
		component: component,
		workerID:  l.workerID,
	}
}

// WithWorker returns a child logger tagged with a worker ID.
func (l *Logger) WithWorker(id string) *Logger {
	return &Logger{
		mu:        l.mu,
		output:    l.output,
		minLevel:  l.minLevel,
		component: l.component,
		workerID:  id,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as sorted key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a line in the format: LEVEL TIMESTAMP [component] (worker) message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if priority(level) < priority(*l.minLevel) {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %s", level, timestamp)
	if l.component != "" {
		fmt.Fprintf(&b, " [%s]", l.component)
	}
	if l.workerID != "" {
		fmt.Fprintf(&b, " (%s)", l.workerID)
	}
	b.WriteString(" " + msg)
	for _, f := range fields {
		b.WriteString(formatFields(f))
	}
	b.WriteString("\n")

	fmt.Fprint(l.output, b.String())
}
