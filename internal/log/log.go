package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug reports each formatting pass and every rewritten occurrence
	LevelDebug Level = iota
	// LevelInfo reports files formatted and server lifecycle events
	LevelInfo
	// LevelWarn reports recoverable problems such as unreadable config files
	LevelWarn
	// LevelError reports failed formatting operations
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the lowercase name of the level
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel converts a level name (as accepted by --log-level) into a Level
func ParseLevel(name string) (Level, error) {
	for level, n := range levelNames {
		if strings.EqualFold(n, name) {
			return level, nil
		}
	}
	if strings.EqualFold(name, "warning") {
		return LevelWarn, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel Level     = LevelInfo
	prefix   string    = "[classwrap]"
)

// SetOutput sets the output destination. A nil writer silences all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Enabled reports whether messages at level would be written.
// Use it to skip building expensive debug output.
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return output != nil && level >= minLevel
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info logs an info message
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel || output == nil {
		return
	}

	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(output, "%s %s %s\n", prefix, strings.ToUpper(level.String()), msg)
}
