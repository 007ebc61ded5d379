// Package trace provides jandex's ambient leveled logger: a small,
// package-scoped gate in front of the standard logger, in the same
// spirit as the launcher's own SetLogLevel/Trace convention.
package trace

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level orders log verbosity from most to least noisy.
type Level int32

const (
	FINE Level = iota
	CONFIG
	INFO
	WARNING
	SEVERE
)

func (l Level) String() string {
	switch l {
	case FINE:
		return "FINE"
	case CONFIG:
		return "CONFIG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case SEVERE:
		return "SEVERE"
	default:
		return "UNKNOWN"
	}
}

var (
	currentLevel int32 = int32(INFO)
	logger             = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel sets the minimum level that reaches output. Messages
// below it are discarded without formatting their arguments.
func SetLogLevel(l Level) {
	atomic.StoreInt32(&currentLevel, int32(l))
}

// GetLogLevel returns the currently active minimum level.
func GetLogLevel() Level {
	return Level(atomic.LoadInt32(&currentLevel))
}

func enabled(l Level) bool {
	return l >= GetLogLevel()
}

// Trace logs an INFO-level message.
func Trace(format string, args ...interface{}) {
	emit(INFO, format, args...)
}

// Config logs a CONFIG-level message, for one-time startup/config
// reporting (e.g. which scan mode or config file was selected).
func Config(format string, args ...interface{}) {
	emit(CONFIG, format, args...)
}

// Warning logs a WARNING-level message, for recoverable conditions
// such as a skipped malformed class file in lenient mode.
func Warning(format string, args ...interface{}) {
	emit(WARNING, format, args...)
}

// Error logs a SEVERE-level message.
func Error(format string, args ...interface{}) {
	emit(SEVERE, format, args...)
}

func emit(l Level, format string, args ...interface{}) {
	if !enabled(l) {
		return
	}
	logger.Print("[" + l.String() + "] " + fmt.Sprintf(format, args...))
}
