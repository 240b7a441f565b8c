package logger

import (
	"sync"
)

// Log levels accepted in config.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	processLogger *Logger
	once          sync.Once
)

// Get returns the process-wide logger. The level of the first call wins.
func Get(level string) *Logger {
	once.Do(func() {
		processLogger = newZapLogger(level)
	})
	return processLogger
}

// Named returns a child logger tagged with the component name.
// Calling it on a nil Logger yields a no-op logger so optional loggers stay safe.
func (l *Logger) Named(component string) *Logger {
	if l == nil || l.SugaredLogger == nil {
		return Nop()
	}
	return &Logger{SugaredLogger: l.SugaredLogger.Named(component)}
}
