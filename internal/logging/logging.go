// Package logging hands out the leveled loggers used across the module.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pion/logging"
)

var (
	mu            sync.Mutex
	loggerFactory = logging.NewDefaultLoggerFactory()
	loggers       []*logging.DefaultLeveledLogger
)

func NewLogger(scope string) logging.LeveledLogger {
	mu.Lock()
	defer mu.Unlock()

	l := loggerFactory.NewLogger(scope)
	if d, ok := l.(*logging.DefaultLeveledLogger); ok {
		loggers = append(loggers, d)
	}
	return l
}

// ParseLevel maps a level name such as "debug" to its logging.LogLevel.
func ParseLevel(name string) (logging.LogLevel, error) {
	switch strings.ToLower(name) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	}
	return logging.LogLevelDisabled, fmt.Errorf("logging: unknown level %q", name)
}

// SetLevel changes the level of every logger, including those already
// handed out.
func SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	loggerFactory.DefaultLogLevel = level
	for _, l := range loggers {
		l.SetLevel(level)
	}
	return nil
}

// SetOutput redirects every logger to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	loggerFactory.Writer = w
	for _, l := range loggers {
		l.WithOutput(w)
	}
}
