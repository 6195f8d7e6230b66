// Package log provides named, leveled loggers shared by the renderer packages.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity threshold
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// goLevel maps a Level onto the backend's level
func (l Level) goLevel() logging.Level {
	switch l {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	}
	return logging.NOTICE
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level:.4s}]%{color:reset} %{message}`,
)

var (
	mu      sync.Mutex
	backend logging.LeveledBackend
	current = Notice
)

// Logger is the leveled logging surface used across the module
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns the logger for a module name
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all loggers to w, keeping the current level
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	formatted := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(current.goLevel(), "")
	logging.SetBackend(backend)
}

// SetLevel changes the verbosity of every module
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	current = level
	backend.SetLevel(level.goLevel(), "")
}

// CurrentLevel returns the verbosity set by the last SetLevel call
func CurrentLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Enabled reports whether messages at level are currently written
func Enabled(level Level) bool {
	return CurrentLevel() <= level
}

// LevelForVerbosity maps a repeated -v count to a level: none is Notice, one is Info, more is Debug
func LevelForVerbosity(count int) Level {
	switch {
	case count <= 0:
		return Notice
	case count == 1:
		return Info
	default:
		return Debug
	}
}

// Printer adapts a Logger to the Printf-only interface used by library code, logging at Info
type Printer struct {
	Logger Logger
}

// Printf implements core.Logger
func (p Printer) Printf(format string, args ...interface{}) {
	p.Logger.Infof(format, args...)
}

func init() {
	SetSink(os.Stderr)
}
