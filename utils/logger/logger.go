package logger

import "fmt"

// Logger is the logging interface shared by the translation clients, the retry
// wrapper and the orchestrator.
// All implementations must be safe for concurrent use across multiple goroutines.
type Logger interface {
	// Type returns the type of the logger
	Type() LoggerType
	// Printf logs a formatted message
	Printf(format string, args ...any)
	// Println logs a message with a newline
	Println(message string)
	// Close releases the logger's resources
	Close() error
}

type LoggerType string

const (
	LoggerTypeStdout LoggerType = "stdout"
	LoggerTypeFile   LoggerType = "file"
	LoggerTypeNoop   LoggerType = "noop"
	LoggerTypeWriter LoggerType = "writer"
	LoggerTypeMulti  LoggerType = "multi"
)

// MultiLogger writes to multiple loggers simultaneously.
// Safe for concurrent use if all underlying loggers are safe.
type MultiLogger struct {
	loggers []Logger
}

var _ Logger = (*MultiLogger)(nil)

// NewMultiLogger creates a logger that writes to multiple destinations
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	return &MultiLogger{
		loggers: loggers,
	}
}

func (m *MultiLogger) Type() LoggerType {
	return LoggerTypeMulti
}

func (m *MultiLogger) Printf(format string, args ...any) {
	for _, l := range m.loggers {
		l.Printf(format, args...)
	}
}

func (m *MultiLogger) Println(message string) {
	for _, l := range m.loggers {
		l.Println(message)
	}
}

// Close closes every underlying logger and returns the first error.
func (m *MultiLogger) Close() error {
	var first error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// PrefixLogger tags every line with a component name, e.g. "[microsoft] ".
// Close is a no-op; the wrapped logger is owned by whoever created it.
type PrefixLogger struct {
	prefix string
	next   Logger
}

var _ Logger = (*PrefixLogger)(nil)

// WithPrefix wraps l so each message starts with "[prefix] ".
func WithPrefix(l Logger, prefix string) *PrefixLogger {
	if l == nil {
		l = NewNoopLogger()
	}
	return &PrefixLogger{prefix: "[" + prefix + "] ", next: l}
}

func (p *PrefixLogger) Type() LoggerType {
	return p.next.Type()
}

func (p *PrefixLogger) Printf(format string, args ...any) {
	p.next.Println(p.prefix + fmt.Sprintf(format, args...))
}

func (p *PrefixLogger) Println(message string) {
	p.next.Println(p.prefix + message)
}

func (p *PrefixLogger) Close() error {
	return nil
}

// New builds a logger by type name. filepath is only used for LoggerTypeFile.
func New(t LoggerType, filepath string) (Logger, error) {
	switch t {
	case LoggerTypeStdout, "":
		return NewStdoutLogger(), nil
	case LoggerTypeFile:
		return NewFileLogger(filepath)
	case LoggerTypeNoop:
		return NewNoopLogger(), nil
	default:
		return nil, fmt.Errorf("unsupported logger type: %s", t)
	}
}
