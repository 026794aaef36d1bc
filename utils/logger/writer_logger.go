package logger

import (
	"io"
	"log"
	"os"
)

// WriterLogger adapts any io.Writer to the Logger interface.
// Thread safety depends on the underlying writer; log.Logger serializes writes.
type WriterLogger struct {
	logger *log.Logger
	kind   LoggerType
}

var _ Logger = (*WriterLogger)(nil)

// NewWriterLogger creates a logger from any io.Writer
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{
		logger: log.New(w, "", log.LstdFlags),
		kind:   LoggerTypeWriter,
	}
}

// NewStdoutLogger creates a logger that writes to stdout
func NewStdoutLogger() *WriterLogger {
	l := NewWriterLogger(os.Stdout)
	l.kind = LoggerTypeStdout
	return l
}

func (w *WriterLogger) Type() LoggerType {
	return w.kind
}

func (w *WriterLogger) Printf(format string, args ...any) {
	w.logger.Printf(format, args...)
}

func (w *WriterLogger) Println(message string) {
	w.logger.Println(message)
}

func (w *WriterLogger) Close() error {
	return nil
}
