package renderer

import (
	"fmt"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// WriterLogger implements core.Logger by writing to an arbitrary writer
type WriterLogger struct {
	W io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.W, format, args...)
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{W: w}
}

// NopLogger discards all output
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
