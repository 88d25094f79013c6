// Package logging provides the nil-safe diagnostic logger threaded through
// the compression core, in the shape of the teacher's pack/wad/mesh.Logger.
package logging

import (
	"fmt"
	"io"
)

// Logger wraps an io.Writer and is safe to use through a nil pointer: every
// method is a no-op when l is nil, so callers that don't want tracing can
// simply pass (*Logger)(nil).
type Logger struct {
	io.Writer
}

// New wraps w in a Logger. Passing a nil io.Writer is equivalent to passing
// a nil *Logger.
func New(w io.Writer) *Logger {
	if w == nil {
		return nil
	}
	return &Logger{w}
}

func (l *Logger) Println(a ...interface{}) {
	if l != nil {
		fmt.Fprintln(l, a...)
	}
}

func (l *Logger) Printf(format string, a ...interface{}) {
	if l != nil {
		fmt.Fprintf(l, format+"\n", a...)
	}
}
