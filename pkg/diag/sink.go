// pkg/diag/sink.go
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Reporter receives severity-tagged diagnostics. Implementations must not
// influence control flow; callers decide failure on their own.
type Reporter interface {
	// Debugf records trace output, shown only when tracing is enabled.
	Debugf(format string, args ...any)
	// Errorf records a user-facing error message, shown only when error
	// printing is enabled.
	Errorf(format string, args ...any)
}

// Discard drops every message.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Debugf(string, ...any) {}
func (discard) Errorf(string, ...any) {}

// Options configure a Sink.
type Options struct {
	Output io.Writer // defaults to os.Stderr
	Debug  bool
	Errors bool
}

// Sink routes diagnostics to a trace logger and an error stream.
type Sink struct {
	out    io.Writer
	trace  *log.Logger
	debug  bool
	errors bool
}

// New creates a sink writing to opts.Output.
func New(opts Options) *Sink {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	s := &Sink{
		out: out,
		trace: log.NewWithOptions(out, log.Options{
			Prefix: "pkgflags",
			Level:  log.InfoLevel,
		}),
		errors: opts.Errors,
	}
	if opts.Debug {
		s.EnableDebug()
	}
	return s
}

// EnableDebug turns on trace output. Tracing implies error printing.
func (s *Sink) EnableDebug() {
	s.debug = true
	s.errors = true
	s.trace.SetLevel(log.DebugLevel)
}

// DebugEnabled reports whether trace output is on.
func (s *Sink) DebugEnabled() bool { return s.debug }

// SetErrors toggles error printing.
func (s *Sink) SetErrors(on bool) { s.errors = on }

// ErrorsEnabled reports whether error printing is on.
func (s *Sink) ErrorsEnabled() bool { return s.errors }

// SetOutput redirects both channels.
func (s *Sink) SetOutput(w io.Writer) {
	s.out = w
	s.trace.SetOutput(w)
}

func (s *Sink) Debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	s.trace.Debugf(strings.TrimRight(format, "\n"), args...)
}

func (s *Sink) Errorf(format string, args ...any) {
	if !s.errors {
		return
	}
	s.write(format, args...)
}

// Warnf logs a warning about the environment the tool runs in, such as an
// unreadable configuration file. Warnings are shown at the default level.
func (s *Sink) Warnf(format string, args ...any) {
	s.trace.Warnf(strings.TrimRight(format, "\n"), args...)
}

// Printf writes unconditionally. It is used for usage problems that are
// always reported, regardless of the error printing mode.
func (s *Sink) Printf(format string, args ...any) {
	s.write(format, args...)
}

func (s *Sink) write(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	io.WriteString(s.out, msg)
}
