package probe

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives the human-facing status of a run.
type Reporter interface {
	Connecting()
	Connected()
	Counted(table string, count int64)
	Failed(err error)
}

// TextReporter writes plain status lines: progress to Out, failures to Err.
type TextReporter struct {
	Out io.Writer
	Err io.Writer

	// Sanitize renders an error for display, e.g. to strip credentials.
	// When nil, err.Error() is used.
	Sanitize func(err error) string
}

// NewTextReporter returns a TextReporter writing progress to out and failures to errOut.
// Nil writers fall back to stdout and stderr.
func NewTextReporter(out, errOut io.Writer, sanitize func(err error) string) *TextReporter {
	return &TextReporter{Out: out, Err: errOut, Sanitize: sanitize}
}

// Connecting prints the connection attempt line.
func (r *TextReporter) Connecting() {
	fmt.Fprintln(r.out(), "Attempting to connect to the database...")
}

// Connected prints the connection success line.
func (r *TextReporter) Connected() {
	fmt.Fprintln(r.out(), "Successfully connected to the database!")
}

// Counted prints the query result line.
func (r *TextReporter) Counted(table string, count int64) {
	fmt.Fprintf(r.out(), "Database query successful. %s count: %d\n", table, count)
}

// Failed prints the failure header followed by the error details.
// Connect and query failures share the same header.
func (r *TextReporter) Failed(err error) {
	w := r.errOut()
	fmt.Fprintln(w, "Failed to connect to the database:")
	fmt.Fprintln(w, r.render(err))
}

func (r *TextReporter) render(err error) string {
	if err == nil {
		return ""
	}
	if r.Sanitize != nil {
		return r.Sanitize(err)
	}
	return err.Error()
}

func (r *TextReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *TextReporter) errOut() io.Writer {
	if r.Err == nil {
		return os.Stderr
	}
	return r.Err
}

type nopReporter struct{}

func (nopReporter) Connecting()           {}
func (nopReporter) Connected()            {}
func (nopReporter) Counted(string, int64) {}
func (nopReporter) Failed(error)          {}
