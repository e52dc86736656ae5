// Package progress prints the per-word status line and the periodic summary
// of a definition fetch run.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DefaultWindowSize is the number of resolved words per summary line.
const DefaultWindowSize = 10_000

const statusWidth = 100

// Window describes one completed batch of resolved words.
type Window struct {
	Start          int
	End            int
	InvalidPercent float64
}

func (w Window) String() string {
	return fmt.Sprintf("[%6d-%6d] %3.0f%% invalid", w.Start, w.End, w.InvalidPercent)
}

// Reporter counts resolved words and prints a summary every window.
// It is not safe for concurrent use.
type Reporter struct {
	out        io.Writer
	windowSize int
	summary    *color.Color

	windowStart int
	resolved    int
	invalid     int
}

func NewReporter(out io.Writer, windowSize int) *Reporter {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &Reporter{
		out:        out,
		windowSize: windowSize,
		summary:    color.New(color.FgCyan),
	}
}

// Begin shows the word being processed.
func (r *Reporter) Begin(word string) {
	_, _ = fmt.Fprintf(r.out, "(%s)", word)
}

// Fetching shows the URL right before a blocking download.
func (r *Reporter) Fetching(url string) {
	_, _ = fmt.Fprintf(r.out, " %s", url)
}

// End clears the status line.
func (r *Reporter) End() {
	_, _ = fmt.Fprintf(r.out, "\r%s\r", strings.Repeat(" ", statusWidth))
}

// Resolve counts one resolved word. Words dropped by a transient error must
// not be reported. When the word completes a window, the window summary is
// printed and returned.
func (r *Reporter) Resolve(invalid bool) (Window, bool) {
	r.resolved++
	if invalid {
		r.invalid++
	}
	if r.resolved < r.windowSize {
		return Window{}, false
	}

	window := Window{
		Start:          r.windowStart,
		End:            r.windowStart + r.windowSize - 1,
		InvalidPercent: 100 * float64(r.invalid) / float64(r.windowSize),
	}
	_, _ = r.summary.Fprintln(r.out, window.String())

	r.windowStart += r.windowSize
	r.resolved = 0
	r.invalid = 0
	return window, true
}
