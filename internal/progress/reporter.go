// Package progress renders download status records on a single console line.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/ytmp4/internal/logger"
	"github.com/ytget/ytmp4/internal/model"
)

const (
	iconProgress = "⏳"
	iconFinished = "✅"

	// DefaultFinishedMessage is printed after every finished stream.
	DefaultFinishedMessage = "Finished downloading. Merging..."
)

var finishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))

// Reporter writes status records to a terminal. It only formats: every
// field arrives as a string from the backend.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	finished string
	lastLen  int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithFinishedMessage replaces the text printed on a finished status.
func WithFinishedMessage(msg string) Option {
	return func(r *Reporter) {
		if msg != "" {
			r.finished = msg
		}
	}
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w, finished: DefaultFinishedMessage}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report renders one status record. It never panics.
func (r *Reporter) Report(s model.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("progress rendering failed", "panic", rec)
			r.lastLen = 0
			func() {
				defer func() { _ = recover() }()
				fmt.Fprintln(r.w, s.Tag, s.Percent, s.Speed, s.ETA, s.DisplayTotal())
			}()
		}
	}()

	switch s.Tag {
	case model.StatusDownloading:
		line := Line(s)
		width := lipgloss.Width(line)
		pad := ""
		if r.lastLen > width {
			pad = strings.Repeat(" ", r.lastLen-width)
		}
		fmt.Fprint(r.w, "\r"+line+pad)
		r.lastLen = width
	case model.StatusFinished:
		fmt.Fprint(r.w, "\n"+finishedStyle.Render(iconFinished+" "+r.finished)+"\n")
		r.lastLen = 0
	case model.StatusError:
		fmt.Fprint(r.w, "\n")
		r.lastLen = 0
	default:
		logger.Debug("ignoring status", "tag", s.Tag)
	}
}

// Line formats a downloading status without the carriage return.
func Line(s model.Status) string {
	line := fmt.Sprintf("%s %s | %s | ETA: %s | Total: %s",
		iconProgress,
		strings.TrimSpace(s.Percent),
		strings.TrimSpace(s.Speed),
		strings.TrimSpace(s.ETA),
		strings.TrimSpace(s.DisplayTotal()),
	)
	if s.Bar != "" {
		line += " " + s.Bar
	}
	return line
}
