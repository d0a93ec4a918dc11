// Package progress draws a spinner on stderr while import, export and
// vacuum run. Nothing is drawn unless stderr is a terminal, so piped and
// JSON output stay clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var frames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner shows a label, an animation frame and the number of items
// processed so far.
type Spinner struct {
	w       io.Writer
	label   string
	enabled bool
	running bool
	count   int
	width   int // widest line drawn, for clearing
}

// NewSpinner creates a spinner on stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, enabled bool) *Spinner {
	return &Spinner{w: w, label: label, enabled: enabled}
}

// Start draws the first frame.
func (s *Spinner) Start() {
	if !s.enabled || s.running {
		return
	}
	s.running = true
	s.draw()
}

// Tick records one processed item and advances the animation.
func (s *Spinner) Tick() {
	s.count++
	if s.running {
		s.draw()
	}
}

// Count returns the number of Tick calls.
func (s *Spinner) Count() int { return s.count }

// Stop erases the spinner line. It is safe to call more than once.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
}

func (s *Spinner) draw() {
	line := fmt.Sprintf("%c %s...", frames[s.count%len(frames)], s.label)
	if s.count > 0 {
		line += fmt.Sprintf(" %d", s.count)
	}
	s.width = max(s.width, len([]rune(line)))
	fmt.Fprint(s.w, "\r"+line)
}
