// Package diff renders line-oriented differences between two revisions of
// an object's content, shown by "pubd write --diff".
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// keep is how many unchanged lines are kept either side of a change.
const keep = 3

// Result is a rendered diff between two labelled versions.
type Result struct {
	Old  string `json:"old"`
	New  string `json:"new"`
	Diff string `json:"diff"`
}

// Compute diffs before against after.
func Compute(before, after, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	chunks := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, c := range chunks {
		body := strings.TrimSuffix(c.Text, "\n")
		if body == "" {
			continue
		}
		lines := strings.Split(body, "\n")
		switch c.Type {
		case diffmatchpatch.DiffDelete:
			emit(&b, "- ", lines)
		case diffmatchpatch.DiffInsert:
			emit(&b, "+ ", lines)
		default:
			if len(lines) > 2*keep {
				emit(&b, "  ", lines[:keep])
				b.WriteString("  ...\n")
				lines = lines[len(lines)-keep:]
			}
			emit(&b, "  ", lines)
		}
	}
	return Result{Old: oldLabel, New: newLabel, Diff: b.String()}
}

func emit(b *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

// Empty reports whether nothing was added or removed.
func (r Result) Empty() bool {
	for l := range strings.SplitSeq(r.Diff, "\n") {
		if strings.HasPrefix(l, "- ") || strings.HasPrefix(l, "+ ") {
			return false
		}
	}
	return true
}

// Format returns the diff under a ---/+++ header, optionally coloured.
func (r Result) Format(colour bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n+++ %s\n", r.Old, r.New)
	if !colour {
		b.WriteString(r.Diff)
		return b.String()
	}

	del := color.New(color.FgRed)
	add := color.New(color.FgGreen)
	del.EnableColor()
	add.EnableColor()
	for l := range strings.SplitSeq(strings.TrimSuffix(r.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(l, "- "):
			l = del.Sprint(l)
		case strings.HasPrefix(l, "+ "):
			l = add.Sprint(l)
		}
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write computes the diff and prints it to w.
func Write(w io.Writer, before, after, oldLabel, newLabel string, colour bool) Result {
	r := Compute(before, after, oldLabel, newLabel)
	io.WriteString(w, r.Format(colour))
	return r
}
