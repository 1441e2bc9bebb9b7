// Package ui provides terminal output helpers for glustik. Colored output
// respects the NO_COLOR environment variable and TTY detection.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/wellmaintained/glustik/pkg/scaffold"
)

// Success prints a green-colored message to stderr.
func Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(os.Stderr, format, args...)
}

// Warning prints a yellow-colored message to stderr.
func Warning(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format, args...)
}

// Error prints a red-colored message to stderr.
func Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format, args...)
}

// Info prints a cyan-colored message to stderr.
func Info(format string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(os.Stderr, format, args...)
}

var opColors = map[string]color.Attribute{
	"makedirs": color.FgBlue,
	"create":   color.FgGreen,
	"open":     color.FgGreen,
	"write":    color.FgYellow,
	"copy":     color.FgMagenta,
}

// Action writes one line describing a performed or planned effect.
func Action(w io.Writer, a scaffold.Action) {
	c := color.New(color.Bold)
	if attr, ok := opColors[a.Op]; ok {
		c.Add(attr)
	}
	line := c.Sprintf("%-8s", a.Op) + " " + a.Path
	if a.Op == "copy" && a.Content != "" {
		line += " <- " + a.Content
	}
	fmt.Fprintln(w, line)
}

// ActionRows converts actions into rows for PrintTable. Written content is
// summarized by its size.
func ActionRows(actions []scaffold.Action) [][]string {
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		detail := ""
		switch a.Op {
		case "write":
			detail = fmt.Sprintf("%d bytes", len(a.Content))
		case "copy":
			detail = "from " + a.Content
		}
		rows = append(rows, []string{a.Op, a.Path, detail})
	}
	return rows
}
