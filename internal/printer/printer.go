// Package printer formats hwcaps command output.
package printer

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr

	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// SetOutput redirects normal and error output, returning a function that
// restores the previous writers
func SetOutput(stdout, stderr io.Writer) func() {
	prevOut, prevErr := out, errOut
	out, errOut = stdout, stderr
	return func() {
		out, errOut = prevOut, prevErr
	}
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	green.Fprintf(out, "✓ %s", fmt.Sprintf(format, a...))
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	yellow.Fprintf(out, "! %s", fmt.Sprintf(format, a...))
}

// Field prints an aligned key/value line
func Field(key string, value any) {
	cyan.Fprintf(out, "%-22s", key)
	fmt.Fprintf(out, " %v\n", value)
}

// Fields prints every entry of m sorted by key
func Fields(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		Field(k, m[k])
	}
}

// Printf prints a plain formatted message
func Printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

func Println(a ...any) {
	fmt.Fprintln(out, a...)
}

// Error prints a title, explanation and suggestions to stderr and returns
// an error carrying only the title for cobra
func Error(title, explanation string, suggestions []string) error {
	red.Fprintf(errOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(errOut, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(errOut, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(errOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(errOut, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(errOut, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
