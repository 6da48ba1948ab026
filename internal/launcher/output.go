package launcher

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"
)

// OutputFormatter handles formatted console output with colors
type OutputFormatter struct {
	writer    io.Writer
	useColors bool
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// NewOutputFormatter creates a new OutputFormatter
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	// Detect if colors should be used
	useColors := true

	// Disable colors on Windows (unless using Windows Terminal)
	if runtime.GOOS == "windows" && os.Getenv("WT_SESSION") == "" {
		useColors = false
	}

	// Disable colors if NO_COLOR is set
	if os.Getenv("NO_COLOR") != "" {
		useColors = false
	}

	// Disable colors if the writer is not a TTY
	if f, ok := w.(*os.File); ok {
		if !term.IsTerminal(int(f.Fd())) {
			useColors = false
		}
	} else {
		useColors = false
	}

	return &OutputFormatter{
		writer:    w,
		useColors: useColors,
	}
}

// Success prints a success message with green checkmark
func (o *OutputFormatter) Success(msg string) {
	if o.useColors {
		fmt.Fprintf(o.writer, "%s✓%s %s\n", colorGreen, colorReset, msg)
	} else {
		fmt.Fprintf(o.writer, "✓ %s\n", msg)
	}
}

// Error prints an error message with red cross
func (o *OutputFormatter) Error(msg string) {
	if o.useColors {
		fmt.Fprintf(o.writer, "%s✗%s %s\n", colorRed, colorReset, msg)
	} else {
		fmt.Fprintf(o.writer, "✗ %s\n", msg)
	}
}

// Warning prints a warning message with yellow warning sign
func (o *OutputFormatter) Warning(msg string) {
	if o.useColors {
		fmt.Fprintf(o.writer, "%s⚠%s %s\n", colorYellow, colorReset, msg)
	} else {
		fmt.Fprintf(o.writer, "⚠ %s\n", msg)
	}
}

// Info prints an info message
func (o *OutputFormatter) Info(msg string) {
	fmt.Fprintln(o.writer, msg)
}

// ChildLine prints one line of child output with a dim source prefix
func (o *OutputFormatter) ChildLine(source, text string) {
	if o.useColors {
		fmt.Fprintf(o.writer, "%s[%s]%s %s\n", colorDim, source, colorReset, text)
	} else {
		fmt.Fprintf(o.writer, "[%s] %s\n", source, text)
	}
}

// Bold returns the string wrapped in bold formatting
func (o *OutputFormatter) Bold(s string) string {
	if o.useColors {
		return colorBold + s + colorReset
	}
	return s
}

// Cyan returns the string wrapped in cyan formatting
func (o *OutputFormatter) Cyan(s string) string {
	if o.useColors {
		return colorCyan + s + colorReset
	}
	return s
}
