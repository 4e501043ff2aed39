package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// A sink for diagnostic output. Messages accept the same arguments as [fmt.Errorf], so `%w` may be used.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Err(msg string, args ...interface{})
}

// A [Logger] that prints colored headers to a writer.
type ColorLogger struct {
	// Where messages are written.
	Out io.Writer
	// Whether debug messages are printed.
	Verbose bool
}

// The logger used by the package-level functions.
var Default = New(os.Stdout, false)

// Create a new [ColorLogger].
func New(out io.Writer, verbose bool) *ColorLogger {
	return &ColorLogger{Out: out, Verbose: verbose}
}

// Create a [ColorLogger] that drops everything.
func Discard() *ColorLogger {
	return New(io.Discard, false)
}

func (l *ColorLogger) print(header string, msg string, args ...interface{}) {
	errChain := fmt.Errorf(msg, args...)

	fmt.Fprintf(l.Out, "%s %s\n", header, errChain.Error())
}

// Output a debug message. Only printed when verbose.
func (l *ColorLogger) Debug(msg string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	l.print(color.HiBlackString("Debug:"), msg, args...)
}

// Output an informational message.
func (l *ColorLogger) Info(msg string, args ...interface{}) {
	l.print(color.CyanString("Info:"), msg, args...)
}

// Output a warning message.
func (l *ColorLogger) Warn(msg string, args ...interface{}) {
	l.print(color.YellowString("Warning:"), msg, args...)
}

// Output an error message.
func (l *ColorLogger) Err(msg string, args ...interface{}) {
	l.print(color.RedString("Error:"), msg, args...)
}

// Output an informational message.
func Info(msg string, args ...interface{}) {
	Default.Info(msg, args...)
}

// Output a warning message.
func Warn(msg string, args ...interface{}) {
	Default.Warn(msg, args...)
}

// Output an error message.
func Err(msg string, args ...interface{}) {
	Default.Err(msg, args...)
}
