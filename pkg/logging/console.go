// pkg/logging/console.go - coloured console output for command-line tools.

package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGreen  = "\033[32m"
)

// Console prints user-facing messages, separate from the session log.
type Console struct {
	logger  *log.Logger
	verbose bool
	color   bool
}

// New creates a Console writing to stderr, leaving stdout to reports. Debug messages are shown only
// when verbose is set.
func New(verbose bool) *Console {
	return &Console{
		logger:  log.New(os.Stderr, "", 0),
		verbose: verbose,
		color:   enableColors(),
	}
}

// SetOutput changes the output destination and turns colours off.
func (c *Console) SetOutput(w io.Writer) {
	c.logger.SetOutput(w)
	c.color = false
}

func (c *Console) colorPrintf(color, format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if c.color {
		msg = color + msg + colorReset
	}
	c.logger.Println(msg)
}

// Info prints an informational message.
func (c *Console) Info(format string, v ...interface{}) {
	c.colorPrintf(colorBlue, "[INFO] "+format, v...)
}

// Success prints a success message.
func (c *Console) Success(format string, v ...interface{}) {
	c.colorPrintf(colorGreen, "[SUCCESS] "+format, v...)
}

// Warning prints a warning.
func (c *Console) Warning(format string, v ...interface{}) {
	c.colorPrintf(colorYellow, "[WARNING] "+format, v...)
}

// Error prints an error.
func (c *Console) Error(format string, v ...interface{}) {
	c.colorPrintf(colorRed, "[ERROR] "+format, v...)
}

// Debug prints a debug message in verbose mode.
func (c *Console) Debug(format string, v ...interface{}) {
	if c.verbose {
		c.colorPrintf(colorReset, "[DEBUG] "+format, v...)
	}
}
