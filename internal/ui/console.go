package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	infoPrefixConstant     = "INFO"
	successPrefixConstant  = "OK"
	warningPrefixConstant  = "WARN"
	errorPrefixConstant    = "ERROR"
	messageLineTemplate    = "[%s] %s\n"
	plainLineTemplate      = "%s\n"
)

// Colors follow the palette shared by related terminal tooling.
var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// ConsoleWriter emits leveled messages with optional ANSI styling.
type ConsoleWriter struct {
	output        io.Writer
	stylesEnabled bool
}

// NewConsoleWriter constructs a writer targeting the provided output, enabling
// styles only when the output is a terminal.
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	if output == nil {
		output = os.Stdout
	}

	stylesEnabled := false
	if outputFile, isFile := output.(*os.File); isFile {
		stylesEnabled = isatty.IsTerminal(outputFile.Fd()) || isatty.IsCygwinTerminal(outputFile.Fd())
	}

	return &ConsoleWriter{output: output, stylesEnabled: stylesEnabled}
}

// NewStyledConsoleWriter constructs a writer with explicit style control, used by tests.
func NewStyledConsoleWriter(output io.Writer, stylesEnabled bool) *ConsoleWriter {
	if output == nil {
		output = os.Stdout
	}
	return &ConsoleWriter{output: output, stylesEnabled: stylesEnabled}
}

// Info prints an informational message.
func (writer *ConsoleWriter) Info(message string) {
	writer.printLeveled(infoPrefixConstant, infoStyle, message)
}

// Success prints a message describing a completed or cleanly skipped step.
func (writer *ConsoleWriter) Success(message string) {
	writer.printLeveled(successPrefixConstant, successStyle, message)
}

// Warning prints a message requiring operator attention without stopping the run.
func (writer *ConsoleWriter) Warning(message string) {
	writer.printLeveled(warningPrefixConstant, warningStyle, message)
}

// Error prints a message describing a fatal condition.
func (writer *ConsoleWriter) Error(message string) {
	writer.printLeveled(errorPrefixConstant, errorStyle, message)
}

// Plain prints an unprefixed line, used for summaries and blank separators.
func (writer *ConsoleWriter) Plain(message string) {
	fmt.Fprintf(writer.output, plainLineTemplate, message)
}

func (writer *ConsoleWriter) printLeveled(prefix string, style lipgloss.Style, message string) {
	renderedPrefix := prefix
	if writer.stylesEnabled {
		renderedPrefix = style.Render(prefix)
	}
	fmt.Fprintf(writer.output, messageLineTemplate, renderedPrefix, message)
}
