package userseed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// CredentialReader supplies usernames and passwords during the seeding loop.
type CredentialReader interface {
	ReadLine(prompt string) (string, error)
	ReadSecret(prompt string) (string, error)
}

// TerminalCredentialReader reads credentials from an input stream, suppressing
// echo for secrets when the stream is an interactive terminal.
type TerminalCredentialReader struct {
	inputFile   *os.File
	output      io.Writer
	lineScanner *bufio.Scanner
}

// NewTerminalCredentialReader constructs a reader over the provided streams.
func NewTerminalCredentialReader(inputFile *os.File, output io.Writer) *TerminalCredentialReader {
	return &TerminalCredentialReader{
		inputFile:   inputFile,
		output:      output,
		lineScanner: bufio.NewScanner(inputFile),
	}
}

// ReadLine prompts and returns one trimmed input line.
func (reader *TerminalCredentialReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(reader.output, prompt)
	if !reader.lineScanner.Scan() {
		if scanError := reader.lineScanner.Err(); scanError != nil {
			return "", scanError
		}
		return "", io.EOF
	}
	return strings.TrimSpace(reader.lineScanner.Text()), nil
}

// ReadSecret prompts and returns one trimmed secret. Terminal input is read
// without echo; piped input falls back to a plain line read.
func (reader *TerminalCredentialReader) ReadSecret(prompt string) (string, error) {
	inputDescriptor := int(reader.inputFile.Fd())
	if !term.IsTerminal(inputDescriptor) {
		return reader.ReadLine(prompt)
	}

	fmt.Fprint(reader.output, prompt)
	secretBytes, readError := term.ReadPassword(inputDescriptor)
	fmt.Fprintln(reader.output)
	if readError != nil {
		return "", readError
	}
	return strings.TrimSpace(string(secretBytes)), nil
}
