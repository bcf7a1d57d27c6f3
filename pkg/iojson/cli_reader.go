package iojson

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads a document from the file named by its flag, or from
// stdin when the flag is empty and stdin is not a terminal.
type FileReader struct {
	fileFlagValue string

	// Stdin and IsTerminal default to the process stdin.
	Stdin      io.Reader
	IsTerminal func() bool
}

// Flag returns the -f/--file flag bound to the reader.
func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to a JSON or YAML state document (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Path returns the file flag value.
func (fr *FileReader) Path() string {
	return fr.fileFlagValue
}

// SetPath overrides the file flag value.
func (fr *FileReader) SetPath(path string) {
	fr.fileFlagValue = path
}

// ReadAll returns the raw document bytes.
func (fr *FileReader) ReadAll() ([]byte, error) {
	if fr.fileFlagValue != "" {
		data, err := os.ReadFile(fr.fileFlagValue)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return data, nil
	}

	stdin, isTerminal := fr.Stdin, fr.IsTerminal
	if stdin == nil {
		stdin = os.Stdin
	}
	if isTerminal == nil {
		isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}

	if isTerminal() {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe a document")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
