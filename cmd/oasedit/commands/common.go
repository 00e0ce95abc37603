// Package commands provides CLI command handlers for oasedit.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/internal/fileutil"
	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/specview"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate stdin (as input)
// or stdout (as -o target).
const StdinFilePath = "-"

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// PrintError writes an error diagnostic to stderr. Structural errors from
// the library (duplicates, missing entries, parse failures) already carry
// their identifiers and positions; no unwrapping needed here.
func PrintError(err error) {
	_, _ = errorColor.Fprintf(os.Stderr, "Error: ")
	cliutil.Writef(os.Stderr, "%v\n", err)
}

// printSuccess writes a confirmation line to stdout unless quiet is set.
func printSuccess(quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	_, _ = successColor.Fprintf(os.Stdout, "✓ ")
	cliutil.Writef(os.Stdout, format+"\n", args...)
}

// printProblems reports view errors to stderr. Structural problems never
// abort a listing; they are diagnostics beside it.
func printProblems(errs []*oaserrors.ViewError, quiet bool) {
	if quiet || len(errs) == 0 {
		return
	}
	_, _ = warnColor.Fprintf(os.Stderr, "Problems (%d):\n", len(errs))
	for _, e := range errs {
		cliutil.Writef(os.Stderr, "  - %s\n", e.Error())
	}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	fmt.Println(string(bytes))
	return nil
}

// loadDocument parses a document from a file path or stdin ("-").
func loadDocument(specPath string) (*node.Document, error) {
	var (
		data []byte
		err  error
	)
	if specPath == StdinFilePath {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return node.Parse(data, node.FormatAuto, node.WithSource("stdin"))
	}
	data, err = os.ReadFile(specPath)
	if err != nil {
		return nil, err
	}
	return node.Parse(data, node.FormatAuto, node.WithSource(specPath))
}

// loadView parses a document and builds its view in one step, for read-only
// listings.
func loadView(specPath string) (*specview.View, error) {
	doc, err := loadDocument(specPath)
	if err != nil {
		return nil, err
	}
	return specview.Build(doc), nil
}

// writeDocument serializes the document in its source format and writes it to
// output, falling back to in-place when output is empty. "-" writes to
// stdout. An -o target that already exists and is not the input file is
// refused unless force is set; editing in place never needs force. Spec
// files are written with restrictive permissions (0600).
func writeDocument(doc *node.Document, specPath, output string, force bool) error {
	data, err := node.Serialize(doc)
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	if output == "" {
		if specPath == StdinFilePath {
			return fmt.Errorf("reading from stdin requires an explicit output (use -o)")
		}
		output = specPath
	}
	if output == StdinFilePath {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing document to stdout: %w", err)
		}
		return nil
	}
	if !force && output != specPath {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("output file %s already exists (use --force to overwrite)", output)
		}
	}
	if err := os.WriteFile(output, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}
