package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/refs"
)

// HandleRefs routes the refs command to the appropriate subcommand handler.
func HandleRefs(args []string) error {
	if len(args) == 0 {
		printRefsUsage()
		return fmt.Errorf("refs command requires a subcommand")
	}
	subcommand := args[0]
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printRefsUsage()
		return nil
	}

	switch subcommand {
	case "list":
		return handleRefsList(args[1:])
	default:
		printRefsUsage()
		return fmt.Errorf("unknown refs subcommand: %s", subcommand)
	}
}

type refsListFlags struct {
	format string
	state  string
	quiet  bool
}

func handleRefsList(args []string) error {
	fs := flag.NewFlagSet("refs list", flag.ContinueOnError)
	flags := &refsListFlags{}
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.state, "state", "", "filter by state: resolved, dangling, cyclic, or malformed")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers for piping")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers for piping")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit refs list [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List every $ref in document order with its resolution state.\n")
		cliutil.Writef(fs.Output(), "Cross-document references are always dangling; they are never fetched.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasedit refs list api.yaml\n")
		cliutil.Writef(fs.Output(), "  oasedit refs list --state dangling api.yaml\n")
		cliutil.Writef(fs.Output(), "  oasedit refs list -q --format json api.yaml | jq\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("refs list requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	switch flags.state {
	case "", "resolved", "dangling", "cyclic", "malformed":
	default:
		return fmt.Errorf("invalid state '%s'. Valid states: resolved, dangling, cyclic, malformed", flags.state)
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	entries := refs.New(doc).Report()

	type row struct {
		Pointer string   `json:"pointer" yaml:"pointer"`
		Ref     string   `json:"ref" yaml:"ref"`
		State   string   `json:"state" yaml:"state"`
		Target  string   `json:"target,omitempty" yaml:"target,omitempty"`
		Chain   []string `json:"chain,omitempty" yaml:"chain,omitempty"`
		Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
		Line    int      `json:"line,omitempty" yaml:"line,omitempty"`
	}
	var rows []row
	for _, e := range entries {
		r := row{Pointer: e.Ptr, Ref: e.Ref, Line: e.Location.Line}
		if e.Err != nil {
			r.State = "malformed"
			r.Error = e.Err.Error()
		} else {
			r.State = e.Result.State.String()
			r.Target = e.Result.Path
			if len(e.Result.Chain) > 1 {
				r.Chain = e.Result.Chain
			}
		}
		if flags.state != "" && r.State != flags.state {
			continue
		}
		rows = append(rows, r)
	}

	if flags.format != FormatText {
		return OutputStructured(rows, flags.format)
	}

	if !flags.quiet {
		cliutil.Writef(os.Stdout, "References (%d of %d):\n", len(rows), len(entries))
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-9s %s", r.State, r.Ref)
		switch {
		case r.State == "cyclic":
			line += "  [" + strings.Join(r.Chain, " -> ") + "]"
		case r.Error != "":
			line += "  " + r.Error
		}
		if r.Line > 0 && !flags.quiet {
			line += fmt.Sprintf("  (line %d)", r.Line)
		}
		cliutil.Writef(os.Stdout, "  %s\n", line)
	}
	return nil
}

func printRefsUsage() {
	cliutil.Writef(os.Stderr, `Usage: oasedit refs <subcommand> [flags] <args>

Inspect the document's $ref graph.

Subcommands:
  list      List every $ref with its resolution state

Examples:
  oasedit refs list api.yaml
  oasedit refs list --state cyclic api.yaml

Run 'oasedit refs <subcommand> --help' for subcommand-specific flags.
`)
}
