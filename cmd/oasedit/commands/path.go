package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/query"
	"github.com/erraggy/oasedit/skeleton"
	"github.com/erraggy/oasedit/specview"
)

// HandlePath routes the path command to the appropriate subcommand handler.
func HandlePath(args []string) error {
	if len(args) == 0 {
		printPathUsage()
		return fmt.Errorf("path command requires a subcommand")
	}
	subcommand := args[0]
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printPathUsage()
		return nil
	}
	subArgs := args[1:]

	switch subcommand {
	case "list":
		return handlePathList(subArgs)
	case "add":
		return handlePathAdd(subArgs)
	case "remove":
		return handlePathRemove(subArgs)
	case "sort":
		return handlePathSort(subArgs)
	default:
		printPathUsage()
		return fmt.Errorf("unknown path subcommand: %s", subcommand)
	}
}

type pathListFlags struct {
	format string
	sort   string
	quiet  bool
}

func handlePathList(args []string) error {
	fs := flag.NewFlagSet("path list", flag.ContinueOnError)
	flags := &pathListFlags{}
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.sort, "sort", "doc", "result ordering: doc or lex")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and problems for piping")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and problems for piping")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit path list [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List path templates with their methods and source locations.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("path list requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}
	key, err := query.ParseSortKey(flags.sort)
	if err != nil {
		return err
	}

	v, err := loadView(fs.Arg(0))
	if err != nil {
		return err
	}
	entries := query.ListPaths(v, key)
	printProblems(v.Errors, flags.quiet)

	if flags.format != FormatText {
		type row struct {
			Path    string   `json:"path" yaml:"path"`
			Methods []string `json:"methods,omitempty" yaml:"methods,omitempty"`
			Line    int      `json:"line,omitempty" yaml:"line,omitempty"`
		}
		rows := make([]row, 0, len(entries))
		for _, p := range entries {
			r := row{Path: p.Template, Line: p.Location.Line}
			for _, op := range p.Operations {
				r.Methods = append(r.Methods, op.Method)
			}
			rows = append(rows, r)
		}
		return OutputStructured(rows, flags.format)
	}

	if !flags.quiet {
		cliutil.Writef(os.Stdout, "Paths (%d):\n", len(entries))
	}
	for _, p := range entries {
		methods := make([]string, 0, len(p.Operations))
		for _, op := range p.Operations {
			methods = append(methods, op.Method)
		}
		line := p.Template
		if len(methods) > 0 {
			line += "  [" + strings.Join(methods, ", ") + "]"
		}
		if p.Location.IsKnown() && !flags.quiet {
			line += fmt.Sprintf("  (line %d)", p.Location.Line)
		}
		cliutil.Writef(os.Stdout, "  %s\n", line)
	}
	return nil
}

type pathAddFlags struct {
	methods string
	output  string
	force   bool
	quiet   bool
}

func handlePathAdd(args []string) error {
	fs := flag.NewFlagSet("path add", flag.ContinueOnError)
	flags := &pathAddFlags{}
	fs.StringVar(&flags.methods, "methods", "", "comma-separated methods to scaffold (e.g. get,post)")
	fs.StringVar(&flags.output, "o", "", "output file path (default: edit in place)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: edit in place)")
	fs.BoolVar(&flags.force, "force", false, "overwrite an existing -o target")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the confirmation message")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit path add [flags] <file|-> <template>\n\n")
		cliutil.Writef(fs.Output(), "Add a path entry. With --methods, each method gets a skeleton operation\n")
		cliutil.Writef(fs.Output(), "with a derived operationId and a placeholder response.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasedit path add api.yaml /pets\n")
		cliutil.Writef(fs.Output(), "  oasedit path add --methods get,post api.yaml /pets\n")
		cliutil.Writef(fs.Output(), "  cat api.yaml | oasedit path add -o - - /pets\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("path add requires a file and a path template")
	}
	specPath, template := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}

	var item *node.Node
	if flags.methods == "" {
		item = node.NewMapping()
	} else {
		var methods []string
		for _, m := range strings.Split(flags.methods, ",") {
			m = strings.ToLower(strings.TrimSpace(m))
			if m == "" {
				continue
			}
			if !specview.IsMethod(m) {
				return fmt.Errorf("unrecognized method %q. Valid methods: %s", m, strings.Join(specview.CanonicalMethods, ", "))
			}
			methods = append(methods, m)
		}
		item = skeleton.PathItem(template, methods...)
	}

	if err := editor.New(doc).InsertPath(template, item); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "added path %s", template)
	return nil
}

func handlePathRemove(args []string) error {
	fs := flag.NewFlagSet("path remove", flag.ContinueOnError)
	flags := &pathAddFlags{}
	fs.StringVar(&flags.output, "o", "", "output file path (default: edit in place)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: edit in place)")
	fs.BoolVar(&flags.force, "force", false, "overwrite an existing -o target")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the confirmation message")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit path remove [flags] <file|-> <template>\n\n")
		cliutil.Writef(fs.Output(), "Remove a path entry and every operation under it.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("path remove requires a file and a path template")
	}
	specPath, template := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).RemovePath(template); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "removed path %s", template)
	return nil
}

func handlePathSort(args []string) error {
	fs := flag.NewFlagSet("path sort", flag.ContinueOnError)
	flags := &pathAddFlags{}
	fs.StringVar(&flags.output, "o", "", "output file path (default: edit in place)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: edit in place)")
	fs.BoolVar(&flags.force, "force", false, "overwrite an existing -o target")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the confirmation message")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit path sort [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Sort path entries lexicographically by template. Content under each\n")
		cliutil.Writef(fs.Output(), "entry, including comments, moves with it.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("path sort requires exactly one file path")
	}
	specPath := fs.Arg(0)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).SortPaths(query.Lexicographic); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "sorted paths")
	return nil
}

func printPathUsage() {
	cliutil.Writef(os.Stderr, `Usage: oasedit path <subcommand> [flags] <args>

Work with the document's path entries.

Subcommands:
  list      List path templates with methods and locations
  add       Add a path entry (optionally scaffolding operations)
  remove    Remove a path entry and its operations
  sort      Sort path entries lexicographically

Examples:
  oasedit path list --sort lex api.yaml
  oasedit path add --methods get,post api.yaml /pets
  oasedit path remove api.yaml /legacy
  oasedit path sort -o sorted.yaml api.yaml

Run 'oasedit path <subcommand> --help' for subcommand-specific flags.
`)
}
