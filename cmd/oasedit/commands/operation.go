package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/query"
	"github.com/erraggy/oasedit/refs"
	"github.com/erraggy/oasedit/skeleton"
	"github.com/erraggy/oasedit/specview"
)

// HandleOperation routes the operation command to the appropriate subcommand
// handler.
func HandleOperation(args []string) error {
	if len(args) == 0 {
		printOperationUsage()
		return fmt.Errorf("operation command requires a subcommand")
	}
	subcommand := args[0]
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printOperationUsage()
		return nil
	}
	subArgs := args[1:]

	switch subcommand {
	case "list":
		return handleOperationList(subArgs)
	case "add":
		return handleOperationAdd(subArgs)
	case "remove":
		return handleOperationRemove(subArgs)
	case "sort":
		return handleOperationSort(subArgs)
	case "types":
		return handleOperationTypes(subArgs)
	default:
		printOperationUsage()
		return fmt.Errorf("unknown operation subcommand: %s", subcommand)
	}
}

type operationListFlags struct {
	format string
	sort   string
	path   string
	quiet  bool
}

func handleOperationList(args []string) error {
	fs := flag.NewFlagSet("operation list", flag.ContinueOnError)
	flags := &operationListFlags{}
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.sort, "sort", "doc", "result ordering: doc or lex (template, then canonical method precedence)")
	fs.StringVar(&flags.path, "path", "", "limit results to one path template")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers and problems for piping")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers and problems for piping")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit operation list [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List operations: method, path template, operationId, and location.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasedit operation list api.yaml\n")
		cliutil.Writef(fs.Output(), "  oasedit operation list --path /pets --sort lex api.yaml\n")
		cliutil.Writef(fs.Output(), "  oasedit operation list -q --format json api.yaml | jq\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("operation list requires exactly one file path or '-' for stdin")
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
	entries := query.ListOperations(v, flags.path, key)
	printProblems(v.Errors, flags.quiet)

	if flags.format != FormatText {
		type row struct {
			Method      string `json:"method" yaml:"method"`
			Path        string `json:"path" yaml:"path"`
			OperationID string `json:"operation_id,omitempty" yaml:"operation_id,omitempty"`
			Line        int    `json:"line,omitempty" yaml:"line,omitempty"`
		}
		rows := make([]row, 0, len(entries))
		for _, op := range entries {
			rows = append(rows, row{Method: op.Method, Path: op.Template, OperationID: op.ID, Line: op.Location.Line})
		}
		return OutputStructured(rows, flags.format)
	}

	if !flags.quiet {
		cliutil.Writef(os.Stdout, "Operations (%d):\n", len(entries))
	}
	for _, op := range entries {
		line := fmt.Sprintf("%-7s %s", strings.ToUpper(op.Method), op.Template)
		if op.ID != "" {
			line += "  " + op.ID
		}
		if op.Location.IsKnown() && !flags.quiet {
			line += fmt.Sprintf("  (line %d)", op.Location.Line)
		}
		cliutil.Writef(os.Stdout, "  %s\n", line)
	}
	return nil
}

type operationEditFlags struct {
	output string
	force  bool
	quiet  bool
}

func setupOperationEditFlags(name, usage string) (*flag.FlagSet, *operationEditFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := &operationEditFlags{}
	fs.StringVar(&flags.output, "o", "", "output file path (default: edit in place)")
	fs.StringVar(&flags.output, "output", "", "output file path (default: edit in place)")
	fs.BoolVar(&flags.force, "force", false, "overwrite an existing -o target")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the confirmation message")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "%s", usage)
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	return fs, flags
}

func handleOperationAdd(args []string) error {
	fs, flags := setupOperationEditFlags("operation add",
		"Usage: oasedit operation add [flags] <file|-> <template> <method>\n\n"+
			"Add a skeleton operation under an existing path. The entry is placed\n"+
			"at its canonical method position (get, put, post, delete, options,\n"+
			"head, patch, trace); other keys keep their places.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("operation add requires a file, a path template, and a method")
	}
	specPath, template, method := fs.Arg(0), fs.Arg(1), strings.ToLower(fs.Arg(2))

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).InsertOperation(template, method, skeleton.Operation(method, template)); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "added %s %s", method, template)
	return nil
}

func handleOperationRemove(args []string) error {
	fs, flags := setupOperationEditFlags("operation remove",
		"Usage: oasedit operation remove [flags] <file|-> <template> <method>\n\n"+
			"Remove one operation. The path entry stays, even when the removal\n"+
			"leaves it without operations.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("operation remove requires a file, a path template, and a method")
	}
	specPath, template, method := fs.Arg(0), fs.Arg(1), strings.ToLower(fs.Arg(2))

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).RemoveOperation(template, method); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "removed %s %s", method, template)
	return nil
}

func handleOperationSort(args []string) error {
	fs, flags := setupOperationEditFlags("operation sort",
		"Usage: oasedit operation sort [flags] <file|-> [template]\n\n"+
			"Sort operations into listing order. Without a template, path entries\n"+
			"move into template order and every item's method keys into canonical\n"+
			"precedence; with a template, only that item's method keys move.\n"+
			"Non-method keys keep their positions.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("operation sort requires a file and an optional path template")
	}
	specPath := fs.Arg(0)
	template := fs.Arg(1) // "" sorts every path

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).SortOperations(template, query.Lexicographic); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "sorted operations")
	return nil
}

type operationTypesFlags struct {
	format string
	quiet  bool
}

func handleOperationTypes(args []string) error {
	fs := flag.NewFlagSet("operation types", flag.ContinueOnError)
	flags := &operationTypesFlags{}
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers for piping")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit operation types [flags] <file|-> <operationId>\n\n")
		cliutil.Writef(fs.Output(), "List the named schemas transitively reachable from one operation.\n")
		cliutil.Writef(fs.Output(), "Cycles are reported once per participating schema; references whose\n")
		cliutil.Writef(fs.Output(), "targets are missing or outside the document are listed as unresolved.\n\n")
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
		return fmt.Errorf("operation types requires a file and an operationId")
	}
	if err := ValidateOutputFormat(flags.format); err != nil {
		return err
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	v := specview.Build(doc)
	related, err := query.RelatedTypes(v, refs.New(doc), fs.Arg(1))
	if err != nil {
		return err
	}

	if flags.format != FormatText {
		type out struct {
			Types      []string `json:"types,omitempty" yaml:"types,omitempty"`
			Unresolved []string `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
		}
		o := out{Unresolved: related.Unresolved}
		for _, t := range related.Types {
			o.Types = append(o.Types, t.Name)
		}
		return OutputStructured(o, flags.format)
	}

	if !flags.quiet {
		cliutil.Writef(os.Stdout, "Related types (%d):\n", len(related.Types))
	}
	for _, t := range related.Types {
		cliutil.Writef(os.Stdout, "  %s\n", t.Name)
	}
	if len(related.Unresolved) > 0 && !flags.quiet {
		_, _ = warnColor.Fprintf(os.Stderr, "Unresolved (%d):\n", len(related.Unresolved))
		for _, ref := range related.Unresolved {
			cliutil.Writef(os.Stderr, "  %s\n", ref)
		}
	}
	return nil
}

func printOperationUsage() {
	cliutil.Writef(os.Stderr, `Usage: oasedit operation <subcommand> [flags] <args>

Work with the document's operations.

Subcommands:
  list      List operations with method, template, and operationId
  add       Add a skeleton operation at its canonical method position
  remove    Remove one operation
  sort      Sort operations into template and canonical method order
  types     List named schemas reachable from one operation

Examples:
  oasedit operation list --sort lex api.yaml
  oasedit operation add api.yaml /pets put
  oasedit operation remove api.yaml /pets delete
  oasedit operation sort api.yaml /pets
  oasedit operation types api.yaml listPets

Run 'oasedit operation <subcommand> --help' for subcommand-specific flags.
`)
}
