package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/query"
	"github.com/erraggy/oasedit/skeleton"
)

// HandleSchema routes the schema command to the appropriate subcommand
// handler.
func HandleSchema(args []string) error {
	if len(args) == 0 {
		printSchemaUsage()
		return fmt.Errorf("schema command requires a subcommand")
	}
	subcommand := args[0]
	if subcommand == "--help" || subcommand == "-h" || subcommand == "help" {
		printSchemaUsage()
		return nil
	}
	subArgs := args[1:]

	switch subcommand {
	case "list":
		return handleSchemaList(subArgs)
	case "add":
		return handleSchemaAdd(subArgs)
	case "remove":
		return handleSchemaRemove(subArgs)
	case "sort":
		return handleSchemaSort(subArgs)
	default:
		printSchemaUsage()
		return fmt.Errorf("unknown schema subcommand: %s", subcommand)
	}
}

type schemaListFlags struct {
	format string
	sort   string
	quiet  bool
}

func handleSchemaList(args []string) error {
	fs := flag.NewFlagSet("schema list", flag.ContinueOnError)
	flags := &schemaListFlags{}
	fs.StringVar(&flags.format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.sort, "sort", "doc", "result ordering: doc or lex")
	fs.BoolVar(&flags.quiet, "q", false, "suppress headers for piping")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress headers for piping")
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit schema list [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List named schema definitions (components/schemas for OAS 3.x,\n")
		cliutil.Writef(fs.Output(), "definitions for OAS 2.0) with their source locations.\n\n")
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
		return fmt.Errorf("schema list requires exactly one file path or '-' for stdin")
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
	entries := query.ListTypes(v, key)

	if flags.format != FormatText {
		type row struct {
			Name string `json:"name" yaml:"name"`
			Ptr  string `json:"pointer" yaml:"pointer"`
			Line int    `json:"line,omitempty" yaml:"line,omitempty"`
		}
		rows := make([]row, 0, len(entries))
		for _, t := range entries {
			rows = append(rows, row{Name: t.Name, Ptr: t.Ptr, Line: t.Location.Line})
		}
		return OutputStructured(rows, flags.format)
	}

	if !flags.quiet {
		cliutil.Writef(os.Stdout, "Schemas (%d) in %s:\n", len(entries), v.TypesPtr())
	}
	for _, t := range entries {
		line := t.Name
		if t.Location.IsKnown() && !flags.quiet {
			line += fmt.Sprintf("  (line %d)", t.Location.Line)
		}
		cliutil.Writef(os.Stdout, "  %s\n", line)
	}
	return nil
}

type schemaEditFlags struct {
	output string
	force  bool
	quiet  bool
}

func setupSchemaEditFlags(name, usage string) (*flag.FlagSet, *schemaEditFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := &schemaEditFlags{}
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

func handleSchemaAdd(args []string) error {
	fs, flags := setupSchemaEditFlags("schema add",
		"Usage: oasedit schema add [flags] <file|-> <name>\n\n"+
			"Add an empty object schema under the document's schema container,\n"+
			"creating the container when the document has none.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("schema add requires a file and a schema name")
	}
	specPath, name := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).InsertType(name, skeleton.Schema()); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "added schema %s", name)
	return nil
}

func handleSchemaRemove(args []string) error {
	fs, flags := setupSchemaEditFlags("schema remove",
		"Usage: oasedit schema remove [flags] <file|-> <name>\n\n"+
			"Remove a named schema definition. References to it are not rewritten;\n"+
			"'oasedit refs list --state dangling' finds them afterwards.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("schema remove requires a file and a schema name")
	}
	specPath, name := fs.Arg(0), fs.Arg(1)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).RemoveType(name); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "removed schema %s", name)
	return nil
}

func handleSchemaSort(args []string) error {
	fs, flags := setupSchemaEditFlags("schema sort",
		"Usage: oasedit schema sort [flags] <file|->\n\n"+
			"Sort named schema definitions lexicographically by name.\n\n")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("schema sort requires exactly one file path")
	}
	specPath := fs.Arg(0)

	doc, err := loadDocument(specPath)
	if err != nil {
		return err
	}
	if err := editor.New(doc).SortTypes(query.Lexicographic); err != nil {
		return err
	}
	if err := writeDocument(doc, specPath, flags.output, flags.force); err != nil {
		return err
	}
	printSuccess(flags.quiet || flags.output == StdinFilePath, "sorted schemas")
	return nil
}

func printSchemaUsage() {
	cliutil.Writef(os.Stderr, `Usage: oasedit schema <subcommand> [flags] <args>

Work with the document's named schema definitions.

Subcommands:
  list      List schema names with pointers and locations
  add       Add an empty object schema
  remove    Remove a named schema definition
  sort      Sort definitions lexicographically by name

Examples:
  oasedit schema list --sort lex api.yaml
  oasedit schema add api.yaml Owner
  oasedit schema remove api.yaml LegacyPet
  oasedit schema sort -o sorted.yaml api.yaml

Run 'oasedit schema <subcommand> --help' for subcommand-specific flags.
`)
}
