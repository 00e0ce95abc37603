package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasedit"
	"github.com/erraggy/oasedit/cmd/oasedit/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasedit v%s\n", oasedit.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "path":
		err = commands.HandlePath(args)
	case "operation", "op":
		err = commands.HandleOperation(args)
	case "schema":
		err = commands.HandleSchema(args)
	case "refs":
		err = commands.HandleRefs(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		commands.PrintError(err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`oasedit - structural editing for OpenAPI documents

Usage:
  oasedit <command> <subcommand> [flags] <args>

Commands:
  path        List, add, remove, or sort path entries
  operation   List, add, remove, or sort operations (alias: op)
  schema      List, add, remove, or sort named schema definitions
  refs        List every $ref with its resolution state
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Edits preserve comments, key order, and scalar formatting; only the entry
being changed moves. References are resolved within the document only.

Examples:
  oasedit path list api.yaml
  oasedit path add --methods get,post api.yaml /pets
  oasedit operation list --sort lex api.yaml
  oasedit operation add api.yaml /pets put
  oasedit schema remove api.yaml LegacyPet
  oasedit schema sort -o sorted.yaml api.yaml
  oasedit refs list --state dangling api.yaml

Run 'oasedit <command> --help' for more information on a command.`)
}
