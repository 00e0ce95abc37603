package commands

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasedit/internal/cliutil"
	"github.com/erraggy/oasedit/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process receives an interrupt.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasedit mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP (Model Context Protocol) server over stdio, exposing the\n")
		cliutil.Writef(fs.Output(), "query engine as tools: list_paths, list_operations, list_schemas,\n")
		cliutil.Writef(fs.Output(), "related_types, and list_refs.\n\n")
		cliutil.Writef(fs.Output(), "Defaults are configurable via OASEDIT_* environment variables; see the\n")
		cliutil.Writef(fs.Output(), "server instructions reported to the client.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
