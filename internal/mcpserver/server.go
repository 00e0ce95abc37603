// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasedit's query engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasedit"
)

const serverInstructions = `oasedit MCP server — structural queries over OpenAPI documents.

Tools operate on one document per call, provided as a file path or inline
content. All tools are read-only: mutations go through the oasedit CLI, which
preserves comments, key order, and scalar formatting on write-back.

References are resolved within the document only. Targets outside the
document (other files, URLs) are reported as unresolved, never fetched.

Configuration via environment variables in your MCP client config:
- OASEDIT_CACHE_ENABLED (default: true) — cache parsed documents per session
- OASEDIT_CACHE_FILE_TTL (default: 15m) — cache TTL for file inputs
- OASEDIT_LIST_LIMIT (default: 100) — default result limit for list tools

Caching: file entries are keyed by path+mtime (auto-invalidated on change).
A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		sessionCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasedit", Version: oasedit.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_paths",
		Description: "List the path templates of an OpenAPI document with their operation methods and source locations. Sort by document order (default) or lexicographically with sort=lex. Use offset/limit to paginate. Structural problems in the document are reported alongside the results, not as failures.",
	}, handleListPaths)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations of an OpenAPI document: method, path template, operationId, and source location. Filter to one path with the path input. Sort by document order (default) or sort=lex, which orders by path template then canonical method precedence (get, put, post, delete, options, head, patch, trace).",
	}, handleListOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schemas",
		Description: "List the named schema definitions of an OpenAPI document (components/schemas for 3.x, definitions for 2.0) with their source locations. Sort by document order (default) or sort=lex.",
	}, handleListSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "related_types",
		Description: "Compute the transitive closure of named schemas reachable from one operation, identified by operationId. Follows $ref chains through parameters, request bodies, and responses; cycles are reported once per participating schema. References whose targets are missing or outside the document are listed as unresolved.",
	}, handleRelatedTypes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_refs",
		Description: "List every $ref in an OpenAPI document in document order, with each reference classified as resolved (including its canonical target pointer), dangling, or cyclic. Cross-document references are always dangling; they are never fetched.",
	}, handleListRefs)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
