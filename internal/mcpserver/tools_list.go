package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/query"
)

// viewProblem summarizes one structural problem found while building the
// view. Problems are reported alongside results, never as tool failures.
type viewProblem struct {
	Entity  string `json:"entity"`
	Path    string `json:"path"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func collectProblems(errs []*oaserrors.ViewError) []viewProblem {
	out := makeSlice[viewProblem](len(errs))
	for _, e := range errs {
		out = append(out, viewProblem{
			Entity:  e.Entity,
			Path:    e.Path,
			Line:    e.Line,
			Message: e.Message,
		})
	}
	return out
}

func parseSort(s string) (query.SortKey, error) {
	if s == "" {
		return query.DocumentOrder, nil
	}
	return query.ParseSortKey(s)
}

type listPathsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to query"`
	Sort   string    `json:"sort,omitempty"   jsonschema:"Result ordering: doc (document order\\, default) or lex"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type pathSummary struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods,omitempty"`
	Line    int      `json:"line,omitempty"`
}

type listPathsOutput struct {
	Total    int           `json:"total"`
	Returned int           `json:"returned"`
	Paths    []pathSummary `json:"paths,omitempty"`
	Problems []viewProblem `json:"problems,omitempty"`
}

func handleListPaths(_ context.Context, _ *mcp.CallToolRequest, input listPathsInput) (*mcp.CallToolResult, any, error) {
	sess, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	key, err := parseSort(input.Sort)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := query.ListPaths(sess.view, key)
	returned := paginate(all, input.Offset, input.Limit)

	output := listPathsOutput{
		Total:    len(all),
		Returned: len(returned),
		Paths:    makeSlice[pathSummary](len(returned)),
		Problems: collectProblems(sess.view.Errors),
	}
	for _, p := range returned {
		s := pathSummary{Path: p.Template, Line: p.Location.Line}
		for _, op := range p.Operations {
			s.Methods = append(s.Methods, op.Method)
		}
		output.Paths = append(output.Paths, s)
	}
	return nil, output, nil
}

type listOperationsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to query"`
	Path   string    `json:"path,omitempty"   jsonschema:"Limit results to one path template (exact match)"`
	Sort   string    `json:"sort,omitempty"   jsonschema:"Result ordering: doc (document order\\, default) or lex (path template\\, then canonical method precedence)"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Line        int    `json:"line,omitempty"`
}

type listOperationsOutput struct {
	Total      int                `json:"total"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
	Problems   []viewProblem      `json:"problems,omitempty"`
}

func handleListOperations(_ context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, any, error) {
	sess, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	key, err := parseSort(input.Sort)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := query.ListOperations(sess.view, input.Path, key)
	returned := paginate(all, input.Offset, input.Limit)

	output := listOperationsOutput{
		Total:      len(all),
		Returned:   len(returned),
		Operations: makeSlice[operationSummary](len(returned)),
		Problems:   collectProblems(sess.view.Errors),
	}
	for _, op := range returned {
		output.Operations = append(output.Operations, operationSummary{
			Method:      op.Method,
			Path:        op.Template,
			OperationID: op.ID,
			Line:        op.Location.Line,
		})
	}
	return nil, output, nil
}

type listSchemasInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to query"`
	Sort   string    `json:"sort,omitempty"   jsonschema:"Result ordering: doc (document order\\, default) or lex"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type schemaSummary struct {
	Name string `json:"name"`
	Ptr  string `json:"pointer"`
	Line int    `json:"line,omitempty"`
}

type listSchemasOutput struct {
	Total     int             `json:"total"`
	Returned  int             `json:"returned"`
	Container string          `json:"container"`
	Schemas   []schemaSummary `json:"schemas,omitempty"`
}

func handleListSchemas(_ context.Context, _ *mcp.CallToolRequest, input listSchemasInput) (*mcp.CallToolResult, any, error) {
	sess, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}
	key, err := parseSort(input.Sort)
	if err != nil {
		return errResult(err), nil, nil
	}

	all := query.ListTypes(sess.view, key)
	returned := paginate(all, input.Offset, input.Limit)

	output := listSchemasOutput{
		Total:     len(all),
		Returned:  len(returned),
		Container: sess.view.TypesPtr(),
		Schemas:   makeSlice[schemaSummary](len(returned)),
	}
	for _, t := range returned {
		output.Schemas = append(output.Schemas, schemaSummary{
			Name: t.Name,
			Ptr:  t.Ptr,
			Line: t.Location.Line,
		})
	}
	return nil, output, nil
}
