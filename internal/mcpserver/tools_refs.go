package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listRefsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OpenAPI document to query"`
	State  string    `json:"state,omitempty"  jsonschema:"Filter by resolution state: resolved\\, dangling\\, or cyclic"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return (default 100)"`
	Offset int       `json:"offset,omitempty" jsonschema:"Skip the first N results (for pagination)"`
}

type refSummary struct {
	Ptr    string   `json:"pointer"`
	Ref    string   `json:"ref"`
	State  string   `json:"state"`
	Target string   `json:"target,omitempty"`
	Chain  []string `json:"chain,omitempty"`
	Error  string   `json:"error,omitempty"`
	Line   int      `json:"line,omitempty"`
}

type listRefsOutput struct {
	Total    int          `json:"total"`
	Matched  int          `json:"matched"`
	Returned int          `json:"returned"`
	Refs     []refSummary `json:"refs,omitempty"`
}

func handleListRefs(_ context.Context, _ *mcp.CallToolRequest, input listRefsInput) (*mcp.CallToolResult, any, error) {
	sess, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	all := sess.resolver.Report()
	summaries := makeSlice[refSummary](len(all))
	for _, e := range all {
		s := refSummary{
			Ptr:  e.Ptr,
			Ref:  e.Ref,
			Line: e.Location.Line,
		}
		if e.Err != nil {
			s.State = "malformed"
			s.Error = sanitizeError(e.Err)
		} else {
			s.State = e.Result.State.String()
			s.Target = e.Result.Path
			if len(e.Result.Chain) > 1 {
				s.Chain = e.Result.Chain
			}
		}
		if input.State != "" && s.State != input.State {
			continue
		}
		summaries = append(summaries, s)
	}

	returned := paginate(summaries, input.Offset, input.Limit)
	return nil, listRefsOutput{
		Total:    len(all),
		Matched:  len(summaries),
		Returned: len(returned),
		Refs:     returned,
	}, nil
}
