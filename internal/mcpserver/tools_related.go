package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasedit/query"
)

type relatedTypesInput struct {
	Spec        specInput `json:"spec"         jsonschema:"The OpenAPI document to query"`
	OperationID string    `json:"operation_id" jsonschema:"The operationId whose reachable schemas to compute"`
}

type relatedTypeSummary struct {
	Name string `json:"name"`
	Ptr  string `json:"pointer"`
	Line int    `json:"line,omitempty"`
}

type relatedTypesOutput struct {
	OperationID string               `json:"operation_id"`
	Types       []relatedTypeSummary `json:"types,omitempty"`
	Unresolved  []string             `json:"unresolved,omitempty"`
}

func handleRelatedTypes(_ context.Context, _ *mcp.CallToolRequest, input relatedTypesInput) (*mcp.CallToolResult, any, error) {
	sess, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), nil, nil
	}

	related, err := query.RelatedTypes(sess.view, sess.resolver, input.OperationID)
	if err != nil {
		return errResult(err), nil, nil
	}

	output := relatedTypesOutput{
		OperationID: input.OperationID,
		Types:       makeSlice[relatedTypeSummary](len(related.Types)),
		Unresolved:  related.Unresolved,
	}
	for _, t := range related.Types {
		output.Types = append(output.Types, relatedTypeSummary{
			Name: t.Name,
			Ptr:  t.Ptr,
			Line: t.Location.Line,
		})
	}
	return nil, output, nil
}
