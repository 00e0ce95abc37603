package skeleton

import (
	"github.com/erraggy/oasedit/node"
)

// Operation builds a minimal operation: a derived operationId and a single
// placeholder 200 response.
func Operation(method, template string) *node.Node {
	desc := node.NewMapping()
	desc.Set("description", node.NewString("Successful response"))

	responses := node.NewMapping()
	responses.Set("200", desc)

	op := node.NewMapping()
	op.Set("operationId", node.NewString(OperationID(method, template)))
	op.Set("responses", responses)
	return op
}

// PathItem builds a path item holding a skeleton operation per method, in
// the order given. Unrecognized methods are the caller's problem; the editor
// rejects them at insert time.
func PathItem(template string, methods ...string) *node.Node {
	item := node.NewMapping()
	for _, method := range methods {
		item.Set(method, Operation(method, template))
	}
	return item
}

// Schema builds an empty object schema.
func Schema() *node.Node {
	s := node.NewMapping()
	s.Set("type", node.NewString("object"))
	s.Set("properties", node.NewMapping())
	return s
}

// SchemaRef builds a reference to a named schema definition in the given
// container (a pointer such as "/components/schemas").
func SchemaRef(typesPtr, name string) *node.Node {
	return node.NewReference("#" + typesPtr + "/" + node.EscapeToken(name))
}
