package specview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasedit/node"
)

const viewFixture = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    summary: Pet collection
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
    post:
      operationId: createPet
      responses:
        "201":
          description: Created
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
    get:
      operationId: getPet
      responses:
        "200":
          description: OK
components:
  schemas:
    Pet:
      type: object
    Tag:
      type: object
`

func buildView(t *testing.T, text string) *View {
	t.Helper()
	doc, err := node.Parse([]byte(text), node.FormatAuto)
	require.NoError(t, err)
	return Build(doc)
}

func TestBuildPaths(t *testing.T) {
	v := buildView(t, viewFixture)
	require.Empty(t, v.Errors)

	require.Len(t, v.Paths, 2)
	assert.Equal(t, "/pets", v.Paths[0].Template)
	assert.Equal(t, "/pets/{id}", v.Paths[1].Template)
	assert.Equal(t, "/paths/~1pets~1{id}", v.Paths[1].Ptr)
	assert.True(t, v.Paths[0].Location.IsKnown())

	// Non-method keys (summary, parameters) are not operations.
	require.Len(t, v.Paths[0].Operations, 2)
	assert.Equal(t, "get", v.Paths[0].Operations[0].Method)
	assert.Equal(t, "listPets", v.Paths[0].Operations[0].ID)
	assert.Equal(t, "post", v.Paths[0].Operations[1].Method)
	require.Len(t, v.Paths[1].Operations, 1)
}

func TestBuildTypes(t *testing.T) {
	v := buildView(t, viewFixture)

	require.Len(t, v.Types, 2)
	assert.Equal(t, "Pet", v.Types[0].Name)
	assert.Equal(t, "/components/schemas/Pet", v.Types[0].Ptr)
	assert.Equal(t, "/components/schemas", v.TypesPtr())
}

func TestBuildOAS2Definitions(t *testing.T) {
	v := buildView(t, "swagger: \"2.0\"\npaths: {}\ndefinitions:\n  User:\n    type: object\n")

	require.Len(t, v.Types, 1)
	assert.Equal(t, "User", v.Types[0].Name)
	assert.Equal(t, "/definitions", v.TypesPtr())
}

func TestLookups(t *testing.T) {
	v := buildView(t, viewFixture)

	p, ok := v.Path("/pets")
	require.True(t, ok)
	assert.Equal(t, "/pets", p.Template)
	_, ok = v.Path("/nope")
	assert.False(t, ok)

	op, ok := v.Operation("getPet")
	require.True(t, ok)
	assert.Equal(t, "/pets/{id}", op.Template)
	_, ok = v.Operation("")
	assert.False(t, ok, "empty id must never match")
	_, ok = v.Operation("unknown")
	assert.False(t, ok)

	op, ok = v.OperationAt("/pets", "post")
	require.True(t, ok)
	assert.Equal(t, "createPet", op.ID)
	_, ok = v.OperationAt("/pets", "delete")
	assert.False(t, ok)

	typ, ok := v.Type("Tag")
	require.True(t, ok)
	assert.Equal(t, "/components/schemas/Tag", typ.Ptr)
	_, ok = v.Type("Ghost")
	assert.False(t, ok)
}

func TestViewErrorsCollected(t *testing.T) {
	// One malformed operation, one malformed path item; the rest of the
	// document still projects.
	text := `openapi: 3.0.3
paths:
  /good:
    get:
      operationId: good
  /bad-item: just a string
  /bad-op:
    get: 42
    post:
      operationId: stillHere
components:
  schemas:
    Pet:
      type: object
`
	v := buildView(t, text)

	require.Len(t, v.Errors, 2)
	for _, e := range v.Errors {
		assert.NotEmpty(t, e.Entity)
		assert.NotZero(t, e.Line)
	}

	// All three paths are listed despite the errors.
	assert.Len(t, v.Paths, 3)
	// The malformed get is dropped, the well-formed post survives.
	badOp, ok := v.Path("/bad-op")
	require.True(t, ok)
	require.Len(t, badOp.Operations, 1)
	assert.Equal(t, "post", badOp.Operations[0].Method)
	// Types still project.
	assert.Len(t, v.Types, 1)
}

func TestRefreshPreservesIdentity(t *testing.T) {
	doc, err := node.Parse([]byte(viewFixture), node.FormatAuto)
	require.NoError(t, err)
	v := Build(doc)
	require.False(t, v.Stale())

	// Mutate: add a schema directly, then commit.
	components, _ := doc.Root().Get("components")
	schemas, _ := components.Get("schemas")
	owner := node.NewMapping()
	owner.Set("type", node.NewString("object"))
	schemas.Set("Owner", owner)
	doc.Commit()

	assert.True(t, v.Stale())

	v2 := v.Refresh()
	assert.False(t, v2.Stale())
	assert.Equal(t, v.Generation()+1, v2.Generation())

	// Identifiers from the old view still work against the new one.
	op, ok := v2.Operation("listPets")
	require.True(t, ok)
	assert.Equal(t, "/pets", op.Template)
	_, ok = v2.Type("Owner")
	assert.True(t, ok)

	// The old view is untouched.
	_, ok = v.Type("Owner")
	assert.False(t, ok)
}

func TestReferencedPathItem(t *testing.T) {
	text := `openapi: 3.0.3
paths:
  /pets:
    $ref: '#/components/pathItems/Pets'
components:
  pathItems:
    Pets:
      get:
        operationId: listPets
`
	v := buildView(t, text)

	require.Empty(t, v.Errors)
	require.Len(t, v.Paths, 1)
	assert.True(t, v.Paths[0].Node.IsReference())
	assert.Empty(t, v.Paths[0].Operations)
}

func TestMethodHelpers(t *testing.T) {
	assert.True(t, IsMethod("get"))
	assert.True(t, IsMethod("trace"))
	assert.False(t, IsMethod("parameters"))
	assert.False(t, IsMethod("GET"), "method keys are lowercase in the document")

	assert.Equal(t, 0, MethodRank("get"))
	assert.Equal(t, 2, MethodRank("post"))
	assert.Equal(t, len(CanonicalMethods), MethodRank("purge"))
	assert.Less(t, MethodRank("trace"), MethodRank("purge"))
}
