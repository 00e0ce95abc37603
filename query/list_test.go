package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/specview"
)

const listFixture = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets/{id}:
    delete:
      operationId: deletePet
    get:
      operationId: getPet
  /pets:
    post:
      operationId: createPet
    get:
      operationId: listPets
  /owners:
    get:
      operationId: listOwners
components:
  schemas:
    Tag:
      type: object
    Pet:
      type: object
`

func buildView(t *testing.T, text string) *specview.View {
	t.Helper()
	doc, err := node.Parse([]byte(text), node.FormatAuto)
	require.NoError(t, err)
	return specview.Build(doc)
}

func pathTemplates(entries []specview.PathEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Template
	}
	return out
}

func opIDs(entries []specview.OperationEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func typeNames(entries []specview.TypeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListPaths(t *testing.T) {
	v := buildView(t, listFixture)

	t.Run("document order", func(t *testing.T) {
		got := ListPaths(v, DocumentOrder)
		assert.Equal(t, []string{"/pets/{id}", "/pets", "/owners"}, pathTemplates(got))
	})

	t.Run("lexicographic", func(t *testing.T) {
		got := ListPaths(v, Lexicographic)
		assert.Equal(t, []string{"/owners", "/pets", "/pets/{id}"}, pathTemplates(got))
	})

	t.Run("does not reorder the view", func(t *testing.T) {
		ListPaths(v, Lexicographic)
		assert.Equal(t, "/pets/{id}", v.Paths[0].Template)
	})
}

func TestListOperations(t *testing.T) {
	v := buildView(t, listFixture)

	t.Run("document order", func(t *testing.T) {
		got := ListOperations(v, "", DocumentOrder)
		assert.Equal(t, []string{"deletePet", "getPet", "createPet", "listPets", "listOwners"}, opIDs(got))
	})

	t.Run("lexicographic uses canonical method precedence", func(t *testing.T) {
		got := ListOperations(v, "", Lexicographic)
		// Templates sort lexicographically; within /pets/{id} the canonical
		// precedence puts get before delete even though the document lists
		// delete first.
		assert.Equal(t, []string{"listOwners", "listPets", "createPet", "getPet", "deletePet"}, opIDs(got))
	})

	t.Run("path filter", func(t *testing.T) {
		got := ListOperations(v, "/pets", Lexicographic)
		assert.Equal(t, []string{"listPets", "createPet"}, opIDs(got))

		assert.Empty(t, ListOperations(v, "/nope", DocumentOrder))
	})
}

func TestListTypes(t *testing.T) {
	v := buildView(t, listFixture)

	assert.Equal(t, []string{"Tag", "Pet"}, typeNames(ListTypes(v, DocumentOrder)))
	assert.Equal(t, []string{"Pet", "Tag"}, typeNames(ListTypes(v, Lexicographic)))
}

func TestSortKeyParsing(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want SortKey
	}{
		{"doc", DocumentOrder},
		{"document", DocumentOrder},
		{"lex", Lexicographic},
		{"lexicographic", Lexicographic},
	} {
		got, err := ParseSortKey(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseSortKey("alphabetical")
	assert.Error(t, err)

	assert.Equal(t, "doc", DocumentOrder.String())
	assert.Equal(t, "lex", Lexicographic.String())
}
