package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/refs"
)

const relatedFixture = `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Ghost'
  /orphans:
    get:
      operationId: listOrphans
      responses:
        "200":
          description: no schemas here
components:
  schemas:
    Pet:
      type: object
      properties:
        tag:
          $ref: '#/components/schemas/Tag'
    Tag:
      type: object
      properties:
        pet:
          $ref: '#/components/schemas/Pet'
`

func TestRelatedTypesClosure(t *testing.T) {
	v := buildView(t, relatedFixture)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "listPets")
	require.NoError(t, err)

	// Pet and Tag reference each other; each appears exactly once.
	assert.Equal(t, []string{"Pet", "Tag"}, typeNames(got.Types))
	assert.Empty(t, got.Unresolved)
}

func TestRelatedTypesDangling(t *testing.T) {
	v := buildView(t, relatedFixture)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "createPet")
	require.NoError(t, err)

	assert.Empty(t, got.Types)
	assert.Equal(t, []string{"#/components/schemas/Ghost"}, got.Unresolved)
}

func TestRelatedTypesNoRefs(t *testing.T) {
	v := buildView(t, relatedFixture)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "listOrphans")
	require.NoError(t, err)
	assert.Empty(t, got.Types)
	assert.Empty(t, got.Unresolved)
}

func TestRelatedTypesUnknownOperation(t *testing.T) {
	v := buildView(t, relatedFixture)
	r := refs.New(v.Document())

	_, err := RelatedTypes(v, r, "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrNotFound))

	var nf *oaserrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, oaserrors.EntryOperation, nf.Kind)
	assert.Equal(t, "nope", nf.Identifier())
}

func TestRelatedTypesCyclicChain(t *testing.T) {
	// A and B are bare reference schemas forming a pure alias cycle.
	text := `openapi: 3.0.3
paths:
  /things:
    get:
      operationId: listThings
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/A'
components:
  schemas:
    A:
      $ref: '#/components/schemas/B'
    B:
      $ref: '#/components/schemas/A'
`
	v := buildView(t, text)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "listThings")
	require.NoError(t, err)

	// Every schema participating in the cycle is reported, once each.
	assert.Equal(t, []string{"A", "B"}, typeNames(got.Types))
	assert.Empty(t, got.Unresolved)
}

func TestRelatedTypesCrossDocument(t *testing.T) {
	text := `openapi: 3.0.3
paths:
  /remote:
    get:
      operationId: getRemote
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: 'common.yaml#/components/schemas/Shared'
`
	v := buildView(t, text)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "getRemote")
	require.NoError(t, err)
	assert.Empty(t, got.Types)
	assert.Equal(t, []string{"common.yaml#/components/schemas/Shared"}, got.Unresolved)
}

func TestRelatedTypesIndirectThroughComponents(t *testing.T) {
	// The operation references a shared response, which in turn references a
	// schema: the closure traverses through non-schema components.
	text := `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          $ref: '#/components/responses/PetList'
components:
  responses:
    PetList:
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Pet'
  schemas:
    Pet:
      type: object
`
	v := buildView(t, text)
	r := refs.New(v.Document())

	got, err := RelatedTypes(v, r, "listPets")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet"}, typeNames(got.Types))
	assert.Empty(t, got.Unresolved)
}
