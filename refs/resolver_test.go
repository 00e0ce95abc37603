package refs

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasedit/node"
	"github.com/erraggy/oasedit/oaserrors"
)

const resolverFixture = `openapi: 3.0.3
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        tag:
          $ref: '#/components/schemas/Tag'
        friend:
          $ref: '#/components/schemas/Pet'
    Tag:
      type: object
    Ghosted:
      $ref: '#/components/schemas/Ghost'
    Alias:
      $ref: '#/components/schemas/Tag'
    Loop:
      $ref: '#/components/schemas/Pool'
    Pool:
      $ref: '#/components/schemas/Loop'
    External:
      $ref: './common.yaml#/components/schemas/Shared'
`

func newResolver(t *testing.T) (*node.Document, *Resolver) {
	t.Helper()
	doc, err := node.Parse([]byte(resolverFixture), node.FormatAuto)
	require.NoError(t, err)
	return doc, New(doc)
}

func TestResolveDirect(t *testing.T) {
	_, r := newResolver(t)

	res, err := r.Resolve("#/components/schemas/Tag")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "/components/schemas/Tag", res.Path)
	require.NotNil(t, res.Target)
	typ, _ := res.Target.Get("type")
	assert.Equal(t, "object", typ.Value())
}

func TestResolveThroughIntermediateRef(t *testing.T) {
	_, r := newResolver(t)

	// Alias is itself a reference; resolving through it lands on Tag.
	res, err := r.Resolve("#/components/schemas/Alias")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "/components/schemas/Tag", res.Path)
	assert.Equal(t, []string{"#/components/schemas/Alias", "#/components/schemas/Tag"}, res.Chain)
}

func TestResolveTokensAfterRef(t *testing.T) {
	_, r := newResolver(t)

	// Walking continues inside the followed target.
	res, err := r.Resolve("#/components/schemas/Alias/type")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "/components/schemas/Tag/type", res.Path)
	assert.Equal(t, "object", res.Target.Value())
}

func TestResolveSequenceIndex(t *testing.T) {
	doc, err := node.Parse([]byte("servers:\n  - url: a\n  - url: b\n"), node.FormatAuto)
	require.NoError(t, err)
	r := New(doc)

	res, err := r.Resolve("#/servers/1/url")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "b", res.Target.Value())

	for _, ref := range []string{"#/servers/2", "#/servers/-1", "#/servers/x"} {
		res, err := r.Resolve(ref)
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State, "ref %s", ref)
	}
}

func TestResolveDangling(t *testing.T) {
	_, r := newResolver(t)

	t.Run("missing target", func(t *testing.T) {
		res, err := r.Resolve("#/components/schemas/Ghost")
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State)
		assert.Nil(t, res.Target)
	})

	t.Run("through a dangling intermediate", func(t *testing.T) {
		res, err := r.Resolve("#/components/schemas/Ghosted")
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State)
		// The reported ref is the one the caller asked about.
		assert.Equal(t, "#/components/schemas/Ghosted", res.Ref)
	})

	t.Run("descending into a scalar", func(t *testing.T) {
		res, err := r.Resolve("#/openapi/nope")
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State)
	})

	t.Run("cross-document is dangling, never fetched", func(t *testing.T) {
		res, err := r.Resolve("./common.yaml#/components/schemas/Shared")
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State)

		res, err = r.Resolve("#/components/schemas/External")
		require.NoError(t, err)
		assert.Equal(t, StateDangling, res.State)
	})
}

func TestResolveCyclic(t *testing.T) {
	_, r := newResolver(t)

	t.Run("self reference through properties", func(t *testing.T) {
		// Pet.friend refs Pet: resolving the friend property's target is
		// fine (it is Pet itself), but chasing the ref from inside Pet's
		// own resolution is a cycle.
		res, err := r.Resolve("#/components/schemas/Pet/properties/friend")
		require.NoError(t, err)
		assert.Equal(t, StateResolved, res.State)
		assert.Equal(t, "/components/schemas/Pet", res.Path)
	})

	t.Run("two-node loop", func(t *testing.T) {
		res, err := r.Resolve("#/components/schemas/Loop")
		require.NoError(t, err)
		assert.Equal(t, StateCyclic, res.State)
		assert.Equal(t, []string{
			"#/components/schemas/Loop",
			"#/components/schemas/Pool",
			"#/components/schemas/Loop",
		}, res.Chain)
	})
}

func TestResolveMalformed(t *testing.T) {
	_, r := newResolver(t)

	for _, ref := range []string{"#/components/~2bad", "#/a/b~", "#no-slash"} {
		_, err := r.Resolve(ref)
		require.Error(t, err, "ref %s", ref)
		assert.True(t, errors.Is(err, oaserrors.ErrMalformedRef), "ref %s: %v", ref, err)
	}

	// "#" alone designates the whole document and is not malformed.
	res, err := r.Resolve("#")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "", res.Path)
}

func TestResolveEscapedTokens(t *testing.T) {
	doc, err := node.Parse([]byte("paths:\n  /pets/{id}:\n    get: {}\n"), node.FormatAuto)
	require.NoError(t, err)
	r := New(doc)

	res, err := r.Resolve("#/paths/~1pets~1{id}/get")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
}

func TestMemoInvalidationOnGenerationBump(t *testing.T) {
	doc, r := newResolver(t)

	res, err := r.Resolve("#/components/schemas/Ghost")
	require.NoError(t, err)
	require.Equal(t, StateDangling, res.State)

	// Mutate: add the missing schema, then commit.
	schemas, ok := doc.Root().Get("components")
	require.True(t, ok)
	schemas, ok = schemas.Get("schemas")
	require.True(t, ok)
	ghost := node.NewMapping()
	ghost.Set("type", node.NewString("object"))
	schemas.Set("Ghost", ghost)
	doc.Commit()

	res, err = r.Resolve("#/components/schemas/Ghost")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State, "memo must be invalidated by the generation bump")
}

func TestResolveConcurrent(t *testing.T) {
	_, r := newResolver(t)

	refsUnderTest := []string{
		"#/components/schemas/Pet",
		"#/components/schemas/Tag",
		"#/components/schemas/Alias",
		"#/components/schemas/Loop",
		"#/components/schemas/Ghost",
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				ref := refsUnderTest[(i+j)%len(refsUnderTest)]
				if _, err := r.Resolve(ref); err != nil {
					t.Errorf("Resolve(%s): %v", ref, err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMaxDepth(t *testing.T) {
	// A linear (acyclic) chain longer than the cap.
	var b []byte
	b = append(b, "defs:\n"...)
	for i := 0; i < 12; i++ {
		b = append(b, fmt.Sprintf("  s%d:\n    $ref: '#/defs/s%d'\n", i, i+1)...)
	}
	b = append(b, "  s12:\n    type: object\n"...)

	doc, err := node.Parse(b, node.FormatAuto)
	require.NoError(t, err)

	shallow := New(doc, WithMaxDepth(5))
	_, err = shallow.Resolve("#/defs/s0")
	require.Error(t, err)

	deep := New(doc, WithMaxDepth(50))
	res, err := deep.Resolve("#/defs/s0")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, res.State)
	assert.Equal(t, "/defs/s12", res.Path)
}

func TestReport(t *testing.T) {
	_, r := newResolver(t)

	entries := r.Report()
	require.NotEmpty(t, entries)

	byRef := make(map[string]Entry)
	for _, e := range entries {
		byRef[e.Ref] = e
	}

	pet := byRef["#/components/schemas/Pet"]
	assert.Equal(t, StateResolved, pet.Result.State)
	assert.True(t, pet.Location.IsKnown())

	ghost := byRef["#/components/schemas/Ghost"]
	assert.Equal(t, StateDangling, ghost.Result.State)

	loop := byRef["#/components/schemas/Pool"]
	assert.Equal(t, StateCyclic, loop.Result.State)

	ext := byRef["./common.yaml#/components/schemas/Shared"]
	assert.Equal(t, StateDangling, ext.Result.State)

	// Entries come back in document order: the operation's schema ref is
	// first.
	assert.Equal(t, "#/components/schemas/Pet", entries[0].Ref)
}
