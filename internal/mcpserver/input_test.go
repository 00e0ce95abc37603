package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inputFixture = `openapi: 3.0.3
info:
  title: T
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
`

func TestResolveContent(t *testing.T) {
	sessionCache.reset()

	sess, err := specInput{Content: inputFixture}.resolve()
	require.NoError(t, err)
	require.NotNil(t, sess.doc)
	require.NotNil(t, sess.view)
	require.NotNil(t, sess.resolver)
	assert.Len(t, sess.view.Paths, 1)
}

func TestResolveFile(t *testing.T) {
	sessionCache.reset()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inputFixture), 0o600))

	sess, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, path, sess.doc.Source())
}

func TestResolveInputValidation(t *testing.T) {
	_, err := specInput{}.resolve()
	assert.Error(t, err)

	_, err = specInput{File: "a.yaml", Content: "openapi: 3.0.3"}.resolve()
	assert.Error(t, err)
}

func TestResolveParseError(t *testing.T) {
	_, err := specInput{Content: "just a scalar"}.resolve()
	assert.Error(t, err)
}

func TestSessionCaching(t *testing.T) {
	sessionCache.reset()

	first, err := specInput{Content: inputFixture}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, sessionCache.size())

	second, err := specInput{Content: inputFixture}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second, "identical content hits the cache")

	sessionCache.reset()
	assert.Zero(t, sessionCache.size())
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(specInput{}))
	assert.Empty(t, makeCacheKey(specInput{File: filepath.Join(t.TempDir(), "missing.yaml")}), "unstattable files are not cached")

	a := makeCacheKey(specInput{Content: "a"})
	b := makeCacheKey(specInput{Content: "b"})
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, makeCacheKey(specInput{Content: "a"}))
}
