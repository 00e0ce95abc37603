package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasedit/node"
)

const commandFixture = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: OK
components:
  schemas:
    Pet:
      type: object
`

func writeFixture(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat(FormatText))
	assert.NoError(t, ValidateOutputFormat(FormatJSON))
	assert.NoError(t, ValidateOutputFormat(FormatYAML))
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestLoadDocument(t *testing.T) {
	path := writeFixture(t, commandFixture)

	doc, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source())
	assert.Equal(t, node.FormatYAML, doc.Format())

	_, err = loadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteDocument(t *testing.T) {
	path := writeFixture(t, commandFixture)
	doc, err := loadDocument(path)
	require.NoError(t, err)

	t.Run("in place", func(t *testing.T) {
		require.NoError(t, writeDocument(doc, path, "", false))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("explicit output", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.yaml")
		require.NoError(t, writeDocument(doc, path, out, false))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "listPets")
	})

	t.Run("existing output refused", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.yaml")
		require.NoError(t, os.WriteFile(out, []byte("precious: true\n"), 0o600))

		err := writeDocument(doc, path, out, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "precious: true\n", string(data), "refused write must leave the target untouched")

		require.NoError(t, writeDocument(doc, path, out, true))
		data, err = os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "listPets")
	})

	t.Run("output naming the input edits in place", func(t *testing.T) {
		require.NoError(t, writeDocument(doc, path, path, false))
	})

	t.Run("stdin requires output", func(t *testing.T) {
		err := writeDocument(doc, StdinFilePath, "", false)
		assert.Error(t, err)
	})
}
