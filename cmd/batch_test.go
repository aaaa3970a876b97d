// file: cmd/batch_test.go
// version: 1.0.0
// guid: e9f1a3b5-c7d9-4e0f-9a1b-2c3d4e5f6a7b

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yschoi/aladin-lookup/internal/metadata"
)

func TestReadISBNFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isbns.txt")
	content := `# reading list
978-89-392-0510-9

89-3200848-x
not an isbn
9788936433598
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	isbns, err := readISBNFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"9788939205109", "893200848X", "9788936433598"}, isbns)
}

func TestReadISBNFileMissing(t *testing.T) {
	_, err := readISBNFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestWriteBatchToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeBatch(path, []metadata.Book{sampleBook}, "json"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var out []bookOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "체 게바라 평전", out[0].Title)
}

func TestWriteBatchUnknownFormat(t *testing.T) {
	err := writeBatch(filepath.Join(t.TempDir(), "out.xml"), nil, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
