package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"ecomingest/internal/ingest"
	"ecomingest/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Records(t *testing.T) {
	path := writeFile(t, "users.json", `[{"id":1,"name":"A","email":"a@x.com"},{"id":2,"name":"B","email":"b@x.com","phone":"555"}]`)

	records, err := source.Load(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `1`, string(records[0]["id"]))
	assert.JSONEq(t, `"555"`, string(records[1]["phone"]))
	_, hasPhone := records[0]["phone"]
	assert.False(t, hasPhone)
}

func TestLoad_EmptyArray(t *testing.T) {
	records, err := source.Load(writeFile(t, "orders.json", " [ ]\n"))

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestLoad_MissingFile(t *testing.T) {
	records, err := source.Load(filepath.Join(t.TempDir(), "payments.json"))

	assert.Nil(t, records)
	assert.ErrorIs(t, err, ingest.ErrMissingSourceFile)
	assert.Contains(t, err.Error(), "payments.json")
}

func TestLoad_Malformed(t *testing.T) {
	cases := map[string]string{
		"truncated":     `[{"id":1,`,
		"object":        `{"id":1}`,
		"scalar member": `[1, 2]`,
		"empty":         ``,
		"null":          `null`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			records, err := source.Load(writeFile(t, "products.json", content))

			assert.Nil(t, records)
			assert.ErrorIs(t, err, ingest.ErrMalformedSource)
			assert.True(t, ingest.IsSkippable(err))
		})
	}
}
