package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testSummary struct {
	Created int `json:"created" yaml:"created"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), testSummary{Created: 2, Skipped: 3}))

	var got testSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testSummary{Created: 2, Skipped: 3}, got)
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), testSummary{Created: 1}))

	var got testSummary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Created)
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), testSummary{Created: 2, Skipped: 3}))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "skipped")
}

func TestUnknownFormatDefaultsToYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("bogus"), &buf)

	require.NoError(t, w.Serialize(context.Background(), testSummary{Created: 1}))
	assert.Contains(t, buf.String(), "created: 1")
}

func TestNewFileWriterOrStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)

	require.NoError(t, w.Serialize(context.Background(), testSummary{Created: 4}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "created: 4")
}

func TestFormatIsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
}
