package csvfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenAndIterate(t *testing.T) {
	src, err := Open(writeFile(t, "name,origin,destination\na,1,2\nb,3,4\n"))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"name", "origin", "destination"}, src.Header())

	row, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, row.Line)
	assert.Equal(t, []string{"a", "1", "2"}, row.Fields)

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, row.Line)
	assert.Equal(t, []string{"b", "3", "4"}, row.Fields)

	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenStripsBOM(t *testing.T) {
	src, err := Open(writeFile(t, "\xEF\xBB\xBFname,origin\na,1\n"))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, []string{"name", "origin"}, src.Header())
}

func TestOpenRaggedRows(t *testing.T) {
	src, err := Open(writeFile(t, "a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)
	defer src.Close()

	row, err := src.Next()
	require.NoError(t, err)
	assert.Len(t, row.Fields, 2)

	row, err = src.Next()
	require.NoError(t, err)
	assert.Len(t, row.Fields, 4)
}

func TestNextUnreadableRowCarriesLine(t *testing.T) {
	src, err := Open(writeFile(t, "a,b\nok,1\n\"x\" y,2\nok,3\n"))
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next()
	require.NoError(t, err)

	row, err := src.Next()
	require.Error(t, err)
	assert.Equal(t, 3, row.Line)

	row, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, row.Line)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestOpenEmptyFile(t *testing.T) {
	_, err := Open(writeFile(t, ""))
	assert.Error(t, err)
}
