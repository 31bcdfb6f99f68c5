package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	base := filepath.Join(t.TempDir(), "work")
	m, err := NewManager(base, zap.NewNop())
	require.NoError(t, err)
	return m, base
}

func TestManagerCreate(t *testing.T) {
	m, base := newManager(t)

	first, err := m.Create()
	require.NoError(t, err)
	second, err := m.Create()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.NotEqual(t, first.Dir(), second.Dir())
	assert.Equal(t, filepath.Join(base, first.ID().String()), first.Dir())
	assert.DirExists(t, filepath.Join(first.Dir(), uploadsDir))
}

func TestWorkspaceWriteFile(t *testing.T) {
	m, _ := newManager(t)
	ws, err := m.Create()
	require.NoError(t, err)

	path, err := ws.WriteFile("Sales.csv", []byte("a,b"))
	require.NoError(t, err)
	assert.Equal(t, ws.Path("Sales.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b", string(content))

	for _, name := range []string{"", ".", "..", "../escape.csv", "nested/file.csv"} {
		_, err := ws.WriteFile(name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestWorkspaceSaveUpload(t *testing.T) {
	m, _ := newManager(t)
	ws, err := m.Create()
	require.NoError(t, err)

	path, n, err := ws.SaveUpload(strings.NewReader("1234"), 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.Equal(t, filepath.Join(ws.Dir(), uploadsDir), filepath.Dir(path))

	_, _, err = ws.SaveUpload(strings.NewReader("12345"), 4)
	assert.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestWorkspaceCleanup(t *testing.T) {
	m, base := newManager(t)
	ws, err := m.Create()
	require.NoError(t, err)

	_, err = ws.WriteFile("output.xlsx", []byte("x"))
	require.NoError(t, err)

	ws.Cleanup()
	assert.NoDirExists(t, ws.Dir())

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Повторная очистка безопасна
	ws.Cleanup()
}
