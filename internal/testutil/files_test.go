package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParents(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, "nested/deeper/file.txt", "hello")

	assert.Equal(t, filepath.Join(dir, "nested", "deeper", "file.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteMachine_OneLinePerTransition(t *testing.T) {
	path := WriteMachine(t, t.TempDir(), "m.ntm", "start 0 accept 0 S", "start 1 reject 1 S")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "start 0 accept 0 S\nstart 1 reject 1 S\n", string(data))
}

func TestReadFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "r.txt", "content")
	assert.Equal(t, "content", ReadFile(t, path))
}
