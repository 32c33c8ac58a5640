package rootdetect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/rootdetect"
)

func TestDetectFindsPackageJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0644))

	nested := filepath.Join(root, "app", "models")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := rootdetect.Detect(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestDetectFallsBackToStartDirWhenNoMarkerFound(t *testing.T) {
	dir := t.TempDir()
	found, err := rootdetect.Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, found)
}

func TestModuleNameReadsGoMod(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module github.com/example/app\n\ngo 1.21\n"), 0644))

	name, ok := rootdetect.ModuleName(root)
	require.True(t, ok)
	assert.Equal(t, "github.com/example/app", name)
}

func TestModuleNameMissingFile(t *testing.T) {
	_, ok := rootdetect.ModuleName(t.TempDir())
	assert.False(t, ok)
}
