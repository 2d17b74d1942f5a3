package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultLibraryFile verifies the library lives next to the working directory by default
func TestDefaultLibraryFile(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "library.txt", cfg.LibraryFile)
	assert.False(t, cfg.StrictLoad)
	assert.Equal(t, "auto", cfg.Render.Style)
}

func TestLoadFrom_NoFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFrom_File(t *testing.T) {
	chdir(t, t.TempDir())
	dir := t.TempDir()
	yaml := `library_file: /tmp/books.json
strict_load: true
render:
  style: dark
  word_wrap: 72
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/books.json", cfg.LibraryFile)
	assert.True(t, cfg.StrictLoad)
	assert.Equal(t, "dark", cfg.Render.Style)
	assert.Equal(t, 72, cfg.Render.WordWrap)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BOOKSHELF_LIBRARY_FILE", "from-env.txt")
	t.Setenv("BOOKSHELF_RENDER_WORD_WRAP", "40")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env.txt", cfg.LibraryFile)
	assert.Equal(t, 40, cfg.Render.WordWrap)
}

func TestLoadFrom_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BOOKSHELF_STRICT_LOAD=true\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("BOOKSHELF_STRICT_LOAD") })

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.StrictLoad)
}

func TestLoadFrom_MalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0644))

	_, err := LoadFrom(t.TempDir())
	assert.ErrorContains(t, err, "config:")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LibraryFile = "  "
	assert.ErrorContains(t, cfg.Validate(), "library_file")

	cfg = DefaultConfig()
	cfg.Render.WordWrap = -1
	assert.ErrorContains(t, cfg.Validate(), "word_wrap")
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
