package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/bookshelf/internal/config"
	"github.com/jeanpaul/bookshelf/internal/export"
	"github.com/jeanpaul/bookshelf/internal/headless"
	"github.com/jeanpaul/bookshelf/internal/library"
	"github.com/jeanpaul/bookshelf/internal/logger"
	"github.com/jeanpaul/bookshelf/internal/schema"
)

func TestParseAdd(t *testing.T) {
	in, err := parseAdd([]string{"--title", "Dune", "--author", "Frank Herbert", "--year", "1965", "--genre", "SF", "--read"})
	require.NoError(t, err)
	assert.Equal(t, headless.BookInput{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "SF", Read: true}, in)

	_, err = parseAdd([]string{"--year", "soon"})
	assert.Error(t, err)

	_, err = parseAdd([]string{"--title", "Dune", "extra"})
	assert.ErrorContains(t, err, "unexpected argument")
}

func TestParseSearch(t *testing.T) {
	field, term, err := parseSearch([]string{"--by", "Author", "frank", "herbert"})
	require.NoError(t, err)
	assert.Equal(t, library.FieldAuthor, field)
	assert.Equal(t, "frank herbert", term)

	field, _, err = parseSearch([]string{"dune"})
	require.NoError(t, err)
	assert.Equal(t, library.FieldTitle, field)

	_, _, err = parseSearch([]string{"--by", "genre", "x"})
	assert.True(t, errors.Is(err, library.ErrValidation))

	_, _, err = parseSearch(nil)
	assert.ErrorContains(t, err, "usage")
}

func TestParseExport(t *testing.T) {
	format, path, err := parseExport([]string{"--format", "excel", "out.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, format)
	assert.Equal(t, "out.xlsx", path)

	format, _, err = parseExport([]string{"out.yaml"})
	require.NoError(t, err)
	assert.Empty(t, format)

	_, _, err = parseExport([]string{"--format", "pdf", "out.pdf"})
	assert.Error(t, err)
}

func TestUsableForWrite(t *testing.T) {
	assert.NoError(t, usableForWrite(nil))
	assert.NoError(t, usableForWrite(fmt.Errorf("%w: library.txt", library.ErrNotFound)))
	assert.Error(t, usableForWrite(fmt.Errorf("%w: bad json", library.ErrCorruptData)))
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	lib := library.New()
	var out, errOut bytes.Buffer
	r, err := headless.New(lib, path, headless.Options{Out: &out, Err: &errOut, Plain: true})
	require.NoError(t, err)
	ctx := context.Background()
	v := schema.NewValidator()

	require.NoError(t, runCommand(ctx, r, v, nil, []string{"add", "--title", "Dune", "--author", "Frank Herbert", "--year", "1965", "--genre", "SF"}))
	require.NoError(t, runCommand(ctx, r, v, nil, []string{"list"}))
	assert.Contains(t, out.String(), "| Dune | Frank Herbert | 1965 | SF | Unread |")

	require.NoError(t, runCommand(ctx, r, v, nil, []string{"check"}))
	require.NoError(t, runCommand(ctx, r, v, nil, []string{"remove", "dune"}))
	assert.Zero(t, lib.Len())

	assert.ErrorContains(t, runCommand(ctx, r, v, nil, []string{"shelve"}), "unknown command")
	assert.ErrorContains(t, runCommand(ctx, r, v, nil, []string{"remove"}), "usage")
}

func TestRunCommand_RefusesToOverwriteCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	lib, loadErr := library.Load(path)
	require.True(t, errors.Is(loadErr, library.ErrCorruptData))

	r, err := headless.New(lib, path, headless.Options{Plain: true})
	require.NoError(t, err)

	err = runCommand(context.Background(), r, schema.NewValidator(), loadErr, []string{"add", "--title", "Dune", "--author", "Frank Herbert", "--year", "1965", "--genre", "SF"})
	assert.ErrorContains(t, err, "refusing to overwrite")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

func TestSetupLogging(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "bookshelf.log")
	t.Cleanup(func() { logger.Setup(io.Discard, false) })

	closeLog, err := setupLogging(cfg, true)
	require.NoError(t, err)
	closeLog()
	assert.FileExists(t, cfg.LogFile)
}

func TestWriteHelp(t *testing.T) {
	var buf bytes.Buffer
	writeHelp(&buf)
	for _, cmd := range []string{"add", "remove", "search", "list", "stats", "export", "import", "diff", "check"} {
		assert.Contains(t, buf.String(), "  "+cmd)
	}
}
