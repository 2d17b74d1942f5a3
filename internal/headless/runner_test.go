package headless

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/bookshelf/internal/export"
	"github.com/jeanpaul/bookshelf/internal/library"
	"github.com/jeanpaul/bookshelf/internal/schema"
)

type harness struct {
	runner *Runner
	lib    *library.Library
	path   string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T, dryRun bool, books ...library.Book) harness {
	t.Helper()
	h := harness{
		lib:    library.New(books...),
		path:   filepath.Join(t.TempDir(), "library.txt"),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	r, err := New(h.lib, h.path, Options{Out: h.out, Err: h.errOut, Plain: true, DryRun: dryRun})
	require.NoError(t, err)
	h.runner = r
	return h
}

var dune = library.Book{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction", Read: true}

func TestAdd_Saves(t *testing.T) {
	h := newHarness(t, false)

	err := h.runner.Add(BookInput{Title: " Dune ", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction", Read: true})
	require.NoError(t, err)
	assert.Contains(t, h.errOut.String(), "Book added successfully!")

	saved, err := library.Load(h.path)
	require.NoError(t, err)
	assert.Equal(t, []library.Book{dune}, saved.All())
}

func TestAdd_Invalid(t *testing.T) {
	h := newHarness(t, false)

	err := h.runner.Add(BookInput{Title: "", Author: "Nobody", Year: 2000, Genre: "Essay"})
	assert.True(t, errors.Is(err, library.ErrValidation))
	assert.NoFileExists(t, h.path)
}

func TestAdd_MissingPDF(t *testing.T) {
	h := newHarness(t, false)

	err := h.runner.Add(BookInput{Year: 2000, Genre: "Essay", FromPDF: filepath.Join(t.TempDir(), "missing.pdf")})
	assert.Error(t, err)
	assert.Zero(t, h.lib.Len())
}

func TestAdd_DryRunPrintsDiff(t *testing.T) {
	h := newHarness(t, true)

	require.NoError(t, h.runner.Add(BookInput{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction"}))
	assert.NoFileExists(t, h.path)
	assert.Contains(t, h.out.String(), `+        "title": "Dune",`)
	assert.Contains(t, h.out.String(), "(unsaved)")
}

func TestRemove(t *testing.T) {
	h := newHarness(t, false, dune)

	err := h.runner.Remove("Ulysses")
	assert.ErrorContains(t, err, "book not found")
	assert.NoFileExists(t, h.path)

	require.NoError(t, h.runner.Remove("DUNE"))
	assert.Contains(t, h.errOut.String(), "Book removed successfully!")
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSearch(t *testing.T) {
	h := newHarness(t, false, dune)

	require.NoError(t, h.runner.Search(library.FieldAuthor, "herb"))
	assert.Contains(t, h.out.String(), "| Dune | Frank Herbert | 1965 | Science Fiction | Read |")

	h.out.Reset()
	require.NoError(t, h.runner.Search(library.FieldTitle, "emma"))
	assert.Empty(t, h.out.String())
	assert.Contains(t, h.errOut.String(), "No matching books found.")

	err := h.runner.Search(library.FieldTitle, "  ")
	assert.True(t, errors.Is(err, library.ErrValidation))
}

func TestListAndStats_Empty(t *testing.T) {
	h := newHarness(t, false)

	require.NoError(t, h.runner.List())
	require.NoError(t, h.runner.Stats())
	assert.Empty(t, h.out.String())
	assert.Equal(t, "Your library is empty.\nYour library is empty.\n", h.errOut.String())
}

func TestStats(t *testing.T) {
	h := newHarness(t, false, dune, library.Book{Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: "Romance"}, library.Book{Title: "Ulysses", Author: "James Joyce", Year: 1922, Genre: "Modernism"})

	require.NoError(t, h.runner.Stats())
	assert.Contains(t, h.out.String(), "**Total books:** 3")
	assert.Contains(t, h.out.String(), "**Percentage read:** 33.3%")
}

func TestExport_FormatFromExtension(t *testing.T) {
	h := newHarness(t, false, dune)
	out := filepath.Join(t.TempDir(), "books.yaml")

	require.NoError(t, h.runner.Export(context.Background(), "", out))
	books, err := export.Read(out)
	require.NoError(t, err)
	assert.Equal(t, []library.Book{dune}, books)

	err = h.runner.Export(context.Background(), "", filepath.Join(t.TempDir(), "books"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	h := newHarness(t, false)
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, export.Write(ctx, export.FormatYAML, filepath.Join(dir, "a.yaml"), []library.Book{
		dune,
		{Title: "Broken", Author: "Nobody", Year: 0, Genre: "None"},
	}))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, export.Write(ctx, export.FormatJSON, filepath.Join(dir, "nested", "b.json"), []library.Book{
		{Title: "Emma", Author: "Jane Austen", Year: 1815, Genre: "Romance"},
	}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.json"), []byte("{not json"), 0644))

	res, err := h.runner.Import(filepath.Join(dir, "**", "*.{yaml,json}"))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Files: 2, Added: 2, Skipped: 1, Failed: 1}, res)

	saved, err := library.Load(h.path)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Len())
}

func TestImport_NoMatches(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.runner.Import(filepath.Join(t.TempDir(), "*.yaml"))
	assert.ErrorContains(t, err, "no files match")
}

func TestDiff(t *testing.T) {
	h := newHarness(t, false)
	require.NoError(t, library.Save(library.New(dune), h.path))

	other := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, library.Save(library.New(dune), other))
	require.NoError(t, h.runner.Diff(other))
	assert.Empty(t, h.out.String())
	assert.Contains(t, h.errOut.String(), "No differences.")

	require.NoError(t, library.Save(library.New(), other))
	require.NoError(t, h.runner.Diff(other))
	assert.Contains(t, h.out.String(), `-        "title": "Dune",`)
}

func TestCheck(t *testing.T) {
	h := newHarness(t, false)
	v := schema.NewValidator()

	require.NoError(t, library.Save(library.New(dune), h.path))
	require.NoError(t, h.runner.Check(v))
	assert.Contains(t, h.errOut.String(), "is valid: 1 records.")

	require.NoError(t, os.WriteFile(h.path, []byte(`[{"title":"Dune","author":"Frank Herbert","year":3000,"genre":"SF","read":true}]`), 0644))
	err := h.runner.Check(v)
	assert.True(t, errors.Is(err, library.ErrCorruptData))
}

func TestRenderedOutput(t *testing.T) {
	var out bytes.Buffer
	r, err := New(library.New(dune), filepath.Join(t.TempDir(), "library.txt"), Options{Out: &out, Style: "notty", WordWrap: 80})
	require.NoError(t, err)

	require.NoError(t, r.List())
	assert.Contains(t, out.String(), "Dune")
}
