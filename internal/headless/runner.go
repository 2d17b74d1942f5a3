// Package headless runs single library commands without the interactive UI.
// Results go to the output writer as Markdown, rendered with glamour unless plain
// output is requested; notices go to the error writer.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/bookshelf/internal/export"
	"github.com/jeanpaul/bookshelf/internal/library"
	"github.com/jeanpaul/bookshelf/internal/logger"
	"github.com/jeanpaul/bookshelf/internal/pdfmeta"
)

type Options struct {
	Out io.Writer
	Err io.Writer

	// Plain prints raw Markdown.
	Plain bool
	// DryRun prints the pending diff instead of saving.
	DryRun bool

	Style    string
	WordWrap int
}

// Runner executes commands against one library and the file it was loaded from.
type Runner struct {
	lib      *library.Library
	path     string
	out      io.Writer
	errOut   io.Writer
	dryRun   bool
	renderer *glamour.TermRenderer
}

func New(lib *library.Library, path string, opts Options) (*Runner, error) {
	r := &Runner{
		lib:    lib,
		path:   path,
		out:    opts.Out,
		errOut: opts.Err,
		dryRun: opts.DryRun,
	}
	if r.out == nil {
		r.out = io.Discard
	}
	if r.errOut == nil {
		r.errOut = io.Discard
	}
	if opts.Plain {
		return r, nil
	}

	style := opts.Style
	if style == "" {
		style = "auto"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(opts.WordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	r.renderer = renderer
	return r, nil
}

func (r *Runner) print(md string) error {
	if r.renderer == nil {
		_, err := io.WriteString(r.out, md)
		return err
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = io.WriteString(r.out, out)
	return err
}

func (r *Runner) notice(format string, args ...any) {
	fmt.Fprintf(r.errOut, format+"\n", args...)
}

// commit saves the library, or prints what saving would change when running dry.
func (r *Runner) commit() error {
	if !r.dryRun {
		if err := library.Save(r.lib, r.path); err != nil {
			return err
		}
		r.notice("Library saved to %s.", r.path)
		return nil
	}

	diff, err := library.Diff(r.path, r.lib)
	if err != nil {
		return err
	}
	if diff == "" {
		r.notice("No changes to %s.", r.path)
		return nil
	}
	_, err = io.WriteString(r.out, diff)
	return err
}

// BookInput is a book as given on the command line. FromPDF names a PDF whose
// metadata fills Title and Author when they are empty.
type BookInput struct {
	Title   string
	Author  string
	Year    int
	Genre   string
	Read    bool
	FromPDF string
}

func (r *Runner) Add(in BookInput) error {
	if in.FromPDF != "" {
		meta, err := pdfmeta.Read(in.FromPDF)
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.Title) == "" {
			in.Title = meta.Title
		}
		if strings.TrimSpace(in.Author) == "" {
			in.Author = meta.Author
		}
	}

	b, err := r.lib.Add(in.Title, in.Author, in.Year, in.Genre, in.Read)
	if err != nil {
		return err
	}
	logger.Get().Info().Str("title", b.Title).Msg("book added")
	r.notice("Book added successfully!")
	return r.commit()
}

func (r *Runner) Remove(title string) error {
	found, err := r.lib.Remove(title)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("book not found in the library: %q", strings.TrimSpace(title))
	}
	r.notice("Book removed successfully!")
	return r.commit()
}

func (r *Runner) Search(field library.Field, term string) error {
	matches, err := r.lib.Search(field, term)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		r.notice("No matching books found.")
		return nil
	}
	return r.print("## Matching Books\n\n" + export.Markdown(matches))
}

func (r *Runner) List() error {
	books := r.lib.All()
	if len(books) == 0 {
		r.notice("Your library is empty.")
		return nil
	}
	return r.print("## All Books\n\n" + export.Markdown(books))
}

func (r *Runner) Stats() error {
	s := r.lib.Stats()
	if s.Total == 0 {
		r.notice("Your library is empty.")
		return nil
	}
	return r.print(export.StatsMarkdown(s))
}

// Export writes the library to path. An empty format is taken from the extension.
func (r *Runner) Export(ctx context.Context, format export.Format, path string) error {
	if format == "" {
		f, err := export.FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	books := r.lib.All()
	if err := export.Write(ctx, format, path, books); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	r.notice("Exported %d books to %s (%s).", len(books), path, format)
	return nil
}

// ImportResult counts what an import did.
type ImportResult struct {
	Files   int
	Added   int
	Skipped int
	Failed  int
}

// Import adds every record from the files matching pattern. Records that fail
// validation are skipped; files that cannot be read are reported and skipped.
func (r *Runner) Import(pattern string) (ImportResult, error) {
	var res ImportResult
	log := logger.Get()

	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return res, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return res, fmt.Errorf("no files match %q", pattern)
	}

	for _, path := range paths {
		books, err := export.Read(path)
		if err != nil {
			res.Failed++
			log.Warn().Err(err).Str("path", path).Msg("import file skipped")
			r.notice("Skipping %s: %s", path, err)
			continue
		}
		res.Files++
		for _, b := range books {
			if _, err := r.lib.Add(b.Title, b.Author, b.Year, b.Genre, b.Read); err != nil {
				res.Skipped++
				log.Debug().Err(err).Str("path", path).Str("title", b.Title).Msg("record skipped")
				continue
			}
			res.Added++
		}
	}

	log.Info().Int("files", res.Files).Int("added", res.Added).Int("skipped", res.Skipped).Msg("import finished")
	r.notice("Imported %d books from %d files (%d skipped).", res.Added, res.Files, res.Skipped)
	if res.Added == 0 {
		return res, nil
	}
	return res, r.commit()
}

// Diff prints how the library file would change if it held the books stored at other.
func (r *Runner) Diff(other string) error {
	lib, err := library.Load(other)
	if err != nil {
		return err
	}
	diff, err := library.Diff(r.path, lib)
	if err != nil {
		return err
	}
	if diff == "" {
		r.notice("No differences.")
		return nil
	}
	_, err = io.WriteString(r.out, diff)
	return err
}

// Check loads the library file strictly and reports how many books it holds.
func (r *Runner) Check(v library.DocumentValidator) error {
	lib, err := library.Load(r.path, library.Strict(v))
	if err != nil {
		if errors.Is(err, library.ErrCorruptData) {
			return fmt.Errorf("%s is invalid: %w", r.path, err)
		}
		return err
	}
	r.notice("%s is valid: %d records.", r.path, lib.Len())
	return nil
}
