package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeanpaul/bookshelf/internal/export"
	"github.com/jeanpaul/bookshelf/internal/headless"
	"github.com/jeanpaul/bookshelf/internal/library"
)

// runCommand dispatches one subcommand. args[0] is the command name.
func runCommand(ctx context.Context, r *headless.Runner, v library.DocumentValidator, loadErr error, args []string) error {
	name, rest := args[0], args[1:]

	switch name {
	case "add", "remove", "import":
		if err := usableForWrite(loadErr); err != nil {
			return err
		}
	case "check":
	default:
		if !library.SafeToOverwrite(loadErr) {
			fmt.Fprintln(os.Stderr, "Error loading library file. Starting with an empty library.")
		}
	}

	switch name {
	case "add":
		in, err := parseAdd(rest)
		if err != nil {
			return err
		}
		return r.Add(in)

	case "remove":
		if len(rest) == 0 {
			return errors.New("usage: bookshelf remove <title>")
		}
		return r.Remove(strings.Join(rest, " "))

	case "search":
		field, term, err := parseSearch(rest)
		if err != nil {
			return err
		}
		return r.Search(field, term)

	case "list":
		return r.List()

	case "stats":
		return r.Stats()

	case "export":
		format, path, err := parseExport(rest)
		if err != nil {
			return err
		}
		return r.Export(ctx, format, path)

	case "import":
		if len(rest) != 1 {
			return errors.New("usage: bookshelf import <glob>")
		}
		_, err := r.Import(rest[0])
		return err

	case "diff":
		if len(rest) != 1 {
			return errors.New("usage: bookshelf diff <other-file>")
		}
		return r.Diff(rest[0])

	case "check":
		return r.Check(v)
	}
	return fmt.Errorf("unknown command %q (see bookshelf help)", name)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseAdd(args []string) (headless.BookInput, error) {
	var in headless.BookInput
	fs := newFlagSet("add")
	fs.StringVar(&in.Title, "title", "", "Book title")
	fs.StringVar(&in.Author, "author", "", "Author")
	fs.IntVar(&in.Year, "year", 0, "Publication year")
	fs.StringVar(&in.Genre, "genre", "", "Genre")
	fs.BoolVar(&in.Read, "read", false, "Already read")
	fs.StringVar(&in.FromPDF, "from-pdf", "", "Fill title and author from a PDF's metadata")
	if err := fs.Parse(args); err != nil {
		return in, fmt.Errorf("add: %w", err)
	}
	if fs.NArg() > 0 {
		return in, fmt.Errorf("add: unexpected argument %q", fs.Arg(0))
	}
	return in, nil
}

func parseSearch(args []string) (library.Field, string, error) {
	fs := newFlagSet("search")
	by := fs.String("by", "title", "Field to search: title or author")
	if err := fs.Parse(args); err != nil {
		return 0, "", fmt.Errorf("search: %w", err)
	}
	field, err := library.ParseField(*by)
	if err != nil {
		return 0, "", err
	}
	if fs.NArg() == 0 {
		return 0, "", errors.New("usage: bookshelf search [--by title|author] <term>")
	}
	return field, strings.Join(fs.Args(), " "), nil
}

func parseExport(args []string) (export.Format, string, error) {
	fs := newFlagSet("export")
	name := fs.String("format", "", "json, yaml, xlsx, sqlite or md (default from extension)")
	if err := fs.Parse(args); err != nil {
		return "", "", fmt.Errorf("export: %w", err)
	}
	if fs.NArg() != 1 {
		return "", "", errors.New("usage: bookshelf export [--format F] <path>")
	}
	var format export.Format
	if *name != "" {
		f, err := export.ParseFormat(*name)
		if err != nil {
			return "", "", err
		}
		format = f
	}
	return format, fs.Arg(0), nil
}
