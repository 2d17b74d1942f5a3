// Package export converts a library to and from the exchange formats the CLI offers:
// JSON (the persisted format), YAML, XLSX, SQLite snapshots and Markdown tables.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeanpaul/bookshelf/internal/library"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatXLSX     Format = "xlsx"
	FormatSQLite   Format = "sqlite"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "txt":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "sqlite", "sqlite3", "db":
		return FormatSQLite, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml, xlsx, sqlite or md)", s)
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s has no extension; pass a format explicitly", path)
	}
	return ParseFormat(ext)
}

// Write stores books at path in the given format, overwriting any existing file.
func Write(ctx context.Context, format Format, path string, books []library.Book) error {
	switch format {
	case FormatJSON:
		data, err := library.Encode(books)
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	case FormatYAML:
		return writeYAML(path, books)
	case FormatXLSX:
		return writeXLSX(path, books)
	case FormatSQLite:
		return writeSQLite(ctx, path, books)
	case FormatMarkdown:
		return os.WriteFile(path, []byte(Markdown(books)), 0644)
	}
	return fmt.Errorf("cannot write format %q", format)
}

// Read loads books from a JSON, YAML or XLSX file chosen by extension.
// Records are returned as found; callers validate them.
func Read(path string) ([]library.Book, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		books, err := library.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode json %s: %w", path, err)
		}
		return books, nil
	case FormatYAML:
		return readYAML(path)
	case FormatXLSX:
		return readXLSX(path)
	}
	return nil, fmt.Errorf("cannot import format %q", format)
}
