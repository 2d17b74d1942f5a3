package pdfmeta

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Meta is what a PDF can tell us about the book it contains.
type Meta struct {
	Title  string
	Author string
}

// Read extracts Title and Author from the document information dictionary.
// Title falls back to the file name when the PDF does not carry one.
func Read(path string) (Meta, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Meta{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	m := Meta{
		Title:  clean(info.Key("Title").Text()),
		Author: clean(info.Key("Author").Text()),
	}
	if m.Title == "" {
		m.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
