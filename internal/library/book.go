package library

import (
	"fmt"
	"strings"
)

// Year bounds accepted for a book.
const (
	MinYear = 1
	MaxYear = 2025
)

// Book is a single record in the library.
type Book struct {
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
	Year   int    `json:"year" yaml:"year"`
	Genre  string `json:"genre" yaml:"genre"`
	Read   bool   `json:"read" yaml:"read"`
}

// NewBook trims the text fields and returns the book if it satisfies Validate.
func NewBook(title, author string, year int, genre string, read bool) (Book, error) {
	b := Book{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Year:   year,
		Genre:  strings.TrimSpace(genre),
		Read:   read,
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Validate checks the record invariants: non-empty trimmed text fields and a year in range.
func (b Book) Validate() error {
	text := []struct {
		field, value string
	}{
		{"title", b.Title},
		{"author", b.Author},
		{"genre", b.Genre},
	}
	for _, t := range text {
		if t.value == "" {
			return &ValidationError{Field: t.field, Reason: "must not be empty"}
		}
		if strings.TrimSpace(t.value) != t.value {
			return &ValidationError{Field: t.field, Reason: "must not have leading or trailing whitespace"}
		}
	}
	if b.Year < MinYear || b.Year > MaxYear {
		return &ValidationError{Field: "year", Reason: fmt.Sprintf("must be between %d and %d", MinYear, MaxYear)}
	}
	return nil
}

// ReadLabel is the display form of the read flag.
func (b Book) ReadLabel() string {
	if b.Read {
		return "Read"
	}
	return "Unread"
}

func (b Book) String() string {
	return fmt.Sprintf("%s by %s (%d, %s) [%s]", b.Title, b.Author, b.Year, b.Genre, b.ReadLabel())
}
