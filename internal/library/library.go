package library

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jeanpaul/bookshelf/internal/logger"
)

// Field selects which text field Search matches against.
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldAuthor:
		return "Author"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField accepts "title" or "author" in any case.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "author":
		return FieldAuthor, nil
	}
	return 0, &ValidationError{Field: "field", Reason: fmt.Sprintf("%q is not one of title, author", s)}
}

func (f Field) value(b Book) string {
	if f == FieldAuthor {
		return b.Author
	}
	return b.Title
}

// Stats summarises reading progress.
type Stats struct {
	Total       int     `json:"total"`
	Read        int     `json:"read"`
	PercentRead float64 `json:"percent_read"`
}

// Library is an ordered collection of books. Insertion order is kept; only Remove reorders
// (by closing the gap). Each method is a single critical section.
type Library struct {
	mu    sync.RWMutex
	books []Book
}

// New returns a library holding the given books in order.
func New(books ...Book) *Library {
	l := &Library{books: make([]Book, 0, len(books))}
	l.books = append(l.books, books...)
	return l
}

// Add trims the inputs, validates them and appends a new book at the end.
// The year range is checked here as well so that callers other than the
// form-driven UI cannot store an out-of-range year.
func (l *Library) Add(title, author string, year int, genre string, read bool) (Book, error) {
	b, err := NewBook(title, author, year, genre, read)
	if err != nil {
		return Book{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.books = append(l.books, b)
	return b, nil
}

// Remove deletes the first book whose title equals title, ignoring case.
func (l *Library) Remove(title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, emptyInput("title")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, b := range l.books {
		if strings.EqualFold(b.Title, title) {
			l.books = append(l.books[:i], l.books[i+1:]...)
			logger.Get().Debug().Str("title", b.Title).Int("position", i).Msg("book removed")
			return true, nil
		}
	}
	logger.Get().Debug().Str("title", title).Msg("no book to remove")
	return false, nil
}

// Search returns, in library order, the books whose field contains term, ignoring case.
// No match is a valid, empty result.
func (l *Library) Search(field Field, term string) ([]Book, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, emptyInput(strings.ToLower(field.String()))
	}
	needle := strings.ToLower(term)

	l.mu.RLock()
	defer l.mu.RUnlock()
	matches := []Book{}
	for _, b := range l.books {
		if strings.Contains(strings.ToLower(field.value(b)), needle) {
			matches = append(matches, b)
		}
	}
	logger.Get().Debug().Stringer("field", field).Str("term", term).Int("matches", len(matches)).Msg("search")
	return matches, nil
}

// All returns a copy of every book in order.
func (l *Library) All() []Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Book, len(l.books))
	copy(out, l.books)
	return out
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.books)
}

// Stats counts the books and the read ones. PercentRead is 0 for an empty library.
func (l *Library) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s := Stats{Total: len(l.books)}
	for _, b := range l.books {
		if b.Read {
			s.Read++
		}
	}
	if s.Total > 0 {
		s.PercentRead = float64(s.Read) / float64(s.Total) * 100
	}
	return s
}
