package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/bookshelf/internal/logger"
)

const indent = "    "

// DocumentValidator checks a raw library document before it is decoded.
type DocumentValidator interface {
	ValidateLibrary(doc []byte) error
}

type loadOptions struct {
	strict    bool
	validator DocumentValidator
}

// LoadOption changes how Load treats the file contents.
type LoadOption func(*loadOptions)

// Strict makes Load reject documents that fail v (when non-nil) or contain a record that
// fails Book.Validate. Rejected files are reported as ErrCorruptData.
func Strict(v DocumentValidator) LoadOption {
	return func(o *loadOptions) {
		o.strict = true
		o.validator = v
	}
}

// Encode renders books in the persisted format: a JSON array with 4-space indentation.
func Encode(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(books); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// record is the decoded shape of one persisted book. Year is kept as a number literal so
// that integral values written as 2000.0 or 2e3 still load.
type record struct {
	Title  string      `json:"title"`
	Author string      `json:"author"`
	Year   json.Number `json:"year"`
	Genre  string      `json:"genre"`
	Read   bool        `json:"read"`
}

// Decode parses a persisted library document: a JSON array of objects. Records are not
// validated, but null or non-object elements and fractional years are rejected.
func Decode(data []byte) ([]Book, error) {
	doc := bytes.TrimSpace(data)
	if len(doc) == 0 || doc[0] != '[' {
		return nil, errors.New("library document is not a JSON array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, err
	}

	books := make([]Book, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		var rec record
		if err := json.Unmarshal(elem, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		year, err := wholeNumber(rec.Year)
		if err != nil {
			return nil, fmt.Errorf("record %d: year: %w", i, err)
		}
		books = append(books, Book{
			Title:  rec.Title,
			Author: rec.Author,
			Year:   year,
			Genre:  rec.Genre,
			Read:   rec.Read,
		})
	}
	return books, nil
}

// wholeNumber converts a JSON number with no fractional part to an int. A missing year is 0.
func wholeNumber(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%s is not a whole number", n)
	}
	return int(f), nil
}

// Load reads the library stored at path. It always returns a usable Library; when the
// file is missing, unreadable or corrupt the Library is empty and the error says why
// (ErrNotFound, ErrIOFailure or ErrCorruptData). The file itself is never touched.
func Load(path string, opts ...LoadOption) (*Library, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.Get()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", path).Msg("no library file, starting empty")
			return New(), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		log.Error().Err(err).Str("path", path).Msg("read library failed")
		return New(), fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	if o.strict && o.validator != nil {
		if err := o.validator.ValidateLibrary(data); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("library failed schema validation")
			return New(), fmt.Errorf("%w: %w", ErrCorruptData, err)
		}
	}

	books, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("library file is not valid JSON")
		return New(), fmt.Errorf("%w: %w", ErrCorruptData, err)
	}

	if o.strict {
		for i, b := range books {
			if err := b.Validate(); err != nil {
				log.Warn().Err(err).Int("record", i).Msg("invalid record in library file")
				return New(), fmt.Errorf("%w: record %d: %w", ErrCorruptData, i, err)
			}
		}
	}

	log.Info().Str("path", path).Int("books", len(books)).Msg("library loaded")
	return New(books...), nil
}

// Save overwrites path with the full library. On failure the error wraps ErrIOFailure and
// the in-memory library is unchanged.
func Save(l *Library, path string) error {
	log := logger.Get()

	data, err := Encode(l.All())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Error().Err(err).Str("path", path).Msg("save library failed")
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Error().Err(err).Str("path", path).Msg("save library failed")
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	log.Info().Str("path", path).Int("books", l.Len()).Msg("library saved")
	return nil
}

// Diff returns a unified diff from the file at path to what Save would write for l.
// A missing file diffs as empty. No changes yields "".
func Diff(path string, l *Library) (string, error) {
	before, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	after, err := Encode(l.All())
	if err != nil {
		return "", err
	}
	return unifiedDiff(path, string(before), string(after)), nil
}

func unifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (unsaved)", before, edits))
}
