package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/bookshelf/internal/library"
)

func writeYAML(path string, books []library.Book) error {
	if books == nil {
		books = []library.Book{}
	}
	data, err := yaml.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func readYAML(path string) ([]library.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var books []library.Book
	if err := yaml.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("decode yaml %s: %w", path, err)
	}
	return books, nil
}
