package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeanpaul/bookshelf/internal/library"
)

var columns = []string{"Title", "Author", "Year", "Genre", "Status"}

// Markdown renders books as a Markdown table in library order.
func Markdown(books []library.Book) string {
	rows := make([][]string, 0, len(books)+1)
	rows = append(rows, columns)
	for _, b := range books {
		rows = append(rows, bookRow(b))
	}
	return rowsToMarkdown(rows)
}

// StatsMarkdown renders the statistics block, percent with one decimal.
func StatsMarkdown(s library.Stats) string {
	var sb strings.Builder
	sb.WriteString("## Library Statistics\n\n")
	fmt.Fprintf(&sb, "- **Total books:** %d\n", s.Total)
	fmt.Fprintf(&sb, "- **Books read:** %d\n", s.Read)
	fmt.Fprintf(&sb, "- **Percentage read:** %.1f%%\n", s.PercentRead)
	return sb.String()
}

func bookRow(b library.Book) []string {
	return []string{b.Title, b.Author, strconv.Itoa(b.Year), b.Genre, b.ReadLabel()}
}

// rowsToMarkdown converts a slice of string slices into a Markdown table; the first row is the header.
func rowsToMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("| " + strings.Join(escapeRow(rows[0]), " | ") + " |\n")
	sb.WriteString("|")
	for range rows[0] {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range rows[1:] {
		sb.WriteString("| " + strings.Join(escapeRow(row), " | ") + " |\n")
	}
	return sb.String()
}

// escapeRow keeps pipes and newlines in cell text from breaking the table.
func escapeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		cell = strings.ReplaceAll(cell, "|", "\\|")
		out[i] = strings.ReplaceAll(cell, "\n", " ")
	}
	return out
}
