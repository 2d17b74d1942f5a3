package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/bookshelf/internal/library"
)

const sheetName = "Library"

func writeXLSX(path string, books []library.Book) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, b := range books {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{b.Title, b.Author, b.Year, b.Genre, b.ReadLabel()}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// readXLSX reads the Library sheet (or the first sheet) back into books. The first row is a
// header and is skipped; blank rows are ignored.
func readXLSX(path string) ([]library.Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := sheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []library.Book{}, nil
	}

	books := make([]library.Book, 0, len(rows)-1)
	for i, row := range rows[1:] {
		for len(row) < len(columns) {
			row = append(row, "")
		}
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("xlsx %s row %d: year %q is not a number", path, i+2, row[2])
		}
		books = append(books, library.Book{
			Title:  row[0],
			Author: row[1],
			Year:   year,
			Genre:  row[3],
			Read:   parseStatus(row[4]),
		})
	}
	return books, nil
}

func parseStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read", "yes", "y", "true", "1":
		return true
	}
	return false
}
