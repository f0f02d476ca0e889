package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RowReader yields raw rows one at a time. Next returns io.EOF at the end.
type RowReader interface {
	Next() ([]string, error)
	Close() error
}

// OpenRows opens a semicolon-delimited CSV file, or the first sheet of an
// .xlsx workbook.
func OpenRows(path string) (RowReader, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return openSheet(path)
	}
	return openCSV(path)
}

type csvRows struct {
	file   *os.File
	reader *csv.Reader
}

func openCSV(path string) (*csvRows, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &csvRows{file: file, reader: newCSVReader(file)}, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func (r *csvRows) Next() ([]string, error) {
	record, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	for i, field := range record {
		record[i] = strings.ToValidUTF8(field, "�")
	}
	return record, nil
}

func (r *csvRows) Close() error {
	return r.file.Close()
}

type sheetRows struct {
	file *excelize.File
	rows *excelize.Rows
}

func openSheet(path string) (*sheetRows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return &sheetRows{file: f, rows: rows}, nil
}

func (r *sheetRows) Next() ([]string, error) {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return r.rows.Columns()
}

func (r *sheetRows) Close() error {
	r.rows.Close()
	return r.file.Close()
}
