// Package tableio reads and writes the time-series tables and the
// informational side inputs. It is the single loader/writer pair shared by
// every command.
package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// DateColumn is the name of the date column in the preprocessed series CSV.
const DateColumn = "date"

// LoadTable reads a time-series CSV with at least a date column and the
// given numeric value column. Rows come back sorted by date.
func LoadTable(path, valueColumn string) (*schema.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	table, err := ReadTable(file, valueColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadTable parses a time-series table from a reader.
func ReadTable(r io.Reader, valueColumn string) (*schema.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	dateIdx, valueIdx := -1, -1
	for i, col := range header {
		switch col {
		case DateColumn:
			dateIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("missing %q column", DateColumn)
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("missing %q column", valueColumn)
	}

	table := &schema.Table{
		Columns:     append([]string(nil), header...),
		ValueColumn: valueColumn,
	}

	seen := make(map[time.Time]bool)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := time.Parse(schema.DateFormat, record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, record[dateIdx], err)
		}
		date = schema.Day(date)
		if seen[date] {
			return nil, fmt.Errorf("line %d: duplicate date %s", line, date.Format(schema.DateFormat))
		}
		seen[date] = true

		value, err := strconv.ParseFloat(record[valueIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s value %q: %w", line, valueColumn, record[valueIdx], err)
		}

		row := schema.Row{Date: date, Value: value}
		for i, col := range header {
			if i == dateIdx || i == valueIdx {
				continue
			}
			if row.Extras == nil {
				row.Extras = make(map[string]string)
			}
			row.Extras[col] = record[i]
		}
		table.Rows = append(table.Rows, row)
	}

	table.Sort()
	return table, nil
}

// WriteTable writes the table to a new CSV file, preserving the original
// column order. Writing back to the source path is refused: the input file
// is immutable and every fix produces a new variant.
func WriteTable(table *schema.Table, path, sourcePath string) error {
	if samePath(path, sourcePath) {
		return fmt.Errorf("refusing to overwrite source file %s", sourcePath)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if err := writeTable(file, table); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func writeTable(w io.Writer, table *schema.Table) error {
	if len(table.Columns) == 0 {
		return errors.New("table has no columns")
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			switch col {
			case DateColumn:
				record[i] = row.Date.Format(schema.DateFormat)
			case table.ValueColumn:
				record[i] = strconv.FormatFloat(row.Value, 'f', -1, 64)
			default:
				record[i] = row.Extras[col]
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// samePath compares two paths after cleaning and, when possible, absolute
// resolution.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
