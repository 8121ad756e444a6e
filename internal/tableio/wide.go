package tableio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ClemoAcevedo/vaxseries/schema"
)

// maxPeriodPreview caps how many period columns the summary lists.
const maxPeriodPreview = 15

// WideTable is the raw dose-count CSV: a few key columns (Region, Dosis)
// followed by one numeric column per time period. Empty cells are absent
// from the Counts map.
type WideTable struct {
	Path       string
	KeyColumns []string
	Periods    []string
	Rows       []WideRow
}

// WideRow is one keyed row of the wide table.
type WideRow struct {
	Keys   map[string]string
	Counts map[string]float64
}

// LoadWide reads a wide CSV. Columns named in keyColumns are treated as row
// keys; every other column is a period with numeric dose counts.
func LoadWide(path string, keyColumns []string) (*WideTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	wide, err := readWide(file, keyColumns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	wide.Path = path
	return wide, nil
}

func readWide(r io.Reader, keyColumns []string) (*WideTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}

	isKey := make(map[string]bool, len(keyColumns))
	for _, k := range keyColumns {
		isKey[k] = true
	}

	wide := &WideTable{KeyColumns: keyColumns}
	for _, col := range header {
		if !isKey[col] {
			wide.Periods = append(wide.Periods, col)
		}
	}
	if len(wide.Periods) == 0 {
		return nil, fmt.Errorf("no period columns besides keys %v", keyColumns)
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := WideRow{
			Keys:   make(map[string]string, len(keyColumns)),
			Counts: make(map[string]float64),
		}
		for i, col := range header {
			if isKey[col] {
				row.Keys[col] = record[i]
				continue
			}
			if record[i] == "" {
				continue
			}
			count, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid count %q in column %s: %w", line, record[i], col, err)
			}
			row.Counts[col] = count
		}
		wide.Rows = append(wide.Rows, row)
	}

	return wide, nil
}

// Lookup returns the period counts of the first row matching every key in
// the filter.
func (w *WideTable) Lookup(filter map[string]string) (map[string]float64, bool) {
	for _, row := range w.Rows {
		match := true
		for k, v := range filter {
			if row.Keys[k] != v {
				match = false
				break
			}
		}
		if match {
			return row.Counts, true
		}
	}
	return nil, false
}

// Summary reduces the wide table to its reportable shape.
func (w *WideTable) Summary() schema.WideSummary {
	preview := w.Periods
	if len(preview) > maxPeriodPreview {
		preview = preview[:maxPeriodPreview]
	}
	return schema.WideSummary{
		Path:         w.Path,
		Rows:         len(w.Rows),
		KeyColumns:   w.KeyColumns,
		PeriodCount:  len(w.Periods),
		FirstPeriods: append([]string(nil), preview...),
	}
}

// LoadShape reads only the shape of an informational CSV: row count and
// column names. Used for the deaths file, which the smoother never touches.
func LoadShape(path string) (schema.ShapeSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.ShapeSummary{}, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return schema.ShapeSummary{}, fmt.Errorf("%s: cannot read header: %w", path, err)
	}

	rows := 0
	for {
		if _, err := reader.Read(); err == io.EOF {
			break
		} else if err != nil {
			return schema.ShapeSummary{}, fmt.Errorf("%s: %w", path, err)
		}
		rows++
	}

	return schema.ShapeSummary{
		Path:    path,
		Rows:    rows,
		Columns: append([]string(nil), header...),
	}, nil
}
