package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Record is one raw product entry: a mapping from column name to raw text.
// Records are never mutated after loading.
type Record map[string]string

// LoadCSV reads a row-oriented product dataset with a header row.
// A missing file is a hard error; the caller decides whether that is fatal.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords decodes CSV rows into Records keyed by the header row.
// Rows shorter than the header keep only the columns present; rows longer
// than the header drop the excess. Description fields can be very large,
// so quoting is handled leniently.
func ReadRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataset is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}

		record := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}

	return records, nil
}
