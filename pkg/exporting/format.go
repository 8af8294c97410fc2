// Package exporting persists samples and reads recorded files back.
package exporting

import (
	"path/filepath"
	"strings"

	"emperror.dev/errors"
)

// Record is a generic map representing a single recorded row.
type Record = map[string]interface{}

// GetExtension returns the file extension for a format name.
func GetExtension(format string) string {
	switch strings.ToLower(format) {
	case "parquet":
		return ".parquet"
	default:
		return ".csv"
	}
}

// LoadRecords loads all records and the column order from a CSV or Parquet file.
func LoadRecords(path string) ([]string, []Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		t, err := ReadTable(path)
		if err != nil {
			return nil, nil, err
		}
		return t.Header, t.Records(), nil
	case ".parquet":
		return ReadParquet(path)
	default:
		return nil, nil, errors.Errorf("unsupported format for file: %s", path)
	}
}

// SwapExtension replaces the extension of path with the one of format.
func SwapExtension(path, format string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + GetExtension(format)
}
