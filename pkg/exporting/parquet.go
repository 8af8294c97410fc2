package exporting

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"emperror.dev/errors"
	"github.com/parquet-go/parquet-go"
)

const ParquetBatchSize = 1000

// ConvertToParquet writes the rows of a recorded CSV file into a Parquet file.
// date and time stay strings; every other column becomes a nullable double.
// It returns the number of rows written.
func ConvertToParquet(csvPath, parquetPath string) (int, error) {
	t, err := ReadTable(csvPath)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(parquetPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, errors.Wrap(err, "failed to create output directory")
		}
	}

	w, err := newParquetWriter(parquetPath, t.Header)
	if err != nil {
		return 0, err
	}

	for i, row := range t.Rows {
		if err := w.write(row); err != nil {
			_ = w.close()
			return 0, errors.Wrapf(err, "row %d", i+1)
		}
	}
	if err := w.close(); err != nil {
		return 0, err
	}
	return len(t.Rows), nil
}

// parquetWriter writes CSV rows using the Row API. The parquet schema orders
// columns by name, so rows are built in that order.
type parquetWriter struct {
	file    *os.File
	writer  *parquet.Writer
	columns []string
	source  []int
	buffer  []parquet.Row
}

func newParquetWriter(path string, header []string) (*parquetWriter, error) {
	columns := append([]string(nil), header...)
	sort.Strings(columns)

	source := make([]int, len(columns))
	group := make(parquet.Group, len(columns))
	for i, name := range columns {
		group[name] = parquetNode(name)
		for j, h := range header {
			if h == name {
				source[i] = j
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file")
	}

	schema := parquet.NewSchema("sample", group)
	return &parquetWriter{
		file:    file,
		writer:  parquet.NewWriter(file, schema, parquet.Compression(&parquet.Snappy)),
		columns: columns,
		source:  source,
		buffer:  make([]parquet.Row, 0, ParquetBatchSize),
	}, nil
}

func isStringColumn(name string) bool {
	return name == ColumnDate || name == ColumnTime
}

func parquetNode(name string) parquet.Node {
	if isStringColumn(name) {
		return parquet.Optional(parquet.String())
	}
	return parquet.Optional(parquet.Leaf(parquet.DoubleType))
}

func (w *parquetWriter) write(csvRow []string) error {
	row := make(parquet.Row, len(w.columns))
	for i, name := range w.columns {
		val := csvRow[w.source[i]]
		switch {
		case val == "":
			row[i] = parquet.NullValue().Level(0, 0, i)
		case isStringColumn(name):
			row[i] = parquet.ByteArrayValue([]byte(val)).Level(0, 1, i)
		default:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return errors.Wrapf(err, "column %s", name)
			}
			row[i] = parquet.DoubleValue(f).Level(0, 1, i)
		}
	}

	w.buffer = append(w.buffer, row)
	if len(w.buffer) >= ParquetBatchSize {
		return w.flushBuffer()
	}
	return nil
}

func (w *parquetWriter) flushBuffer() error {
	if len(w.buffer) == 0 {
		return nil
	}
	if _, err := w.writer.WriteRows(w.buffer); err != nil {
		return errors.Wrap(err, "failed to write parquet rows")
	}
	w.buffer = w.buffer[:0]
	return nil
}

func (w *parquetWriter) close() error {
	if err := w.flushBuffer(); err != nil {
		_ = w.file.Close()
		return err
	}
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return errors.Wrap(err, "failed to finalize parquet file")
	}
	return w.file.Close()
}

// ReadParquet reads every row of a Parquet file written by ConvertToParquet.
func ReadParquet(path string) ([]string, []Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to stat file")
	}

	pf, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open parquet file")
	}

	fields := pf.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}

	records := make([]Record, 0, pf.NumRows())
	rowBuf := make([]parquet.Row, 100)

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(rowBuf)
			for i := 0; i < n; i++ {
				record := make(Record, len(names))
				for _, val := range rowBuf[i] {
					col := val.Column()
					if col < 0 || col >= len(names) || val.IsNull() {
						continue
					}
					record[names[col]] = parquetValueToGo(val)
				}
				records = append(records, record)
			}
			if err != nil {
				if err != io.EOF {
					rows.Close()
					return nil, nil, errors.Wrap(err, "failed to read rows")
				}
				break
			}
			if n == 0 {
				break
			}
		}
		rows.Close()
	}

	return names, records, nil
}

func parquetValueToGo(v parquet.Value) interface{} {
	switch v.Kind() {
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
