package exporting

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"emperror.dev/errors"

	"ProcSampler/pkg/collecting"
)

const (
	// ErrSink marks any failure to open, append to, or sync the output file.
	ErrSink = errors.Sentinel("output sink error")
	// ErrHeaderMismatch means the existing file was written with another column set.
	ErrHeaderMismatch = errors.Sentinel("output header does not match configured columns")
)

// Recorder appends samples to a CSV file. The header is written only when
// the file is empty at open time; existing rows are never rewritten.
// Every Write is flushed and fsynced before it returns.
type Recorder struct {
	path    string
	file    *os.File
	writer  *csv.Writer
	columns Columns
	rows    int
	closed  bool
}

// OpenRecorder opens path for appending, creating it if absent. An existing
// non-empty file must already carry exactly the header of columns.
func OpenRecorder(path string, columns Columns) (*Recorder, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(ErrSink, "create output directory: %v", err)
		}
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrapf(ErrSink, "open %s: %v", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, errors.Wrapf(ErrSink, "stat %s: %v", path, err)
	}

	r := &Recorder{
		path:    path,
		file:    file,
		writer:  csv.NewWriter(file),
		columns: columns,
	}

	if info.Size() == 0 {
		if err := r.writeRow(columns); err != nil {
			_ = file.Close()
			return nil, err
		}
		return r, nil
	}

	if err := checkExisting(path, columns); err != nil {
		_ = file.Close()
		return nil, err
	}
	return r, nil
}

// checkExisting verifies the header and that the last row is complete.
func checkExisting(path string, columns Columns) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(ErrSink, "read back %s: %v", path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return errors.Wrapf(ErrHeaderMismatch, "%s: unreadable header: %v", path, err)
	}
	if !columns.Equal(header) {
		return errors.Wrapf(ErrHeaderMismatch, "%s has %q, want %q",
			path, strings.Join(header, ","), strings.Join(columns, ","))
	}

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(ErrSink, "stat %s: %v", path, err)
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return errors.Wrapf(ErrSink, "read back %s: %v", path, err)
	}
	if last[0] != '\n' {
		return errors.Wrapf(ErrSink, "%s does not end with a newline", path)
	}
	return nil
}

// Write appends one sample and forces it to stable storage.
func (r *Recorder) Write(s collecting.Sample) error {
	if r.closed {
		return errors.Wrapf(ErrSink, "%s: write after close", r.path)
	}
	if err := r.writeRow(r.columns.Row(s)); err != nil {
		return err
	}
	r.rows++
	return nil
}

func (r *Recorder) writeRow(row []string) error {
	if err := r.writer.Write(row); err != nil {
		return errors.Wrapf(ErrSink, "write row: %v", err)
	}
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		return errors.Wrapf(ErrSink, "flush %s: %v", r.path, err)
	}
	if err := r.file.Sync(); err != nil {
		return errors.Wrapf(ErrSink, "sync %s: %v", r.path, err)
	}
	return nil
}

// Rows returns the number of samples appended by this recorder.
func (r *Recorder) Rows() int {
	return r.rows
}

// Path returns the file path.
func (r *Recorder) Path() string {
	return r.path
}

// Columns returns the column set rows are written with.
func (r *Recorder) Columns() Columns {
	return r.columns
}

// Close flushes, syncs and closes the file. Calling it twice is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		_ = r.file.Close()
		return errors.Wrapf(ErrSink, "flush %s: %v", r.path, err)
	}
	if err := r.file.Sync(); err != nil {
		_ = r.file.Close()
		return errors.Wrapf(ErrSink, "sync %s: %v", r.path, err)
	}
	return r.file.Close()
}

// Table is a fully read CSV file. Every row has as many fields as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses path, rejecting rows whose field count differs from the header.
func ReadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read header of %s", path)
	}

	t := &Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Index returns the position of column name in the header.
func (t *Table) Index(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// Records converts every row into a Record, typing numeric fields.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, t.rowToRecord(row))
	}
	return records
}

func (t *Table) rowToRecord(row []string) Record {
	record := make(Record, len(row))

	for i, val := range row {
		if i >= len(t.Header) || val == "" {
			continue
		}
		key := t.Header[i]

		if f, err := strconv.ParseFloat(val, 64); err == nil {
			record[key] = f
		} else {
			record[key] = val
		}
	}

	return record
}
