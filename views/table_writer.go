package views

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"sed-source/models"
)

// TableWriter is a concurrency-safe, buffered writer for fixed-width
// tables. Rows are formatted by the model itself (models.LineAppender).
type TableWriter struct {
	mu      sync.Mutex
	file    *os.File
	buf     *bufio.Writer
	scratch []byte
	rows    uint64
}

// NewTableWriter creates path and, when header is non-empty, writes it as
// a single '#' comment line that table readers skip.
func NewTableWriter(path string, bufSizeBytes int, header []string) (*TableWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("table create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 256 * 1024
	}

	w := &TableWriter{
		file: f,
		buf:  bufio.NewWriterSize(f, bufSizeBytes),
	}

	if len(header) > 0 {
		if _, err := fmt.Fprintf(w.buf, "# %s\n", strings.Join(header, " ")); err != nil {
			f.Close()
			return nil, fmt.Errorf("table write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow formats and appends one row. Thread-safe.
func (w *TableWriter) WriteRow(row models.LineAppender) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	line, err := row.AppendLine(w.scratch[:0])
	if err != nil {
		return err
	}
	w.scratch = line
	if _, err := w.buf.Write(line); err != nil {
		return fmt.Errorf("table write row: %w", err)
	}
	w.rows++
	return nil
}

// Flush pushes buffered rows to the OS.
func (w *TableWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file.
func (w *TableWriter) Close() error {
	ferr := w.Flush()
	w.mu.Lock()
	cerr := w.file.Close()
	w.mu.Unlock()
	if ferr != nil {
		return ferr
	}
	return cerr
}

// Rows returns the number of data rows written (excludes header).
func (w *TableWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// Path returns the file being written.
func (w *TableWriter) Path() string {
	return w.file.Name()
}
