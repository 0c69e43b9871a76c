// Package sink provides the destinations matched lines are written to.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

// FileName returns the output file name for date.
func FileName(date logdate.Key) string {
	return fmt.Sprintf("output_%s.txt", date)
}

// File writes lines to a buffered file.
type File struct {
	f    *os.File
	w    *bufio.Writer
	path string
}

// OpenFile creates (or truncates) the output file for date inside dir,
// creating dir if it does not exist.
func OpenFile(dir string, date logdate.Key) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(date))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &File{f: f, w: bufio.NewWriter(f), path: path}, nil
}

func (s *File) WriteLine(line []byte) error {
	_, err := s.w.Write(line)
	return err
}

// Path returns the location of the output file.
func (s *File) Path() string { return s.path }

// Close flushes buffered lines and closes the file.
func (s *File) Close() error {
	return errors.Join(s.w.Flush(), s.f.Close())
}

// Writer writes lines to an io.Writer it does not own, such as stdout.
type Writer struct {
	w    *bufio.Writer
	name string
}

// NewWriter returns a sink writing to w; name is reported as its path.
func NewWriter(w io.Writer, name string) *Writer {
	return &Writer{w: bufio.NewWriter(w), name: name}
}

func (s *Writer) WriteLine(line []byte) error {
	_, err := s.w.Write(line)
	return err
}

func (s *Writer) Path() string { return s.name }

// Close flushes buffered lines. The underlying writer is left open.
func (s *Writer) Close() error { return s.w.Flush() }
