package search

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

const (
	readBufferSize = 4096
	backChunkSize  = 4096
)

// ErrTruncatedLine is returned when no newline-terminated line starts at or
// after a probed offset, i.e. the offset lies in the trailing segment of the file.
var ErrTruncatedLine = errors.New("truncated line")

// Probe is the outcome of reading one line's date.
type Probe struct {
	// Date is the date prefix of the line.
	Date logdate.Key
	// LineStart is the offset of the line's first byte.
	LineStart int64
	// Read is the number of bytes read from the file to produce the probe.
	Read int64
}

// DateAt returns the date of the first complete line starting at or after
// offset. An offset inside a line resolves to the line that follows it.
//
// The read starts one byte before offset, so a single forward skip to the
// next newline lands on offset itself when offset is already a line start.
func DateAt(r io.ReaderAt, size, offset int64) (Probe, error) {
	if offset < 0 {
		return Probe{}, fmt.Errorf("negative offset %d", offset)
	}
	if offset >= size {
		return Probe{}, ErrTruncatedLine
	}

	start := offset
	if offset > 0 {
		start = offset - 1
	}
	br := bufio.NewReaderSize(io.NewSectionReader(r, start, size-start), readBufferSize)

	p := Probe{LineStart: start}
	if offset > 0 {
		_, n, err := readLine(br)
		p.Read += n
		if err == io.EOF {
			return p, ErrTruncatedLine
		}
		if err != nil {
			return p, fmt.Errorf("skip to line boundary from offset %d: %w", offset, err)
		}
		p.LineStart = start + n
	}

	head, n, err := readLine(br)
	p.Read += n
	if err == io.EOF {
		return p, ErrTruncatedLine
	}
	if err != nil {
		return p, fmt.Errorf("read line at offset %d: %w", p.LineStart, err)
	}
	p.Date = logdate.Key(head)
	return p, nil
}

// readLine consumes one line from br. It returns at most logdate.Width
// leading bytes of the line with any line terminator removed, and the number
// of bytes consumed. io.EOF means the line has no terminating newline.
func readLine(br *bufio.Reader) ([]byte, int64, error) {
	var (
		head []byte
		n    int64
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if need := logdate.Width - len(head); need > 0 {
			head = append(head, chunk[:min(need, len(chunk))]...)
		}
		n += int64(len(chunk))
		switch {
		case err == nil:
			return bytes.TrimRight(head, "\r\n"), n, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return head, n, err
		}
	}
}

// lineBefore returns the probe for the line that ends just before end. end
// must be the start of a line other than the first.
func lineBefore(r io.ReaderAt, end int64) (Probe, error) {
	p := Probe{}
	buf := make([]byte, backChunkSize)

	// end-1 holds the previous line's newline; search the bytes before it.
	pos := end - 1
	for pos > 0 {
		n := min(int64(len(buf)), pos)
		chunk := buf[:n]
		if err := readFull(r, chunk, pos-n); err != nil {
			return p, fmt.Errorf("read backwards from offset %d: %w", pos, err)
		}
		p.Read += n
		if i := bytes.LastIndexByte(chunk, '\n'); i >= 0 {
			p.LineStart = pos - n + int64(i) + 1
			break
		}
		pos -= n
	}

	head := make([]byte, min(int64(logdate.Width), end-p.LineStart))
	if err := readFull(r, head, p.LineStart); err != nil {
		return p, fmt.Errorf("read line at offset %d: %w", p.LineStart, err)
	}
	p.Read += int64(len(head))
	p.Date = logdate.Key(bytes.TrimRight(head, "\r\n"))
	return p, nil
}

func readFull(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return err
}
