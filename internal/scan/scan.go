// Package scan reads the contiguous run of lines carrying one date, starting
// from an offset found by package search.
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

const bufferSize = 64 << 10

// ErrSinkWrite wraps failures returned by a Sink.
var ErrSinkWrite = errors.New("sink write failed")

// Sink receives matched lines. line includes its terminating newline and is
// only valid for the duration of the call.
type Sink interface {
	WriteLine(line []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(line []byte) error

func (f SinkFunc) WriteLine(line []byte) error { return f(line) }

// Stats describes a finished scan.
type Stats struct {
	Lines     int
	BytesRead int64
}

// Scan reads lines of r from start and passes every line dated target to
// sink, in file order, stopping at the first line with a different date.
// Reaching the end of the file ends the scan normally; a final line without
// a newline is incomplete and is not passed on.
//
// Lines already written when a sink error occurs are not rolled back.
func Scan(ctx context.Context, r io.ReaderAt, size, start int64, target logdate.Key, sink Sink) (Stats, error) {
	var st Stats
	if start < 0 || start > size {
		return st, fmt.Errorf("start offset %d outside file of %d bytes", start, size)
	}

	br := bufio.NewReaderSize(io.NewSectionReader(r, start, size-start), bufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		line, err := br.ReadBytes('\n')
		st.BytesRead += int64(len(line))
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, fmt.Errorf("read line at offset %d: %w", start+st.BytesRead-int64(len(line)), err)
		}

		if !target.Matches(line) {
			return st, nil
		}
		if err := sink.WriteLine(line); err != nil {
			return st, fmt.Errorf("%w: %w", ErrSinkWrite, err)
		}
		st.Lines++
	}
}
