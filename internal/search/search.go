package search

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

// Result is the outcome of Locate: either the offset of the first line of
// the target date, or not found.
type Result struct {
	offset int64
	found  bool
}

// Found returns a Result for a match starting at offset.
func Found(offset int64) Result { return Result{offset: offset, found: true} }

// NotFound returns a Result for an absent date.
func NotFound() Result { return Result{} }

// Offset returns the offset of the first matching line and whether the date was found.
func (r Result) Offset() (int64, bool) { return r.offset, r.found }

func (r Result) String() string {
	if !r.found {
		return "not found"
	}
	return fmt.Sprintf("found at offset %d", r.offset)
}

// Stats counts the I/O performed by a search.
type Stats struct {
	Probes    int
	BytesRead int64
}

func (s *Stats) add(p Probe) {
	s.Probes++
	s.BytesRead += p.Read
}

// Locate finds the offset of the first line of r whose date prefix equals
// target. size is the number of bytes of r to consider.
//
// A probe that finds no complete line (ErrTruncatedLine) is treated as a date
// after target, which keeps an unterminated final line out of the result.
func Locate(ctx context.Context, r io.ReaderAt, size int64, target logdate.Key) (Result, Stats, error) {
	var st Stats
	if size <= 0 {
		return NotFound(), st, nil
	}

	candidate := int64(-1)
	left, right := int64(0), size-1
	for left <= right {
		if err := ctx.Err(); err != nil {
			return NotFound(), st, err
		}
		mid := left + (right-left)/2

		p, err := DateAt(r, size, mid)
		st.add(p)
		switch {
		case errors.Is(err, ErrTruncatedLine):
			right = mid - 1
		case err != nil:
			return NotFound(), st, err
		case p.Date == target:
			// Keep going left: an earlier line may carry the same date.
			candidate = p.LineStart
			right = mid - 1
		case p.Date < target:
			left = mid + 1
		default:
			right = mid - 1
		}
	}

	if candidate < 0 {
		return NotFound(), st, nil
	}

	first, bst, err := Backtrack(ctx, r, candidate, target)
	st.Probes += bst.Probes
	st.BytesRead += bst.BytesRead
	if err != nil {
		return NotFound(), st, err
	}
	return Found(first), st, nil
}

// Backtrack walks backwards line by line from lineStart while the preceding
// line still carries target, and returns the start of the earliest such line.
// lineStart must be the start of a line dated target.
func Backtrack(ctx context.Context, r io.ReaderAt, lineStart int64, target logdate.Key) (int64, Stats, error) {
	var st Stats
	for lineStart > 0 {
		if err := ctx.Err(); err != nil {
			return lineStart, st, err
		}
		p, err := lineBefore(r, lineStart)
		st.add(p)
		if err != nil {
			return lineStart, st, err
		}
		if p.Date != target {
			break
		}
		lineStart = p.LineStart
	}
	return lineStart, st, nil
}
