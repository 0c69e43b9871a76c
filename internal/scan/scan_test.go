package scan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

const fourLines = "2024-12-01 A\n2024-12-02 B\n2024-12-02 C\n2024-12-03 D\n"

type collector struct {
	lines []string
}

func (c *collector) WriteLine(line []byte) error {
	c.lines = append(c.lines, string(line))
	return nil
}

func scanString(t *testing.T, data string, start int64, target string) ([]string, Stats) {
	t.Helper()
	var c collector
	st, err := Scan(context.Background(), strings.NewReader(data), int64(len(data)), start, logdate.MustParse(target), &c)
	require.NoError(t, err)
	return c.lines, st
}

func TestScan(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		start  int64
		target string
		want   []string
	}{
		{
			name:   "stops at first mismatch",
			data:   fourLines,
			start:  13,
			target: "2024-12-02",
			want:   []string{"2024-12-02 B\n", "2024-12-02 C\n"},
		},
		{
			name:   "runs to end of file",
			data:   fourLines,
			start:  39,
			target: "2024-12-03",
			want:   []string{"2024-12-03 D\n"},
		},
		{
			name:   "mismatch at start",
			data:   fourLines,
			start:  0,
			target: "2024-12-02",
			want:   nil,
		},
		{
			name:   "unterminated tail dropped",
			data:   "2024-12-02 B\n2024-12-02 C",
			start:  0,
			target: "2024-12-02",
			want:   []string{"2024-12-02 B\n"},
		},
		{
			name:   "start at end",
			data:   fourLines,
			start:  int64(len(fourLines)),
			target: "2024-12-03",
			want:   nil,
		},
		{
			name:   "crlf kept verbatim",
			data:   "2024-12-02 B\r\n2024-12-03 C\r\n",
			start:  0,
			target: "2024-12-02",
			want:   []string{"2024-12-02 B\r\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, st := scanString(t, tt.data, tt.start, tt.target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), st.Lines)
		})
	}
}

func TestScanBytesRead(t *testing.T) {
	_, st := scanString(t, fourLines, 13, "2024-12-02")
	// Two matched lines plus the mismatching line that ended the scan.
	assert.Equal(t, int64(39), st.BytesRead)
}

func TestScanSinkError(t *testing.T) {
	boom := errors.New("disk full")
	calls := 0
	sink := SinkFunc(func(line []byte) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	st, err := Scan(context.Background(), strings.NewReader(fourLines), int64(len(fourLines)), 13, "2024-12-02", sink)
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, st.Lines)
}

func TestScanBadStart(t *testing.T) {
	_, err := Scan(context.Background(), strings.NewReader(fourLines), int64(len(fourLines)), 100, "2024-12-02", SinkFunc(func([]byte) error { return nil }))
	assert.Error(t, err)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var c collector
	_, err := Scan(ctx, strings.NewReader(fourLines), int64(len(fourLines)), 13, "2024-12-02", &c)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.lines)
}
