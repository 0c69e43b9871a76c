// Package sample generates synthetic date-sorted log files for trying the
// extractor out when no real log is at hand.
package sample

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Options control the generated log.
type Options struct {
	// Start is the first day covered; it is truncated to midnight UTC.
	Start time.Time
	// Days is the number of consecutive days entries are spread over.
	Days int
	// Entries is the number of lines written.
	Entries int
	// Seed makes the output reproducible.
	Seed int64
}

// DefaultOptions returns a year of entries starting 2024-01-01.
func DefaultOptions() Options {
	return Options{
		Start:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:    365,
		Entries: 100000,
		Seed:    1,
	}
}

var (
	levels   = []string{"INFO", "INFO", "INFO", "DEBUG", "WARN", "ERROR"}
	messages = []string{
		"user login succeeded",
		"user logout",
		"cache miss for session",
		"payment authorised",
		"payment declined",
		"upstream timeout, retrying",
		"configuration reloaded",
		"disk usage above threshold",
		"request completed",
		"background job finished",
	}
)

// Generate writes opts.Entries lines sorted by timestamp to w. Each line has
// the form "YYYY-MM-DD HH:MM:SS LEVEL message request_id=<uuid>".
func Generate(w io.Writer, opts Options) error {
	if opts.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", opts.Days)
	}
	if opts.Entries < 0 {
		return fmt.Errorf("entries must not be negative, got %d", opts.Entries)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	start := time.Date(opts.Start.Year(), opts.Start.Month(), opts.Start.Day(), 0, 0, 0, 0, time.UTC)
	span := int64(opts.Days) * int64(24*time.Hour/time.Second)

	offsets := make([]int64, opts.Entries)
	for i := range offsets {
		offsets[i] = rng.Int63n(span)
	}
	slices.Sort(offsets)

	bw := bufio.NewWriter(w)
	for _, off := range offsets {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return fmt.Errorf("generate request id: %w", err)
		}
		ts := start.Add(time.Duration(off) * time.Second)
		_, err = fmt.Fprintf(bw, "%s %-5s %s request_id=%s\n",
			ts.Format(time.DateTime), levels[rng.Intn(len(levels))], messages[rng.Intn(len(messages))], id)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GenerateFile writes a sample log to path, creating parent directories.
func GenerateFile(path string, opts Options) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample log: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return Generate(f, opts)
}
