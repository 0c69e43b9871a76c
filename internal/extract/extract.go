package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/minuteman3/log-find-date/internal/logdate"
	"github.com/minuteman3/log-find-date/internal/metrics"
	"github.com/minuteman3/log-find-date/internal/scan"
	"github.com/minuteman3/log-find-date/internal/search"
)

// ErrSourceUnavailable is returned when the log file cannot be opened or stat'ed.
var ErrSourceUnavailable = errors.New("source unavailable")

// Sink is an output destination owned by one extraction.
type Sink interface {
	scan.Sink
	// Path identifies the destination in reports.
	Path() string
	Close() error
}

// OpenSinkFunc creates the destination for a date's matched lines.
type OpenSinkFunc func(date logdate.Key) (Sink, error)

// Reporter receives human-readable progress.
type Reporter interface {
	Started(logPath string, date logdate.Key)
	Finished(s Summary)
}

// Summary describes a finished extraction.
type Summary struct {
	Date logdate.Key
	// Found reports whether any line carries Date; Offset is the first one.
	Found  bool
	Offset int64

	MatchedLines int
	// BytesScanned counts bytes read by search probes and by the scan.
	BytesScanned int64
	// FileSize is the size of the log file when the extraction started.
	FileSize int64
	Probes   int
	Elapsed  time.Duration

	OutputPath string
}

// Pipeline extracts the lines of one date from a log file.
type Pipeline struct {
	LogPath  string
	OpenSink OpenSinkFunc

	// Optional.
	Reporter Reporter
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// Extract writes every line of LogPath dated date to a new sink and returns
// the summary. date must have the form YYYY-MM-DD; malformed dates fail with
// logdate.ErrInvalidFormat before any I/O.
func (p *Pipeline) Extract(ctx context.Context, date string) (s Summary, err error) {
	started := time.Now()

	key, err := logdate.Parse(date)
	if err != nil {
		return s, err
	}
	s.Date = key

	logger := p.logger().With("date", key.String(), "log", p.LogPath)
	defer func() {
		s.Elapsed = time.Since(started)
		p.Metrics.Record(ctx, metrics.Observation{
			Found:        s.Found,
			Probes:       s.Probes,
			BytesScanned: s.BytesScanned,
			MatchedLines: s.MatchedLines,
			Elapsed:      s.Elapsed,
			Err:          err,
		})
	}()

	f, err := os.Open(p.LogPath)
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("error closing log file", "error", cerr)
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	if fi.IsDir() {
		return s, fmt.Errorf("%w: %s is a directory", ErrSourceUnavailable, p.LogPath)
	}
	s.FileSize = fi.Size()

	if p.Reporter != nil {
		p.Reporter.Started(p.LogPath, key)
	}

	out, err := p.OpenSink(key)
	if err != nil {
		return s, fmt.Errorf("%w: open output: %w", scan.ErrSinkWrite, err)
	}
	s.OutputPath = out.Path()

	err = p.run(ctx, f, out, &s, logger)
	if cerr := out.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("%w: close output: %w", scan.ErrSinkWrite, cerr))
	}
	if err != nil {
		return s, err
	}

	if p.Reporter != nil {
		s.Elapsed = time.Since(started)
		p.Reporter.Finished(s)
	}
	return s, nil
}

// run locates the first line of s.Date in f and scans its run into out.
func (p *Pipeline) run(ctx context.Context, f *os.File, out Sink, s *Summary, logger *slog.Logger) error {
	res, sst, err := search.Locate(ctx, f, s.FileSize, s.Date)
	s.Probes = sst.Probes
	s.BytesScanned = sst.BytesRead
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	logger.Debug("search finished", "result", res.String(), "probes", sst.Probes)

	offset, found := res.Offset()
	if !found {
		return nil
	}
	s.Found = true
	s.Offset = offset

	st, err := scan.Scan(ctx, f, s.FileSize, offset, s.Date, out)
	s.MatchedLines = st.Lines
	s.BytesScanned += st.BytesRead
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	logger.Debug("scan finished", "lines", st.Lines, "bytes", st.BytesRead)
	return nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
