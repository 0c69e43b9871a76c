package binlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/go-mysql-org/go-mysql/mysql"
	"github.com/go-mysql-org/go-mysql/replication"
	mysqldrv "github.com/go-sql-driver/mysql"

	"github.com/minuteman3/log-find-date/internal/logdate"
)

// DefaultIdleTimeout bounds the wait for the next event of the active binlog,
// which the server keeps open instead of ending.
const DefaultIdleTimeout = 2 * time.Second

// RangeFetcher reports the time span covered by a binlog file.
type RangeFetcher interface {
	TimeRange(ctx context.Context, file string) (start, end time.Time, err error)
}

// Match is the outcome of FindForDate.
type Match struct {
	// File is empty when every binlog starts after the target day.
	File string
	// Exact reports whether File holds events on the target day; otherwise
	// File is the closest binlog preceding it.
	Exact bool
}

// GetBinlogFiles fetches a list of all available binlog files from MySQL
func GetBinlogFiles(ctx context.Context, cfg replication.BinlogSyncerConfig) ([]string, error) {
	dsn := mysqldrv.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))

	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("error closing database connection", "error", cerr)
		}
	}()

	rows, err := db.QueryContext(ctx, "SHOW BINARY LOGS")
	if err != nil {
		return nil, fmt.Errorf("failed to execute SHOW BINARY LOGS: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("error closing rows", "error", cerr)
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var binlogFiles []string
	for rows.Next() {
		// Newer servers add an Encrypted column after Log_name and File_size.
		var filename string
		dest := make([]any, len(cols))
		dest[0] = &filename
		for i := 1; i < len(dest); i++ {
			dest[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		binlogFiles = append(binlogFiles, filename)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	// Sort binlog files (they should already be sorted by the server, but just to be safe)
	sort.Strings(binlogFiles)
	return binlogFiles, nil
}

// SyncerFetcher reads binlog time ranges over the replication protocol.
// Each call opens its own syncer.
type SyncerFetcher struct {
	Config      replication.BinlogSyncerConfig
	IdleTimeout time.Duration
}

// TimeRange returns the timestamps of the first and last events of binlogFile.
func (f *SyncerFetcher) TimeRange(ctx context.Context, binlogFile string) (start, end time.Time, err error) {
	syncer := replication.NewBinlogSyncer(f.Config)
	defer syncer.Close()

	streamer, err := syncer.StartSync(mysql.Position{Name: binlogFile, Pos: 4})
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to start sync from %s: %w", binlogFile, err)
	}

	idle := f.IdleTimeout
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}

	var first, last uint32
	for {
		ev, err := nextEvent(ctx, streamer, idle)
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			// Active binlog: no more events for now.
			break
		}
		if err != nil {
			if first == 0 {
				return time.Time{}, time.Time{}, fmt.Errorf("failed to get event: %w", err)
			}
			break
		}

		// A real rotate event closes the file; the fake one at the start has no timestamp.
		if rot, ok := ev.Event.(*replication.RotateEvent); ok && ev.Header.Timestamp > 0 && string(rot.NextLogName) != binlogFile {
			break
		}
		// Skip events with no timestamp (like FORMAT_DESCRIPTION)
		if ev.Header.Timestamp == 0 {
			continue
		}
		if first == 0 {
			first = ev.Header.Timestamp
		}
		last = ev.Header.Timestamp
	}

	if first == 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("no timestamped events in %s", binlogFile)
	}
	return time.Unix(int64(first), 0), time.Unix(int64(last), 0), nil
}

func nextEvent(ctx context.Context, s *replication.BinlogStreamer, idle time.Duration) (*replication.BinlogEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, idle)
	defer cancel()
	return s.GetEvent(ctx)
}

// FindForDate binary-searches the sorted binlogFiles for the first file whose
// events reach the start of date in loc. Files whose range cannot be read are
// logged and skipped over.
func FindForDate(ctx context.Context, fetcher RangeFetcher, binlogFiles []string, date logdate.Key, loc *time.Location) (Match, error) {
	if len(binlogFiles) == 0 {
		return Match{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t := date.Time()
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	candidate := -1
	var candidateStart time.Time

	left, right := 0, len(binlogFiles)-1
	for left <= right {
		if err := ctx.Err(); err != nil {
			return Match{}, err
		}
		mid := left + (right-left)/2

		start, end, err := fetcher.TimeRange(ctx, binlogFiles[mid])
		if err != nil {
			if ctx.Err() != nil {
				return Match{}, ctx.Err()
			}
			slog.Warn("could not get time range", "file", binlogFiles[mid], "error", err)
			// Try to continue with the search
			if mid > 0 {
				right = mid - 1
			} else {
				left = mid + 1
			}
			continue
		}

		if end.Before(dayStart) {
			left = mid + 1
		} else {
			candidate, candidateStart = mid, start
			right = mid - 1
		}
	}

	switch {
	case candidate >= 0 && candidateStart.Before(dayEnd):
		return Match{File: binlogFiles[candidate], Exact: true}, nil
	case candidate > 0:
		return Match{File: binlogFiles[candidate-1]}, nil
	case candidate < 0:
		// Every binlog ends before the day.
		return Match{File: binlogFiles[len(binlogFiles)-1]}, nil
	default:
		return Match{}, nil
	}
}
