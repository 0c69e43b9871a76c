// Package report renders extraction progress for people and for logs.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/minuteman3/log-find-date/internal/extract"
	"github.com/minuteman3/log-find-date/internal/logdate"
)

var (
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleValue = lipgloss.NewStyle().Bold(true)
	styleFound = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // green
	styleMiss  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))           // yellow
)

// Console prints a short styled summary to a terminal. It is safe for
// concurrent use.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleWriter returns a Console writing to w, normally stderr so that
// stdout stays free for matched lines.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Started(logPath string, date logdate.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s %s %s\n",
		styleLabel.Render("Searching"), styleValue.Render(logPath),
		styleLabel.Render("for"), styleValue.Render(date.String()))
}

func (c *Console) Finished(s extract.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := styleFound.Render(fmt.Sprintf("%d lines", s.MatchedLines))
	if !s.Found {
		status = styleMiss.Render("no lines")
	}
	fmt.Fprintf(c.w, "%s %s %s\n", styleLabel.Render("Matched"), status, styleLabel.Render("for "+s.Date.String()))
	fmt.Fprintf(c.w, "%s %s\n", styleLabel.Render("Output "), styleValue.Render(s.OutputPath))
	fmt.Fprintf(c.w, "%s %s %s\n", styleLabel.Render("Took   "), s.Elapsed.Round(time.Microsecond),
		styleLabel.Render(fmt.Sprintf("(%d probes, %d of %d bytes read)", s.Probes, s.BytesScanned, s.FileSize)))
}

// Log reports through a slog.Logger.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log reporter; a nil logger means slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Started(logPath string, date logdate.Key) {
	l.logger.Info("extraction started", "log", logPath, "date", date.String())
}

func (l *Log) Finished(s extract.Summary) {
	l.logger.Info("extraction finished",
		"date", s.Date.String(),
		"found", s.Found,
		"matched_lines", s.MatchedLines,
		"probes", s.Probes,
		"bytes_scanned", s.BytesScanned,
		"file_size", s.FileSize,
		"elapsed", s.Elapsed,
		"output", s.OutputPath,
	)
}

// Multi fans reports out to several reporters in order.
type Multi []extract.Reporter

func (m Multi) Started(logPath string, date logdate.Key) {
	for _, r := range m {
		r.Started(logPath, date)
	}
}

func (m Multi) Finished(s extract.Summary) {
	for _, r := range m {
		r.Finished(s)
	}
}
