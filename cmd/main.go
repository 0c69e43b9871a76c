package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/minuteman3/log-find-date/internal/config"
)

// app carries state shared by the subcommands once the root command has
// loaded configuration.
type app struct {
	configFile string
	verbose    bool
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

// lockedWriter serialises writes from concurrent extractions.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func newRootCmd(a *app) *cobra.Command {
	a.stderr = &lockedWriter{w: a.stderr}

	root := &cobra.Command{
		Use:   "log-find-date",
		Short: "Extract the lines of one date from a date-sorted log file",
		Long: `log-find-date finds all lines of a calendar date in a large, date-sorted,
append-only log file using binary search over byte offsets, so only a few
kilobytes are read besides the matching lines themselves.

Configuration file format (.ini):
  [log]
  path = logs/app.log

  [output]
  dir = output

  [sample]
  generate = true
  days = 365
  entries = 100000

  [mysql]
  host = localhost
  port = 3306
  user = root
  password = secret`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = setupLogging(a.stderr, a.logFormat, a.verbose)

			cfg, err := config.Load(a.configFile)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.configFile, "config", config.DefaultPath(), "Path to configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newExtractCmd(a), newGenerateCmd(a), newBinlogCmd(a))
	return root
}

func setupLogging(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
