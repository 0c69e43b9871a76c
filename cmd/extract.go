package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/minuteman3/log-find-date/internal/extract"
	"github.com/minuteman3/log-find-date/internal/logdate"
	"github.com/minuteman3/log-find-date/internal/metrics"
	"github.com/minuteman3/log-find-date/internal/report"
	"github.com/minuteman3/log-find-date/internal/sample"
	"github.com/minuteman3/log-find-date/internal/sink"
)

// maxParallelExtractions caps concurrent extractions when several dates are given.
const maxParallelExtractions = 4

func newExtractCmd(a *app) *cobra.Command {
	var (
		logPath   string
		outputDir string
		toStdout  bool
		generate  bool
	)

	cmd := &cobra.Command{
		Use:   "extract DATE [DATE...]",
		Short: "Write the lines of each DATE (YYYY-MM-DD) to output_<DATE>.txt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Override config with command line flags if provided
			if cmd.Flags().Changed("log") {
				a.cfg.LogPath = logPath
			}
			if cmd.Flags().Changed("output-dir") {
				a.cfg.OutputDir = outputDir
			}
			if cmd.Flags().Changed("generate") {
				a.cfg.Sample.Generate = generate
			}
			if toStdout && len(args) > 1 {
				return errors.New("--stdout takes a single date")
			}

			// Reject bad dates before touching the filesystem.
			for _, d := range args {
				if _, err := logdate.Parse(d); err != nil {
					return err
				}
			}

			if err := a.ensureLog(); err != nil {
				return err
			}

			m, err := metrics.New(otel.GetMeterProvider())
			if err != nil {
				return fmt.Errorf("create metrics: %w", err)
			}

			logger := a.logger.With("run_id", uuid.NewString())
			p := &extract.Pipeline{
				LogPath: a.cfg.LogPath,
				Metrics: m,
				Logger:  logger,
			}
			if toStdout {
				p.OpenSink = func(logdate.Key) (extract.Sink, error) {
					return sink.NewWriter(cmd.OutOrStdout(), "stdout"), nil
				}
				p.Reporter = report.NewLog(logger)
			} else {
				outDir := a.cfg.OutputDir
				p.OpenSink = func(date logdate.Key) (extract.Sink, error) {
					return sink.OpenFile(outDir, date)
				}
				p.Reporter = report.Multi{report.NewLog(logger), report.NewConsoleWriter(cmd.ErrOrStderr())}
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelExtractions)
			for _, d := range args {
				g.Go(func() error {
					if _, err := p.Extract(ctx, d); err != nil {
						return fmt.Errorf("extract %s: %w", d, err)
					}
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&logPath, "log", "", "Path to the date-sorted log file (default from config: logs/app.log)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for output files (default from config: output)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write matched lines to stdout instead of a file")
	cmd.Flags().BoolVar(&generate, "generate", true, "Generate a sample log when the log file does not exist")
	return cmd
}

// ensureLog writes a sample log at the configured path when none exists and
// sample generation is enabled.
func (a *app) ensureLog() error {
	_, err := os.Stat(a.cfg.LogPath)
	if err == nil || !errors.Is(err, fs.ErrNotExist) || !a.cfg.Sample.Generate {
		return nil
	}

	opts := sample.Options{
		Start:   sample.DefaultOptions().Start,
		Days:    a.cfg.Sample.Days,
		Entries: a.cfg.Sample.Entries,
		Seed:    a.cfg.Sample.Seed,
	}
	a.logger.Info("log file not found, generating sample", "path", a.cfg.LogPath, "entries", opts.Entries, "days", opts.Days)
	started := time.Now()
	if err := sample.GenerateFile(a.cfg.LogPath, opts); err != nil {
		return fmt.Errorf("generate sample log: %w", err)
	}
	a.logger.Debug("sample generated", "elapsed", time.Since(started))
	return nil
}
