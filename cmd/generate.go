package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minuteman3/log-find-date/internal/logdate"
	"github.com/minuteman3/log-find-date/internal/sample"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		out   string
		start string
	)
	opts := sample.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic date-sorted log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("out") {
				out = a.cfg.LogPath
			}
			if !cmd.Flags().Changed("days") {
				opts.Days = a.cfg.Sample.Days
			}
			if !cmd.Flags().Changed("entries") {
				opts.Entries = a.cfg.Sample.Entries
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = a.cfg.Sample.Seed
			}
			if start != "" {
				key, err := logdate.Parse(start)
				if err != nil {
					return err
				}
				opts.Start = key.Time()
			}

			if err := sample.GenerateFile(out, opts); err != nil {
				return err
			}
			a.logger.Info("sample log written", "path", out, "entries", opts.Entries, "days", opts.Days)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default from config: logs/app.log)")
	cmd.Flags().StringVar(&start, "start", "", "First day, YYYY-MM-DD (default 2024-01-01)")
	cmd.Flags().IntVar(&opts.Days, "days", opts.Days, "Number of days to spread entries over")
	cmd.Flags().IntVar(&opts.Entries, "entries", opts.Entries, "Number of lines to write")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "Random seed")
	return cmd
}
