package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-mysql-org/go-mysql/replication"
	"github.com/spf13/cobra"

	"github.com/minuteman3/log-find-date/internal/binlog"
	"github.com/minuteman3/log-find-date/internal/logdate"
)

func newBinlogCmd(a *app) *cobra.Command {
	var (
		host     string
		port     int
		user     string
		password string
		tz       string
		idle     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "binlog DATE",
		Short: "Find the MySQL binlog file holding events for DATE (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := logdate.Parse(args[0])
			if err != nil {
				return err
			}
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return fmt.Errorf("invalid timezone: %w", err)
			}

			cfg := a.cfg.MySQL
			// Override config with command line flags if provided
			if host != "" {
				cfg.Host = host
			}
			if port != 0 {
				cfg.Port = port
			}
			if user != "" {
				cfg.User = user
			}
			if password != "" {
				cfg.Password = password
			}

			syncerCfg := replication.BinlogSyncerConfig{
				ServerID: 100,
				Flavor:   "mysql",
				Host:     cfg.Host,
				Port:     uint16(cfg.Port),
				User:     cfg.User,
				Password: cfg.Password,
			}

			ctx := cmd.Context()
			binlogFiles, err := binlog.GetBinlogFiles(ctx, syncerCfg)
			if err != nil {
				return fmt.Errorf("failed to get binlog files: %w", err)
			}
			if len(binlogFiles) == 0 {
				return errors.New("no binlog files found")
			}

			fetcher := &binlog.SyncerFetcher{Config: syncerCfg, IdleTimeout: idle}
			match, err := binlog.FindForDate(ctx, fetcher, binlogFiles, date, loc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target date: %s (%s)\n", date, loc)
			switch {
			case match.Exact:
				fmt.Fprintf(out, "Found binlog file with events on that date: %s\n", match.File)
			case match.File != "":
				fmt.Fprintf(out, "Closest binlog file preceding the date: %s\n", match.File)
			default:
				return errors.New("no binlog containing the target date was found")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "MySQL host (default: localhost)")
	cmd.Flags().IntVar(&port, "port", 0, "MySQL port (default: 3306)")
	cmd.Flags().StringVar(&user, "user", "", "MySQL user (default: root)")
	cmd.Flags().StringVar(&password, "password", "", "MySQL password")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "Timezone the date is interpreted in")
	cmd.Flags().DurationVar(&idle, "idle-timeout", binlog.DefaultIdleTimeout, "How long to wait for more events at the end of the active binlog")
	return cmd
}
