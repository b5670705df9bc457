package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"weightlog/internal/adapter/file"
	"weightlog/internal/app"
	"weightlog/internal/config"
	"weightlog/internal/domain"
)

func (c *cli) watchCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the summary again whenever the backing file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Backend != config.BackendFile {
				return errors.New("watch only works with the file backend")
			}
			store, err := c.open()
			if err != nil {
				return err
			}
			repo, ok := c.repo.(*file.Repo)
			if !ok {
				return errors.New("watch only works with the file backend")
			}
			return c.watch(cmd.Context(), repo.Path(), app.NewStatsService(store), days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "summarize only the last N days (0 for all)")
	return cmd
}

func (c *cli) watch(ctx context.Context, path string, stats *app.StatsService, days int) error {
	report := func() {
		sm, err := stats.Summary(ctx, days, domain.UnitKg)
		if err != nil {
			slog.WarnContext(ctx, "reload failed", "path", path, "err", err)
			return
		}
		if err := c.printJSON(sm); err != nil {
			slog.WarnContext(ctx, "print failed", "err", err)
		}
	}
	report()
	return file.Watch(ctx, path, report)
}
