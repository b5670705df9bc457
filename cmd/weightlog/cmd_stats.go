package main

import (
	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

func (c *cli) statsCmd() *cobra.Command {
	var summaryDays, trendDays int
	var unit string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summaries, goal progress and trend",
	}
	cmd.PersistentFlags().StringVar(&unit, "unit", domain.UnitKg, "display unit: kg, lb or jin")

	stats := func() (*app.StatsService, error) {
		store, err := c.open()
		if err != nil {
			return nil, err
		}
		return app.NewStatsService(store), nil
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Current, start, change, average and BMI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := stats()
			if err != nil {
				return err
			}
			sm, err := svc.Summary(cmd.Context(), summaryDays, unit)
			if err != nil {
				return err
			}
			return c.printJSON(sm)
		},
	}
	summary.Flags().IntVar(&summaryDays, "days", 0, "only the last N days (0 for all)")

	progress := &cobra.Command{
		Use:   "progress",
		Short: "Progress towards the goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := stats()
			if err != nil {
				return err
			}
			p, err := svc.Progress(cmd.Context(), unit)
			if err != nil {
				return err
			}
			return c.printJSON(p)
		},
	}

	trend := &cobra.Command{
		Use:   "trend",
		Short: "Weights over time, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := stats()
			if err != nil {
				return err
			}
			points, err := svc.Trend(cmd.Context(), trendDays, unit)
			if err != nil {
				return err
			}
			return c.printJSON(points)
		},
	}
	trend.Flags().IntVar(&trendDays, "days", 30, "only the last N days (0 for all)")

	cmd.AddCommand(summary, progress, trend)
	return cmd
}
