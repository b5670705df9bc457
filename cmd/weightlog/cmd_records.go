package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

func (c *cli) recordService() (*app.RecordService, error) {
	store, err := c.open()
	if err != nil {
		return nil, err
	}
	return app.NewRecordService(store), nil
}

func (c *cli) recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List, save and delete weight records",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print all records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			recs, err := svc.ListRecords(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(recs)
		},
	}

	var rec domain.WeightRecord
	save := &cobra.Command{
		Use:   "save",
		Short: "Add a record or replace the one on the same date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			saved, err := svc.SaveRecord(cmd.Context(), rec)
			if err != nil {
				return err
			}
			return c.printJSON(saved)
		},
	}
	save.Flags().StringVar(&rec.Date, "date", "", "record date (YYYY-MM-DD)")
	save.Flags().Float64Var(&rec.Weight, "weight", 0, "weight in kg")
	save.Flags().StringVar(&rec.Note, "note", "", "optional note")
	save.Flags().StringVar(&rec.ID, "id", "", "record id (generated when empty)")
	_ = save.MarkFlagRequired("date")
	_ = save.MarkFlagRequired("weight")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete every record with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			return svc.DeleteRecord(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func (c *cli) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the user profile",
	}

	get := &cobra.Command{
		Use:  "get",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			p, err := svc.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(p)
		},
	}

	var p domain.UserProfile
	set := &cobra.Command{
		Use:  "set",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if p.WeightUnit != "" && !domain.ValidUnit(p.WeightUnit) {
				return fmt.Errorf("%w %q", domain.ErrInvalidUnit, p.WeightUnit)
			}
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			return svc.UpdateProfile(cmd.Context(), p)
		},
	}
	set.Flags().Float64Var(&p.Height, "height", 0, "height in cm")
	set.Flags().StringVar(&p.Gender, "gender", "", "gender")
	set.Flags().StringVar(&p.WeightUnit, "unit", "", "preferred display unit: kg, lb or jin")
	_ = set.MarkFlagRequired("height")

	cmd.AddCommand(get, set)
	return cmd
}

func (c *cli) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or change the weight goal",
	}

	get := &cobra.Command{
		Use:  "get",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			g, err := svc.GetGoal(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(g)
		},
	}

	var g domain.Goal
	set := &cobra.Command{
		Use:  "set",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.TargetWeight <= 0 {
				return errors.New("target must be positive")
			}
			svc, err := c.recordService()
			if err != nil {
				return err
			}
			return svc.UpdateGoal(cmd.Context(), g)
		},
	}
	set.Flags().Float64Var(&g.TargetWeight, "target", 0, "target weight in kg")
	set.Flags().StringVar(&g.TargetDate, "by", "", "optional target date (YYYY-MM-DD)")
	_ = set.MarkFlagRequired("target")

	cmd.AddCommand(get, set)
	return cmd
}
