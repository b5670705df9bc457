package main

import (
	"context"

	"github.com/spf13/cobra"

	"weightlog/internal/app"
	"weightlog/internal/codec"
	"weightlog/internal/domain"
)

func (c *cli) transferService() (*app.TransferService, error) {
	store, err := c.open()
	if err != nil {
		return nil, err
	}
	return app.NewTransferService(store), nil
}

func (c *cli) exportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.transferService()
			if err != nil {
				return err
			}
			if out == "" {
				return svc.ExportTo(cmd.Context(), format, c.out)
			}
			return svc.Export(cmd.Context(), format, out)
		},
	}
	cmd.Flags().StringVar(&format, "format", codec.FormatJSON, "export format: json or csv")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

type importFunc func(ctx context.Context, path string, policy domain.ConflictResolution) (*domain.ImportResult, error)

func (c *cli) importCmd() *cobra.Command {
	var onConflict string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Merge records from a JSON or CSV file",
	}
	cmd.PersistentFlags().StringVar(&onConflict, "on-conflict", "skip", "what to do with a date already stored: skip, overwrite or keep")

	run := func(fn func(*app.TransferService) importFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			svc, err := c.transferService()
			if err != nil {
				return err
			}
			res, err := fn(svc)(cmd.Context(), args[0], domain.ParseConflictResolution(onConflict))
			if err != nil {
				return err
			}
			return c.printJSON(res)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "json <path>",
			Short: "Import a backup document or an array of records",
			Args:  cobra.ExactArgs(1),
			RunE:  run(func(s *app.TransferService) importFunc { return s.ImportJSON }),
		},
		&cobra.Command{
			Use:   "csv <path>",
			Short: "Import Date,Weight,Note rows",
			Args:  cobra.ExactArgs(1),
			RunE:  run(func(s *app.TransferService) importFunc { return s.ImportCSV }),
		},
	)
	return cmd
}

func (c *cli) backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create or restore a full backup",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <path>",
			Short: "Write the whole document to path",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := c.transferService()
				if err != nil {
					return err
				}
				return svc.CreateBackup(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "restore <path>",
			Short: "Replace the stored document with the backup at path",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := c.transferService()
				if err != nil {
					return err
				}
				return svc.RestoreBackup(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}
