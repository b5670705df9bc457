package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightlog/internal/codec"
)

func (c *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the backing document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := codec.DocumentSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.out, string(b))
			return err
		},
	}
}
