package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/orderdesk/internal/sample"
)

func newSampleCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a generated orders feed, for serving locally as source.url",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative, got %d", count)
			}
			body, err := sample.Feed(seed, count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return err
		},
	}
	cmd.Flags().IntVar(&count, "count", 25, "number of orders")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "generator seed")
	return cmd
}
