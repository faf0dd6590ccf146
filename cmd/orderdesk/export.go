package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/service"
)

func newExportCmd() *cobra.Command {
	var (
		flags viewFlags
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the orders once and write every matching row to the export file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			v, err := flags.apply(a.cfg)
			if err != nil {
				return err
			}
			db, err := a.openExports()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if reset {
				if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
					return err
				}
				a.log.Info("export file reset", zap.String("path", a.cfg.Export.Path))
			}

			st, err := a.load(ctx)
			if err != nil {
				return err
			}
			res, err := service.NewExportService(db, a.log).Export(ctx, v.Sorted(st.Orders), service.ExportMeta{
				SourceURL: a.cfg.Source.URL,
				SortBy:    string(v.SortBy),
				Direction: v.Direction.String(),
				Query:     v.Query,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d orders to %s (batch %s)\n", res.Rows, a.cfg.Export.Path, res.BatchID)
			return err
		},
	}
	flags.register(cmd, false)
	cmd.Flags().BoolVar(&reset, "reset", false, "clear previous exports first")
	return cmd
}
