package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/orderdesk/internal/database"
)

// MaintenanceService houses destructive actions on the export file.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all exported batches. It keeps the schema intact.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"exported_orders", "export_batches"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
