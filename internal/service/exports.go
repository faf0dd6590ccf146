package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/database"
	"github.com/jask/orderdesk/internal/database/repository"
	"github.com/jask/orderdesk/internal/orders"
)

// ErrNothingToExport is returned when there are no rows to write.
var ErrNothingToExport = errors.New("export: no rows selected")

// ExportMeta records the view the rows were taken from.
type ExportMeta struct {
	SourceURL string
	SortBy    string
	Direction string
	Query     string
}

// ExportResult summarizes a written batch.
type ExportResult struct {
	BatchID string
	Rows    int
}

// ExportService writes display rows to the export file.
type ExportService struct {
	DB      *sql.DB
	Exports *repository.ExportRepo
	Log     *zap.Logger
}

// NewExportService wires the repo over db.
func NewExportService(db *sql.DB, log *zap.Logger) *ExportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportService{DB: db, Exports: repository.NewExportRepo(db), Log: log}
}

// Export writes rows as one batch, keeping their order.
func (s *ExportService) Export(ctx context.Context, rows []orders.DisplayOrder, meta ExportMeta) (ExportResult, error) {
	if s.DB == nil {
		return ExportResult{}, fmt.Errorf("export: db not configured")
	}
	if len(rows) == 0 {
		return ExportResult{}, ErrNothingToExport
	}

	batch := repository.Batch{
		ID:        uuid.NewString(),
		CreatedAt: database.Now(),
		SourceURL: meta.SourceURL,
		SortBy:    meta.SortBy,
		Direction: meta.Direction,
		Query:     meta.Query,
		RowCount:  len(rows),
	}
	err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.Exports.CreateBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		for i, o := range rows {
			if err := s.Exports.InsertOrder(ctx, tx, batch.ID, i, o); err != nil {
				return fmt.Errorf("insert order %d: %w", o.OrderNumber, err)
			}
		}
		return nil
	})
	if err != nil {
		s.Log.Error("export failed", zap.Error(err), zap.Int("rows", len(rows)))
		return ExportResult{}, err
	}

	s.Log.Info("export written",
		zap.String("batch", batch.ID),
		zap.Int("rows", len(rows)),
		zap.String("sort_by", meta.SortBy),
		zap.String("direction", meta.Direction))
	return ExportResult{BatchID: batch.ID, Rows: len(rows)}, nil
}
