package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jask/orderdesk/internal/orders"
)

// ExportRepo handles export batches and their rows.
type ExportRepo struct {
	db *sql.DB
}

func NewExportRepo(db *sql.DB) *ExportRepo { return &ExportRepo{db: db} }

func (r *ExportRepo) CreateBatch(ctx context.Context, tx *sql.Tx, b Batch) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO export_batches(id, created_at, source_url, sort_by, direction, query, row_count)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`, b.ID, b.CreatedAt, b.SourceURL, b.SortBy, b.Direction, b.Query, b.RowCount)
	return err
}

func (r *ExportRepo) InsertOrder(ctx context.Context, tx *sql.Tx, batchID string, pos int, o orders.DisplayOrder) error {
	_, err := tx.ExecContext(ctx, `
	INSERT INTO exported_orders(
	 batch_id, position, order_number, customer_name, customer_address,
	 order_value, order_date, ship_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, batchID, pos, o.OrderNumber, o.CustomerName, o.CustomerAddress,
		o.OrderValue.String(), o.OrderDate, o.ShipDate, o.Status)
	return err
}

// ListBatches returns batches newest first.
func (r *ExportRepo) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, created_at, source_url, sort_by, direction, query, row_count
	FROM export_batches ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.SourceURL, &b.SortBy, &b.Direction, &b.Query, &b.RowCount); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListOrders returns the rows of a batch in the order they were displayed.
func (r *ExportRepo) ListOrders(ctx context.Context, batchID string) ([]ExportedOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT batch_id, position, order_number, customer_name, customer_address,
	       order_value, order_date, ship_date, status
	FROM exported_orders WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExportedOrder
	for rows.Next() {
		var (
			o     ExportedOrder
			value string
		)
		if err := rows.Scan(&o.BatchID, &o.Position, &o.OrderNumber, &o.CustomerName, &o.CustomerAddress,
			&value, &o.OrderDate, &o.ShipDate, &o.Status); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("order %d value %q: %w", o.OrderNumber, value, err)
		}
		o.OrderValue = d
		out = append(out, o)
	}
	return out, rows.Err()
}
