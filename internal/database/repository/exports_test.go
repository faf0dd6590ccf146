package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/orderdesk/internal/database"
	"github.com/jask/orderdesk/internal/database/repository"
	"github.com/jask/orderdesk/internal/orders"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "exports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExportRepoRoundTrip(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := repository.NewExportRepo(db)

	rows := []orders.DisplayOrder{
		{OrderNumber: 100005, CustomerName: "DakotaFinley", CustomerAddress: "555 Broadway  New York NY 12345",
			OrderValue: decimal.RequireFromString("117.12"), OrderDate: "2021-03-01", ShipDate: "2021-03-03", Status: "shipped"},
		{OrderNumber: 100001, CustomerName: "JohnDoe", CustomerAddress: "1 Main St Apt 2 Austin TX 78701",
			OrderValue: decimal.RequireFromString("137.10"), OrderDate: "2021-02-01", ShipDate: "Invalid Date", Status: "open"},
	}
	created := database.Now()

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repo.CreateBatch(ctx, tx, repository.Batch{
			ID: "b1", CreatedAt: created, SourceURL: "http://x", SortBy: "order_value", Direction: "desc", RowCount: len(rows),
		}); err != nil {
			return err
		}
		for i, o := range rows {
			if err := repo.InsertOrder(ctx, tx, "b1", i, o); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	batches, err := repo.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.Equal(t, "b1", batches[0].ID)
	require.Equal(t, 2, batches[0].RowCount)
	require.WithinDuration(t, created, batches[0].CreatedAt, time.Second)

	got, err := repo.ListOrders(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int64(100005), got[0].OrderNumber)
	require.Equal(t, 1, got[1].Position)
	require.True(t, got[1].OrderValue.Equal(decimal.RequireFromString("137.1")))
	require.Equal(t, "Invalid Date", got[1].ShipDate)
}

func TestExportRepoDuplicatePositionFails(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := repository.NewExportRepo(db)

	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := repo.CreateBatch(ctx, tx, repository.Batch{ID: "b1", CreatedAt: database.Now(), SortBy: "status", Direction: "asc"}); err != nil {
			return err
		}
		if err := repo.InsertOrder(ctx, tx, "b1", 0, orders.DisplayOrder{}); err != nil {
			return err
		}
		return repo.InsertOrder(ctx, tx, "b1", 0, orders.DisplayOrder{})
	})
	require.Error(t, err)

	batches, err := repo.ListBatches(ctx)
	require.NoError(t, err)
	require.Empty(t, batches)
}
