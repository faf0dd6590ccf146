package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch is one export run.
type Batch struct {
	ID        string
	CreatedAt time.Time
	SourceURL string
	SortBy    string
	Direction string
	Query     string
	RowCount  int
}

// ExportedOrder is a display row as written by an export, at its display position.
type ExportedOrder struct {
	BatchID         string
	Position        int
	OrderNumber     int64
	CustomerName    string
	CustomerAddress string
	OrderValue      decimal.Decimal
	OrderDate       string
	ShipDate        string
	Status          string
}
