package table

import (
	"strconv"

	"github.com/jask/orderdesk/internal/orders"
)

// Format holds the presentation settings for cells.
type Format struct {
	DateLayout string
	Currency   string
}

// DefaultFormat renders dates as YYYY-MM-DD and values in dollars.
var DefaultFormat = Format{DateLayout: "2006-01-02", Currency: "$"}

// Cell renders the col field of o as the table shows it.
func Cell(o orders.DisplayOrder, col Column, f Format) string {
	switch col {
	case ColOrderNumber:
		return strconv.FormatInt(o.OrderNumber, 10)
	case ColCustomerName:
		return o.CustomerName
	case ColCustomerAddress:
		return o.CustomerAddress
	case ColOrderValue:
		return orders.FormatValue(o.OrderValue, f.Currency)
	case ColOrderDate:
		return orders.FormatDate(o.OrderDate, f.DateLayout)
	case ColShipDate:
		return orders.FormatDate(o.ShipDate, f.DateLayout)
	case ColStatus:
		return o.Status
	}
	return ""
}

// Row renders every column of o in header order.
func Row(o orders.DisplayOrder, f Format) []string {
	out := make([]string, len(headCells))
	for i, h := range headCells {
		out[i] = Cell(o, h.ID, f)
	}
	return out
}
