// Package table turns the flat order list into the rows a table shows: it owns
// sorting, pagination, filtering and the row selection set.
package table

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jask/orderdesk/internal/orders"
)

// Column names a DisplayOrder field the table can sort on.
type Column string

const (
	ColOrderNumber     Column = "order_number"
	ColCustomerName    Column = "customer_name"
	ColCustomerAddress Column = "customer_address"
	ColOrderValue      Column = "order_value"
	ColOrderDate       Column = "order_date"
	ColShipDate        Column = "ship_date"
	ColStatus          Column = "status"
)

// HeadCell describes one header of the table.
type HeadCell struct {
	ID      Column
	Label   string
	Numeric bool
}

var headCells = []HeadCell{
	{ID: ColOrderNumber, Label: "Order Number"},
	{ID: ColCustomerName, Label: "Customer Name"},
	{ID: ColCustomerAddress, Label: "Customer Address"},
	{ID: ColOrderValue, Label: "Order Value", Numeric: true},
	{ID: ColOrderDate, Label: "Order Date", Numeric: true},
	{ID: ColShipDate, Label: "Ship Date"},
	{ID: ColStatus, Label: "Status"},
}

// Columns returns the table headers in display order.
func Columns() []HeadCell {
	return slices.Clone(headCells)
}

// ParseColumn accepts a DisplayOrder field name.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	for _, h := range headCells {
		if h.ID == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q", s)
}

// Direction is the sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown direction %q", s)
}

// Compare orders two rows; negative means a is shown before b.
type Compare func(a, b orders.DisplayOrder) int

// descending is -1 when b < a, 1 when b > a, else 0, on col's native ordering.
// Strings compare by Unicode code point, so astral characters sort after U+E000-U+FFFF.
func descending(a, b orders.DisplayOrder, col Column) int {
	switch col {
	case ColOrderNumber:
		return cmp.Compare(b.OrderNumber, a.OrderNumber)
	case ColCustomerName:
		return strings.Compare(b.CustomerName, a.CustomerName)
	case ColCustomerAddress:
		return strings.Compare(b.CustomerAddress, a.CustomerAddress)
	case ColOrderValue:
		return b.OrderValue.Cmp(a.OrderValue)
	case ColOrderDate:
		return strings.Compare(b.OrderDate, a.OrderDate)
	case ColShipDate:
		return strings.Compare(b.ShipDate, a.ShipDate)
	case ColStatus:
		return strings.Compare(b.Status, a.Status)
	}
	return 0
}

// Comparator returns the row ordering for col. Ascending is the negation of the
// descending comparator, not an independent one.
func Comparator(dir Direction, col Column) Compare {
	if dir == Descending {
		return func(a, b orders.DisplayOrder) int { return descending(a, b, col) }
	}
	return func(a, b orders.DisplayOrder) int { return -descending(a, b, col) }
}

type indexed struct {
	row   orders.DisplayOrder
	index int
}

// StableSort returns rows ordered by c. Rows that compare equal keep their input
// order whatever the direction. rows is not modified.
func StableSort(rows []orders.DisplayOrder, c Compare) []orders.DisplayOrder {
	decorated := make([]indexed, len(rows))
	for i, r := range rows {
		decorated[i] = indexed{row: r, index: i}
	}
	slices.SortFunc(decorated, func(x, y indexed) int {
		if o := c(x.row, y.row); o != 0 {
			return o
		}
		return x.index - y.index
	})
	out := make([]orders.DisplayOrder, len(decorated))
	for i, d := range decorated {
		out[i] = d.row
	}
	return out
}
