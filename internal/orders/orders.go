package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// ErrMalformedOrder is returned when a nested block of a raw order is null.
var ErrMalformedOrder = errors.New("malformed order")

// RawOrder is the wire shape served by the orders endpoint.
type RawOrder struct {
	Customer        *RawCustomer     `json:"customer"`
	OrderDetails    *RawOrderDetails `json:"order_details"`
	OrderNumber     int64            `json:"order_number"`
	ShippingDetails *RawShipping     `json:"shipping_details"`
	Status          string           `json:"status"`
}

type RawCustomer struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Address   *RawAddress `json:"address"`
}

type RawAddress struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type RawOrderDetails struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type RawShipping struct {
	Date string `json:"date"`
}

// DisplayOrder is the flat record rendered by the table.
type DisplayOrder struct {
	OrderNumber     int64           `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	OrderValue      decimal.Decimal `json:"order_value"`
	OrderDate       string          `json:"order_date"`
	ShipDate        string          `json:"ship_date"`
	Status          string          `json:"status"`
}

// ErrNotOrderList is returned when the body is valid JSON but not a single array.
var ErrNotOrderList = errors.New("body is not a list of orders")

// DecodeRaw reads a JSON array of raw orders. The body must hold exactly one
// array: null and trailing data are rejected.
func DecodeRaw(r io.Reader) ([]RawOrder, error) {
	dec := json.NewDecoder(r)
	var raw []RawOrder
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode orders: %w", ErrNotOrderList)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode orders: trailing data: %w", ErrNotOrderList)
	}
	return raw, nil
}

// Normalize flattens raw orders one-to-one, preserving input order.
// Leaf fields are not validated; empty values end up in the concatenated strings as-is.
func Normalize(raw []RawOrder) ([]DisplayOrder, error) {
	out := make([]DisplayOrder, 0, len(raw))
	for i, r := range raw {
		d, err := normalizeOne(r)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func normalizeOne(r RawOrder) (DisplayOrder, error) {
	switch {
	case r.Customer == nil:
		return DisplayOrder{}, fmt.Errorf("%w: customer is null", ErrMalformedOrder)
	case r.Customer.Address == nil:
		return DisplayOrder{}, fmt.Errorf("%w: customer.address is null", ErrMalformedOrder)
	case r.OrderDetails == nil:
		return DisplayOrder{}, fmt.Errorf("%w: order_details is null", ErrMalformedOrder)
	case r.ShippingDetails == nil:
		return DisplayOrder{}, fmt.Errorf("%w: shipping_details is null", ErrMalformedOrder)
	}
	c, a := r.Customer, r.Customer.Address
	return DisplayOrder{
		OrderNumber:     r.OrderNumber,
		CustomerName:    c.FirstName + c.LastName,
		CustomerAddress: a.Line1 + " " + a.Line2 + " " + a.City + " " + a.State + " " + a.Zip,
		OrderValue:      r.OrderDetails.Value,
		OrderDate:       r.OrderDetails.Date,
		ShipDate:        r.ShippingDetails.Date,
		Status:          r.Status,
	}, nil
}
