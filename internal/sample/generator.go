// Package sample generates order feeds for tests and local runs.
package sample

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/orderdesk/internal/orders"
)

var (
	firstNames = []string{"Dakota", "John", "Ava", "Noah", "Mia", "Liam", "Zoe", "Omar"}
	lastNames  = []string{"Finley", "Doe", "Kim", "Patel", "Nguyen", "Garcia", "Rossi", "Haddad"}
	streets    = []string{"Broadway", "Main St", "Elm Ave", "Harbor Rd", "Pine Ct"}
	cities     = []struct{ city, state, zip string }{
		{"New York", "NY", "10001"},
		{"Austin", "TX", "78701"},
		{"Portland", "OR", "97201"},
		{"Denver", "CO", "80202"},
	}
	statuses = []string{"open", "shipped", "delivered", "cancelled"}
)

var epoch = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

// Orders returns n raw orders drawn from rng. Order numbers count up from
// 100001; names repeat, so selection-by-name collisions show up in large feeds.
func Orders(rng *rand.Rand, n int) []orders.RawOrder {
	out := make([]orders.RawOrder, n)
	for i := range out {
		loc := cities[rng.IntN(len(cities))]
		line2 := ""
		if rng.IntN(3) == 0 {
			line2 = fmt.Sprintf("Apt %d", rng.IntN(40)+1)
		}
		ordered := epoch.AddDate(0, 0, rng.IntN(365))
		out[i] = orders.RawOrder{
			Customer: &orders.RawCustomer{
				FirstName: firstNames[rng.IntN(len(firstNames))],
				LastName:  lastNames[rng.IntN(len(lastNames))],
				Address: &orders.RawAddress{
					Line1: fmt.Sprintf("%d %s", rng.IntN(900)+100, streets[rng.IntN(len(streets))]),
					Line2: line2,
					City:  loc.city,
					State: loc.state,
					Zip:   loc.zip,
				},
			},
			OrderDetails: &orders.RawOrderDetails{
				Date:  ordered.Format("2006-01-02"),
				Value: decimal.New(int64(rng.IntN(50000)+1), -2),
			},
			OrderNumber:     int64(100001 + i),
			ShippingDetails: &orders.RawShipping{Date: ordered.AddDate(0, 0, rng.IntN(7)).Format("2006-01-02")},
			Status:          statuses[rng.IntN(len(statuses))],
		}
	}
	return out
}

// Feed encodes n generated orders as the endpoint would serve them.
func Feed(seed uint64, n int) ([]byte, error) {
	return json.Marshal(Orders(rand.New(rand.NewPCG(seed, seed)), n))
}
