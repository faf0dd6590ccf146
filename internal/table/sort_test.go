package table

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/orderdesk/internal/orders"
)

// ---------------------------------------------------------------------------
// Test data helpers
// ---------------------------------------------------------------------------

func fixtureOrders() []orders.DisplayOrder {
	return []orders.DisplayOrder{
		{
			CustomerAddress: "123 Main Street  Boston MA 02215",
			CustomerName:    "John Doe",
			OrderDate:       "Mon Feb 01 2021 00:00:00 GMT+0000 (GMT)",
			OrderNumber:     100000,
			OrderValue:      decimal.RequireFromString("137.11"),
			ShipDate:        "Wed Feb 03 2021 00:00:00 GMT+0000 (GMT)",
			Status:          "open",
		},
		{
			CustomerAddress: "555 Broadway  New York NY 12345",
			CustomerName:    "DakotaFinley",
			OrderDate:       "Sun Mar 01 2021 00:00:00 GMT+0000 (GMT)",
			OrderNumber:     100005,
			OrderValue:      decimal.RequireFromString("117.12"),
			ShipDate:        "Tue Mar 03 2021 00:00:00 GMT+0000 (GMT)",
			Status:          "shipped",
		},
	}
}

// randomOrders draws from small value pools so equal keys are common.
func randomOrders(r *rand.Rand, n int) []orders.DisplayOrder {
	names := []string{"Ann", "Bob", "bob", "Cy", "Dee"}
	statuses := []string{"open", "shipped", "cancelled"}
	out := make([]orders.DisplayOrder, n)
	for i := range out {
		out[i] = orders.DisplayOrder{
			// OrderNumber doubles as a unique tag for tracking positions.
			OrderNumber:     int64(i),
			CustomerName:    names[r.IntN(len(names))],
			CustomerAddress: fmt.Sprintf("%d Main St", r.IntN(4)),
			OrderValue:      decimal.New(int64(r.IntN(5)*25), -2),
			OrderDate:       fmt.Sprintf("2021-0%d-01", 1+r.IntN(3)),
			ShipDate:        fmt.Sprintf("2021-0%d-03", 1+r.IntN(3)),
			Status:          statuses[r.IntN(len(statuses))],
		}
	}
	return out
}

func tags(rows []orders.DisplayOrder) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.OrderNumber
	}
	return out
}

func names(rows []orders.DisplayOrder) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.CustomerName
	}
	return out
}

func allColumns() []Column {
	var out []Column
	for _, h := range Columns() {
		out = append(out, h.ID)
	}
	return out
}

// ---------------------------------------------------------------------------
// Comparator
// ---------------------------------------------------------------------------

func TestComparatorAscendingIsNegatedDescending(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	rows := randomOrders(r, 40)
	for _, col := range allColumns() {
		asc, desc := Comparator(Ascending, col), Comparator(Descending, col)
		for _, a := range rows {
			for _, b := range rows {
				require.Equal(t, -desc(a, b), asc(a, b), "column %s", col)
			}
		}
	}
}

func TestComparatorDescendingSigns(t *testing.T) {
	rows := fixtureOrders()
	john, dakota := rows[0], rows[1]
	desc := Comparator(Descending, ColOrderValue)
	require.Equal(t, -1, desc(john, dakota)) // 137.11 before 117.12
	require.Equal(t, 1, desc(dakota, john))
	require.Equal(t, 0, desc(john, john))
}

func TestComparatorStringsAreCaseSensitive(t *testing.T) {
	lower := orders.DisplayOrder{CustomerName: "alice"}
	upper := orders.DisplayOrder{CustomerName: "Zed"}
	// 'Z' (0x5A) sorts before 'a' (0x61).
	require.Positive(t, Comparator(Ascending, ColCustomerName)(lower, upper))
}

func TestComparatorStringsUseCodePointOrder(t *testing.T) {
	fullwidth := orders.DisplayOrder{CustomerName: "\uFF21"}
	emoji := orders.DisplayOrder{CustomerName: "\U0001F600"}
	asc := Comparator(Ascending, ColCustomerName)
	require.Negative(t, asc(fullwidth, emoji))
	require.Positive(t, asc(emoji, fullwidth))
}

func TestComparatorUnknownColumnTies(t *testing.T) {
	rows := fixtureOrders()
	require.Zero(t, Comparator(Ascending, Column("nope"))(rows[0], rows[1]))
}

func TestParseColumnAndDirection(t *testing.T) {
	c, err := ParseColumn(" Order_Value ")
	require.NoError(t, err)
	require.Equal(t, ColOrderValue, c)
	_, err = ParseColumn("price")
	require.Error(t, err)

	d, err := ParseDirection("DESC")
	require.NoError(t, err)
	require.Equal(t, Descending, d)
	require.Equal(t, "desc", d.String())
	require.Equal(t, "asc", Ascending.String())
	_, err = ParseDirection("up")
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// StableSort properties
// ---------------------------------------------------------------------------

func TestStableSortIsPermutation(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 20; trial++ {
		rows := randomOrders(r, r.IntN(30))
		for _, col := range allColumns() {
			for _, dir := range []Direction{Ascending, Descending} {
				got := tags(StableSort(rows, Comparator(dir, col)))
				want := tags(rows)
				slices.Sort(got)
				require.Equal(t, want, got, "column %s %s", col, dir)
			}
		}
	}
}

func TestStableSortKeepsInputOrderForTies(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	rows := randomOrders(r, 60)
	for _, col := range allColumns() {
		for _, dir := range []Direction{Ascending, Descending} {
			c := Comparator(dir, col)
			got := StableSort(rows, c)
			for i := 1; i < len(got); i++ {
				o := c(got[i-1], got[i])
				require.LessOrEqual(t, o, 0, "column %s %s out of order at %d", col, dir, i)
				if o == 0 {
					// tags are input positions
					require.Less(t, got[i-1].OrderNumber, got[i].OrderNumber, "column %s %s unstable at %d", col, dir, i)
				}
			}
		}
	}
}

func TestStableSortIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	rows := randomOrders(r, 50)
	for _, col := range allColumns() {
		for _, dir := range []Direction{Ascending, Descending} {
			c := Comparator(dir, col)
			once := StableSort(rows, c)
			require.Equal(t, once, StableSort(once, c))
		}
	}
}

func TestStableSortDoesNotMutateInput(t *testing.T) {
	rows := fixtureOrders()
	before := slices.Clone(rows)
	_ = StableSort(rows, Comparator(Ascending, ColCustomerName))
	require.Equal(t, before, rows)
}

func TestStableSortTieBreakIgnoresDirection(t *testing.T) {
	rows := []orders.DisplayOrder{
		{OrderNumber: 1, Status: "open"},
		{OrderNumber: 2, Status: "shipped"},
		{OrderNumber: 3, Status: "open"},
	}
	require.Equal(t, []int64{1, 3, 2}, tags(StableSort(rows, Comparator(Ascending, ColStatus))))
	require.Equal(t, []int64{2, 1, 3}, tags(StableSort(rows, Comparator(Descending, ColStatus))))
}

func TestSortFixtureByCustomerName(t *testing.T) {
	got := StableSort(fixtureOrders(), Comparator(Ascending, ColCustomerName))
	require.Equal(t, []string{"DakotaFinley", "John Doe"}, names(got))
}

func TestSortFixtureByOrderValue(t *testing.T) {
	got := StableSort(fixtureOrders(), Comparator(Ascending, ColOrderValue))
	require.Equal(t, "117.12", got[0].OrderValue.String())
	require.Equal(t, "137.11", got[1].OrderValue.String())
}

func TestSortOrderValueIsNumeric(t *testing.T) {
	rows := []orders.DisplayOrder{
		{OrderNumber: 1, OrderValue: decimal.RequireFromString("9.5")},
		{OrderNumber: 2, OrderValue: decimal.RequireFromString("10")},
		{OrderNumber: 3, OrderValue: decimal.RequireFromString("100.01")},
	}
	require.Equal(t, []int64{3, 2, 1}, tags(StableSort(rows, Comparator(Descending, ColOrderValue))))
}
