package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterEmptyQueryKeepsEverything(t *testing.T) {
	rows := fixtureOrders()
	require.Equal(t, rows, Filter(rows, "  "))
}

func TestFilterSubstring(t *testing.T) {
	rows := fixtureOrders()
	cases := map[string][]string{
		"shipped": {"DakotaFinley"},
		"BOSTON":  {"John Doe"},
		"1000":    {"John Doe", "DakotaFinley"},
		"137.11":  {"John Doe"},
		"2021":    {"John Doe", "DakotaFinley"},
		"zzz":     {},
	}
	for q, want := range cases {
		require.Equal(t, want, names(Filter(rows, q)), q)
	}
}

func TestFilterToleratesTypos(t *testing.T) {
	rows := fixtureOrders()
	// one edit away from "john", allowed for a four rune query
	require.Equal(t, []string{"John Doe"}, names(Filter(rows, "jahn")))
	// short queries get no edit budget
	require.Empty(t, Filter(rows, "jo3"))
}
