package orders

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvalidDate is what FormatDate renders for input it cannot parse.
const InvalidDate = "Invalid Date"

// JavaScript Date.toString() without the trailing "(zone name)".
const jsDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	jsDateLayout,
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate accepts the date shapes seen in the orders feed.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, " ("); i > 0 && strings.HasSuffix(s, ")") {
		s = s[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders raw with layout, in the offset the date was written with.
func FormatDate(raw, layout string) string {
	t, ok := ParseDate(raw)
	if !ok {
		return InvalidDate
	}
	return t.Format(layout)
}

// FormatValue renders a money value the way the table shows it: symbol then the
// shortest decimal form ("$137.11", "$100").
func FormatValue(v decimal.Decimal, symbol string) string {
	return symbol + v.String()
}
