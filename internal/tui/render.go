package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/orderdesk/internal/orders"
	"github.com/jask/orderdesk/internal/table"
)

// column layout; widths exclude the two-space gutter.
type layoutCol struct {
	head  table.HeadCell
	width int
}

const (
	checkWidth   = 3
	gutter       = "  "
	minAddrWidth = 16
)

var baseWidths = map[table.Column]int{
	table.ColOrderNumber:     16,
	table.ColCustomerName:    20,
	table.ColCustomerAddress: 36,
	table.ColOrderValue:      15,
	table.ColOrderDate:       14,
	table.ColShipDate:        13,
	table.ColStatus:          10,
}

// layout gives the address column whatever width is left over.
func layout(width int) []layoutCol {
	heads := table.Columns()
	cols := make([]layoutCol, len(heads))
	fixed := 2 + checkWidth
	for i, h := range heads {
		cols[i] = layoutCol{head: h, width: baseWidths[h.ID]}
		if h.ID != table.ColCustomerAddress {
			fixed += len(gutter) + cols[i].width
		}
	}
	if width > 0 {
		for i := range cols {
			if cols[i].head.ID == table.ColCustomerAddress {
				cols[i].width = max(width-fixed-len(gutter), minAddrWidth)
			}
		}
	}
	return cols
}

func checkbox(s table.CheckState) string {
	switch s {
	case table.CheckAll:
		return "[x]"
	case table.CheckSome:
		return "[-]"
	default:
		return "[ ]"
	}
}

func sortArrow(d table.Direction) string {
	if d == table.Descending {
		return "▼"
	}
	return "▲"
}

func (a *App) renderToolbar() string {
	n := a.view.SelectedCount()
	style := toolbarStyle
	text := "Orders"
	if n > 0 {
		style = toolbarSelectedStyle
		text = fmt.Sprintf("%d selected", n)
	}
	if a.width > 0 {
		style = style.Width(a.width)
	}
	return style.Render(text)
}

func (a *App) renderHeader(all []orders.DisplayOrder, cols []layoutCol) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(tableHeaderStyle.Render(checkbox(a.view.CheckState(all))))
	for i, c := range cols {
		label := fmt.Sprintf("%d %s", i+1, c.head.Label)
		style := tableHeaderStyle
		if c.head.ID == a.view.SortBy {
			label += " " + sortArrow(a.view.Direction)
			style = activeHeaderStyle
		}
		b.WriteString(gutter)
		b.WriteString(style.Render(align(label, c.width, c.head.Numeric)))
	}
	return b.String()
}

func (a *App) renderRows(page []orders.DisplayOrder, cols []layoutCol) []string {
	lines := make([]string, 0, len(page))
	for i, o := range page {
		selected := a.view.IsSelected(o.CustomerName)
		mark := table.CheckNone
		if selected {
			mark = table.CheckAll
		}
		var b strings.Builder
		b.WriteString(checkbox(mark))
		for _, c := range cols {
			b.WriteString(gutter)
			b.WriteString(align(table.Cell(o, c.head.ID, a.format), c.width, c.head.Numeric))
		}
		line := b.String()
		if selected {
			line = selectedStyle.Render(line)
		}
		prefix := "  "
		if i == a.cursor {
			prefix = cursorStyle.Render("> ")
		}
		lines = append(lines, prefix+line)
	}
	return lines
}

func (a *App) renderPagination(total int) string {
	from, to := table.PageBounds(total, a.view.Page, a.view.PageSize)
	return paginationStyle.Render(fmt.Sprintf("Rows per page: %d   %d-%d of %d", a.view.PageSize, from, to, total))
}

func (a *App) renderTable() string {
	st := a.store.State()
	cols := layout(a.width)
	sorted := a.view.Sorted(st.Orders)
	page := table.Paginate(sorted, a.view.Page, a.view.PageSize)

	lines := []string{a.renderHeader(st.Orders, cols)}
	lines = append(lines, separatorStyle.Render(strings.Repeat("─", tableWidth(cols))))
	switch {
	case st.Loading && len(st.Orders) == 0:
		lines = append(lines, "  "+a.spinner.View()+" Loading orders...")
	case len(page) == 0:
		msg := "No orders"
		if a.view.Query != "" {
			msg = fmt.Sprintf("No orders match %q", a.view.Query)
		}
		lines = append(lines, "  "+emptyStyle.Render(msg))
	default:
		lines = append(lines, a.renderRows(page, cols)...)
	}
	lines = append(lines, "", a.renderPagination(len(sorted)))
	return strings.Join(lines, "\n")
}

func tableWidth(cols []layoutCol) int {
	w := 2 + checkWidth
	for _, c := range cols {
		w += len(gutter) + c.width
	}
	return w
}

// align truncates s to width cells and pads it, on the left for numeric columns.
func align(s string, width int, right bool) string {
	s = ansi.Truncate(s, width, "…")
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
