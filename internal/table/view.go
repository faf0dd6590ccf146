package table

import (
	"slices"

	"github.com/jask/orderdesk/internal/orders"
)

// CheckState is the state of the select-all checkbox.
type CheckState int

const (
	CheckNone CheckState = iota
	CheckSome
	CheckAll
)

// View is the transient state of one table: sort, page, filter and selection.
// Rows are identified by customer name, which is not guaranteed unique: two
// orders with the same name select and deselect together.
type View struct {
	SortBy    Column
	Direction Direction
	Page      int
	PageSize  int
	Query     string

	selected map[string]struct{}
}

// NewView returns a view sorted by sortBy in dir, showing pageSize rows per page.
func NewView(sortBy Column, dir Direction, pageSize int) *View {
	return &View{
		SortBy:    sortBy,
		Direction: dir,
		PageSize:  pageSize,
		selected:  map[string]struct{}{},
	}
}

// DefaultView is the initial table: customer name ascending, five rows per page.
func DefaultView() *View {
	return NewView(ColCustomerName, Ascending, DefaultPageSizes[0])
}

// RequestSort handles a click on col's header.
func (v *View) RequestSort(col Column) {
	if v.SortBy == col && v.Direction == Ascending {
		v.Direction = Descending
	} else {
		v.Direction = Ascending
	}
	v.SortBy = col
}

func (v *View) SetPage(p int) {
	v.Page = max(p, 0)
}

// NextPage advances one page unless the current page is the last for total rows.
func (v *View) NextPage(total int) {
	if v.Page < PageCount(total, v.PageSize)-1 {
		v.Page++
	}
}

func (v *View) PrevPage() {
	if v.Page > 0 {
		v.Page--
	}
}

// SetPageSize changes rows per page and goes back to the first page.
func (v *View) SetPageSize(size int) {
	v.PageSize = size
	v.Page = 0
}

// CyclePageSize switches to the option after the current page size.
func (v *View) CyclePageSize(options []int) {
	if len(options) == 0 {
		return
	}
	next := options[0]
	if i := slices.Index(options, v.PageSize); i >= 0 {
		next = options[(i+1)%len(options)]
	}
	v.SetPageSize(next)
}

// SetQuery changes the filter and goes back to the first page.
func (v *View) SetQuery(q string) {
	v.Query = q
	v.Page = 0
}

// Sorted returns rows filtered by the query and sorted by the active column.
func (v *View) Sorted(rows []orders.DisplayOrder) []orders.DisplayOrder {
	return StableSort(Filter(rows, v.Query), Comparator(v.Direction, v.SortBy))
}

// Visible returns the rows on the current page, in display order.
func (v *View) Visible(rows []orders.DisplayOrder) []orders.DisplayOrder {
	return Paginate(v.Sorted(rows), v.Page, v.PageSize)
}

// Toggle adds name to the selection, or removes it if present.
func (v *View) Toggle(name string) {
	v.ensure()
	if _, ok := v.selected[name]; ok {
		delete(v.selected, name)
		return
	}
	v.selected[name] = struct{}{}
}

// SelectAll selects every known order, not just the visible page.
func (v *View) SelectAll(rows []orders.DisplayOrder) {
	v.ensure()
	for _, r := range rows {
		v.selected[r.CustomerName] = struct{}{}
	}
}

func (v *View) SelectNone() {
	v.selected = map[string]struct{}{}
}

// ToggleAll behaves like the header checkbox: clears the selection when every
// row is selected, selects everything otherwise.
func (v *View) ToggleAll(rows []orders.DisplayOrder) {
	if v.CheckState(rows) == CheckAll {
		v.SelectNone()
		return
	}
	v.SelectAll(rows)
}

func (v *View) IsSelected(name string) bool {
	_, ok := v.selected[name]
	return ok
}

func (v *View) SelectedCount() int {
	return len(v.selected)
}

// Selected returns the selected names in lexical order.
func (v *View) Selected() []string {
	out := make([]string, 0, len(v.selected))
	for name := range v.selected {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// SelectedRows returns the rows whose name is selected, in display order.
func (v *View) SelectedRows(rows []orders.DisplayOrder) []orders.DisplayOrder {
	var out []orders.DisplayOrder
	for _, r := range StableSort(rows, Comparator(v.Direction, v.SortBy)) {
		if v.IsSelected(r.CustomerName) {
			out = append(out, r)
		}
	}
	return out
}

// CheckState reports how much of rows is selected.
func (v *View) CheckState(rows []orders.DisplayOrder) CheckState {
	n := 0
	for _, r := range rows {
		if v.IsSelected(r.CustomerName) {
			n++
		}
	}
	switch {
	case n == 0:
		return CheckNone
	case n == len(rows):
		return CheckAll
	default:
		return CheckSome
	}
}

func (v *View) ensure() {
	if v.selected == nil {
		v.selected = map[string]struct{}{}
	}
}
