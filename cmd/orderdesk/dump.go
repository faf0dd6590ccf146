package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/orderdesk/internal/orders"
	"github.com/jask/orderdesk/internal/table"
)

var (
	dumpHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	dumpCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dumpNumStyle    = dumpCellStyle.Align(lipgloss.Right)
)

func newDumpCmd() *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Fetch the orders once and print one page of the table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			v, err := flags.apply(a.cfg)
			if err != nil {
				return err
			}
			st, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderDump(v, st.Orders, a.format()))
			return err
		},
	}
	flags.register(cmd, true)
	return cmd
}

// renderDump draws the current page of v followed by the pagination line.
func renderDump(v *table.View, all []orders.DisplayOrder, f table.Format) string {
	heads := table.Columns()
	labels := make([]string, len(heads))
	for i, h := range heads {
		labels[i] = h.Label
		if h.ID == v.SortBy {
			labels[i] += " " + arrow(v.Direction)
		}
	}

	sorted := v.Sorted(all)
	page := table.Paginate(sorted, v.Page, v.PageSize)
	rows := make([][]string, 0, len(page))
	for _, o := range page {
		rows = append(rows, table.Row(o, f))
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(labels...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return dumpHeaderStyle
			case heads[col].Numeric:
				return dumpNumStyle
			default:
				return dumpCellStyle
			}
		})

	from, to := table.PageBounds(len(sorted), v.Page, v.PageSize)
	var b strings.Builder
	b.WriteString(t.Render())
	fmt.Fprintf(&b, "\nRows per page: %d   %d-%d of %d", v.PageSize, from, to, len(sorted))
	return b.String()
}

func arrow(d table.Direction) string {
	if d == table.Descending {
		return "▼"
	}
	return "▲"
}
