package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/config"
	"github.com/jask/orderdesk/internal/fetch"
	"github.com/jask/orderdesk/internal/orders"
	"github.com/jask/orderdesk/internal/service"
	"github.com/jask/orderdesk/internal/store"
	"github.com/jask/orderdesk/internal/table"
)

// App is the order table screen.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	orch    *fetch.Orchestrator
	exports *service.ExportService
	view    *table.View
	format  table.Format

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	filter  textinput.Model

	cursor    int // row index on the current page
	filtering bool
	status    string
	width     int
	height    int
}

// New builds the screen. exports may be nil, in which case export is reported as unavailable.
func New(ctx context.Context, cfg config.Config, st *store.Store, orch *fetch.Orchestrator, exports *service.ExportService, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	fi := textinput.New()
	fi.Prompt = "/ "
	fi.PromptStyle = filterPromptStyle
	fi.Placeholder = "filter orders"
	fi.CharLimit = 64

	return &App{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		store:   st,
		orch:    orch,
		exports: exports,
		view:    cfg.View(),
		format:  table.Format{DateLayout: cfg.UI.DateFormat, Currency: cfg.UI.CurrencySymbol},
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		filter:  fi,
	}
}

// Init issues the one request for orders. Requested is dispatched before the
// first frame; the outcome arrives later as a lifecycleMsg.
func (a *App) Init() tea.Cmd {
	ev, ok := a.orch.Begin()
	if !ok {
		return nil
	}
	a.store.Dispatch(ev)
	return tea.Batch(a.spinner.Tick, a.fetchOrders())
}

func (a *App) fetchOrders() tea.Cmd {
	return func() tea.Msg {
		return lifecycleMsg{Event: a.orch.Resolve(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case spinner.TickMsg:
		if !a.store.State().Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case lifecycleMsg:
		a.store.Dispatch(m.Event)
		st := a.store.State()
		switch {
		case st.Error != "":
			a.status = ""
		case st.Success != "":
			a.status = st.Success
		}
		a.clampCursor()
	case exportDoneMsg:
		a.status = fmt.Sprintf("exported %d orders (batch %s)", m.Result.Rows, shortID(m.Result.BatchID))
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.log.Warn("tui command failed", zap.Error(m.error))
		a.status = "error: " + m.Error()
	case tea.KeyMsg:
		if a.filtering {
			return a.handleFilterKey(m)
		}
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := a.store.State().Orders
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.cursor < len(a.page())-1 {
			a.cursor++
		}
	case key.Matches(m, a.keys.PrevPage):
		a.view.PrevPage()
		a.clampCursor()
	case key.Matches(m, a.keys.NextPage):
		a.view.NextPage(len(a.view.Sorted(all)))
		a.clampCursor()
	case key.Matches(m, a.keys.Toggle):
		if row, ok := a.current(); ok {
			a.view.Toggle(row.CustomerName)
		}
	case key.Matches(m, a.keys.ToggleAll):
		a.view.ToggleAll(all)
	case key.Matches(m, a.keys.SelectNone):
		a.view.SelectNone()
	case key.Matches(m, a.keys.Sort):
		i := int(m.String()[0] - '1')
		cols := table.Columns()
		if i >= 0 && i < len(cols) {
			a.view.RequestSort(cols[i].ID)
			a.cursor = 0
		}
	case key.Matches(m, a.keys.PageSize):
		a.view.CyclePageSize(a.cfg.Table.PageSizes)
		a.cursor = 0
	case key.Matches(m, a.keys.Filter):
		a.filtering = true
		a.filter.SetValue(a.view.Query)
		a.filter.CursorEnd()
		return a, a.filter.Focus()
	case key.Matches(m, a.keys.Export):
		return a, a.exportCmd()
	case key.Matches(m, a.keys.SaveView):
		return a, a.saveViewCmd()
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.filtering = false
		a.filter.Blur()
		a.filter.SetValue("")
		a.view.SetQuery("")
		a.cursor = 0
		return a, nil
	case tea.KeyEnter:
		a.filtering = false
		a.filter.Blur()
		return a, nil
	case tea.KeyCtrlC:
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(m)
	if q := strings.TrimSpace(a.filter.Value()); q != a.view.Query {
		a.view.SetQuery(q)
		a.cursor = 0
	}
	return a, cmd
}

func (a *App) View() string {
	st := a.store.State()
	parts := []string{a.renderToolbar(), "", a.renderTable()}

	if a.filtering {
		parts = append(parts, a.filter.View())
	} else if a.view.Query != "" {
		parts = append(parts, filterPromptStyle.Render("/ ")+a.view.Query)
	}
	if st.Error != "" {
		parts = append(parts, errorStyle.Render("Failed to load orders: "+st.Error))
	}
	if a.status != "" {
		style := statusStyle
		if strings.HasPrefix(a.status, "error: ") {
			style = errorStyle
		} else if strings.HasPrefix(a.status, "exported ") {
			style = successStyle
		}
		parts = append(parts, style.Render(a.status))
	}
	parts = append(parts, "", a.help.View(a.keys))
	return strings.Join(parts, "\n")
}

func (a *App) page() []orders.DisplayOrder {
	return a.view.Visible(a.store.State().Orders)
}

func (a *App) current() (orders.DisplayOrder, bool) {
	page := a.page()
	if a.cursor < 0 || a.cursor >= len(page) {
		return orders.DisplayOrder{}, false
	}
	return page[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.page())
	if a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
}

// commands
func (a *App) exportCmd() tea.Cmd {
	rows := a.view.SelectedRows(a.store.State().Orders)
	if len(rows) == 0 {
		return func() tea.Msg { return statusMsg("select rows to export") }
	}
	if a.exports == nil {
		return func() tea.Msg { return errMsg{errors.New("export not configured")} }
	}
	meta := service.ExportMeta{
		SourceURL: a.cfg.Source.URL,
		SortBy:    string(a.view.SortBy),
		Direction: a.view.Direction.String(),
		Query:     a.view.Query,
	}
	a.status = "exporting..."
	return func() tea.Msg {
		res, err := a.exports.Export(a.ctx, rows, meta)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{Result: res}
	}
}

func (a *App) saveViewCmd() tea.Cmd {
	a.cfg.Table.SortBy = string(a.view.SortBy)
	a.cfg.Table.Direction = a.view.Direction.String()
	a.cfg.Table.PageSize = a.view.PageSize
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("view saved as default")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// messages
type lifecycleMsg struct {
	Event store.Event
}

type statusMsg string

type errMsg struct{ error }

type exportDoneMsg struct {
	Result service.ExportResult
}
