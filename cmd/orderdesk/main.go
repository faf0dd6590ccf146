package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/orderdesk/internal/config"
	"github.com/jask/orderdesk/internal/database"
	"github.com/jask/orderdesk/internal/fetch"
	"github.com/jask/orderdesk/internal/logging"
	"github.com/jask/orderdesk/internal/service"
	"github.com/jask/orderdesk/internal/store"
	"github.com/jask/orderdesk/internal/table"
	"github.com/jask/orderdesk/internal/tui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app is what every command needs after start-up.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) orchestrator() *fetch.Orchestrator {
	return fetch.New(fetch.NewHTTPSource(a.cfg.Source.URL, a.cfg.Source.Timeout), a.log)
}

// load runs the one request and returns the resulting state.
func (a *app) load(ctx context.Context) (store.OrdersState, error) {
	st := store.New(a.log)
	a.orchestrator().Run(ctx, st)
	s := st.State()
	if s.Error != "" {
		return s, fmt.Errorf("fetch orders: %s", s.Error)
	}
	return s, nil
}

func (a *app) openExports() (*sql.DB, error) {
	db, err := database.OpenAndMigrate(a.cfg.Export.Path)
	if err != nil {
		return nil, fmt.Errorf("open export db: %w", err)
	}
	return db, nil
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "orderdesk",
		Short:        "Browse, sort and export the orders feed",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv("ORDERDESK_CONFIG", configPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/orderdesk/config.toml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "browse",
			Short: "Open the order table (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runBrowse(cmd.Context())
			},
		},
		newDumpCmd(),
		newExportCmd(),
		newSampleCmd(),
	)
	return root
}

func runBrowse(ctx context.Context) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()

	db, err := a.openExports()
	if err != nil {
		return err
	}
	defer db.Close()

	a.log.Info("starting", zap.String("source", a.cfg.Source.URL), zap.String("exports", a.cfg.Export.Path))
	model := tui.New(ctx, a.cfg, store.New(a.log), a.orchestrator(), service.NewExportService(db, a.log), a.log)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// viewFlags override the configured initial view.
type viewFlags struct {
	sort      string
	direction string
	page      int
	pageSize  int
	filter    string
}

func (f *viewFlags) register(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort column (order_number, customer_name, customer_address, order_value, order_date, ship_date, status)")
	cmd.Flags().StringVar(&f.direction, "direction", "", "sort direction (asc or desc)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "only rows matching this text")
	if paging {
		cmd.Flags().IntVar(&f.page, "page", 0, "zero-based page index")
		cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	}
}

func (f *viewFlags) apply(cfg config.Config) (*table.View, error) {
	v := cfg.View()
	if f.sort != "" {
		col, err := table.ParseColumn(f.sort)
		if err != nil {
			return nil, err
		}
		v.SortBy = col
	}
	if f.direction != "" {
		dir, err := table.ParseDirection(f.direction)
		if err != nil {
			return nil, err
		}
		v.Direction = dir
	}
	if f.pageSize < 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", f.pageSize)
	}
	if f.pageSize > 0 {
		v.SetPageSize(f.pageSize)
	}
	v.SetQuery(f.filter)
	v.SetPage(f.page)
	return v, nil
}

func (a *app) format() table.Format {
	return table.Format{DateLayout: a.cfg.UI.DateFormat, Currency: a.cfg.UI.CurrencySymbol}
}
