package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/orderdesk/internal/fetch"
	"github.com/jask/orderdesk/internal/table"
)

// Config holds application configuration.
type Config struct {
	Source SourceConfig `mapstructure:"source"`
	Table  TableConfig  `mapstructure:"table"`
	UI     UIConfig     `mapstructure:"ui"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

// SourceConfig points at the orders feed.
type SourceConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TableConfig holds the initial table view.
type TableConfig struct {
	PageSize  int    `mapstructure:"page_size"`
	PageSizes []int  `mapstructure:"page_sizes"`
	SortBy    string `mapstructure:"sort_by"`
	Direction string `mapstructure:"direction"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat     string `mapstructure:"date_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// ExportConfig holds the sqlite export file location.
type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls the log file. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

func defaultDir(parts ...string) string {
	return filepath.Join(append([]string{os.Getenv("HOME")}, parts...)...)
}

func configPath() string {
	if p := os.Getenv("ORDERDESK_CONFIG"); p != "" {
		return p
	}
	return defaultDir(".config", "orderdesk", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix ORDERDESK_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("source.url", fetch.DefaultURL)
	v.SetDefault("source.timeout", 15*time.Second)
	v.SetDefault("table.page_size", table.DefaultPageSizes[0])
	v.SetDefault("table.page_sizes", table.DefaultPageSizes)
	v.SetDefault("table.sort_by", string(table.ColCustomerName))
	v.SetDefault("table.direction", table.Ascending.String())
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("export.path", defaultDir(".local", "share", "orderdesk", "exports.db"))
	v.SetDefault("log.path", defaultDir(".local", "state", "orderdesk", "orderdesk.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetConfigFile(configPath())

	v.SetEnvPrefix("ORDERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the table cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Source.URL) == "" {
		return errors.New("config: source.url is empty")
	}
	if _, err := table.ParseColumn(c.Table.SortBy); err != nil {
		return fmt.Errorf("config: table.sort_by: %w", err)
	}
	if _, err := table.ParseDirection(c.Table.Direction); err != nil {
		return fmt.Errorf("config: table.direction: %w", err)
	}
	if c.Table.PageSize <= 0 {
		return fmt.Errorf("config: table.page_size must be positive, got %d", c.Table.PageSize)
	}
	for _, s := range c.Table.PageSizes {
		if s <= 0 {
			return fmt.Errorf("config: table.page_sizes must be positive, got %d", s)
		}
	}
	return nil
}

// View builds the initial table view. Call after Validate.
func (c Config) View() *table.View {
	col, _ := table.ParseColumn(c.Table.SortBy)
	dir, _ := table.ParseDirection(c.Table.Direction)
	return table.NewView(col, dir, c.Table.PageSize)
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("source.url", cfg.Source.URL)
	v.Set("source.timeout", cfg.Source.Timeout.String())
	v.Set("table.page_size", cfg.Table.PageSize)
	v.Set("table.page_sizes", cfg.Table.PageSizes)
	v.Set("table.sort_by", cfg.Table.SortBy)
	v.Set("table.direction", cfg.Table.Direction)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("export.path", cfg.Export.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
