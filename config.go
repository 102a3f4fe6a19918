package dataview

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/dataview-lab/dataview-go/auth"
)

// ViewConfig describes the dataset view served by the HTTP API. It is the
// on-disk configuration users edit; LoadViewConfig reads it from JSON or
// YAML files.
type ViewConfig struct {
	// DatasetPath is the dataset file or URL to serve.
	// REQUIRED: MUST be non-empty, with a recognized extension
	// (.csv, .jsonl, .parquet).
	DatasetPath string `mapstructure:"dataset_path" json:"dataset_path" yaml:"dataset_path"`

	// IncludeColumns limits search results to the named columns.
	// OPTIONAL: empty means all columns.
	IncludeColumns []string `mapstructure:"include_columns" json:"include_columns,omitempty" yaml:"include_columns,omitempty"`

	// ExcludeColumns removes the named columns from search results.
	// Applied after IncludeColumns.
	// OPTIONAL.
	ExcludeColumns []string `mapstructure:"exclude_columns" json:"exclude_columns,omitempty" yaml:"exclude_columns,omitempty"`

	// HiddenColumns are served but marked hidden for viewers.
	// OPTIONAL.
	HiddenColumns []string `mapstructure:"hidden_columns" json:"hidden_columns,omitempty" yaml:"hidden_columns,omitempty"`

	// FacetColumns are offered for faceted filtering via /api/facets.
	// OPTIONAL.
	FacetColumns []string `mapstructure:"facet_columns" json:"facet_columns,omitempty" yaml:"facet_columns,omitempty"`

	// ImageColumns hold binary image payloads for preview rendering.
	// OPTIONAL.
	ImageColumns []string `mapstructure:"image_columns" json:"image_columns,omitempty" yaml:"image_columns,omitempty"`

	// GeometryColumns hold WKB geometry; values are served as GeoJSON.
	// OPTIONAL.
	GeometryColumns []string `mapstructure:"geometry_columns" json:"geometry_columns,omitempty" yaml:"geometry_columns,omitempty"`

	// IDColumn names the column holding stable row identifiers.
	// OPTIONAL.
	IDColumn string `mapstructure:"id_column" json:"id_column,omitempty" yaml:"id_column,omitempty"`

	// RowStart and RowEnd window the dataset: only rows in
	// [RowStart, RowEnd) are served. Zero RowEnd means no upper bound.
	// OPTIONAL.
	RowStart int `mapstructure:"row_start" json:"row_start,omitempty" yaml:"row_start,omitempty"`
	RowEnd   int `mapstructure:"row_end" json:"row_end,omitempty" yaml:"row_end,omitempty"`

	// Port for the HTTP server.
	// OPTIONAL: If 0, DefaultPort is used.
	Port int `mapstructure:"port" json:"port,omitempty" yaml:"port,omitempty"`
}

// ServerConfig contains configuration for the dataset view server.
type ServerConfig struct {
	// View describes the dataset and its column policy.
	// REQUIRED: View.DatasetPath MUST be non-empty.
	View ViewConfig

	// Auth provides authentication logic.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	// Note: If LogLevel is specified, a new logger will be created with that level.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: If nil, uses Info level.
	// Valid values: slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// CacheEntries bounds the query result cache.
	// OPTIONAL: If 0, a default bound is used. Negative disables caching.
	CacheEntries int

	// EnableMetrics exposes Prometheus metrics on GET /metrics.
	// OPTIONAL.
	EnableMetrics bool
}

// DefaultPort is the HTTP port used when ViewConfig.Port is 0.
const DefaultPort = 8000

// Standard errors returned by the dataview package.
var (
	// ErrUnauthorized indicates authentication failed.
	// Return this from Authenticator.Authenticate() for invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidConfig indicates ServerConfig validation failed.
	ErrInvalidConfig = errors.New("invalid server config")
)

// LoadViewConfig reads a ViewConfig from a JSON or YAML file.
func LoadViewConfig(path string) (*ViewConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read view config %s: %w", path, err)
	}
	var cfg ViewConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse view config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the view configuration for contradictions.
func (c *ViewConfig) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("%w: dataset_path is required", ErrInvalidConfig)
	}
	if c.RowStart < 0 || c.RowEnd < 0 {
		return fmt.Errorf("%w: row window bounds must be non-negative", ErrInvalidConfig)
	}
	if c.RowEnd > 0 && c.RowEnd <= c.RowStart {
		return fmt.Errorf("%w: row_end must be greater than row_start", ErrInvalidConfig)
	}
	if len(c.IncludeColumns) > 0 {
		included := make(map[string]bool, len(c.IncludeColumns))
		for _, name := range c.IncludeColumns {
			included[name] = true
		}
		for _, name := range c.ExcludeColumns {
			if included[name] {
				return fmt.Errorf("%w: column %q is both included and excluded", ErrInvalidConfig, name)
			}
		}
	}
	return nil
}

// visibleColumns applies the include/exclude policy to the requested
// columns. Empty requested means all allowed columns; an empty return
// with ok=false means the request named only excluded columns.
func (c *ViewConfig) visibleColumns(requested []string) ([]string, bool) {
	excluded := make(map[string]bool, len(c.ExcludeColumns))
	for _, name := range c.ExcludeColumns {
		excluded[name] = true
	}

	if len(requested) == 0 {
		if len(c.IncludeColumns) == 0 {
			return nil, true // SELECT *
		}
		cols := make([]string, 0, len(c.IncludeColumns))
		for _, name := range c.IncludeColumns {
			if !excluded[name] {
				cols = append(cols, name)
			}
		}
		return cols, len(cols) > 0
	}

	included := make(map[string]bool, len(c.IncludeColumns))
	for _, name := range c.IncludeColumns {
		included[name] = true
	}
	cols := make([]string, 0, len(requested))
	for _, name := range requested {
		if excluded[name] {
			continue
		}
		if len(included) > 0 && !included[name] {
			continue
		}
		cols = append(cols, name)
	}
	return cols, len(cols) > 0
}

// ExampleViewConfig returns a starter configuration for generate-config.
func ExampleViewConfig(datasetPath string) ViewConfig {
	return ViewConfig{
		DatasetPath:  datasetPath,
		FacetColumns: []string{},
		ImageColumns: []string{},
		Port:         DefaultPort,
	}
}

// selectClause renders a quoted column list, or "*" for all columns.
func selectClause(cols []string) string {
	if len(cols) == 0 {
		return "*"
	}
	quoted := make([]string, len(cols))
	for i, name := range cols {
		quoted[i] = `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ", ")
}
