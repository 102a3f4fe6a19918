package query

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	duckdb "github.com/duckdb/duckdb-go/v2"

	"github.com/dataview-lab/dataview-go/result"
)

// ViewName is the name the dataset is registered under; search SQL selects
// from it.
const ViewName = "dataset"

// ErrNotOpen indicates Query was called on a closed executor.
var ErrNotOpen = errors.New("executor is closed")

// Config configures an Executor.
type Config struct {
	// DatasetPath is the file or URL of the dataset to register.
	// REQUIRED: MUST be non-empty, with a recognized extension.
	DatasetPath string

	// GeometryColumns lists top-level columns holding WKB geometry.
	// Their values are converted to GeoJSON-shaped mappings.
	// OPTIONAL: nil means no geometry conversion.
	GeometryColumns []string

	// RowStart and RowEnd window the dataset before it is registered:
	// only rows in [RowStart, RowEnd) are visible to queries.
	// OPTIONAL: zero RowEnd means no upper bound.
	RowStart int
	RowEnd   int

	// Logger for query logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// Result is one query result set: the column schema plus JSON-shaped rows.
// This is the wire shape the viewer client consumes.
type Result struct {
	Schema []result.SchemaField `json:"schema" msgpack:"schema"`
	Rows   []result.Row         `json:"rows" msgpack:"rows"`
}

// Executor runs SQL over a single registered dataset using an in-memory
// DuckDB instance. Results are produced through the driver's Arrow
// interface so that schema type text matches the decode engine's grammar.
//
// Safe for concurrent use; database/sql pools one connection per query.
type Executor struct {
	db       *sql.DB
	logger   *slog.Logger
	geometry map[string]bool

	name string
	hash string
}

// NewExecutor opens an in-memory DuckDB and registers a view over the
// dataset named by cfg.DatasetPath.
func NewExecutor(ctx context.Context, cfg Config) (*Executor, error) {
	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("dataset path is required")
	}
	format, err := InferFormat(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	hash, err := DatasetHash(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	if _, err := db.ExecContext(ctx, viewSQL(cfg.DatasetPath, format, cfg.RowStart, cfg.RowEnd)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register dataset %s: %w", cfg.DatasetPath, err)
	}

	geometry := make(map[string]bool, len(cfg.GeometryColumns))
	for _, name := range cfg.GeometryColumns {
		geometry[name] = true
	}

	logger.Info("dataset registered",
		"path", cfg.DatasetPath,
		"format", format,
		"hash", hash,
	)

	return &Executor{
		db:       db,
		logger:   logger,
		geometry: geometry,
		name:     DatasetName(cfg.DatasetPath),
		hash:     hash,
	}, nil
}

// Name returns the dataset's display name.
func (e *Executor) Name() string { return e.name }

// Hash returns the dataset's stable identifier.
func (e *Executor) Hash() string { return e.hash }

// Query executes sqlText and collects the full result set.
func (e *Executor) Query(ctx context.Context, sqlText string) (*Result, error) {
	if e.db == nil {
		return nil, ErrNotOpen
	}

	conn, err := e.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	res := &Result{Rows: []result.Row{}}
	err = conn.Raw(func(driverConn any) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection type %T", driverConn)
		}
		ar, err := duckdb.NewArrowFromConn(dc)
		if err != nil {
			return fmt.Errorf("failed to create arrow interface: %w", err)
		}

		reader, err := ar.QueryContext(ctx, sqlText)
		if err != nil {
			return err
		}
		defer reader.Release()

		res.Schema = SchemaFields(reader.Schema())
		for reader.Next() {
			res.Rows = AppendRows(res.Rows, reader.RecordBatch())
		}
		return reader.Err()
	})
	if err != nil {
		e.logger.Error("query failed", "sql", sqlText, "error", err)
		return nil, err
	}

	if len(e.geometry) > 0 {
		convertGeometry(res, e.geometry)
	}

	e.logger.Debug("query executed",
		"sql", sqlText,
		"columns", len(res.Schema),
		"rows", len(res.Rows),
	)
	return res, nil
}

// Schema returns the dataset's column schema without fetching rows.
func (e *Executor) Schema(ctx context.Context) ([]result.SchemaField, error) {
	res, err := e.Query(ctx, "SELECT * FROM "+ViewName+" LIMIT 0")
	if err != nil {
		return nil, err
	}
	return res.Schema, nil
}

// Close releases the underlying database.
func (e *Executor) Close() error {
	if e.db == nil {
		return nil
	}
	db := e.db
	e.db = nil
	return db.Close()
}

// viewSQL builds the CREATE VIEW statement for the dataset's format,
// applying the configured row window.
func viewSQL(datasetPath string, format DatasetFormat, rowStart, rowEnd int) string {
	var read string
	switch format {
	case FormatCSV:
		read = "read_csv_auto"
	case FormatJSONL:
		read = "read_json_auto"
	default:
		read = "read_parquet"
	}
	stmt := fmt.Sprintf("CREATE OR REPLACE VIEW %s AS SELECT * FROM %s('%s')",
		ViewName, read, strings.ReplaceAll(datasetPath, "'", "''"))
	if rowEnd > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", rowEnd-rowStart)
	}
	if rowStart > 0 {
		stmt += fmt.Sprintf(" OFFSET %d", rowStart)
	}
	return stmt
}
