package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/barafael/page-graph/internal/model"
)

// HistoryDB provides SQLite-based storage for audit run summaries.
//
// Design decision: We use a single database file for all sites rather than
// one file per site. This keeps run listing and comparison queries simple
// and makes backup a single-file operation.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "page-graph.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Run summaries store one row per completed audit
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site TEXT NOT NULL,
		directory TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		page_count INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		orphans TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_site ON runs(site);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores the summary of a completed audit and returns its run ID.
// Only counts and the orphan list are persisted; the graph itself is
// rebuilt from the corpus on every audit.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.AuditReport) (int64, error) {
	orphans := report.Orphans
	if orphans == nil {
		orphans = []model.PageID{}
	}
	orphansJSON, err := json.Marshal(orphans)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize orphans: %w", err)
	}

	query := `
	INSERT INTO runs (site, directory, page_count, node_count, edge_count, orphans)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.Site,
		report.Directory,
		report.PageCount(),
		report.NodeCount,
		report.EdgeCount,
		string(orphansJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// GetRun retrieves a run summary by its database ID.
// Returns nil without error when no such run exists.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*model.RunRecord, error) {
	query := `
	SELECT id, site, directory, timestamp, page_count, node_count, edge_count, orphans
	FROM runs
	WHERE id = ?
	`

	record, err := scanRun(hdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record, nil
}

// ListRuns retrieves all run summaries for a site, most recent first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, site string) ([]*model.RunRecord, error) {
	query := `
	SELECT id, site, directory, timestamp, page_count, node_count, edge_count, orphans
	FROM runs
	WHERE site = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, site)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []*model.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// LatestRuns retrieves the n most recent run summaries for a site,
// most recent first.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, site string, n int) ([]*model.RunRecord, error) {
	query := `
	SELECT id, site, directory, timestamp, page_count, node_count, edge_count, orphans
	FROM runs
	WHERE site = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, site, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest runs: %w", err)
	}
	defer rows.Close()

	var results []*model.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// ListSites returns all sites with at least one stored run.
func (hdb *HistoryDB) ListSites(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT site FROM runs
	ORDER BY site
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []string
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRun.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row into a RunRecord.
func scanRun(row rowScanner) (*model.RunRecord, error) {
	var record model.RunRecord
	var timestamp string
	var orphansJSON string

	err := row.Scan(
		&record.ID,
		&record.Site,
		&record.Directory,
		&timestamp,
		&record.PageCount,
		&record.NodeCount,
		&record.EdgeCount,
		&orphansJSON,
	)
	if err != nil {
		return nil, err
	}

	record.Timestamp = parseTimestamp(timestamp)

	if orphansJSON != "" {
		if err := json.Unmarshal([]byte(orphansJSON), &record.Orphans); err != nil {
			return nil, fmt.Errorf("failed to parse orphans: %w", err)
		}
	}

	return &record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
