package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/complyreport/internal/model"
)

// DBFileName is the name of the history database inside its directory.
const DBFileName = "complyreport.db"

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// RunDB stores reported runs in a SQLite database.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// With CreateIfNotExists unset, a missing database is an error.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

func (rdb *RunDB) createTables() error {
	schema := `
	-- Each row is one reported run, stored as its full JSON tree
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		version TEXT NOT NULL,
		target TEXT,
		profile_count INTEGER NOT NULL,
		duration REAL NOT NULL,
		summary_json TEXT NOT NULL,
		run_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`
	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary holds the control and result counts of a stored run.
type RunSummary struct {
	Profile model.ProfileSummary `json:"profile"`
	Test    model.TestSummary    `json:"test"`
}

// RunMetadata describes a stored run without loading its tree.
type RunMetadata struct {
	ID           int64
	Version      string
	Target       string
	ProfileCount int
	Duration     float64
	Summary      RunSummary
	Timestamp    time.Time
}

// SaveRun stores run and returns its ID. target describes the scanned
// system and may be empty.
func (rdb *RunDB) SaveRun(ctx context.Context, run *model.RunResult, target string) (int64, error) {
	runJSON, err := json.Marshal(run)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run: %w", err)
	}
	summaryJSON, err := json.Marshal(RunSummary{
		Profile: run.ProfileSummary(),
		Test:    run.TestSummary(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}

	query := `
	INSERT INTO runs (version, target, profile_count, duration, summary_json, run_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := rdb.db.ExecContext(ctx, query,
		run.Version,
		target,
		len(run.Profiles),
		run.Statistics.Duration,
		string(summaryJSON),
		string(runJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// ListRuns returns stored runs, newest first. A limit of zero or less
// returns every run.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, version, target, profile_count, duration, summary_json, timestamp
	FROM runs
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var (
			meta        RunMetadata
			target      sql.NullString
			summaryJSON string
			timestamp   string
		)
		if err := rows.Scan(&meta.ID, &meta.Version, &target, &meta.ProfileCount, &meta.Duration, &summaryJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		meta.Target = target.String
		meta.Timestamp = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(summaryJSON), &meta.Summary); err != nil {
			meta.Summary = RunSummary{}
		}
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun loads the run with the given ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*model.RunResult, error) {
	var runJSON string
	err := rdb.db.QueryRowContext(ctx, `SELECT run_json FROM runs WHERE id = ?`, id).Scan(&runJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var run model.RunResult
	if err := json.Unmarshal([]byte(runJSON), &run); err != nil {
		return nil, fmt.Errorf("failed to parse run: %w", err)
	}
	return &run, nil
}

// timestampFormats contains the timestamp formats SQLite may return, most
// specific first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a SQLite timestamp, returning the zero time when
// no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
