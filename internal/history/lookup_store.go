package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// lookupsTable is the name of the table holding recorded lookups.
const lookupsTable = "satscout_lookups"

// lookupColumns is the insert column order shared by all backends.
const lookupColumns = `dbn, school_name, lookup_time, duration_ms, outcome, reason,
	test_takers, reading_score, math_score, writing_score, reading_tier, math_tier, writing_tier`

// LookupStoreImpl implements the LookupStore interface.
type LookupStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.LookupStore = &LookupStoreImpl{} // Compile-time check

// NewLookupStore creates a new LookupStore with the specified backend.
func NewLookupStore(backend schema.DatabaseBackend, connStr string) (contract.LookupStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &LookupStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported history backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateLookupsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", lookupsTable, err)
	}

	return &LookupStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// quoteTableName quotes an identifier for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	default: // SQLite and PostgreSQL
		return `"` + name + `"`
	}
}

// getCreateLookupsQuery returns the CREATE TABLE query for satscout_lookups.
// It matches migration 000001 so that stores and migrations agree on the schema.
func getCreateLookupsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(lookupsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				lookup_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				dbn VARCHAR(32) NOT NULL,
				school_name VARCHAR(255),
				lookup_time DATETIME(6) NOT NULL,
				duration_ms INT NOT NULL,
				outcome VARCHAR(16) NOT NULL,
				reason TEXT,
				test_takers INT NOT NULL,
				reading_score INT NOT NULL,
				math_score INT NOT NULL,
				writing_score INT NOT NULL,
				reading_tier VARCHAR(16),
				math_tier VARCHAR(16),
				writing_tier VARCHAR(16)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				lookup_id BIGSERIAL PRIMARY KEY,
				dbn TEXT NOT NULL,
				school_name TEXT,
				lookup_time TIMESTAMPTZ NOT NULL,
				duration_ms INT NOT NULL,
				outcome TEXT NOT NULL,
				reason TEXT,
				test_takers INT NOT NULL,
				reading_score INT NOT NULL,
				math_score INT NOT NULL,
				writing_score INT NOT NULL,
				reading_tier TEXT,
				math_tier TEXT,
				writing_tier TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				lookup_id INTEGER PRIMARY KEY AUTOINCREMENT,
				dbn TEXT NOT NULL,
				school_name TEXT,
				lookup_time TEXT NOT NULL,
				duration_ms INTEGER NOT NULL,
				outcome TEXT NOT NULL,
				reason TEXT,
				test_takers INTEGER NOT NULL,
				reading_score INTEGER NOT NULL,
				math_score INTEGER NOT NULL,
				writing_score INTEGER NOT NULL,
				reading_tier TEXT,
				math_tier TEXT,
				writing_tier TEXT
			);
		`, quotedTableName)
	}
}

// RecordLookup stores one lookup and returns its unique ID.
func (ls *LookupStoreImpl) RecordLookup(record schema.LookupRecord) (int64, error) {
	// Skip for NoneBackend
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(lookupsTable, ls.backend)
	args := []any{
		record.DBN, record.SchoolName, formatTime(record.LookupTime, ls.backend), record.DurationMs,
		string(record.Outcome), record.Reason, record.TestTakers, record.Reading, record.Math, record.Writing,
		record.ReadingTier, record.MathTier, record.WritingTier,
	}

	var lookupID int64
	var err error
	switch ls.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING lookup_id`,
			quotedTableName, lookupColumns, placeholders(ls.backend, len(args)))
		err = ls.db.QueryRow(query, args...).Scan(&lookupID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			quotedTableName, lookupColumns, placeholders(ls.backend, len(args)))
		var result sql.Result
		result, err = ls.db.Exec(query, args...)
		if err == nil {
			lookupID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert lookup: %w", err)
	}
	return lookupID, nil
}

// Close closes the underlying connection.
func (ls *LookupStoreImpl) Close() error {
	if ls.db != nil {
		return ls.db.Close()
	}
	return nil
}

// GetStatus returns status information about the lookup store.
func (ls *LookupStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(ls.backend),
		Connected:  ls.db != nil,
		TableSizes: make(map[string]int64),
	}

	if ls.backend == schema.NoneBackend || ls.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(lookupsTable, ls.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT dbn) FROM %s", quotedTableName)
	if err := ls.db.QueryRow(countQuery).Scan(&status.TotalLookups, &status.DistinctSchools); err != nil {
		return status, fmt.Errorf("failed to get total lookups: %w", err)
	}
	status.TableSizes[lookupsTable] = int64(status.TotalLookups)

	if status.TotalLookups == 0 {
		return status, nil
	}

	failedQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE outcome = %s", quotedTableName, placeholders(ls.backend, 1))
	if err := ls.db.QueryRow(failedQuery, string(schema.FetchFailed)).Scan(&status.FailedLookups); err != nil {
		return status, fmt.Errorf("failed to get failed lookups: %w", err)
	}

	lastQuery := fmt.Sprintf("SELECT lookup_id, lookup_time FROM %s ORDER BY lookup_id DESC LIMIT 1", quotedTableName)
	lastTime, err := ls.scanIDAndTime(ls.db.QueryRow(lastQuery), &status.LastLookupID)
	if err != nil {
		return status, fmt.Errorf("failed to get last lookup info: %w", err)
	}
	status.LastLookupTime = lastTime

	var oldestID int64
	oldestQuery := fmt.Sprintf("SELECT lookup_id, lookup_time FROM %s ORDER BY lookup_id ASC LIMIT 1", quotedTableName)
	oldestTime, err := ls.scanIDAndTime(ls.db.QueryRow(oldestQuery), &oldestID)
	if err != nil {
		return status, fmt.Errorf("failed to get oldest lookup info: %w", err)
	}
	status.OldestLookup = oldestTime

	status.TableSizeBytes = ls.tableSizeBytes(int64(status.TotalLookups))
	return status, nil
}

// tableSizeBytes estimates the on-disk size of the lookups table.
// Falls back to a rough per-row estimate when the backend cannot tell.
func (ls *LookupStoreImpl) tableSizeBytes(rows int64) int64 {
	estimate := rows * 256
	var size int64
	switch ls.backend {
	case schema.SQLiteBackend:
		query := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ls.db.QueryRow(query).Scan(&size); err != nil {
			return estimate
		}
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ls.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		query := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := ls.db.QueryRow(query, cfg.DBName, lookupsTable).Scan(&size); err != nil {
			return estimate
		}
	case schema.PostgreSQLBackend:
		if err := ls.db.QueryRow("SELECT pg_total_relation_size($1)", lookupsTable).Scan(&size); err != nil {
			return estimate
		}
	default:
		return estimate
	}
	return size
}

// scanIDAndTime scans an (id, time) row, handling SQLite's text timestamps.
func (ls *LookupStoreImpl) scanIDAndTime(row *sql.Row, id *int64) (time.Time, error) {
	if ls.backend == schema.SQLiteBackend {
		var ts string
		if err := row.Scan(id, &ts); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, ts)
	}
	var t time.Time
	if err := row.Scan(id, &t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// GetAllLookups retrieves all recorded lookups ordered by ID.
func (ls *LookupStoreImpl) GetAllLookups() ([]schema.LookupRecord, error) {
	// Skip for NoneBackend
	if ls.backend == schema.NoneBackend || ls.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(lookupsTable, ls.backend)
	query := fmt.Sprintf("SELECT lookup_id, %s FROM %s ORDER BY lookup_id", lookupColumns, quotedTableName)

	rows, err := ls.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.LookupRecord

	for rows.Next() {
		var record schema.LookupRecord
		var outcome string
		var lookupTimeStr string

		dest := []any{
			&record.LookupID, &record.DBN, &record.SchoolName, nil, &record.DurationMs,
			&outcome, &record.Reason, &record.TestTakers, &record.Reading, &record.Math, &record.Writing,
			&record.ReadingTier, &record.MathTier, &record.WritingTier,
		}
		if ls.backend == schema.SQLiteBackend {
			dest[3] = &lookupTimeStr
		} else {
			dest[3] = &record.LookupTime
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		if ls.backend == schema.SQLiteBackend {
			lookupTime, err := time.Parse(time.RFC3339Nano, lookupTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse lookup_time: %w", err)
			}
			record.LookupTime = lookupTime
		}
		record.Outcome = schema.FetchStatus(outcome)

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lookups: %w", err)
	}

	return results, nil
}

// placeholders returns n comma-separated parameter placeholders for the backend.
func placeholders(backend schema.DatabaseBackend, n int) string {
	parts := make([]string, n)
	for i := range parts {
		switch backend {
		case schema.PostgreSQLBackend:
			parts[i] = fmt.Sprintf("$%d", i+1)
		default: // SQLite and MySQL
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
