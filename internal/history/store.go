package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/focuslab/focuswatch/internal/contract"
	"github.com/focuslab/focuswatch/schema"

	// Database drivers registered for the supported backends.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// runsTable is the name of the table for run history.
const runsTable = "focuswatch_runs"

// RunStoreImpl implements the HistoryStore interface over database/sql.
type RunStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new HistoryStore with the specified backend.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schema
	if err := createRunsTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &RunStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createRunsTable creates the run history table.
func createRunsTable(db *sql.DB, backend schema.DatabaseBackend) error {
	if _, err := db.Exec(getCreateRunsQuery(backend)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", runsTable, err)
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for focuswatch_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				log_path VARCHAR(512),
				status VARCHAR(32),
				total_values INT,
				unique_transitions INT,
				final_value DOUBLE,
				cycle_length INT,
				cycle_pattern TEXT,
				message TEXT,
				config_params TEXT
			);
		`, runsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				log_path TEXT,
				status TEXT,
				total_values INT,
				unique_transitions INT,
				final_value DOUBLE PRECISION,
				cycle_length INT,
				cycle_pattern TEXT,
				message TEXT,
				config_params TEXT
			);
		`, runsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				log_path TEXT,
				status TEXT,
				total_values INTEGER,
				unique_transitions INTEGER,
				final_value REAL,
				cycle_length INTEGER,
				cycle_pattern TEXT,
				message TEXT,
				config_params TEXT
			);
		`, runsTable)
	}
}

// BeginRun creates a new run row and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, runsTable)
		err = rs.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, runsTable)
		var result sql.Result
		result, err = rs.db.Exec(query, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with its completion time and the analysis result.
func (rs *RunStoreImpl) EndRun(runID int64, endTime time.Time, result *schema.AnalysisResult) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	startTime, err := rs.getStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var patternJSON *string
	if len(result.CyclePattern) > 0 {
		b, err := json.Marshal(result.CyclePattern)
		if err != nil {
			return fmt.Errorf("failed to marshal cycle pattern: %w", err)
		}
		s := string(b)
		patternJSON = &s
	}

	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`
			UPDATE %s SET end_time = $1, run_duration_ms = $2, log_path = $3, status = $4,
			              total_values = $5, unique_transitions = $6, final_value = $7,
			              cycle_length = $8, cycle_pattern = $9, message = $10
			WHERE run_id = $11`, runsTable)
		args = []any{
			endTime, durationMs, result.LogPath, string(result.Status),
			result.TotalValues, result.UniqueTransitions, result.FinalValue,
			result.CycleLength, patternJSON, result.Message, runID,
		}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`
			UPDATE %s SET end_time = ?, run_duration_ms = ?, log_path = ?, status = ?,
			              total_values = ?, unique_transitions = ?, final_value = ?,
			              cycle_length = ?, cycle_pattern = ?, message = ?
			WHERE run_id = ?`, runsTable)
		args = []any{
			formatTime(endTime, rs.backend), durationMs, result.LogPath, string(result.Status),
			result.TotalValues, result.UniqueTransitions, result.FinalValue,
			result.CycleLength, patternJSON, result.Message, runID,
		}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	return nil
}

// getStartTime reads back the start_time of a run, handling the per-backend
// time storage formats.
func (rs *RunStoreImpl) getStartTime(runID int64) (time.Time, error) {
	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, runsTable)
	default:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, runsTable)
	}

	row := rs.db.QueryRow(query, runID)
	switch rs.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return startTime, nil
	default: // MySQL and PostgreSQL store as native datetime
		var startTime time.Time
		if err := row.Scan(&startTime); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		return startTime, nil
	}
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (rs *RunStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)
	row := rs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		row = rs.db.QueryRow(lastRunQuery)

		switch rs.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		row = rs.db.QueryRow(oldestRunQuery)

		switch rs.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default:
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)
	row = rs.db.QueryRow(countQuery)
	var count int64
	if err := row.Scan(&count); err != nil {
		return status, fmt.Errorf("failed to get count for table %s: %w", runsTable, err)
	}
	status.TableSizes[runsTable] = count

	return status, nil
}

// GetAllRuns retrieves every stored run, oldest first.
func (rs *RunStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	return rs.queryRuns(fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, log_path, status,
		total_values, unique_transitions, final_value, cycle_length, cycle_pattern, message, config_params
		FROM %s ORDER BY run_id`, runsTable))
}

// GetRecentRuns retrieves up to limit runs, newest first.
func (rs *RunStoreImpl) GetRecentRuns(limit int) ([]schema.RunRecord, error) {
	return rs.queryRuns(fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, log_path, status,
		total_values, unique_transitions, final_value, cycle_length, cycle_pattern, message, config_params
		FROM %s ORDER BY run_id DESC LIMIT %d`, runsTable, limit))
}

// queryRuns runs a SELECT over focuswatch_runs and scans the rows, handling
// the per-backend time storage formats.
func (rs *RunStoreImpl) queryRuns(query string) ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var logPath, status, message sql.NullString
		// A run that never finished has NULL result columns.
		var totalValues, uniqueTransitions, cycleLength sql.NullInt32
		var finalValue sql.NullFloat64

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&logPath, &status, &totalValues, &uniqueTransitions,
				&finalValue, &cycleLength, &record.CyclePattern,
				&message, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&logPath, &status, &totalValues, &uniqueTransitions,
				&finalValue, &cycleLength, &record.CyclePattern,
				&message, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		record.LogPath = logPath.String
		record.Status = status.String
		record.Message = message.String
		record.TotalValues = totalValues.Int32
		record.UniqueTransitions = uniqueTransitions.Int32
		record.FinalValue = finalValue.Float64
		record.CycleLength = cycleLength.Int32
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
