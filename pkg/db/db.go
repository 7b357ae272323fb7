// Package db pkg/db/db.go provides SQLite database functionality for camwatch.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// Default number of history points returned per device.
	defaultHistoryPoints = 1000

	// SQL statements for database initialization.
	createTablesSQL = `
	-- Per-device health summary, one row per device, upserted on every check
	CREATE TABLE IF NOT EXISTS device_health (
		device_name TEXT PRIMARY KEY,
		device_ip TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'unknown',
		last_check TIMESTAMP NOT NULL,
		last_online TIMESTAMP,
		last_offline TIMESTAMP,
		consecutive_failures INTEGER NOT NULL DEFAULT 0,
		total_checks INTEGER NOT NULL DEFAULT 0,
		successful_checks INTEGER NOT NULL DEFAULT 0,
		avg_connect_ms REAL,
		avg_media_ms REAL,
		uptime_percentage REAL NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	-- Append-only health check log
	CREATE TABLE IF NOT EXISTS health_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_name TEXT NOT NULL,
		device_ip TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		status TEXT NOT NULL,
		connectivity_ok BOOLEAN NOT NULL DEFAULT 0,
		connectivity_ms INTEGER,
		media_ok BOOLEAN NOT NULL DEFAULT 0,
		media_ms INTEGER,
		origin TEXT NOT NULL DEFAULT 'scheduled',
		error_message TEXT
	);

	-- Downtime intervals, one per incident
	CREATE TABLE IF NOT EXISTS downtime_intervals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_name TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		ended_at TIMESTAMP,
		status_before TEXT NOT NULL,
		status_during TEXT NOT NULL,
		recovery_method TEXT,
		ticket_id INTEGER
	);

	-- Operator-authored alert rules
	CREATE TABLE IF NOT EXISTS alert_rules (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		rule_type TEXT NOT NULL,
		threshold_value REAL NOT NULL,
		threshold_operator TEXT NOT NULL DEFAULT '<',
		evaluation_window_minutes INTEGER NOT NULL DEFAULT 60,
		applies_to TEXT NOT NULL DEFAULT 'all',
		device_name TEXT,
		group_name TEXT,
		severity TEXT NOT NULL DEFAULT 'warning',
		rate_limit_minutes INTEGER NOT NULL DEFAULT 60,
		suppress_during_maintenance BOOLEAN NOT NULL DEFAULT 1,
		notification_channels TEXT NOT NULL DEFAULT '',
		recipients TEXT NOT NULL DEFAULT '',
		enabled BOOLEAN NOT NULL DEFAULT 1
	);

	-- Alert history, retained for audit and SLA reporting
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rule_id INTEGER,
		device_name TEXT NOT NULL,
		alert_type TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'warning',
		message TEXT NOT NULL,
		trigger_value REAL,
		threshold_value REAL,
		status TEXT NOT NULL DEFAULT 'triggered',
		triggered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		acknowledged_at TIMESTAMP,
		acknowledged_by TEXT,
		resolved_at TIMESTAMP,
		notification_sent BOOLEAN NOT NULL DEFAULT 0,
		notification_error TEXT,
		escalated BOOLEAN NOT NULL DEFAULT 0
	);

	-- Reboot audit trail
	CREATE TABLE IF NOT EXISTS reboot_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_name TEXT NOT NULL,
		device_ip TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		operator TEXT NOT NULL,
		reason TEXT NOT NULL,
		outcome TEXT NOT NULL,
		ticket_id INTEGER,
		reboot_type TEXT NOT NULL DEFAULT 'manual'
	);

	-- Maintenance windows
	CREATE TABLE IF NOT EXISTS maintenance_windows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		device_name TEXT NOT NULL,
		scheduled_start TIMESTAMP NOT NULL,
		scheduled_end TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		suppress_alerts BOOLEAN NOT NULL DEFAULT 1
	);

	-- Group membership
	CREATE TABLE IF NOT EXISTS device_groups (
		group_name TEXT NOT NULL,
		device_name TEXT NOT NULL,
		PRIMARY KEY (group_name, device_name)
	);

	-- Indexes for better query performance
	CREATE INDEX IF NOT EXISTS idx_health_events_device_time
		ON health_events(device_name, timestamp);
	CREATE INDEX IF NOT EXISTS idx_downtime_device_start
		ON downtime_intervals(device_name, started_at);
	CREATE INDEX IF NOT EXISTS idx_alerts_device_time
		ON alerts(device_name, triggered_at);
	CREATE INDEX IF NOT EXISTS idx_alerts_rule_device
		ON alerts(rule_id, device_name, triggered_at);
	CREATE INDEX IF NOT EXISTS idx_reboot_history_device_time
		ON reboot_history(device_name, timestamp);
	CREATE INDEX IF NOT EXISTS idx_maintenance_device
		ON maintenance_windows(device_name, scheduled_start);

	-- Enable WAL mode for better concurrent access
	PRAGMA journal_mode=WAL;
	PRAGMA foreign_keys=ON;
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.DB.Exec(createTablesSQL)

	return err
}

// Begin starts a transaction wrapped in the Transaction interface.
func (db *DB) Begin() (Transaction, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}

	return ToTransaction(tx), nil
}

func (db *DB) Exec(query string, args ...interface{}) (Result, error) {
	result, err := db.DB.Exec(query, args...)
	if err != nil {
		return nil, err
	}

	return ToResult(result), nil
}

func (db *DB) Query(query string, args ...interface{}) (Rows, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &SQLRows{rows}, nil
}

func (db *DB) QueryRow(query string, args ...interface{}) Row {
	return ToRow(db.DB.QueryRow(query, args...))
}

// RecordHealthCheck persists the updated device summary and appends the
// check event in a single transaction, so the summary and the audit log
// cannot drift apart.
func (db *DB) RecordHealthCheck(record *DeviceHealth, event *HealthCheckEvent) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	err = db.updateExistingDevice(tx, record)
	if errors.Is(err, sql.ErrNoRows) {
		err = db.insertNewDevice(tx, record)
	}

	if err != nil {
		return fmt.Errorf("%w device health: %w", ErrFailedToUpdate, err)
	}

	if err = db.appendHealthEvent(tx, event); err != nil {
		return fmt.Errorf("%w health event: %w", ErrFailedToInsert, err)
	}

	err = tx.Commit()

	return err
}

func (*DB) updateExistingDevice(tx *sql.Tx, record *DeviceHealth) error {
	result, err := tx.Exec(`
        UPDATE device_health
        SET device_ip = ?,
            status = ?,
            last_check = ?,
            last_online = ?,
            last_offline = ?,
            consecutive_failures = ?,
            total_checks = ?,
            successful_checks = ?,
            avg_connect_ms = ?,
            avg_media_ms = ?,
            uptime_percentage = ?,
            updated_at = CURRENT_TIMESTAMP
        WHERE device_name = ?
    `, record.DeviceIP, string(record.Status), record.LastCheck,
		record.LastOnline, record.LastOffline,
		record.ConsecutiveFailures, record.TotalChecks, record.SuccessfulChecks,
		record.AvgConnectMs, record.AvgMediaMs, record.UptimePercentage,
		record.DeviceName)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (*DB) insertNewDevice(tx *sql.Tx, record *DeviceHealth) error {
	_, err := tx.Exec(`
        INSERT INTO device_health
            (device_name, device_ip, status, last_check, last_online, last_offline,
             consecutive_failures, total_checks, successful_checks,
             avg_connect_ms, avg_media_ms, uptime_percentage)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, record.DeviceName, record.DeviceIP, string(record.Status), record.LastCheck,
		record.LastOnline, record.LastOffline,
		record.ConsecutiveFailures, record.TotalChecks, record.SuccessfulChecks,
		record.AvgConnectMs, record.AvgMediaMs, record.UptimePercentage)

	if err != nil {
		return fmt.Errorf("%w device: %w", ErrFailedToInsert, err)
	}

	return nil
}

func (*DB) appendHealthEvent(tx *sql.Tx, event *HealthCheckEvent) error {
	_, err := tx.Exec(`
        INSERT INTO health_events
            (device_name, device_ip, timestamp, status,
             connectivity_ok, connectivity_ms, media_ok, media_ms, origin, error_message)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, event.DeviceName, event.DeviceIP, event.Timestamp, string(event.Status),
		event.ConnectivityOK, event.ConnectivityMs,
		event.MediaOK, event.MediaMs, string(event.Origin), event.ErrorMessage)

	return err
}

func rollbackOnError(tx *sql.Tx, err *error) {
	if *err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("Error rolling back transaction: %v", rbErr)
		}
	}
}

const deviceHealthColumns = `
        device_name, device_ip, status, last_check, last_online, last_offline,
        consecutive_failures, total_checks, successful_checks,
        avg_connect_ms, avg_media_ms, uptime_percentage, updated_at
`

// GetDeviceHealth returns the summary row for one device.
func (db *DB) GetDeviceHealth(deviceName string) (*DeviceHealth, error) {
	query := "SELECT " + deviceHealthColumns + " FROM device_health WHERE device_name = ?"

	record, err := scanDeviceHealth(db.DB.QueryRow(query, deviceName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("%w device health: %w", ErrFailedToQuery, err)
	}

	return record, nil
}

// ListDeviceHealth returns the summary rows for the whole fleet.
func (db *DB) ListDeviceHealth() ([]DeviceHealth, error) {
	query := "SELECT " + deviceHealthColumns + " FROM device_health ORDER BY device_name"

	rows, err := db.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w device health list: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var records []DeviceHealth

	for rows.Next() {
		record, err := scanDeviceHealth(rows)
		if err != nil {
			return nil, fmt.Errorf("%w device health row: %w", ErrFailedToScan, err)
		}

		records = append(records, *record)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDeviceHealth(row scanner) (*DeviceHealth, error) {
	var (
		record                  DeviceHealth
		status                  string
		lastOnline, lastOffline sql.NullTime
		avgConnect, avgMedia    sql.NullFloat64
	)

	err := row.Scan(
		&record.DeviceName, &record.DeviceIP, &status, &record.LastCheck,
		&lastOnline, &lastOffline,
		&record.ConsecutiveFailures, &record.TotalChecks, &record.SuccessfulChecks,
		&avgConnect, &avgMedia, &record.UptimePercentage, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Status = statusFromString(status)

	if lastOnline.Valid {
		record.LastOnline = &lastOnline.Time
	}

	if lastOffline.Valid {
		record.LastOffline = &lastOffline.Time
	}

	if avgConnect.Valid {
		record.AvgConnectMs = &avgConnect.Float64
	}

	if avgMedia.Valid {
		record.AvgMediaMs = &avgMedia.Float64
	}

	return &record, nil
}

// GetDeviceHistory returns the most recent check events for one device,
// newest first.
func (db *DB) GetDeviceHistory(deviceName string, since time.Time, limit int) ([]HealthCheckEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryPoints
	}

	const query = `
        SELECT id, device_name, device_ip, timestamp, status,
               connectivity_ok, connectivity_ms, media_ok, media_ms, origin, error_message
        FROM health_events
        WHERE device_name = ? AND timestamp >= ?
        ORDER BY timestamp DESC
        LIMIT ?
    `

	rows, err := db.DB.Query(query, deviceName, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w device history: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var events []HealthCheckEvent

	for rows.Next() {
		var (
			event              HealthCheckEvent
			status, origin     string
			connMs, mediaMs    sql.NullInt64
			errMsg             sql.NullString
		)

		if err := rows.Scan(&event.ID, &event.DeviceName, &event.DeviceIP, &event.Timestamp,
			&status, &event.ConnectivityOK, &connMs, &event.MediaOK, &mediaMs,
			&origin, &errMsg); err != nil {
			return nil, fmt.Errorf("%w history event: %w", ErrFailedToScan, err)
		}

		event.Status = statusFromString(status)
		event.Origin = originFromString(origin)

		if connMs.Valid {
			event.ConnectivityMs = &connMs.Int64
		}

		if mediaMs.Valid {
			event.MediaMs = &mediaMs.Int64
		}

		event.ErrorMessage = errMsg.String

		events = append(events, event)
	}

	return events, rows.Err()
}

// GetSystemHistory buckets the fleet-wide check log into fixed intervals and
// counts events by status within each bucket.
func (db *DB) GetSystemHistory(since time.Time, bucket time.Duration) ([]SystemHistoryPoint, error) {
	if bucket <= 0 {
		bucket = time.Hour
	}

	bucketSec := int64(bucket.Seconds())

	const query = `
        SELECT (CAST(strftime('%s', timestamp) AS INTEGER) / ?) * ? AS bucket,
               SUM(CASE WHEN status = 'online' THEN 1 ELSE 0 END),
               SUM(CASE WHEN status = 'degraded' THEN 1 ELSE 0 END),
               SUM(CASE WHEN status = 'offline' THEN 1 ELSE 0 END)
        FROM health_events
        WHERE timestamp >= ?
        GROUP BY bucket
        ORDER BY bucket
    `

	rows, err := db.DB.Query(query, bucketSec, bucketSec, since)
	if err != nil {
		return nil, fmt.Errorf("%w system history: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var points []SystemHistoryPoint

	for rows.Next() {
		var (
			point    SystemHistoryPoint
			bucketTS int64
		)

		if err := rows.Scan(&bucketTS, &point.Online, &point.Degraded, &point.Offline); err != nil {
			return nil, fmt.Errorf("%w system history point: %w", ErrFailedToScan, err)
		}

		point.Timestamp = time.Unix(bucketTS, 0).UTC()
		points = append(points, point)
	}

	return points, rows.Err()
}

// ComputeUptime recomputes the uptime percentage for a device over a window
// directly from the append-only check log, independent of the summary row.
func (db *DB) ComputeUptime(deviceName string, since time.Time) (float64, int, error) {
	const query = `
        SELECT COUNT(*),
               SUM(CASE WHEN status = 'online' THEN 1 ELSE 0 END)
        FROM health_events
        WHERE device_name = ? AND timestamp >= ?
    `

	var (
		total  int
		online sql.NullInt64
	)

	if err := db.DB.QueryRow(query, deviceName, since).Scan(&total, &online); err != nil {
		return 0, 0, fmt.Errorf("%w uptime: %w", ErrFailedToQuery, err)
	}

	if total == 0 {
		return 0, 0, nil
	}

	return float64(online.Int64) / float64(total) * 100.0, total, nil
}

// CleanOldData removes check events and closed downtime intervals older than
// the retention period. Summary rows, rules, alerts and reboot history are
// kept.
func (db *DB) CleanOldData(retentionPeriod time.Duration) error {
	cutoff := time.Now().Add(-retentionPeriod)

	tx, err := db.DB.Begin()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToBeginTx, err)
	}
	defer rollbackOnError(tx, &err)

	if _, err = tx.Exec(
		"DELETE FROM health_events WHERE timestamp < ?",
		cutoff,
	); err != nil {
		return fmt.Errorf("%w health events: %w", ErrFailedToClean, err)
	}

	if _, err = tx.Exec(
		"DELETE FROM downtime_intervals WHERE ended_at IS NOT NULL AND ended_at < ?",
		cutoff,
	); err != nil {
		return fmt.Errorf("%w downtime intervals: %w", ErrFailedToClean, err)
	}

	err = tx.Commit()

	return err
}
