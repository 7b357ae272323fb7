package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const downtimeColumns = `
        id, device_name, started_at, ended_at,
        status_before, status_during, recovery_method, ticket_id
`

// OpenDowntime inserts a new open interval for a device and returns its id.
// The caller is responsible for not opening a second interval while one is
// still open.
func (db *DB) OpenDowntime(interval *DowntimeInterval) (int64, error) {
	result, err := db.DB.Exec(`
        INSERT INTO downtime_intervals
            (device_name, started_at, status_before, status_during)
        VALUES (?, ?, ?, ?)
    `, interval.DeviceName, interval.StartedAt,
		string(interval.StatusBefore), string(interval.StatusDuring))
	if err != nil {
		return 0, fmt.Errorf("%w downtime interval: %w", ErrFailedToInsert, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	interval.ID = id

	return id, nil
}

// CloseDowntime ends the open interval for a device, recording how the
// device came back.
func (db *DB) CloseDowntime(deviceName string, endedAt time.Time, method string) error {
	result, err := db.DB.Exec(`
        UPDATE downtime_intervals
        SET ended_at = ?, recovery_method = ?
        WHERE device_name = ? AND ended_at IS NULL
    `, endedAt, method, deviceName)
	if err != nil {
		return fmt.Errorf("%w downtime interval: %w", ErrFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if rowsAffected == 0 {
		return ErrNoOpenDowntime
	}

	return nil
}

// GetOpenDowntime returns the open interval for a device started at or after
// since, or ErrNoOpenDowntime if the device is not currently down. A zero
// since matches any open interval.
func (db *DB) GetOpenDowntime(deviceName string, since time.Time) (*DowntimeInterval, error) {
	query := "SELECT " + downtimeColumns + `
        FROM downtime_intervals
        WHERE device_name = ? AND ended_at IS NULL AND started_at >= ?
        ORDER BY started_at DESC
        LIMIT 1
    `

	interval, err := scanDowntime(db.DB.QueryRow(query, deviceName, since))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoOpenDowntime
	}

	if err != nil {
		return nil, fmt.Errorf("%w open downtime: %w", ErrFailedToQuery, err)
	}

	return interval, nil
}

// GetLastClosedDowntime returns the most recently ended interval for a
// device, or ErrNoClosedDowntime if none exists.
func (db *DB) GetLastClosedDowntime(deviceName string) (*DowntimeInterval, error) {
	query := "SELECT " + downtimeColumns + `
        FROM downtime_intervals
        WHERE device_name = ? AND ended_at IS NOT NULL
        ORDER BY ended_at DESC
        LIMIT 1
    `

	interval, err := scanDowntime(db.DB.QueryRow(query, deviceName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoClosedDowntime
	}

	if err != nil {
		return nil, fmt.Errorf("%w last closed downtime: %w", ErrFailedToQuery, err)
	}

	return interval, nil
}

// SetDowntimeTicket attaches an external ticket id to an interval.
func (db *DB) SetDowntimeTicket(intervalID, ticketID int64) error {
	result, err := db.DB.Exec(
		"UPDATE downtime_intervals SET ticket_id = ? WHERE id = ?",
		ticketID, intervalID,
	)
	if err != nil {
		return fmt.Errorf("%w downtime ticket: %w", ErrFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if rowsAffected == 0 {
		return ErrNoOpenDowntime
	}

	return nil
}

func scanDowntime(row scanner) (*DowntimeInterval, error) {
	var (
		interval                   DowntimeInterval
		endedAt                    sql.NullTime
		statusBefore, statusDuring string
		method                     sql.NullString
		ticketID                   sql.NullInt64
	)

	err := row.Scan(
		&interval.ID, &interval.DeviceName, &interval.StartedAt, &endedAt,
		&statusBefore, &statusDuring, &method, &ticketID,
	)
	if err != nil {
		return nil, err
	}

	interval.StatusBefore = statusFromString(statusBefore)
	interval.StatusDuring = statusFromString(statusDuring)
	interval.RecoveryMethod = method.String

	if endedAt.Valid {
		interval.EndedAt = &endedAt.Time
	}

	if ticketID.Valid {
		interval.TicketID = &ticketID.Int64
	}

	return &interval, nil
}
