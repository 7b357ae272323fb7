package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InsertReboot records a reboot attempt in the audit trail and returns its
// id, which doubles as the ticket id handed to external systems.
func (db *DB) InsertReboot(record *RebootRecord) (int64, error) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	result, err := db.DB.Exec(`
        INSERT INTO reboot_history
            (device_name, device_ip, timestamp, operator, reason, outcome, ticket_id, reboot_type)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, record.DeviceName, record.DeviceIP, record.Timestamp,
		record.Operator, record.Reason, record.Outcome, record.TicketID,
		record.RebootType)
	if err != nil {
		return 0, fmt.Errorf("%w reboot record: %w", ErrFailedToInsert, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	record.ID = id

	return id, nil
}

// LastAutoReboot returns the most recent automatic reboot of a device, or
// nil if none has been recorded. Used to rehydrate remediation cooldowns
// after a restart.
func (db *DB) LastAutoReboot(deviceName string) (*RebootRecord, error) {
	const query = `
        SELECT id, device_name, device_ip, timestamp, operator, reason, outcome, ticket_id, reboot_type
        FROM reboot_history
        WHERE device_name = ? AND reboot_type = 'auto'
        ORDER BY timestamp DESC
        LIMIT 1
    `

	var (
		record   RebootRecord
		ticketID sql.NullInt64
	)

	err := db.DB.QueryRow(query, deviceName).Scan(
		&record.ID, &record.DeviceName, &record.DeviceIP, &record.Timestamp,
		&record.Operator, &record.Reason, &record.Outcome, &ticketID,
		&record.RebootType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w last auto reboot: %w", ErrFailedToQuery, err)
	}

	if ticketID.Valid {
		record.TicketID = &ticketID.Int64
	}

	return &record, nil
}
