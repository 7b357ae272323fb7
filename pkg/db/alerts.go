package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

// ListEnabledRules returns all enabled alert rules ordered by severity,
// critical first, so the rule engine evaluates the most urgent rules before
// the rest.
func (db *DB) ListEnabledRules() ([]AlertRule, error) {
	const query = `
        SELECT id, name, rule_type, threshold_value, threshold_operator,
               evaluation_window_minutes, applies_to, device_name, group_name,
               severity, rate_limit_minutes, suppress_during_maintenance,
               notification_channels, recipients, enabled
        FROM alert_rules
        WHERE enabled = 1
        ORDER BY CASE severity
            WHEN 'critical' THEN 0
            WHEN 'warning' THEN 1
            ELSE 2
        END, id
    `

	rows, err := db.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w alert rules: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var rules []AlertRule

	for rows.Next() {
		var (
			rule                  AlertRule
			ruleType              string
			deviceName, groupName sql.NullString
		)

		if err := rows.Scan(&rule.ID, &rule.Name, &ruleType, &rule.Threshold,
			&rule.Operator, &rule.WindowMinutes, &rule.AppliesTo,
			&deviceName, &groupName, &rule.Severity, &rule.RateLimitMinutes,
			&rule.SuppressMaintenance, &rule.Channels, &rule.Recipients,
			&rule.Enabled); err != nil {
			return nil, fmt.Errorf("%w alert rule: %w", ErrFailedToScan, err)
		}

		rule.Type = RuleType(ruleType)
		rule.DeviceName = deviceName.String
		rule.GroupName = groupName.String

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// GroupMembers returns the device names belonging to a group.
func (db *DB) GroupMembers(groupName string) ([]string, error) {
	rows, err := db.DB.Query(
		"SELECT device_name FROM device_groups WHERE group_name = ? ORDER BY device_name",
		groupName,
	)
	if err != nil {
		return nil, fmt.Errorf("%w group members: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var members []string

	for rows.Next() {
		var name string

		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w group member: %w", ErrFailedToScan, err)
		}

		members = append(members, name)
	}

	return members, rows.Err()
}

// InsertAlert records a triggered alert and returns its id.
func (db *DB) InsertAlert(alert *Alert) (int64, error) {
	if alert.Status == "" {
		alert.Status = AlertTriggered
	}

	if alert.TriggeredAt.IsZero() {
		alert.TriggeredAt = time.Now()
	}

	result, err := db.DB.Exec(`
        INSERT INTO alerts
            (rule_id, device_name, alert_type, severity, message,
             trigger_value, threshold_value, status, triggered_at,
             notification_sent, notification_error, escalated)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, alert.RuleID, alert.DeviceName, alert.Type, alert.Severity, alert.Message,
		alert.TriggerValue, alert.ThresholdValue, string(alert.Status),
		alert.TriggeredAt, alert.NotificationSent, alert.NotificationError,
		alert.Escalated)
	if err != nil {
		return 0, fmt.Errorf("%w alert: %w", ErrFailedToInsert, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	alert.ID = id

	return id, nil
}

// LastRuleAlert returns when a rule last fired for a device. A zero time
// with nil error means the rule has never fired for that device.
func (db *DB) LastRuleAlert(ruleID int64, deviceName string) (time.Time, error) {
	var last time.Time

	err := db.DB.QueryRow(`
        SELECT triggered_at FROM alerts
        WHERE rule_id = ? AND device_name = ?
        ORDER BY triggered_at DESC
        LIMIT 1
    `, ruleID, deviceName).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}

	if err != nil {
		return time.Time{}, fmt.Errorf("%w last rule alert: %w", ErrFailedToQuery, err)
	}

	return last, nil
}

// LastTransitionAlert returns the most recent time any of the given alert
// types fired for a device. A zero time with nil error means none ever fired.
func (db *DB) LastTransitionAlert(deviceName string, alertTypes []string) (time.Time, error) {
	query := fmt.Sprintf(`
        SELECT triggered_at FROM alerts
        WHERE device_name = ? AND alert_type IN (%s)
        ORDER BY triggered_at DESC
        LIMIT 1
    `, placeholders(len(alertTypes)))

	args := make([]interface{}, 0, len(alertTypes)+1)
	args = append(args, deviceName)

	for _, t := range alertTypes {
		args = append(args, t)
	}

	var last time.Time

	err := db.DB.QueryRow(query, args...).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}

	if err != nil {
		return time.Time{}, fmt.Errorf("%w last transition alert: %w", ErrFailedToQuery, err)
	}

	return last, nil
}

// CountAlertsSince counts alerts of the given types for a device since a
// cutoff, used to enforce daily alert caps across restarts.
func (db *DB) CountAlertsSince(deviceName string, alertTypes []string, since time.Time) (int, error) {
	query := fmt.Sprintf(`
        SELECT COUNT(*) FROM alerts
        WHERE device_name = ? AND alert_type IN (%s) AND triggered_at >= ?
    `, placeholders(len(alertTypes)))

	args := make([]interface{}, 0, len(alertTypes)+2)
	args = append(args, deviceName)

	for _, t := range alertTypes {
		args = append(args, t)
	}

	args = append(args, since)

	var count int

	if err := db.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w alert count: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

// SetAlertNotification records the delivery outcome for an alert.
func (db *DB) SetAlertNotification(alertID int64, sent bool, errMsg string) error {
	result, err := db.DB.Exec(
		"UPDATE alerts SET notification_sent = ?, notification_error = ? WHERE id = ?",
		sent, errMsg, alertID,
	)
	if err != nil {
		return fmt.Errorf("%w alert notification: %w", ErrFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if rowsAffected == 0 {
		return ErrAlertNotFound
	}

	return nil
}

// ListAlerts returns recent alerts, newest first, optionally filtered by
// lifecycle status. An empty status returns all alerts.
func (db *DB) ListAlerts(status AlertStatus, limit int) ([]Alert, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
        SELECT id, rule_id, device_name, alert_type, severity, message,
               trigger_value, threshold_value, status, triggered_at,
               acknowledged_at, acknowledged_by, resolved_at,
               notification_sent, notification_error, escalated
        FROM alerts
    `

	args := []interface{}{}

	if status != "" {
		query += " WHERE status = ?"

		args = append(args, string(status))
	}

	query += " ORDER BY triggered_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w alerts: %w", ErrFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var alerts []Alert

	for rows.Next() {
		var (
			alert                    Alert
			ruleID                   sql.NullInt64
			triggerVal, thresholdVal sql.NullFloat64
			alertStatus              string
			ackAt, resolvedAt        sql.NullTime
			ackBy, notifErr          sql.NullString
		)

		if err := rows.Scan(&alert.ID, &ruleID, &alert.DeviceName, &alert.Type,
			&alert.Severity, &alert.Message, &triggerVal, &thresholdVal,
			&alertStatus, &alert.TriggeredAt, &ackAt, &ackBy, &resolvedAt,
			&alert.NotificationSent, &notifErr, &alert.Escalated); err != nil {
			return nil, fmt.Errorf("%w alert: %w", ErrFailedToScan, err)
		}

		alert.Status = AlertStatus(alertStatus)
		alert.AcknowledgedBy = ackBy.String
		alert.NotificationError = notifErr.String

		if ruleID.Valid {
			alert.RuleID = &ruleID.Int64
		}

		if triggerVal.Valid {
			alert.TriggerValue = &triggerVal.Float64
		}

		if thresholdVal.Valid {
			alert.ThresholdValue = &thresholdVal.Float64
		}

		if ackAt.Valid {
			alert.AcknowledgedAt = &ackAt.Time
		}

		if resolvedAt.Valid {
			alert.ResolvedAt = &resolvedAt.Time
		}

		alerts = append(alerts, alert)
	}

	return alerts, rows.Err()
}

// AcknowledgeAlert marks a triggered alert as acknowledged by an operator.
func (db *DB) AcknowledgeAlert(alertID int64, acknowledgedBy string) error {
	result, err := db.DB.Exec(`
        UPDATE alerts
        SET status = ?, acknowledged_at = CURRENT_TIMESTAMP, acknowledged_by = ?
        WHERE id = ? AND status = ?
    `, string(AlertAcknowledged), acknowledgedBy, alertID, string(AlertTriggered))
	if err != nil {
		return fmt.Errorf("%w alert acknowledgement: %w", ErrFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if rowsAffected == 0 {
		return ErrAlertNotFound
	}

	return nil
}

// ResolveAlert marks an alert as resolved.
func (db *DB) ResolveAlert(alertID int64) error {
	result, err := db.DB.Exec(`
        UPDATE alerts
        SET status = ?, resolved_at = CURRENT_TIMESTAMP
        WHERE id = ? AND status != ?
    `, string(AlertResolved), alertID, string(AlertResolved))
	if err != nil {
		return fmt.Errorf("%w alert resolution: %w", ErrFailedToUpdate, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	if rowsAffected == 0 {
		return ErrAlertNotFound
	}

	return nil
}

// IsUnderMaintenance reports whether the device has an active maintenance
// window with alert suppression at the given time.
func (db *DB) IsUnderMaintenance(device models.Device, at time.Time) (bool, error) {
	const query = `
        SELECT COUNT(*) FROM maintenance_windows
        WHERE device_name = ?
          AND status IN ('scheduled', 'in_progress')
          AND suppress_alerts = 1
          AND scheduled_start <= ?
          AND scheduled_end >= ?
    `

	var count int

	if err := db.DB.QueryRow(query, device.Name, at, at).Scan(&count); err != nil {
		return false, fmt.Errorf("%w maintenance windows: %w", ErrFailedToQuery, err)
	}

	return count > 0, nil
}

func placeholders(n int) string {
	if n == 0 {
		return "''"
	}

	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
