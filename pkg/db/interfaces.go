// Package db pkg/db/interfaces.go
package db

import (
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/fdot3/camwatch/pkg/db Row,Result,Rows,Transaction,Service

// Row represents a database row.
type Row interface {
	Scan(dest ...interface{}) error
}

// Result represents the result of a database operation.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// Rows represents multiple database rows.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Err() error
}

// Transaction represents operations that can be performed within a database transaction.
type Transaction interface {
	Exec(query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (Rows, error)
	QueryRow(query string, args ...interface{}) Row
	Commit() error
	Rollback() error
}

// Service represents all database operations.
type Service interface {
	// Core database operations.

	Begin() (Transaction, error)
	Close() error
	Exec(query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (Rows, error)
	QueryRow(query string, args ...interface{}) Row

	// Device health operations.

	RecordHealthCheck(record *DeviceHealth, event *HealthCheckEvent) error
	GetDeviceHealth(deviceName string) (*DeviceHealth, error)
	ListDeviceHealth() ([]DeviceHealth, error)
	GetDeviceHistory(deviceName string, since time.Time, limit int) ([]HealthCheckEvent, error)
	GetSystemHistory(since time.Time, bucket time.Duration) ([]SystemHistoryPoint, error)
	ComputeUptime(deviceName string, since time.Time) (uptimePct float64, totalChecks int, err error)

	// Downtime operations.

	OpenDowntime(interval *DowntimeInterval) (int64, error)
	CloseDowntime(deviceName string, endedAt time.Time, method string) error
	GetOpenDowntime(deviceName string, since time.Time) (*DowntimeInterval, error)
	GetLastClosedDowntime(deviceName string) (*DowntimeInterval, error)
	SetDowntimeTicket(intervalID, ticketID int64) error

	// Alert rule operations.

	ListEnabledRules() ([]AlertRule, error)
	GroupMembers(groupName string) ([]string, error)

	// Alert operations.

	InsertAlert(alert *Alert) (int64, error)
	LastRuleAlert(ruleID int64, deviceName string) (time.Time, error)
	LastTransitionAlert(deviceName string, alertTypes []string) (time.Time, error)
	CountAlertsSince(deviceName string, alertTypes []string, since time.Time) (int, error)
	SetAlertNotification(alertID int64, sent bool, errMsg string) error
	ListAlerts(status AlertStatus, limit int) ([]Alert, error)
	AcknowledgeAlert(alertID int64, acknowledgedBy string) error
	ResolveAlert(alertID int64) error

	// Remediation operations.

	InsertReboot(record *RebootRecord) (int64, error)
	LastAutoReboot(deviceName string) (*RebootRecord, error)

	// Maintenance operations.

	IsUnderMaintenance(device models.Device, at time.Time) (bool, error)
	CleanOldData(retentionPeriod time.Duration) error
}
