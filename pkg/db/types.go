package db

import (
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

// DeviceHealth is the mutable per-device summary row, owned by the health
// tracker and upserted on every check.
type DeviceHealth struct {
	DeviceName          string        `json:"device_name"`
	DeviceIP            string        `json:"device_ip"`
	Status              models.Status `json:"status"`
	LastCheck           time.Time     `json:"last_check"`
	LastOnline          *time.Time    `json:"last_online,omitempty"`
	LastOffline         *time.Time    `json:"last_offline,omitempty"`
	ConsecutiveFailures int           `json:"consecutive_failures"`
	TotalChecks         int           `json:"total_checks"`
	SuccessfulChecks    int           `json:"successful_checks"`
	AvgConnectMs        *float64      `json:"avg_connect_ms,omitempty"`
	AvgMediaMs          *float64      `json:"avg_media_ms,omitempty"`
	UptimePercentage    float64       `json:"uptime_percentage"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// HealthCheckEvent is one immutable row in the append-only check log.
type HealthCheckEvent struct {
	ID             int64              `json:"id"`
	DeviceName     string             `json:"device_name"`
	DeviceIP       string             `json:"device_ip"`
	Timestamp      time.Time          `json:"timestamp"`
	Status         models.Status      `json:"status"`
	ConnectivityOK bool               `json:"connectivity_ok"`
	ConnectivityMs *int64             `json:"connectivity_ms,omitempty"`
	MediaOK        bool               `json:"media_ok"`
	MediaMs        *int64             `json:"media_ms,omitempty"`
	Origin         models.CheckOrigin `json:"origin"`
	ErrorMessage   string             `json:"error_message,omitempty"`
}

// DowntimeInterval bounds one incident: the span during which a device was
// not online. EndedAt is nil while the device is still down.
type DowntimeInterval struct {
	ID             int64         `json:"id"`
	DeviceName     string        `json:"device_name"`
	StartedAt      time.Time     `json:"started_at"`
	EndedAt        *time.Time    `json:"ended_at,omitempty"`
	StatusBefore   models.Status `json:"status_before"`
	StatusDuring   models.Status `json:"status_during"`
	RecoveryMethod string        `json:"recovery_method,omitempty"`
	TicketID       *int64        `json:"ticket_id,omitempty"`
}

// Duration returns the elapsed length of the interval, using now for open
// intervals.
func (d *DowntimeInterval) Duration(now time.Time) time.Duration {
	if d.EndedAt != nil {
		return d.EndedAt.Sub(d.StartedAt)
	}

	return now.Sub(d.StartedAt)
}

func statusFromString(s string) models.Status {
	switch models.Status(s) {
	case models.StatusOnline, models.StatusDegraded, models.StatusOffline:
		return models.Status(s)
	default:
		return models.StatusUnknown
	}
}

func originFromString(s string) models.CheckOrigin {
	if models.CheckOrigin(s) == models.OriginManual {
		return models.OriginManual
	}

	return models.OriginScheduled
}

// RuleType identifies one of the declarative alert rule kinds.
type RuleType string

const (
	RuleSLAViolation     RuleType = "sla_violation"
	RuleExtendedDowntime RuleType = "extended_downtime"
	RuleRecovery         RuleType = "recovery"
)

// Rule scope values.
const (
	ScopeDevice = "device"
	ScopeGroup  = "group"
	ScopeAll    = "all"
)

// AlertRule is an operator-authored declarative rule evaluated by the rule
// engine.
type AlertRule struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Type                RuleType `json:"rule_type"`
	Threshold           float64  `json:"threshold_value"`
	Operator            string   `json:"threshold_operator"` // "<", ">", "<=", ">="
	WindowMinutes       int      `json:"evaluation_window_minutes"`
	AppliesTo           string   `json:"applies_to"` // device, group, all
	DeviceName          string   `json:"device_name,omitempty"`
	GroupName           string   `json:"group_name,omitempty"`
	Severity            string   `json:"severity"`
	RateLimitMinutes    int      `json:"rate_limit_minutes"`
	SuppressMaintenance bool     `json:"suppress_during_maintenance"`
	Channels            string   `json:"notification_channels"` // comma-separated, e.g. "email,webhook"
	Recipients          string   `json:"recipients"`            // comma-separated
	Enabled             bool     `json:"enabled"`
}

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	AlertTriggered    AlertStatus = "triggered"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// Alert kinds raised by the transition controller (rule-engine alerts carry
// the rule type instead).
const (
	AlertTypeOffline  = "offline"
	AlertTypeDegraded = "degraded"
	AlertTypeRecovery = "recovery"
)

// Alert is one triggered alert, retained for audit and SLA reporting.
type Alert struct {
	ID                int64       `json:"id"`
	RuleID            *int64      `json:"rule_id,omitempty"`
	DeviceName        string      `json:"device_name"`
	Type              string      `json:"alert_type"`
	Severity          string      `json:"severity"`
	Message           string      `json:"message"`
	TriggerValue      *float64    `json:"trigger_value,omitempty"`
	ThresholdValue    *float64    `json:"threshold_value,omitempty"`
	Status            AlertStatus `json:"status"`
	TriggeredAt       time.Time   `json:"triggered_at"`
	AcknowledgedAt    *time.Time  `json:"acknowledged_at,omitempty"`
	AcknowledgedBy    string      `json:"acknowledged_by,omitempty"`
	ResolvedAt        *time.Time  `json:"resolved_at,omitempty"`
	NotificationSent  bool        `json:"notification_sent"`
	NotificationError string      `json:"notification_error,omitempty"`
	Escalated         bool        `json:"escalated"`
}

// RebootRecord is one entry in the remediation audit trail.
type RebootRecord struct {
	ID         int64     `json:"id"`
	DeviceName string    `json:"device_name"`
	DeviceIP   string    `json:"device_ip"`
	Timestamp  time.Time `json:"timestamp"`
	Operator   string    `json:"operator"`
	Reason     string    `json:"reason"`
	Outcome    string    `json:"outcome"` // success or failure
	TicketID   *int64    `json:"ticket_id,omitempty"`
	RebootType string    `json:"reboot_type"` // auto or manual
}

// SystemHistoryPoint is one bucket of the fleet-wide status timeseries.
type SystemHistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Online    int       `json:"online"`
	Degraded  int       `json:"degraded"`
	Offline   int       `json:"offline"`
}
