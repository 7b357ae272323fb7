package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// Header represents a custom HTTP header.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WebhookConfig represents a webhook notification configuration.
type WebhookConfig struct {
	Enabled  bool     `json:"enabled"`
	URL      string   `json:"url"`
	Cooldown Duration `json:"cooldown"`
	Headers  []Header `json:"headers,omitempty"` // Optional custom headers
}

// SMTPConfig represents an email notification configuration.
type SMTPConfig struct {
	Enabled  bool     `json:"enabled"`
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`
	From     string   `json:"from"`
	To       []string `json:"to"` // Default recipients
}

// ProbeConfig controls how cameras are probed.
type ProbeConfig struct {
	Timeout       Duration `json:"timeout"`         // Per-device probe timeout
	Concurrency   int      `json:"concurrency"`     // Worker pool size for check batches
	RatePerSecond float64  `json:"rate_per_second"` // Fleet-wide probe pacing, 0 = unlimited
	Username      string   `json:"username"`
	Password      string   `json:"password"`
}

// AlertingConfig controls the transition alert controller.
type AlertingConfig struct {
	Threshold      int      `json:"threshold"`        // Consecutive failures before an alert
	Cooldown       Duration `json:"cooldown"`         // Between offline alerts for one device
	MaxDailyAlerts int      `json:"max_daily_alerts"` // Per device, reset at local midnight
	Recipients     []string `json:"recipients,omitempty"`
}

// RemediationConfig controls the auto-reboot controller.
type RemediationConfig struct {
	Enabled         bool   `json:"enabled"`
	RebootThreshold int    `json:"reboot_threshold"` // Consecutive failures before auto reboot
	CooldownHours   int    `json:"cooldown_hours"`   // Ticket cooldown between auto reboots
	Operator        string `json:"operator"`         // Recorded on reboot history and tickets
}

// CamwatchConfig is the top-level configuration for the camwatch process.
type CamwatchConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	DBPath          string          `json:"db_path"`
	CheckInterval   Duration        `json:"check_interval"`   // Live health check loop
	RuleInterval    Duration        `json:"rule_interval"`    // Rule evaluation loop
	SummaryInterval Duration        `json:"summary_interval"` // Fleet summary notification cadence
	RetentionDays   int             `json:"retention_days"`   // Prune window for events and closed downtime
	Devices       []models.Device   `json:"devices"`
	Probe         ProbeConfig       `json:"probe"`
	Alerting      AlertingConfig    `json:"alerting"`
	Remediation   RemediationConfig `json:"remediation"`
	Webhooks      []WebhookConfig   `json:"webhooks,omitempty"`
	SMTP          *SMTPConfig       `json:"smtp,omitempty"`
}

var (
	errNoDevices   = fmt.Errorf("no devices configured")
	errNoDBPath    = fmt.Errorf("db_path is required")
	errNoListen    = fmt.Errorf("listen_addr is required")
	errBadInterval = fmt.Errorf("check_interval must be positive")
)

func (c *CamwatchConfig) Validate() error {
	if c.ListenAddr == "" {
		return errNoListen
	}

	if c.DBPath == "" {
		return errNoDBPath
	}

	if time.Duration(c.CheckInterval) <= 0 {
		return errBadInterval
	}

	if len(c.Devices) == 0 {
		return errNoDevices
	}

	for i := range c.Devices {
		if c.Devices[i].Name == "" || c.Devices[i].IP == "" {
			return fmt.Errorf("device %d: name and ip are required", i)
		}
	}

	c.applyDefaults()

	return nil
}

func (c *CamwatchConfig) applyDefaults() {
	if time.Duration(c.RuleInterval) <= 0 {
		c.RuleInterval = Duration(5 * time.Minute)
	}

	if time.Duration(c.SummaryInterval) <= 0 {
		c.SummaryInterval = Duration(24 * time.Hour)
	}

	if c.RetentionDays <= 0 {
		c.RetentionDays = 30
	}

	if c.Alerting.Threshold <= 0 {
		c.Alerting.Threshold = 3
	}

	if time.Duration(c.Alerting.Cooldown) <= 0 {
		c.Alerting.Cooldown = Duration(30 * time.Minute)
	}

	if c.Alerting.MaxDailyAlerts <= 0 {
		c.Alerting.MaxDailyAlerts = 3
	}

	if c.Remediation.RebootThreshold <= 0 {
		c.Remediation.RebootThreshold = 6
	}

	if c.Remediation.CooldownHours <= 0 {
		c.Remediation.CooldownHours = 24
	}

	if c.Remediation.Operator == "" {
		c.Remediation.Operator = "camwatch"
	}

	if time.Duration(c.Probe.Timeout) <= 0 {
		c.Probe.Timeout = Duration(5 * time.Second)
	}

	if c.Probe.Concurrency <= 0 {
		c.Probe.Concurrency = 10
	}
}
