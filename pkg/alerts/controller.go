// Package alerts raises status transition alerts: offline, degraded and
// recovery. Rule-driven alerting lives in pkg/rules; this controller reacts
// to the live check stream.
package alerts

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/notify"
)

const notifyTimeout = 10 * time.Second

// badAlertTypes are the alert kinds that share the cooldown and daily cap.
var badAlertTypes = []string{db.AlertTypeOffline, db.AlertTypeDegraded}

// incident tracks whether the current unhealthy stretch of one device has
// already produced an alert. One alert per incident, not per check.
type incident struct {
	alerted bool
}

// Controller turns check outcomes into transition alerts. Cooldowns and the
// daily cap are evaluated from stored alert timestamps, so a restart cannot
// re-arm a device that already alerted.
type Controller struct {
	store    db.Service
	notifier notify.Notifier
	cfg      config.AlertingConfig

	mu        sync.Mutex
	incidents map[string]*incident
}

func NewController(store db.Service, notifier notify.Notifier, cfg config.AlertingConfig) *Controller {
	return &Controller{
		store:     store,
		notifier:  notifier,
		cfg:       cfg,
		incidents: make(map[string]*incident),
	}
}

// Rehydrate rebuilds per-incident alert state after a restart. A device with
// an open downtime interval whose alert fired after the interval started is
// marked as already alerted, so it will not alert twice for the same outage.
func (c *Controller) Rehydrate(devices []models.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, device := range devices {
		open, err := c.store.GetOpenDowntime(device.Name, time.Time{})
		if err != nil {
			continue
		}

		last, err := c.store.LastTransitionAlert(device.Name, badAlertTypes)
		if err != nil || last.IsZero() {
			continue
		}

		if !last.Before(open.StartedAt) {
			c.incidents[device.Name] = &incident{alerted: true}
		}
	}
}

// HandleOutcome implements health.OutcomeHandler.
func (c *Controller) HandleOutcome(outcome *health.CheckOutcome) {
	if outcome.Current.IsBad() {
		c.handleUnhealthy(outcome)
		return
	}

	if outcome.Current == models.StatusOnline {
		c.handleRecovery(outcome)
	}
}

func (c *Controller) handleUnhealthy(outcome *health.CheckOutcome) {
	c.mu.Lock()

	inc, ok := c.incidents[outcome.Device.Name]
	if !ok {
		inc = &incident{}
		c.incidents[outcome.Device.Name] = inc
	}

	shouldAlert := !inc.alerted && outcome.ConsecutiveFailures >= c.cfg.Threshold

	c.mu.Unlock()

	if !shouldAlert {
		return
	}

	if c.suppressed(outcome) {
		return
	}

	if c.fireTransitionAlert(outcome) {
		c.mu.Lock()
		inc.alerted = true
		c.mu.Unlock()
	}
}

func (c *Controller) handleRecovery(outcome *health.CheckOutcome) {
	c.mu.Lock()
	delete(c.incidents, outcome.Device.Name)
	c.mu.Unlock()

	// Previous is only bad on the transition check itself, which keeps this
	// to one recovery alert per incident.
	if !outcome.Previous.IsBad() {
		return
	}

	c.fireRecoveryAlert(outcome)
}

// suppressed applies maintenance windows, the per-device cooldown and the
// daily cap. Cooldown suppression does not consume the incident's one alert:
// the next check retries once the cooldown has passed.
func (c *Controller) suppressed(outcome *health.CheckOutcome) bool {
	underMaintenance, err := c.store.IsUnderMaintenance(outcome.Device, outcome.Timestamp)
	if err != nil {
		log.Printf("Failed to check maintenance window for %s: %v", outcome.Device.Name, err)
	} else if underMaintenance {
		log.Printf("Suppressing alert for %s: under maintenance", outcome.Device.Name)
		return true
	}

	last, err := c.store.LastTransitionAlert(outcome.Device.Name, badAlertTypes)
	if err != nil {
		log.Printf("Failed to query last alert for %s: %v", outcome.Device.Name, err)
	} else if !last.IsZero() && outcome.Timestamp.Sub(last) < time.Duration(c.cfg.Cooldown) {
		return true
	}

	startOfDay := time.Date(outcome.Timestamp.Year(), outcome.Timestamp.Month(), outcome.Timestamp.Day(),
		0, 0, 0, 0, outcome.Timestamp.Location())

	count, err := c.store.CountAlertsSince(outcome.Device.Name, badAlertTypes, startOfDay)
	if err != nil {
		log.Printf("Failed to count alerts for %s: %v", outcome.Device.Name, err)
		return false
	}

	if count >= c.cfg.MaxDailyAlerts {
		log.Printf("Suppressing alert for %s: daily cap of %d reached", outcome.Device.Name, c.cfg.MaxDailyAlerts)
		return true
	}

	return false
}

func (c *Controller) fireTransitionAlert(outcome *health.CheckOutcome) bool {
	alertType := db.AlertTypeOffline
	severity := "critical"
	level := notify.Error

	if outcome.Current == models.StatusDegraded {
		alertType = db.AlertTypeDegraded
		severity = "warning"
		level = notify.Warning
	}

	message := fmt.Sprintf("Camera %s (%s) is %s after %d consecutive failed checks",
		outcome.Device.Name, outcome.Device.IP, outcome.Current, outcome.ConsecutiveFailures)

	alert := &db.Alert{
		DeviceName:  outcome.Device.Name,
		Type:        alertType,
		Severity:    severity,
		Message:     message,
		TriggeredAt: outcome.Timestamp,
	}

	if _, err := c.store.InsertAlert(alert); err != nil {
		log.Printf("Failed to record alert for %s: %v", outcome.Device.Name, err)
		return false
	}

	c.deliver(alert, &notify.Notification{
		Level:      level,
		Title:      fmt.Sprintf("Camera %s: %s", outcome.Current, outcome.Device.Name),
		Message:    message,
		DeviceName: outcome.Device.Name,
		Recipients: c.cfg.Recipients,
		Details: map[string]any{
			"status":               string(outcome.Current),
			"consecutive_failures": outcome.ConsecutiveFailures,
			"uptime_percentage":    outcome.UptimePercentage,
			"error":                outcome.Result.Error,
		},
	})

	return true
}

func (c *Controller) fireRecoveryAlert(outcome *health.CheckOutcome) {
	downtime := "unknown"

	if interval, err := c.store.GetLastClosedDowntime(outcome.Device.Name); err == nil {
		downtime = interval.Duration(outcome.Timestamp).Round(time.Second).String()
	}

	message := fmt.Sprintf("Camera %s (%s) recovered after %s of downtime",
		outcome.Device.Name, outcome.Device.IP, downtime)

	alert := &db.Alert{
		DeviceName:  outcome.Device.Name,
		Type:        db.AlertTypeRecovery,
		Severity:    "info",
		Message:     message,
		TriggeredAt: outcome.Timestamp,
	}

	if _, err := c.store.InsertAlert(alert); err != nil {
		log.Printf("Failed to record recovery alert for %s: %v", outcome.Device.Name, err)
		return
	}

	c.deliver(alert, &notify.Notification{
		Level:      notify.Info,
		Title:      "Camera recovered: " + outcome.Device.Name,
		Message:    message,
		DeviceName: outcome.Device.Name,
		Recipients: c.cfg.Recipients,
		Details: map[string]any{
			"downtime": downtime,
		},
	})
}

// deliver sends the notification off the check path and records the
// delivery outcome on the stored alert.
func (c *Controller) deliver(alert *db.Alert, notification *notify.Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		err := c.notifier.Notify(ctx, notification)

		errMsg := ""
		if err != nil {
			errMsg = err.Error()

			log.Printf("Failed to deliver alert %d for %s: %v", alert.ID, alert.DeviceName, err)
		}

		if dbErr := c.store.SetAlertNotification(alert.ID, err == nil, errMsg); dbErr != nil {
			log.Printf("Failed to record notification outcome for alert %d: %v", alert.ID, dbErr)
		}
	}()
}
