// Package rules evaluates operator-authored alert rules against stored
// health history: SLA violations, extended downtime and recoveries.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/notify"
)

var errUnknownRuleType = errors.New("unknown rule type")

// Engine periodically loads the enabled rules and evaluates each against
// its device scope. Rules are independent: one failing rule never blocks
// the rest of the evaluation pass.
type Engine struct {
	store    db.Service
	notifier *notify.Multi
	devices  []models.Device
	interval time.Duration
	done     chan struct{}

	// lastEval bounds the recovery lookback so a recovery fires on the
	// first pass after it happens, not on every pass.
	lastEval time.Time

	// now is swappable for tests.
	now func() time.Time
}

func NewEngine(store db.Service, notifier *notify.Multi, devices []models.Device, interval config.Duration) *Engine {
	d := time.Duration(interval)
	if d <= 0 {
		d = 5 * time.Minute
	}

	return &Engine{
		store:    store,
		notifier: notifier,
		devices:  devices,
		interval: d,
		done:     make(chan struct{}),
		now:      time.Now,
	}
}

// Run evaluates rules on the configured interval until the context is
// canceled or Stop is called. The first pass runs immediately.
func (e *Engine) Run(ctx context.Context) error {
	log.Printf("Starting rule engine: interval %s", e.interval)

	e.Evaluate(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return nil
		case <-ticker.C:
			e.Evaluate(ctx)
		}
	}
}

func (e *Engine) Stop() {
	close(e.done)
}

// Evaluate runs one full pass over the enabled rules. A store failure on
// rule load aborts the pass; the next tick retries.
func (e *Engine) Evaluate(ctx context.Context) {
	now := e.now()

	rules, err := e.store.ListEnabledRules()
	if err != nil {
		log.Printf("Failed to load alert rules, skipping pass: %v", err)
		return
	}

	for i := range rules {
		rule := &rules[i]

		if err := e.evaluateRule(ctx, rule, now); err != nil {
			log.Printf("Rule %q (%d) evaluation failed: %v", rule.Name, rule.ID, err)
		}
	}

	e.lastEval = now
}

func (e *Engine) evaluateRule(ctx context.Context, rule *db.AlertRule, now time.Time) error {
	scope, err := e.resolveScope(rule)
	if err != nil {
		return err
	}

	for _, device := range scope {
		if err := e.evaluateForDevice(ctx, rule, device, now); err != nil {
			log.Printf("Rule %q failed for device %s: %v", rule.Name, device.Name, err)
		}
	}

	return nil
}

// resolveScope expands a rule to the devices it applies to. Group
// membership comes from the store; unknown members are skipped.
func (e *Engine) resolveScope(rule *db.AlertRule) ([]models.Device, error) {
	switch rule.AppliesTo {
	case db.ScopeDevice:
		if device, ok := e.findDevice(rule.DeviceName); ok {
			return []models.Device{device}, nil
		}

		return nil, nil
	case db.ScopeGroup:
		members, err := e.store.GroupMembers(rule.GroupName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve group %q: %w", rule.GroupName, err)
		}

		var scope []models.Device

		for _, name := range members {
			if device, ok := e.findDevice(name); ok {
				scope = append(scope, device)
			}
		}

		return scope, nil
	default:
		return e.devices, nil
	}
}

func (e *Engine) findDevice(name string) (models.Device, bool) {
	for _, device := range e.devices {
		if device.Name == name {
			return device, true
		}
	}

	return models.Device{}, false
}

func (e *Engine) evaluateForDevice(ctx context.Context, rule *db.AlertRule, device models.Device, now time.Time) error {
	triggered, value, message, err := e.checkCondition(rule, device, now)
	if err != nil || !triggered {
		return err
	}

	if e.ruleSuppressed(rule, device, now) {
		return nil
	}

	return e.fire(ctx, rule, device, value, message, now)
}

func (e *Engine) checkCondition(rule *db.AlertRule, device models.Device, now time.Time) (triggered bool, value float64, message string, err error) {
	switch rule.Type {
	case db.RuleSLAViolation:
		return e.checkSLA(rule, device, now)
	case db.RuleExtendedDowntime:
		return e.checkExtendedDowntime(rule, device, now)
	case db.RuleRecovery:
		return e.checkRecovery(rule, device, now)
	default:
		return false, 0, "", fmt.Errorf("%w: %q", errUnknownRuleType, rule.Type)
	}
}

func (e *Engine) checkSLA(rule *db.AlertRule, device models.Device, now time.Time) (bool, float64, string, error) {
	since := now.Add(-time.Duration(rule.WindowMinutes) * time.Minute)

	uptime, total, err := e.store.ComputeUptime(device.Name, since)
	if err != nil {
		return false, 0, "", err
	}

	// No checks in the window means no evidence either way.
	if total == 0 {
		return false, 0, "", nil
	}

	if !compare(uptime, rule.Operator, rule.Threshold) {
		return false, 0, "", nil
	}

	message := fmt.Sprintf("Camera %s uptime %.1f%% over the last %dm violates the %.1f%% SLA",
		device.Name, uptime, rule.WindowMinutes, rule.Threshold)

	return true, uptime, message, nil
}

func (e *Engine) checkExtendedDowntime(rule *db.AlertRule, device models.Device, now time.Time) (bool, float64, string, error) {
	// Only intervals that started within the last day; anything older is a
	// stale incident the extended-downtime rule should not keep re-raising.
	interval, err := e.store.GetOpenDowntime(device.Name, now.Add(-24*time.Hour))
	if errors.Is(err, db.ErrNoOpenDowntime) {
		return false, 0, "", nil
	}

	if err != nil {
		return false, 0, "", err
	}

	minutes := interval.Duration(now).Minutes()
	if !compare(minutes, rule.Operator, rule.Threshold) {
		return false, 0, "", nil
	}

	message := fmt.Sprintf("Camera %s has been down for %.0f minutes (since %s)",
		device.Name, minutes, interval.StartedAt.Format(time.RFC3339))

	return true, minutes, message, nil
}

func (e *Engine) checkRecovery(rule *db.AlertRule, device models.Device, now time.Time) (bool, float64, string, error) {
	interval, err := e.store.GetLastClosedDowntime(device.Name)
	if errors.Is(err, db.ErrNoClosedDowntime) {
		return false, 0, "", nil
	}

	if err != nil {
		return false, 0, "", err
	}

	// Only recoveries that happened since the previous pass.
	if interval.EndedAt == nil || !interval.EndedAt.After(e.lastEval) {
		return false, 0, "", nil
	}

	// The rule's window bounds recency independently of lastEval, which is
	// zero on the first pass after a restart.
	if rule.WindowMinutes > 0 &&
		interval.EndedAt.Before(now.Add(-time.Duration(rule.WindowMinutes)*time.Minute)) {
		return false, 0, "", nil
	}

	minutes := interval.Duration(now).Minutes()

	// The threshold filters out blips not worth reporting.
	if rule.Threshold > 0 && !compare(minutes, rule.Operator, rule.Threshold) {
		return false, 0, "", nil
	}

	method := interval.RecoveryMethod
	if method == "" {
		method = "auto"
	}

	message := fmt.Sprintf("Camera %s recovered (%s) after %.0f minutes of downtime",
		device.Name, method, minutes)

	return true, minutes, message, nil
}

// ruleSuppressed applies the rule's maintenance flag and rate limit.
func (e *Engine) ruleSuppressed(rule *db.AlertRule, device models.Device, now time.Time) bool {
	if rule.SuppressMaintenance {
		under, err := e.store.IsUnderMaintenance(device, now)
		if err != nil {
			log.Printf("Failed to check maintenance for %s: %v", device.Name, err)
		} else if under {
			return true
		}
	}

	if rule.RateLimitMinutes > 0 {
		last, err := e.store.LastRuleAlert(rule.ID, device.Name)
		if err != nil {
			log.Printf("Failed to check rate limit for rule %d on %s: %v", rule.ID, device.Name, err)
		} else if !last.IsZero() && now.Sub(last) < time.Duration(rule.RateLimitMinutes)*time.Minute {
			return true
		}
	}

	return false
}

func (e *Engine) fire(ctx context.Context, rule *db.AlertRule, device models.Device, value float64, message string, now time.Time) error {
	ruleID := rule.ID
	threshold := rule.Threshold

	alert := &db.Alert{
		RuleID:         &ruleID,
		DeviceName:     device.Name,
		Type:           string(rule.Type),
		Severity:       rule.Severity,
		Message:        message,
		TriggerValue:   &value,
		ThresholdValue: &threshold,
		TriggeredAt:    now,
	}

	if _, err := e.store.InsertAlert(alert); err != nil {
		return fmt.Errorf("failed to record rule alert: %w", err)
	}

	level := notify.Warning
	if rule.Severity == "critical" {
		level = notify.Error
	}

	notification := &notify.Notification{
		Level:      level,
		Title:      fmt.Sprintf("%s: %s", rule.Name, device.Name),
		Message:    message,
		DeviceName: device.Name,
		Recipients: splitList(rule.Recipients),
		Details: map[string]any{
			"rule":      rule.Name,
			"value":     value,
			"threshold": rule.Threshold,
		},
	}

	channels := e.notifier.Channels(splitList(rule.Channels))
	err := e.notifier.NotifyChannels(ctx, channels, notification)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	if dbErr := e.store.SetAlertNotification(alert.ID, err == nil, errMsg); dbErr != nil {
		log.Printf("Failed to record notification outcome for alert %d: %v", alert.ID, dbErr)
	}

	return err
}

func compare(value float64, operator string, threshold float64) bool {
	switch operator {
	case ">":
		return value > threshold
	case ">=":
		return value >= threshold
	case "<=":
		return value <= threshold
	default:
		return value < threshold
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
