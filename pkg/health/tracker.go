// Package health derives and persists per-camera health state from probe
// results and drives the periodic check loop.
package health

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/models"
)

// EWMA weights for latency smoothing. Only successful sub-probes contribute,
// so a failed snapshot pull never drags the average.
const (
	ewmaOldWeight = 0.7
	ewmaNewWeight = 0.3
)

// Tracker owns the authoritative health state for every device. State lives
// in an in-memory cache backed by the durable store; the cache survives a
// store outage so checks keep flowing even with the disk unavailable.
type Tracker struct {
	store db.Service

	mu    sync.RWMutex
	cache map[string]*db.DeviceHealth
}

func NewTracker(store db.Service) *Tracker {
	return &Tracker{
		store: store,
		cache: make(map[string]*db.DeviceHealth),
	}
}

// Rehydrate loads persisted device state into the cache, so counters and
// uptime continue across restarts instead of resetting.
func (t *Tracker) Rehydrate() error {
	records, err := t.store.ListDeviceHealth()
	if err != nil {
		return fmt.Errorf("failed to rehydrate health state: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range records {
		record := records[i]
		t.cache[record.DeviceName] = &record
	}

	log.Printf("Rehydrated health state for %d devices", len(records))

	return nil
}

// RecordCheck folds one probe result into the device's state, persists the
// updated summary and the check event, and maintains downtime intervals.
// A store failure is logged but does not lose the in-memory update.
func (t *Tracker) RecordCheck(device models.Device, result models.ProbeResult, origin models.CheckOrigin, now time.Time) *CheckOutcome {
	current := models.DeriveStatus(result.ConnectivityOK, result.MediaOK)

	t.mu.Lock()

	record, previous := t.applyResult(device, result, current, now)
	snapshot := *record

	t.mu.Unlock()

	outcome := &CheckOutcome{
		Device:              device,
		Result:              result,
		Previous:            previous,
		Current:             current,
		ConsecutiveFailures: snapshot.ConsecutiveFailures,
		UptimePercentage:    snapshot.UptimePercentage,
		Changed:             previous != current,
		Origin:              origin,
		Timestamp:           now,
	}

	t.persist(&snapshot, outcome)
	t.maintainDowntime(outcome)

	return outcome
}

// applyResult mutates the cached record under the tracker lock and returns
// it along with the status before this check.
func (t *Tracker) applyResult(device models.Device, result models.ProbeResult, current models.Status, now time.Time) (*db.DeviceHealth, models.Status) {
	record, ok := t.cache[device.Name]
	if !ok {
		record = &db.DeviceHealth{
			DeviceName: device.Name,
			DeviceIP:   device.IP,
			Status:     models.StatusUnknown,
		}
		t.cache[device.Name] = record
	}

	previous := record.Status

	record.DeviceIP = device.IP
	record.Status = current
	record.LastCheck = now
	record.TotalChecks++

	if current == models.StatusOnline {
		record.SuccessfulChecks++
		record.ConsecutiveFailures = 0

		online := now
		record.LastOnline = &online
	} else {
		record.ConsecutiveFailures++

		offline := now
		record.LastOffline = &offline
	}

	if result.ConnectivityOK {
		record.AvgConnectMs = smooth(record.AvgConnectMs, result.ConnectivityMs)
	}

	if result.MediaOK {
		record.AvgMediaMs = smooth(record.AvgMediaMs, result.MediaMs)
	}

	record.UptimePercentage = float64(record.SuccessfulChecks) / float64(record.TotalChecks) * 100.0

	return record, previous
}

func smooth(avg *float64, sample int64) *float64 {
	if avg == nil {
		v := float64(sample)
		return &v
	}

	v := *avg*ewmaOldWeight + float64(sample)*ewmaNewWeight

	return &v
}

func (t *Tracker) persist(record *db.DeviceHealth, outcome *CheckOutcome) {
	event := &db.HealthCheckEvent{
		DeviceName:     outcome.Device.Name,
		DeviceIP:       outcome.Device.IP,
		Timestamp:      outcome.Timestamp,
		Status:         outcome.Current,
		ConnectivityOK: outcome.Result.ConnectivityOK,
		MediaOK:        outcome.Result.MediaOK,
		Origin:         outcome.Origin,
		ErrorMessage:   outcome.Result.Error,
	}

	if outcome.Result.ConnectivityOK {
		ms := outcome.Result.ConnectivityMs
		event.ConnectivityMs = &ms
	}

	if outcome.Result.MediaOK {
		ms := outcome.Result.MediaMs
		event.MediaMs = &ms
	}

	if err := t.store.RecordHealthCheck(record, event); err != nil {
		log.Printf("Failed to persist health check for %s: %v", outcome.Device.Name, err)
	}
}

// maintainDowntime opens an interval when a device leaves online and closes
// it when the device comes back.
func (t *Tracker) maintainDowntime(outcome *CheckOutcome) {
	if !outcome.Changed {
		return
	}

	switch {
	case outcome.Current.IsBad() && !outcome.Previous.IsBad():
		interval := &db.DowntimeInterval{
			DeviceName:   outcome.Device.Name,
			StartedAt:    outcome.Timestamp,
			StatusBefore: outcome.Previous,
			StatusDuring: outcome.Current,
		}

		if _, err := t.store.OpenDowntime(interval); err != nil {
			log.Printf("Failed to open downtime interval for %s: %v", outcome.Device.Name, err)
		}

	case outcome.Current == models.StatusOnline && outcome.Previous.IsBad():
		method := "auto"
		if outcome.Origin == models.OriginManual {
			method = "manual"
		}

		err := t.store.CloseDowntime(outcome.Device.Name, outcome.Timestamp, method)
		if err != nil && !errors.Is(err, db.ErrNoOpenDowntime) {
			log.Printf("Failed to close downtime interval for %s: %v", outcome.Device.Name, err)
		}
	}
}

// GetStatus returns the cached state for one device.
func (t *Tracker) GetStatus(deviceName string) (*db.DeviceHealth, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	record, ok := t.cache[deviceName]
	if !ok {
		return nil, false
	}

	snapshot := *record

	return &snapshot, true
}

// GetAllStatuses returns a snapshot of the whole fleet's cached state.
func (t *Tracker) GetAllStatuses() []db.DeviceHealth {
	t.mu.RLock()
	defer t.mu.RUnlock()

	records := make([]db.DeviceHealth, 0, len(t.cache))
	for _, record := range t.cache {
		records = append(records, *record)
	}

	return records
}

// Statistics summarizes the fleet by status.
type Statistics struct {
	Total    int `json:"total"`
	Online   int `json:"online"`
	Degraded int `json:"degraded"`
	Offline  int `json:"offline"`
	Unknown  int `json:"unknown"`
}

func (t *Tracker) Statistics() Statistics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := Statistics{Total: len(t.cache)}

	for _, record := range t.cache {
		switch record.Status {
		case models.StatusOnline:
			stats.Online++
		case models.StatusDegraded:
			stats.Degraded++
		case models.StatusOffline:
			stats.Offline++
		default:
			stats.Unknown++
		}
	}

	return stats
}
