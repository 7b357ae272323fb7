package remediation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/db"
	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/models"
)

const rebootTimeout = 30 * time.Second

// guard is the per-device remediation state. underRemediation blocks a
// second reboot while one is in flight or unconfirmed; cooldownUntil blocks
// repeat reboots for a whole ticket cycle even across restarts.
type guard struct {
	underRemediation bool
	cooldownUntil    time.Time
}

// Controller watches the check stream and reboots devices whose failure
// streak passes the reboot threshold. Every attempt lands in the reboot
// audit trail and is stamped onto the open downtime interval as a ticket.
type Controller struct {
	store  db.Service
	action Action
	cfg    config.RemediationConfig

	mu     sync.Mutex
	guards map[string]*guard
}

func NewController(store db.Service, action Action, cfg config.RemediationConfig) *Controller {
	return &Controller{
		store:  store,
		action: action,
		cfg:    cfg,
		guards: make(map[string]*guard),
	}
}

// Rehydrate restores per-device cooldowns from the reboot audit trail, so a
// restart cannot shortcut the reboot cooldown.
func (c *Controller) Rehydrate(devices []models.Device) {
	cooldown := time.Duration(c.cfg.CooldownHours) * time.Hour

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, device := range devices {
		record, err := c.store.LastAutoReboot(device.Name)
		if err != nil {
			log.Printf("Failed to load reboot history for %s: %v", device.Name, err)
			continue
		}

		if record == nil {
			continue
		}

		until := record.Timestamp.Add(cooldown)
		if until.After(time.Now()) {
			c.guards[device.Name] = &guard{cooldownUntil: until}
		}
	}
}

// HandleOutcome implements health.OutcomeHandler.
func (c *Controller) HandleOutcome(outcome *health.CheckOutcome) {
	if !c.cfg.Enabled {
		return
	}

	if outcome.Current == models.StatusOnline {
		c.clearOnRecovery(outcome.Device.Name)
		return
	}

	if !outcome.Current.IsBad() {
		return
	}

	if !c.arm(outcome) {
		return
	}

	go c.reboot(outcome)
}

// clearOnRecovery releases the in-flight guard once the device is back. The
// cooldown deliberately stays: a camera that needed a reboot an hour ago
// does not get another one the moment it flaps again.
func (c *Controller) clearOnRecovery(deviceName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.guards[deviceName]; ok {
		g.underRemediation = false
	}
}

// arm checks the gates in order and, when all pass, claims the guard before
// the reboot is attempted. Claiming first closes the window where two
// concurrent outcomes could both decide to reboot.
func (c *Controller) arm(outcome *health.CheckOutcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.guards[outcome.Device.Name]
	if !ok {
		g = &guard{}
		c.guards[outcome.Device.Name] = g
	}

	if outcome.Timestamp.Before(g.cooldownUntil) {
		return false
	}

	if g.underRemediation {
		return false
	}

	if outcome.ConsecutiveFailures < c.cfg.RebootThreshold {
		return false
	}

	g.underRemediation = true
	g.cooldownUntil = outcome.Timestamp.Add(time.Duration(c.cfg.CooldownHours) * time.Hour)

	return true
}

func (c *Controller) reboot(outcome *health.CheckOutcome) {
	ctx, cancel := context.WithTimeout(context.Background(), rebootTimeout)
	defer cancel()

	log.Printf("Auto-rebooting %s (%s): %d consecutive failures",
		outcome.Device.Name, outcome.Device.IP, outcome.ConsecutiveFailures)

	reason := fmt.Sprintf("auto: %d consecutive failed checks", outcome.ConsecutiveFailures)

	externalTicket, err := c.action.Reboot(ctx, outcome.Device, c.cfg.Operator, reason)

	outcomeStr := "success"
	if err != nil {
		outcomeStr = "failure"

		log.Printf("Auto-reboot of %s failed: %v", outcome.Device.Name, err)
	}

	record := &db.RebootRecord{
		DeviceName: outcome.Device.Name,
		DeviceIP:   outcome.Device.IP,
		Timestamp:  time.Now(),
		Operator:   c.cfg.Operator,
		Reason:     reason,
		Outcome:    outcomeStr,
		RebootType: "auto",
	}

	ticketID, dbErr := c.store.InsertReboot(record)
	if dbErr != nil {
		log.Printf("Failed to record reboot of %s: %v", outcome.Device.Name, dbErr)
		return
	}

	// An action-supplied ticket wins over the local reboot record id.
	if externalTicket != nil {
		ticketID = *externalTicket
	}

	c.attachTicket(outcome.Device.Name, ticketID)
}

// attachTicket stamps the reboot ticket onto the device's open downtime
// interval, tying the outage to the remediation that tried to end it.
func (c *Controller) attachTicket(deviceName string, ticketID int64) {
	interval, err := c.store.GetOpenDowntime(deviceName, time.Time{})
	if err != nil {
		if !errors.Is(err, db.ErrNoOpenDowntime) {
			log.Printf("Failed to find downtime interval for %s: %v", deviceName, err)
		}

		return
	}

	if err := c.store.SetDowntimeTicket(interval.ID, ticketID); err != nil {
		log.Printf("Failed to attach ticket %d to downtime interval %d: %v", ticketID, interval.ID, err)
	}
}

// DeviceState is the externally visible remediation state of one device.
type DeviceState struct {
	DeviceName       string     `json:"device_name"`
	UnderRemediation bool       `json:"under_remediation"`
	CooldownUntil    *time.Time `json:"cooldown_until,omitempty"`
}

// ListStates returns the devices with active remediation state.
func (c *Controller) ListStates() []DeviceState {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	states := make([]DeviceState, 0, len(c.guards))

	for name, g := range c.guards {
		state := DeviceState{
			DeviceName:       name,
			UnderRemediation: g.underRemediation,
		}

		if g.cooldownUntil.After(now) {
			until := g.cooldownUntil
			state.CooldownUntil = &until
		}

		if state.UnderRemediation || state.CooldownUntil != nil {
			states = append(states, state)
		}
	}

	return states
}

// Clear releases the in-flight guard for a device. With alsoResetCooldown
// the reboot cooldown is dropped too, re-arming the device immediately.
// Exposed for operators who have fixed a camera by hand.
func (c *Controller) Clear(deviceName string, alsoResetCooldown bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.guards[deviceName]
	if !ok {
		return
	}

	if alsoResetCooldown {
		delete(c.guards, deviceName)
		return
	}

	g.underRemediation = false
	if !g.cooldownUntil.After(time.Now()) {
		delete(c.guards, deviceName)
	}
}
