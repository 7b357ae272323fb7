package alerts

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/notify"
)

// summaryProblemFailures is how many consecutive failed checks a device
// needs before the digest lists it as a problem. Counts in the header still
// cover every unhealthy device; the problem list skips one-check blips.
const summaryProblemFailures = 3

// SendSummary emails a fleet health digest: per-status counts plus the
// devices with an established failure streak, with their uptime over the
// stored window.
func (c *Controller) SendSummary(ctx context.Context) error {
	records, err := c.store.ListDeviceHealth()
	if err != nil {
		return fmt.Errorf("failed to load fleet state for summary: %w", err)
	}

	var online, degraded, offline int

	var problems []string

	for _, record := range records {
		switch {
		case record.Status.IsBad():
			if record.Status == models.StatusDegraded {
				degraded++
			} else {
				offline++
			}

			if record.ConsecutiveFailures >= summaryProblemFailures {
				problems = append(problems, fmt.Sprintf("%s (%s): %s, uptime %.1f%%, %d consecutive failures",
					record.DeviceName, record.DeviceIP, record.Status,
					record.UptimePercentage, record.ConsecutiveFailures))
			}
		default:
			online++
		}
	}

	sort.Strings(problems)

	var b strings.Builder

	fmt.Fprintf(&b, "Fleet health: %d online, %d degraded, %d offline of %d cameras\n",
		online, degraded, offline, len(records))

	if len(problems) > 0 {
		b.WriteString("\nUnhealthy cameras:\n")

		for _, p := range problems {
			b.WriteString("  - " + p + "\n")
		}
	}

	level := notify.Info
	if offline > 0 {
		level = notify.Warning
	}

	return c.notifier.Notify(ctx, &notify.Notification{
		Level:      level,
		Title:      fmt.Sprintf("Daily camera fleet summary: %d/%d online", online, len(records)),
		Message:    b.String(),
		Recipients: c.cfg.Recipients,
	})
}

// RunSummaryLoop sends the digest on a fixed interval until the context is
// canceled.
func (c *Controller) RunSummaryLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.SendSummary(ctx); err != nil {
				log.Printf("Failed to send fleet summary: %v", err)
			}
		}
	}
}
