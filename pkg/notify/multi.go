package notify

import (
	"context"
	"errors"
	"log"
)

// Multi fans a notification out to a set of channels. Cooldown skips on one
// channel are not failures and do not mask delivery on the others.
type Multi struct {
	notifiers []Notifier
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) IsEnabled() bool {
	for _, n := range m.notifiers {
		if n.IsEnabled() {
			return true
		}
	}

	return false
}

func (*Multi) Name() string {
	return "multi"
}

// Channels returns the subset of notifiers whose names appear in the list.
// An empty list selects every notifier.
func (m *Multi) Channels(names []string) []Notifier {
	if len(names) == 0 {
		return m.notifiers
	}

	var selected []Notifier

	for _, n := range m.notifiers {
		for _, name := range names {
			if n.Name() == name {
				selected = append(selected, n)
				break
			}
		}
	}

	return selected
}

// Notify delivers to every enabled channel, collecting real failures and
// treating cooldown skips as success.
func (m *Multi) Notify(ctx context.Context, notification *Notification) error {
	return m.NotifyChannels(ctx, m.notifiers, notification)
}

// NotifyChannels delivers to an explicit channel subset.
func (m *Multi) NotifyChannels(ctx context.Context, channels []Notifier, notification *Notification) error {
	var errs []error

	for _, n := range channels {
		if !n.IsEnabled() {
			continue
		}

		err := n.Notify(ctx, notification)
		if err == nil {
			continue
		}

		if errors.Is(err, ErrNotifyCooldown) {
			log.Printf("Notification '%s' suppressed by %s cooldown", notification.Title, n.Name())
			continue
		}

		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
