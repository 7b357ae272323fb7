// Package notify pkg/notify/interfaces.go

//go:generate mockgen -destination=mock_notify.go -package=notify github.com/fdot3/camwatch/pkg/notify Notifier

package notify

import (
	"context"
)

// Notifier defines the interface for notification channel implementations.
type Notifier interface {
	// Notify delivers a notification through the channel
	Notify(ctx context.Context, notification *Notification) error

	// IsEnabled returns whether the channel is enabled
	IsEnabled() bool

	// Name identifies the channel in delivery outcomes and rule channel lists
	Name() string
}
