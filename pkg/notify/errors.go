package notify

import "fmt"

var (
	ErrNotifierDisabled = fmt.Errorf("notifier is disabled")
	ErrNotifyCooldown   = fmt.Errorf("notification is within cooldown period")
	ErrWebhookStatus    = fmt.Errorf("webhook returned non-200 status")
	ErrNoRecipients     = fmt.Errorf("no recipients configured")
)
