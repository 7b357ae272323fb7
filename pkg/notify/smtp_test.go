package notify

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fdot3/camwatch/pkg/config"
)

func TestSMTPNotify(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  string
	)

	notifier := NewSMTPNotifier(config.SMTPConfig{
		Enabled: true,
		Host:    "mail.example.com",
		Port:    587,
		From:    "camwatch@example.com",
		To:      []string{"noc@example.com"},
	})
	notifier.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotMsg = string(msg)

		return nil
	}

	err := notifier.Notify(context.Background(), &Notification{
		Level:   Error,
		Title:   "Camera Offline",
		Message: "lobby-cam unreachable",
		Details: map[string]any{"consecutive_failures": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "camwatch@example.com", gotFrom)
	assert.Equal(t, []string{"noc@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: [ERROR] Camera Offline")
	assert.Contains(t, gotMsg, "lobby-cam unreachable")
	assert.Contains(t, gotMsg, "consecutive_failures: 3")
}

func TestSMTPNotifyPerNotificationRecipients(t *testing.T) {
	var gotTo []string

	notifier := NewSMTPNotifier(config.SMTPConfig{
		Enabled: true,
		Host:    "mail.example.com",
		Port:    25,
		From:    "camwatch@example.com",
		To:      []string{"noc@example.com"},
	})
	notifier.send = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
		gotTo = to
		return nil
	}

	err := notifier.Notify(context.Background(), &Notification{
		Title:      "SLA Violation",
		Recipients: []string{"sla-team@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sla-team@example.com"}, gotTo)
}

func TestSMTPNotifyDisabled(t *testing.T) {
	notifier := NewSMTPNotifier(config.SMTPConfig{Enabled: false})

	err := notifier.Notify(context.Background(), &Notification{Title: "x"})
	assert.ErrorIs(t, err, ErrNotifierDisabled)
}

func TestSMTPNotifyNoRecipients(t *testing.T) {
	notifier := NewSMTPNotifier(config.SMTPConfig{
		Enabled: true,
		Host:    "mail.example.com",
		Port:    25,
		From:    "camwatch@example.com",
	})

	err := notifier.Notify(context.Background(), &Notification{Title: "x"})
	assert.ErrorIs(t, err, ErrNoRecipients)
}
