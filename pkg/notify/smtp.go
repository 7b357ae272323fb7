package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/fdot3/camwatch/pkg/config"
)

// SMTPNotifier delivers notifications as plain-text email. Per-notification
// recipients take precedence over the configured default list.
type SMTPNotifier struct {
	config config.SMTPConfig

	// send is swappable for tests.
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (s *SMTPNotifier) IsEnabled() bool {
	return s.config.Enabled
}

func (*SMTPNotifier) Name() string {
	return "email"
}

func (s *SMTPNotifier) Notify(ctx context.Context, notification *Notification) error {
	if !s.IsEnabled() {
		return ErrNotifierDisabled
	}

	recipients := notification.Recipients
	if len(recipients) == 0 {
		recipients = s.config.To
	}

	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	msg := s.buildMessage(notification, recipients)

	if err := s.send(addr, auth, s.config.From, recipients, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPNotifier) buildMessage(notification *Notification, recipients []string) []byte {
	var b strings.Builder

	subject := fmt.Sprintf("[%s] %s", strings.ToUpper(string(notification.Level)), notification.Title)

	b.WriteString("From: " + s.config.From + "\r\n")
	b.WriteString("To: " + strings.Join(recipients, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(notification.Message + "\r\n")

	if len(notification.Details) > 0 {
		b.WriteString("\r\n")

		for key, value := range notification.Details {
			b.WriteString(fmt.Sprintf("%s: %v\r\n", key, value))
		}
	}

	return []byte(b.String())
}
