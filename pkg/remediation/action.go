// Package remediation drives automatic recovery of stuck cameras, with a
// per-device guard and cooldown so a dead camera is rebooted once per
// ticket, not once per check.
package remediation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

//go:generate mockgen -destination=mock_remediation.go -package=remediation github.com/fdot3/camwatch/pkg/remediation Action

// Action performs the actual remediation step against a device. Operator and
// reason travel with the request so backends with their own audit or
// ticketing can record them; such backends may return the id of the ticket
// they opened, which the controller then stamps onto the downtime interval
// instead of the local reboot record id. Actions without ticketing return a
// nil ticket id.
type Action interface {
	Reboot(ctx context.Context, device models.Device, operator, reason string) (ticketID *int64, err error)
}

var errNoRebootEndpoint = errors.New("no reboot endpoint accepted the request")

// rebootPaths are the vendor-specific reboot endpoints, tried in order.
var rebootPaths = []string{
	"/reboot.cgi",
	"/axis-cgi/restart.cgi",
	"/cgi-bin/reboot.cgi",
}

// HTTPRebootAction reboots a camera through its web management interface.
type HTTPRebootAction struct {
	client   *http.Client
	port     string
	username string
	password string
}

func NewHTTPRebootAction(username, password string, timeout time.Duration) *HTTPRebootAction {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPRebootAction{
		client:   &http.Client{Timeout: timeout},
		port:     "80",
		username: username,
		password: password,
	}
}

// Reboot tries each vendor endpoint in order. Camera web interfaces have no
// ticketing, so operator and reason are not forwarded and the ticket id is
// always nil.
func (a *HTTPRebootAction) Reboot(ctx context.Context, device models.Device, _, _ string) (*int64, error) {
	var lastErr error

	for _, path := range rebootPaths {
		err := a.tryRebootPath(ctx, device.IP, path)
		if err == nil {
			return nil, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
	}

	return nil, fmt.Errorf("%w: %w", errNoRebootEndpoint, lastErr)
}

func (a *HTTPRebootAction) tryRebootPath(ctx context.Context, ip, path string) error {
	url := "http://" + net.JoinHostPort(ip, a.port) + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create reboot request: %w", err)
	}

	if a.username != "" {
		req.SetBasicAuth(a.username, a.password)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("reboot request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reboot endpoint %s returned status %d", path, resp.StatusCode)
	}

	return nil
}
