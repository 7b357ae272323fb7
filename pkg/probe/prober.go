// Package probe performs the two-stage camera health check: a TCP
// connectivity probe followed by a snapshot pull over HTTP.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fdot3/camwatch/pkg/config"
	"github.com/fdot3/camwatch/pkg/models"
)

const (
	// Cameras expose their web UI and snapshot endpoints on port 80.
	connectivityPort = "80"

	// A snapshot smaller than this is an error page, not a JPEG frame.
	minSnapshotBytes = 3 * 1024

	// Cap on how much of a snapshot body we pull before declaring success.
	maxSnapshotRead = 1 << 20
)

// snapshotPaths are the vendor-specific snapshot endpoints, tried in order
// until one yields a usable frame.
var snapshotPaths = []string{
	"/jpegpull/snapshot",
	"/axis-cgi/jpg/image.cgi",
	"/snapshot.jpg",
	"/cgi-bin/snapshot.cgi",
	"/jpg/image.jpg",
}

var errNoUsableSnapshot = errors.New("no snapshot endpoint returned a usable frame")

// CameraProber dials the camera's web port and then pulls a snapshot frame,
// pacing outbound probes with a shared rate limiter so a large fleet does
// not burst the network.
type CameraProber struct {
	dialer     *net.Dialer
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	port       string
	username   string
	password   string
}

// NewCameraProber builds a prober from the probe section of the config.
func NewCameraProber(cfg config.ProbeConfig) *CameraProber {
	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &CameraProber{
		dialer:  &net.Dialer{Timeout: timeout},
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,

			// A redirect from a snapshot endpoint means a login page,
			// never a frame.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter:  rate.NewLimiter(limit, 1),
		port:     connectivityPort,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Probe runs the connectivity check and, only if it passes, the snapshot
// check. Snapshot results are meaningless against an unreachable device, so
// the second stage is skipped when the first fails.
func (p *CameraProber) Probe(ctx context.Context, device models.Device) models.ProbeResult {
	var result models.ProbeResult

	if err := p.limiter.Wait(ctx); err != nil {
		result.Error = err.Error()
		return result
	}

	connMs, err := p.checkConnectivity(ctx, device.IP)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.ConnectivityOK = true
	result.ConnectivityMs = connMs

	mediaMs, err := p.checkSnapshot(ctx, device.IP)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.MediaOK = true
	result.MediaMs = mediaMs

	return result
}

func (p *CameraProber) checkConnectivity(ctx context.Context, ip string) (int64, error) {
	connCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()

	conn, err := p.dialer.DialContext(connCtx, "tcp", net.JoinHostPort(ip, p.port))
	if err != nil {
		return 0, fmt.Errorf("connectivity check failed: %w", err)
	}

	elapsed := time.Since(start).Milliseconds()

	_ = conn.Close()

	return elapsed, nil
}

func (p *CameraProber) checkSnapshot(ctx context.Context, ip string) (int64, error) {
	var lastErr error

	for _, path := range snapshotPaths {
		elapsed, err := p.trySnapshotPath(ctx, ip, path)
		if err == nil {
			return elapsed, nil
		}

		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		lastErr = err
	}

	return 0, fmt.Errorf("%w: %w", errNoUsableSnapshot, lastErr)
}

func (p *CameraProber) trySnapshotPath(ctx context.Context, ip, path string) (int64, error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	url := "http://" + net.JoinHostPort(ip, p.port) + path

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot request: %w", err)
	}

	if p.username != "" {
		req.SetBasicAuth(p.username, p.password)
	}

	start := time.Now()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("snapshot request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxSnapshotRead))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("snapshot endpoint %s returned status %d", path, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image") {
		return 0, fmt.Errorf("snapshot endpoint %s returned content type %q", path, ct)
	}

	n, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxSnapshotRead))
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot body: %w", err)
	}

	if n < minSnapshotBytes {
		return 0, fmt.Errorf("snapshot endpoint %s returned %d bytes, too small for a frame", path, n)
	}

	return time.Since(start).Milliseconds(), nil
}
