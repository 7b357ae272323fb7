package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fdot3/camwatch/pkg/config"
)

// WebhookNotifier posts notifications as JSON to a configured endpoint.
// A per-title cooldown keeps a flapping camera from hammering the receiver.
type WebhookNotifier struct {
	config        config.WebhookConfig
	client        *http.Client
	lastSentTimes map[string]time.Time
	mu            sync.Mutex
	bufferPool    *sync.Pool
}

func NewWebhookNotifier(cfg config.WebhookConfig) *WebhookNotifier {
	return &WebhookNotifier{
		config: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		lastSentTimes: make(map[string]time.Time),
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

func (w *WebhookNotifier) IsEnabled() bool {
	return w.config.Enabled
}

func (*WebhookNotifier) Name() string {
	return "webhook"
}

func (w *WebhookNotifier) Notify(ctx context.Context, notification *Notification) error {
	if !w.IsEnabled() {
		log.Printf("Webhook notifier disabled, skipping: %s", notification.Title)
		return ErrNotifierDisabled
	}

	if err := w.checkCooldown(notification.Title); err != nil {
		return err
	}

	if notification.Timestamp == "" {
		notification.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := w.preparePayload(notification)
	if err != nil {
		return fmt.Errorf("failed to prepare payload: %w", err)
	}

	return w.sendRequest(ctx, payload)
}

func (w *WebhookNotifier) checkCooldown(title string) error {
	cooldown := time.Duration(w.config.Cooldown)
	if cooldown <= 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	lastSent, exists := w.lastSentTimes[title]
	if exists && time.Since(lastSent) < cooldown {
		log.Printf("Notification '%s' is within cooldown period, skipping", title)
		return ErrNotifyCooldown
	}

	w.lastSentTimes[title] = time.Now()

	return nil
}

func (w *WebhookNotifier) preparePayload(notification *Notification) ([]byte, error) {
	buf := w.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer w.bufferPool.Put(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(notification); err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}

	return append([]byte(nil), buf.Bytes()...), nil
}

func (w *WebhookNotifier) sendRequest(ctx context.Context, payload []byte) error {
	buf := w.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer w.bufferPool.Put(buf)

	buf.Write(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	w.setHeaders(req)

	resp, err := w.client.Do(req) //nolint:bodyclose // Response body is closed later
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBuf := w.bufferPool.Get().(*bytes.Buffer)
		errBuf.Reset()
		defer w.bufferPool.Put(errBuf)

		_, _ = io.Copy(errBuf, resp.Body)

		return fmt.Errorf("%w: status=%d body=%s", ErrWebhookStatus, resp.StatusCode, errBuf.String())
	}

	return nil
}

func (w *WebhookNotifier) setHeaders(req *http.Request) {
	hasContentType := false

	for _, header := range w.config.Headers {
		if strings.EqualFold(header.Key, "content-type") {
			hasContentType = true
		}

		req.Header.Set(header.Key, header.Value)
	}

	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}
}
