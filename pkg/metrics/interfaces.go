package metrics

import (
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

//go:generate mockgen -destination=mock_metrics.go -package=metrics github.com/fdot3/camwatch/pkg/metrics MetricStore,MetricCollector

// LatencyPoint is one probe latency sample for a device.
type LatencyPoint struct {
	Timestamp time.Time     `json:"timestamp"`
	ConnectMs int64         `json:"connect_ms"`
	MediaMs   int64         `json:"media_ms"`
	Status    models.Status `json:"status"`
}

type MetricStore interface {
	Add(timestamp time.Time, connectMs, mediaMs int64, status models.Status)
	GetPoints() []LatencyPoint
	GetLastPoint() *LatencyPoint
}

type MetricCollector interface {
	AddSample(deviceName string, timestamp time.Time, connectMs, mediaMs int64, status models.Status)
	GetSamples(deviceName string) []LatencyPoint
	ActiveDevices() int64
}
