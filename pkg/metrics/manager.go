package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/fdot3/camwatch/pkg/health"
	"github.com/fdot3/camwatch/pkg/models"
)

const defaultBufferSize = 1000

// deviceMetrics pairs a device's buffer with a fine-grained lock, keeping
// contention per device instead of fleet-wide.
type deviceMetrics struct {
	mu     sync.RWMutex
	buffer MetricStore
}

// Manager tracks latency samples per device. It plugs straight into the
// monitor as an outcome handler.
type Manager struct {
	devices       sync.Map // deviceName -> *deviceMetrics
	bufferSize    int
	activeDevices int64
}

func NewManager(bufferSize int) *Manager {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	return &Manager{bufferSize: bufferSize}
}

// HandleOutcome implements health.OutcomeHandler. Only successful sub-probe
// latencies are meaningful; failed sub-probes are recorded as zero.
func (m *Manager) HandleOutcome(outcome *health.CheckOutcome) {
	var connectMs, mediaMs int64

	if outcome.Result.ConnectivityOK {
		connectMs = outcome.Result.ConnectivityMs
	}

	if outcome.Result.MediaOK {
		mediaMs = outcome.Result.MediaMs
	}

	m.AddSample(outcome.Device.Name, outcome.Timestamp, connectMs, mediaMs, outcome.Current)
}

func (m *Manager) AddSample(deviceName string, timestamp time.Time, connectMs, mediaMs int64, status models.Status) {
	entry, loaded := m.devices.LoadOrStore(deviceName, &deviceMetrics{
		buffer: NewBuffer(m.bufferSize),
	})

	if !loaded {
		atomic.AddInt64(&m.activeDevices, 1)
	}

	dm := entry.(*deviceMetrics)

	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.buffer.Add(timestamp, connectMs, mediaMs, status)
}

func (m *Manager) GetSamples(deviceName string) []LatencyPoint {
	entry, ok := m.devices.Load(deviceName)
	if !ok {
		return nil
	}

	dm := entry.(*deviceMetrics)

	dm.mu.RLock()
	defer dm.mu.RUnlock()

	return dm.buffer.GetPoints()
}

func (m *Manager) ActiveDevices() int64 {
	return atomic.LoadInt64(&m.activeDevices)
}
