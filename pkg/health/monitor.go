package health

import (
	"context"
	"errors"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
	"github.com/fdot3/camwatch/pkg/probe"
)

var ErrUnknownDevice = errors.New("unknown device")

// Monitor drives the periodic check loop: it sweeps the fleet through a
// bounded worker pool, folds each result into the tracker and fans the
// outcomes out to registered handlers.
type Monitor struct {
	devices     []models.Device
	prober      probe.Prober
	tracker     *Tracker
	interval    time.Duration
	concurrency int
	done        chan struct{}

	mu       sync.RWMutex
	handlers []OutcomeHandler
}

func NewMonitor(devices []models.Device, prober probe.Prober, tracker *Tracker, interval time.Duration, concurrency int) *Monitor {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Monitor{
		devices:     devices,
		prober:      prober,
		tracker:     tracker,
		interval:    interval,
		concurrency: concurrency,
		done:        make(chan struct{}),
	}
}

// OnOutcome registers a handler for check outcomes. Handlers added after
// Start still receive subsequent outcomes.
func (m *Monitor) OnOutcome(handler OutcomeHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers = append(m.handlers, handler)
}

// Start runs the check loop until the context is canceled or Stop is
// called. The first sweep runs immediately.
func (m *Monitor) Start(ctx context.Context) error {
	log.Printf("Starting health monitor: %d devices, interval %s", len(m.devices), m.interval)

	m.Sweep(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Stop terminates the check loop.
func (m *Monitor) Stop() {
	close(m.done)
}

// Sweep checks every device once, bounded by the worker pool. It returns
// after the whole fleet has been checked.
func (m *Monitor) Sweep(ctx context.Context) {
	deviceChan := make(chan models.Device, m.concurrency)

	var wg sync.WaitGroup

	for i := 0; i < m.concurrency; i++ {
		wg.Add(1)

		go m.runWorker(ctx, &wg, deviceChan)
	}

	m.feedDevices(ctx, deviceChan)
	wg.Wait()
}

func (m *Monitor) feedDevices(ctx context.Context, deviceChan chan<- models.Device) {
	defer close(deviceChan)

	for _, device := range m.devices {
		select {
		case deviceChan <- device:
		case <-ctx.Done():
			return
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) runWorker(ctx context.Context, wg *sync.WaitGroup, deviceChan <-chan models.Device) {
	defer wg.Done()

	for {
		select {
		case device, ok := <-deviceChan:
			if !ok {
				return
			}

			m.checkDevice(ctx, device, models.OriginScheduled)
		case <-ctx.Done():
			return
		case <-m.done:
			return
		}
	}
}

func (m *Monitor) checkDevice(ctx context.Context, device models.Device, origin models.CheckOrigin) *CheckOutcome {
	result := m.prober.Probe(ctx, device)
	outcome := m.tracker.RecordCheck(device, result, origin, time.Now())

	if outcome.Changed {
		log.Printf("Device %s transitioned %s -> %s (failures=%d)",
			device.Name, outcome.Previous, outcome.Current, outcome.ConsecutiveFailures)
	}

	m.dispatch(outcome)

	return outcome
}

// dispatch fans an outcome out to the handlers. A panicking handler is
// isolated so it cannot take down the check loop or starve its peers.
func (m *Monitor) dispatch(outcome *CheckOutcome) {
	m.mu.RLock()
	handlers := make([]OutcomeHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Outcome handler panicked for %s: %v\n%s",
						outcome.Device.Name, r, debug.Stack())
				}
			}()

			handler.HandleOutcome(outcome)
		}()
	}
}

// CheckNow probes a single device on demand, outside the scheduled sweep.
// The outcome flows through the same tracker and handlers as scheduled
// checks.
func (m *Monitor) CheckNow(ctx context.Context, deviceName string) (*CheckOutcome, error) {
	for _, device := range m.devices {
		if device.Name == deviceName {
			return m.checkDevice(ctx, device, models.OriginManual), nil
		}
	}

	return nil, ErrUnknownDevice
}

// Devices returns the configured fleet.
func (m *Monitor) Devices() []models.Device {
	return m.devices
}
