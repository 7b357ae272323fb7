// Package metrics keeps recent probe latency samples per device in fixed
// size ring buffers, feeding the latency endpoints of the API.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

// latencyPoint is the compact in-buffer representation.
type latencyPoint struct {
	timestamp int64
	connectMs int64
	mediaMs   int64
	status    models.Status
}

// LockFreeRingBuffer is a lock-free ring buffer of latency samples. Writers
// claim slots with an atomic counter; readers snapshot newest-first.
type LockFreeRingBuffer struct {
	points []latencyPoint
	pos    int64 // Atomic position counter
	size   int64
}

// NewBuffer creates a new MetricStore.
func NewBuffer(size int) MetricStore {
	return NewLockFreeBuffer(size)
}

// NewLockFreeBuffer creates a new LockFreeRingBuffer with the specified size.
func NewLockFreeBuffer(size int) MetricStore {
	if size <= 0 {
		size = 1
	}

	return &LockFreeRingBuffer{
		points: make([]latencyPoint, size),
		size:   int64(size),
	}
}

// Add records a new sample, overwriting the oldest once the buffer is full.
func (b *LockFreeRingBuffer) Add(timestamp time.Time, connectMs, mediaMs int64, status models.Status) {
	pos := atomic.AddInt64(&b.pos, 1) - 1
	idx := pos % b.size

	b.points[idx] = latencyPoint{
		timestamp: timestamp.UnixNano(),
		connectMs: connectMs,
		mediaMs:   mediaMs,
		status:    status,
	}
}

// GetPoints returns the buffered samples, newest first. Slots never written
// are skipped.
func (b *LockFreeRingBuffer) GetPoints() []LatencyPoint {
	pos := atomic.LoadInt64(&b.pos)

	count := pos
	if count > b.size {
		count = b.size
	}

	points := make([]LatencyPoint, 0, count)

	for i := int64(0); i < count; i++ {
		idx := (pos - i - 1 + b.size) % b.size
		p := b.points[idx]

		points = append(points, LatencyPoint{
			Timestamp: time.Unix(0, p.timestamp),
			ConnectMs: p.connectMs,
			MediaMs:   p.mediaMs,
			Status:    p.status,
		})
	}

	return points
}

// GetLastPoint returns the most recent sample, or nil for an empty buffer.
func (b *LockFreeRingBuffer) GetLastPoint() *LatencyPoint {
	pos := atomic.LoadInt64(&b.pos)
	if pos == 0 {
		return nil
	}

	idx := (pos - 1) % b.size
	p := b.points[idx]

	return &LatencyPoint{
		Timestamp: time.Unix(0, p.timestamp),
		ConnectMs: p.connectMs,
		MediaMs:   p.mediaMs,
		Status:    p.status,
	}
}
