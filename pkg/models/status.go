// Package models holds the shared value types for camwatch.
package models

// Status is the derived operational state of a camera after a health check.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusOnline   Status = "online"
	StatusDegraded Status = "degraded"
	StatusOffline  Status = "offline"
)

// DeriveStatus classifies a completed probe outcome. A device with working
// connectivity but no usable snapshot is degraded; no connectivity is offline.
func DeriveStatus(connectivityOK, mediaOK bool) Status {
	switch {
	case connectivityOK && mediaOK:
		return StatusOnline
	case connectivityOK:
		return StatusDegraded
	default:
		return StatusOffline
	}
}

// IsBad reports whether s counts against a device's health.
func (s Status) IsBad() bool {
	return s == StatusDegraded || s == StatusOffline
}

// CheckOrigin records how a health check was initiated.
type CheckOrigin string

const (
	OriginScheduled CheckOrigin = "scheduled"
	OriginManual    CheckOrigin = "manual"
)
