package probe

import (
	"context"

	"github.com/fdot3/camwatch/pkg/models"
)

//go:generate mockgen -destination=mock_probe.go -package=probe github.com/fdot3/camwatch/pkg/probe Prober

// Prober performs a full health check of a single camera.
type Prober interface {
	Probe(ctx context.Context, device models.Device) models.ProbeResult
}
