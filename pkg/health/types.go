package health

import (
	"time"

	"github.com/fdot3/camwatch/pkg/models"
)

// CheckOutcome is the result of recording one health check: the stored state
// after the check plus what changed. Handlers receive one outcome per check,
// not just per transition.
type CheckOutcome struct {
	Device              models.Device      `json:"device"`
	Result              models.ProbeResult `json:"result"`
	Previous            models.Status      `json:"previous"`
	Current             models.Status      `json:"current"`
	ConsecutiveFailures int                `json:"consecutive_failures"`
	UptimePercentage    float64            `json:"uptime_percentage"`
	Changed             bool               `json:"changed"`
	Origin              models.CheckOrigin `json:"origin"`
	Timestamp           time.Time          `json:"timestamp"`
}

// OutcomeHandler consumes check outcomes. Handlers run on the monitor's
// dispatch goroutine and must not block for long.
type OutcomeHandler interface {
	HandleOutcome(outcome *CheckOutcome)
}

// OutcomeHandlerFunc adapts a function to the OutcomeHandler interface.
type OutcomeHandlerFunc func(outcome *CheckOutcome)

func (f OutcomeHandlerFunc) HandleOutcome(outcome *CheckOutcome) {
	f(outcome)
}
