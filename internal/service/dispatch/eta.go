package dispatch

import (
	"time"

	"service-dispatch/internal/domain"
)

// FixedOffsetEstimator answers "now + offset" regardless of positions.
type FixedOffsetEstimator struct {
	offset time.Duration
}

// NewFixedOffsetEstimator creates an Estimator with the given offset,
// defaulting to 15 minutes.
func NewFixedOffsetEstimator(offset time.Duration) FixedOffsetEstimator {
	if offset <= 0 {
		offset = 15 * time.Minute
	}
	return FixedOffsetEstimator{offset: offset}
}

// EstimatedArrival returns now plus the configured offset.
func (e FixedOffsetEstimator) EstimatedArrival(now time.Time, _, _ domain.Point) time.Time {
	return now.Add(e.offset)
}

var _ Estimator = FixedOffsetEstimator{}
