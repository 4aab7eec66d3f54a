package ingest

import (
	"context"
	"time"

	"github.com/smartransfer/routes/storage/types"
)

// Provider is a single custom rate snapshot provider
type Provider interface {
	// Name returns the human-readable name of the provider
	Name() string

	// Interval returns the interval at which the provider should be called
	Interval() time.Duration

	// Fetch is the provider's main fetch job, yielding rate snapshot data points
	Fetch(context.Context) ([]*types.RateSnapshot, error)
}
