package observability

import (
	"context"

	contextutils "ecoatlas/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "ecoatlas"

// Instruments holds the domain counters recorded by the services.
type Instruments struct {
	created metric.Int64Counter
	votes   metric.Int64Counter
}

// NewInstruments registers the domain counters on the given provider. A nil
// provider yields no-op counters.
func NewInstruments(mp metric.MeterProvider) (*Instruments, error) {
	if mp == nil {
		mp = noop.NewMeterProvider()
	}
	meter := mp.Meter(meterName)

	created, err := meter.Int64Counter("eco.records.created",
		metric.WithDescription("Problems, solutions and ideas created"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create counter: %w", err)
	}

	votes, err := meter.Int64Counter("eco.ideas.votes",
		metric.WithDescription("Votes cast on ideas"),
		metric.WithUnit("{vote}"),
	)
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to create counter: %w", err)
	}

	return &Instruments{created: created, votes: votes}, nil
}

// RecordCreated counts a newly created record of the given collection.
func (i *Instruments) RecordCreated(ctx context.Context, collection string) {
	if i == nil {
		return
	}
	i.created.Add(ctx, 1, metric.WithAttributes(attribute.String("collection", collection)))
}

// RecordVote counts one vote.
func (i *Instruments) RecordVote(ctx context.Context) {
	if i == nil {
		return
	}
	i.votes.Add(ctx, 1)
}
