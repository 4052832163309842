package app

import (
	"context"

	"freight-broker-service/internal/service/loadevents"
	"freight-broker-service/internal/transport/kafka"
)

func makeLoadsKafka(p *loadevents.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event loadevents.Event) error {
		return p.Handle(ctx, event)
	}
}
