package loadevents

import (
	"context"
	"errors"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/logx"
)

// Processor reacts to load events from the platform: a freshly posted
// load triggers one assignment attempt, a freed truck triggers a
// re-match sweep over everything still waiting in POSTED.
type Processor struct {
	assigner AssignerPort
	logger   logx.Logger
	factory  *actionFactory
}

// NewProcessor creates a new loadevents.Processor.
func NewProcessor(assigner AssignerPort, logger logx.Logger) *Processor {
	p := &Processor{assigner: assigner, logger: logger}
	p.factory = newActionFactory(p.onPosted, p.onTruckFreed)
	return p
}

// Handle processes a single load event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Event)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onPosted(ctx context.Context, e Event) error {
	_, err := p.assigner.Assign(ctx, e.LoadID)
	// a stale event: the load was already matched, advanced or deleted
	if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}

func (p *Processor) onTruckFreed(ctx context.Context, e Event) error {
	matched, err := p.assigner.RematchPosted(ctx)
	if err != nil {
		return err
	}
	if matched > 0 {
		p.logger.Info("rematch after truck freed",
			logx.String("event", "rematch_completed"),
			logx.Int("matched", matched),
		)
	}
	return nil
}
