package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"freight-broker-service/internal/logx"
	"freight-broker-service/internal/service/assignment"
	"freight-broker-service/internal/transport/kafka"
)

// WorkerRunner runs the background worker: the load-events consumer
// plus the periodic POSTED re-match sweep.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	coordinator *assignment.Coordinator,
	interval rematchInterval,
) error {
	defer closeWorker(pool, logger, consumer)

	logger.Info("freight-broker-worker started")

	consumerErr := make(chan error, 1)
	if consumer != nil {
		go func() { consumerErr <- consumer.Run(ctx) }()
	}

	ticker := time.NewTicker(time.Duration(interval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-consumerErr:
			return err
		case <-ticker.C:
			matched, err := coordinator.RematchPosted(ctx)
			if err != nil {
				logger.Error("rematch sweep error", logx.Err(err))
				continue
			}
			if matched > 0 {
				logger.Info("rematch sweep",
					logx.String("event", "rematch_completed"),
					logx.Int("matched", matched),
				)
			}
		}
	}
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, kafkaConsumer *kafka.Consumer) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
