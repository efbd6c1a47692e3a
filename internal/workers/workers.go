package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"golang.org/x/sync/errgroup"
)

type namedWorker struct {
	name   string
	worker Worker
}

type Workers struct {
	workers []namedWorker
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger.WithComponent("workers")}
}

// Add registers w under name. Nil workers are skipped.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, namedWorker{name: name, worker: worker})
	}
	return w
}

// Run starts every worker and waits for all of them. The first worker to
// fail cancels the others; its error is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, nw := range w.workers {
		g.Go(func() error {
			w.logger.Debug().Str("worker", nw.name).Msg("worker started")
			err := nw.worker.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error().Err(err).Str("worker", nw.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", nw.name, err)
			}
			w.logger.Debug().Str("worker", nw.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}

// SyncWorker runs job every interval until ctx is done, then stops it,
// which flushes the state one last time.
func SyncWorker(job service.ClientSyncJob, interval time.Duration) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		job.Start(ctx, interval)
		<-ctx.Done()
		job.Stop()
		return nil
	})
}
