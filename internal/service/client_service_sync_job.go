package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/store"
	"github.com/MKhiriev/go-chat-sdk/internal/validators"
	"github.com/MKhiriev/go-chat-sdk/models"
)

const defaultSyncInterval = 30 * time.Second

type clientSyncJob struct {
	chat   ChatService
	repo   store.SyncStateRepository
	logger *logger.Logger
	now    func() time.Time

	validator validators.Validator

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a job that persists the chat sync state on a
// ticker. The job is idle until Start is called.
func NewClientSyncJob(chat ChatService, repo store.SyncStateRepository, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		chat:   chat,
		repo:   repo,
		logger: log.WithComponent("sync"),
		now:    time.Now,

		validator: validators.NewChatValidator(),
	}
}

// Start stops any previously running job, then syncs every interval until
// ctx is cancelled or Stop is called. A non-positive interval defaults to
// 30 seconds. The state is synced one last time when the job exits.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				// flush with a fresh context, jobCtx is already done
				flushCtx, cancel := context.WithTimeout(context.WithoutCancel(jobCtx), time.Second)
				j.syncLogged(flushCtx)
				cancel()
				return
			case <-t.C:
				j.syncLogged(jobCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) syncLogged(ctx context.Context) {
	if err := j.SyncOnce(ctx); err != nil {
		j.logger.Warn().Err(err).Msg("sync state was not persisted")
	}
}

func (j *clientSyncJob) SyncOnce(ctx context.Context) error {
	user, ok := j.chat.CurrentUser().Value()
	if !ok || user == nil {
		return nil
	}

	now := j.now()
	state := models.SyncState{
		UserID:           user.ID,
		ActiveChannelIDs: j.chat.ActiveChannelIDs(),
		LastSyncedAt:     &now,
		MarkedAllReadAt:  j.chat.MarkedAllReadAt(),
	}
	if err := j.validator.Validate(ctx, state); err != nil {
		return fmt.Errorf("invalid sync state: %w", err)
	}
	if err := j.repo.Insert(ctx, state); err != nil {
		return fmt.Errorf("persist sync state: %w", err)
	}

	j.logger.Debug().
		Str("user_id", user.ID).
		Int("active_channels", len(state.ActiveChannelIDs)).
		Msg("sync state persisted")
	return nil
}

func (j *clientSyncJob) Restore(ctx context.Context, userID string) error {
	state, err := j.repo.Select(ctx, userID)
	if errors.Is(err, store.ErrSyncStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}

	for _, cid := range state.ActiveChannelIDs {
		if err := j.chat.WatchChannel(cid); err != nil {
			j.logger.Warn().Err(err).Str("cid", cid).Msg("skipping persisted channel")
		}
	}
	return nil
}
