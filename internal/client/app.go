package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/internal/tui"
	"github.com/MKhiriev/go-chat-sdk/internal/workers"
	"github.com/MKhiriev/go-chat-sdk/models"
	"github.com/MKhiriev/go-chat-sdk/streamchat"
)

type App struct {
	services *service.ClientServices
	ui       workers.Worker
	bridge   workers.Worker
	storages io.Closer
	platform streamchat.Platform

	app     config.ClientApp
	workers config.ClientWorkers
	logger  *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp wires the client runtime. ui and bridge are optional; without a ui
// the app runs headless until ctx is done. storages, when set, is closed
// after Run returns.
func NewApp(
	services *service.ClientServices,
	ui workers.Worker,
	bridge workers.Worker,
	storages io.Closer,
	cfg *config.ClientConfig,
	log *logger.Logger,
) (*App, error) {
	if services == nil || services.ChatService == nil || services.SyncJob == nil {
		return nil, ErrNoServices
	}
	if cfg == nil {
		return nil, errors.New("client config is required")
	}

	return &App{
		services: services,
		ui:       ui,
		bridge:   bridge,
		storages: storages,
		platform: streamchat.SignalPlatform(),
		app:      cfg.App,
		workers:  cfg.Workers,
		logger:   log.WithComponent("client"),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	tokens, err := a.tokenProvider()
	if err != nil {
		return err
	}
	user := models.User{ID: a.app.UserID, Name: a.app.UserName}

	sdk := streamchat.FromService(a.services.ChatService, a.platform, a.logger)
	defer a.shutdown(sdk)

	group := workers.NewWorkers(a.logger).
		Add("connect", a.connectWorker(user, tokens)).
		Add("sync", workers.SyncWorker(a.services.SyncJob, a.workers.SyncInterval)).
		Add("bridge", a.bridge).
		Add("ui", a.ui)

	a.logger.Info().Str("user_id", user.ID).Bool("headless", a.ui == nil).Msg("client started")
	err = group.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) tokenProvider() (service.TokenProvider, error) {
	switch {
	case a.app.UserToken != "":
		return service.NewStaticTokenProvider(a.app.UserToken), nil
	case a.app.APISecret != "":
		a.logger.Warn().Msg("connecting with a development token signed by the api secret")
		return service.NewDevTokenProvider(a.app.APISecret, 0), nil
	default:
		return nil, ErrNoCredentials
	}
}

// connectWorker connects user once and restores its watched channels. A
// failed connect stops a headless app; the dashboard shows it instead.
func (a *App) connectWorker(user models.User, tokens service.TokenProvider) workers.Worker {
	return workers.WorkerFunc(func(ctx context.Context) error {
		res := <-a.services.ChatService.ConnectUser(ctx, user, tokens)
		if res.Err != nil {
			if a.ui == nil {
				return fmt.Errorf("connect %s: %w", user.ID, res.Err)
			}
			a.logger.Error().Err(res.Err).Str("user_id", user.ID).Msg("connect failed")
			return nil
		}

		if err := a.services.SyncJob.Restore(ctx, res.User.ID); err != nil {
			a.logger.Warn().Err(err).Msg("sync state was not restored")
		}
		a.logger.Info().
			Str("user_id", res.User.ID).
			Int("active_channels", len(a.services.ChatService.ActiveChannelIDs())).
			Msg("user connected")
		return nil
	})
}

func (a *App) shutdown(sdk *streamchat.Client) {
	sdk.Close()
	if a.storages == nil {
		return
	}
	if err := a.storages.Close(); err != nil {
		a.logger.Error().Err(err).Msg("closing storages")
	}
}
