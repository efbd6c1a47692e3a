package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/client"
	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/handler"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/server"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/internal/store"
	"github.com/MKhiriev/go-chat-sdk/internal/tui"
	"github.com/MKhiriev/go-chat-sdk/internal/workers"
	"github.com/MKhiriev/go-chat-sdk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("chat-client", cfg.Log.File)
	if err = log.SetLevel(cfg.Log.Level); err != nil {
		log.Warn().Err(err).Str("level", cfg.Log.Level).Msg("unknown log level, keeping default")
	}

	build := buildInfo()
	if cfg.UI.Headless {
		fmt.Println(build.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := adapter.NewHTTPChatAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create chat adapter")
	}

	sock, err := socket.NewWebSocket(cfg.Adapter, cfg.App, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create chat socket")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services, err := service.NewClientServices(cfg.App, build, storages, api, sock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	var bridge workers.Worker
	handlers, err := handler.NewHandlers(services, cfg.Bridge, log)
	switch {
	case errors.Is(err, handler.ErrNoHandlersAreCreated):
		log.Debug().Msg("bridge disabled")
	case err != nil:
		log.Fatal().Err(err).Msg("create bridge handlers")
	default:
		srv, err := server.NewServer(handlers, cfg.Bridge, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create bridge server")
		}
		bridge = srv
	}

	var ui workers.Worker
	if !cfg.UI.Headless {
		t, err := tui.New(services, build, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating ui")
		}
		ui = t
	}

	app, err := client.NewApp(services, ui, bridge, storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
