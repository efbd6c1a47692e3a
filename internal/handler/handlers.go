package handler

import (
	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/handler/http"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.ClientServices, cfg config.ClientBridge, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if !cfg.Enabled() {
		return nil, ErrNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services.ChatService, services.AppInfoService, cfg.Token, logger),
	}, nil
}
