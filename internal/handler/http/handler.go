package http

import (
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
)

type Handler struct {
	chat    service.ChatService
	appInfo service.AppInfoService
	token   string

	logger *logger.Logger
}

// NewHandler builds the bridge handler. An empty token disables the bearer
// token check.
func NewHandler(chat service.ChatService, appInfo service.AppInfoService, token string, logger *logger.Logger) *Handler {
	logger.Info().Bool("token_required", token != "").Msg("http bridge handler created")
	return &Handler{
		chat:    chat,
		appInfo: appInfo,
		token:   token,
		logger:  logger,
	}
}
