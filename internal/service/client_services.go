package service

import (
	"github.com/MKhiriev/go-chat-sdk/internal/adapter"
	"github.com/MKhiriev/go-chat-sdk/internal/config"
	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/socket"
	"github.com/MKhiriev/go-chat-sdk/internal/store"
	"github.com/MKhiriev/go-chat-sdk/models"
)

type ClientServices struct {
	ChatService    ChatService
	SyncJob        ClientSyncJob
	AppInfoService AppInfoService
}

func NewClientServices(
	cfg config.ClientApp,
	build models.AppBuildInfo,
	storages *store.ClientStorages,
	api adapter.ChatAPI,
	sock socket.Socket,
	log *logger.Logger,
) (*ClientServices, error) {
	appInfo, err := NewAppInfoService(cfg, build, log)
	if err != nil {
		return nil, err
	}

	chat := NewChatService(api, sock, storages.UserRepository, log)

	return &ClientServices{
		ChatService:    chat,
		SyncJob:        NewClientSyncJob(chat, storages.SyncStateRepository, log),
		AppInfoService: appInfo,
	}, nil
}
