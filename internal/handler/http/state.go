package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/models"
)

type stateResponse struct {
	OnlineStatus        models.OnlineStatus `json:"online_status"`
	Connected           bool                `json:"connected"`
	TotalUnreadMessages int                 `json:"total_unread_count"`
	UnreadChannels      int                 `json:"unread_channels"`
	CurrentUser         *models.User        `json:"current_user"`
	ActiveChannels      []models.Channel    `json:"active_channels"`
	MarkedAllReadAt     *time.Time          `json:"marked_all_read_at,omitempty"`
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	resp := stateResponse{
		Connected:       h.chat.IsConnected(),
		ActiveChannels:  h.chat.ActiveChannels(),
		MarkedAllReadAt: h.chat.MarkedAllReadAt(),
	}
	resp.OnlineStatus, _ = h.chat.OnlineStatus().Value()
	resp.TotalUnreadMessages, _ = h.chat.TotalUnreadMessages().Value()
	resp.UnreadChannels, _ = h.chat.UnreadChannels().Value()
	resp.CurrentUser, _ = h.chat.CurrentUser().Value()

	utils.WriteJSON(w, resp, http.StatusOK)
}
