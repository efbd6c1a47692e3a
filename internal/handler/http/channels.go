package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
)

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.chat.MarkAllRead(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("mark all read failed")
		utils.WriteError(w, statusFromError(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
