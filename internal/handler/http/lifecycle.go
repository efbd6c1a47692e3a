package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/utils"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
	"github.com/go-chi/chi/v5"
)

type lifecycleResponse struct {
	State      string `json:"state"`
	Dispatched bool   `json:"dispatched"`
}

// postLifecycle forwards a platform transition to the lifecycle observer.
// Repeating the current state answers with dispatched=false.
func (h *Handler) postLifecycle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	state, err := lifecycle.ParseState(chi.URLParam(r, "state"))
	if err != nil {
		log.Err(err).Send()
		utils.WriteError(w, statusFromError(err), err.Error())
		return
	}

	select {
	case <-h.chat.LifecycleArmed():
	default:
		utils.WriteError(w, statusFromError(ErrLifecycleNotArmed), ErrLifecycleNotArmed.Error())
		return
	}

	dispatched := h.chat.Lifecycle().Dispatch(state)
	log.Debug().Str("state", state.String()).Bool("dispatched", dispatched).Msg("lifecycle transition")

	utils.WriteJSON(w, lifecycleResponse{State: state.String(), Dispatched: dispatched}, http.StatusOK)
}
