package http

import (
	"net/http"

	"github.com/MKhiriev/go-chat-sdk/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"build_date,omitempty"`
	Commit  string `json:"build_commit,omitempty"`
}

// getVersion answers plain text unless the caller accepts JSON.
func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	version := h.appInfo.GetAppVersion(r.Context())

	if r.Header.Get("Accept") == "application/json" {
		build := h.appInfo.BuildInfo()
		utils.WriteJSON(w, versionResponse{
			Version: version,
			Date:    build.BuildDate(),
			Commit:  build.BuildCommit(),
		}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(version))
}
