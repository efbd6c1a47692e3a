package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/lifecycle"
)

var errorStatusMap = map[error]int{
	service.ErrNotConnected:          http.StatusConflict,
	service.ErrTokenExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrNotFound:              http.StatusNotFound,
	service.ErrRateLimited:           http.StatusTooManyRequests,
	service.ErrInvalidChannel:        http.StatusBadRequest,
	service.ErrBackendUnavailable:    http.StatusBadGateway,
	service.ErrConnectionRejected:    http.StatusBadGateway,
	service.ErrConnectionFailed:      http.StatusBadGateway,

	lifecycle.ErrUnknownState: http.StatusBadRequest,
	ErrLifecycleNotArmed:      http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
