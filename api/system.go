package api

import (
	"context"
	"net/http"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	store Pinger
}

func NewSystemHandler(store Pinger) *SystemHandler {
	return &SystemHandler{store: store}
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			loggerFromContext(r.Context()).Error("health check failed", "err", err)
			writeJSON(w, map[string]string{"status": "unavailable", "service": "quickgig"}, http.StatusServiceUnavailable)
			return
		}
	}

	writeJSON(w, map[string]string{"status": "ok", "service": "quickgig"}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version, "buildTime": buildTime}, http.StatusOK)
	}
}
