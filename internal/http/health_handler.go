package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	storage   Pinger
	responder responder
	logger    *slog.Logger
}

func NewHealthHandler(storage Pinger, logger *slog.Logger) *HealthHandler {
	base := defaultLogger(logger)
	return &HealthHandler{storage: storage, responder: newResponder(base), logger: base}
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Live answers 200 while profile storage is reachable. The console keeps
// serving without storage, so a failed ping is reported as degraded.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Storage: "unconfigured"}
	if h == nil {
		newResponder(nil).writeJSON(r.Context(), w, http.StatusOK, resp)
		return
	}
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			handlerLogger(r.Context(), h.logger, "HealthHandler", "Live", "error_kind", "storage").WarnContext(r.Context(), "storage ping failed", "error", err)
			resp.Status = "degraded"
			resp.Storage = "unreachable"
			h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Storage = "ok"
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}
