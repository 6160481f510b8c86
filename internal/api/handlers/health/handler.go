package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Response HTTP response model
type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	store  Pinger
	logger Logger
}

func NewHandler(store Pinger, logger Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("GET /healthz - storage unavailable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{Status: "unavailable"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: "ok"})
}
