package contact

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
	"github.com/yeyclub/platform/internal/ratelimit"
)

// Handler wires the contact form endpoint.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
	limiter  *ratelimit.Limiter
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline, limiter *ratelimit.Limiter) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline, limiter: limiter}
}

// MountRoutes registers contact routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.submit)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var input SubmitInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[action.Void](action.MsgInvalidBody))
		return
	}
	res := action.RunWithRateLimit(r, h.limiter, ratelimit.ContactLimit, func() action.Result[action.Void] {
		return action.Run(r.Context(), h.pipeline, "contact.submitted", func(ctx context.Context) (action.Void, map[string]any, error) {
			return h.service.Submit(ctx, input)
		})
	})
	httpx.JSON(w, http.StatusOK, res)
}
