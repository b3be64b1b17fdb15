package events

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the events module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline}
}

// MountRoutes registers event routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/upcoming", h.upcoming)
	r.Get("/{slug}", h.bySlug)
	r.Get("/{id}/related", h.related)

	r.Post("/create", h.create)
	r.Post("/update", h.update)
	r.Post("/{id}/delete", h.delete)
	r.Post("/rsvp", h.upsertRsvp)
	r.Post("/{id}/rsvp/delete", h.deleteRsvp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, events)
}

func (h *Handler) upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.Upcoming(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, events)
}

func (h *Handler) bySlug(w http.ResponseWriter, r *http.Request) {
	event, counts, err := h.service.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"event":       event,
		"rsvp_counts": counts,
	})
}

func (h *Handler) related(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.Related(r.Context(), chi.URLParam(r, "id"), 3)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, events)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateEventInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Event](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "event.created", func(ctx context.Context) (*Event, map[string]any, error) {
		return h.service.CreateEvent(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var input UpdateEventInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Event](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "event.updated", func(ctx context.Context) (*Event, map[string]any, error) {
		return h.service.UpdateEvent(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	res := action.Run(r.Context(), h.pipeline, "event.deleted", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.DeleteEvent(ctx, eventID)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) upsertRsvp(w http.ResponseWriter, r *http.Request) {
	var input UpsertRsvpInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[RsvpResult](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "rsvp.upserted", func(ctx context.Context) (RsvpResult, map[string]any, error) {
		return h.service.UpsertRsvp(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) deleteRsvp(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	res := action.Run(r.Context(), h.pipeline, "rsvp.deleted", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.DeleteRsvp(ctx, eventID)
	})
	httpx.JSON(w, http.StatusOK, res)
}
