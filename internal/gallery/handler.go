package gallery

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
)

// maxUploadBytes caps gallery uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// Handler wires HTTP endpoints for the gallery module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline}
}

// MountRoutes registers gallery routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/event/{id}", h.listByEvent)

	r.Post("/create", h.create)
	r.Post("/upload", h.upload)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) listByEvent(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListByEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateItemInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Item](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "gallery.created", func(ctx context.Context) (*Item, map[string]any, error) {
		return h.service.CreateItem(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*UploadResult](action.MsgInvalidBody))
		return
	}
	defer file.Close()

	res := action.Run(r.Context(), h.pipeline, "gallery.uploaded", func(ctx context.Context) (*UploadResult, map[string]any, error) {
		return h.service.Upload(ctx, header.Filename, header.Header.Get("Content-Type"), file)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")
	res := action.Run(r.Context(), h.pipeline, "gallery.deleted", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.DeleteItem(ctx, itemID)
	})
	httpx.JSON(w, http.StatusOK, res)
}
