package blog

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the blog module.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	pipeline *action.Pipeline
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, pipeline *action.Pipeline) *Handler {
	return &Handler{logger: logger, service: service, pipeline: pipeline}
}

// MountRoutes registers blog routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listPublished)
	r.Get("/all", h.listAll)
	r.Get("/{slug}", h.bySlug)

	r.Post("/create", h.create)
	r.Post("/update", h.update)
	r.Post("/{id}/delete", h.delete)
	r.Post("/{id}/publish", h.togglePublish)
}

func (h *Handler) listPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublished(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, posts)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, posts)
}

func (h *Handler) bySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.BySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, post)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreatePostInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Post](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "blog.created", func(ctx context.Context) (*Post, map[string]any, error) {
		return h.service.CreatePost(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var input UpdatePostInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Post](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "blog.updated", func(ctx context.Context) (*Post, map[string]any, error) {
		return h.service.UpdatePost(ctx, input)
	})
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	res := action.Run(r.Context(), h.pipeline, "blog.deleted", func(ctx context.Context) (action.Void, map[string]any, error) {
		return h.service.DeletePost(ctx, postID)
	})
	httpx.JSON(w, http.StatusOK, res)
}

type togglePublishInput struct {
	Published bool `json:"published"`
}

func (h *Handler) togglePublish(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	var input togglePublishInput
	if err := httpx.DecodeJSON(w, r, &input); err != nil {
		httpx.JSON(w, http.StatusOK, action.Fail[*Post](action.MsgInvalidBody))
		return
	}
	res := action.Run(r.Context(), h.pipeline, "blog.togglePublish", func(ctx context.Context) (*Post, map[string]any, error) {
		return h.service.TogglePublish(ctx, postID, input.Published)
	})
	httpx.JSON(w, http.StatusOK, res)
}
