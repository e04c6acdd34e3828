package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vedran77/quill/internal/service"
	"github.com/vedran77/quill/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
	log         *slog.Logger
}

func NewPostHandler(postService *service.PostService, log *slog.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.log.Error("list posts failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreatePostInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(input.Title, input.Text); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Error())
		return
	}

	post, err := h.postService.Create(r.Context(), input)
	if err != nil {
		h.log.Error("create post failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
