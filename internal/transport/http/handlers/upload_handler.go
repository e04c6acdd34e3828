package handlers

import (
	"log/slog"
	"net/http"

	"github.com/vedran77/quill/internal/metrics"
	"github.com/vedran77/quill/internal/service"
	"github.com/vedran77/quill/internal/transport/http/middleware"
	"github.com/vedran77/quill/pkg/validator"
)

type UploadHandler struct {
	uploadService *service.UploadService
	log           *slog.Logger
	metrics       *metrics.Metrics
}

func NewUploadHandler(uploadService *service.UploadService, log *slog.Logger, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, log: log, metrics: m}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFrom(r.Context())

	var input service.UploadHTMLInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateUpload(input.HTMLContent); errs.HasErrors() {
		h.metrics.Upload("invalid")
		writeError(w, http.StatusBadRequest, errs.Error())
		return
	}

	resp, err := h.uploadService.UploadHTML(r.Context(), subject, input)
	if err != nil {
		h.metrics.Upload("error")
		h.log.Error("upload failed", "subject", subject.String(), "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.metrics.Upload("ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h *UploadHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFrom(r.Context())

	files, err := h.uploadService.ListFiles(r.Context(), subject)
	if err != nil {
		h.log.Error("list files failed", "subject", subject.String(), "err", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, files)
}
