package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type uploadSignatureRequest struct {
	Image string `json:"image"`
}

type SignatureHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Serve(w http.ResponseWriter, r *http.Request)
}

type signatureHandlerImpl struct {
	fileService file.FileService
}

func NewSignatureHandler(fileService file.FileService) SignatureHandler {
	return &signatureHandlerImpl{fileService: fileService}
}

func (h *signatureHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req uploadSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	uploaded, err := h.fileService.UploadSignature(r.Context(), actor.WorkerID, req.Image)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Signature uploaded", uploaded)
}

func (h *signatureHandlerImpl) Serve(w http.ResponseWriter, r *http.Request) {
	body, contentType, err := h.fileService.OpenSignature(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, body); err != nil {
		slog.Warn("Failed to stream signature", "error", err)
	}
}
