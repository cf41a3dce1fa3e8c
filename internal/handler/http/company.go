package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/file"
	"github.com/go-chi/chi/v5"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	EnsureDefault(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
	fileService    file.FileService
}

func NewCompanyHandler(companyService company.CompanyService, fileService file.FileService) CompanyHandler {
	return &CompanyHandlerImpl{
		companyService: companyService,
		fileService:    fileService,
	}
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := c.companyService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, companies)
}

// Save implements CompanyHandler. A seal sent as a data URL is stored as a
// signature image first and referenced by path.
func (c *CompanyHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req company.SaveCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Company save decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if strings.HasPrefix(req.SealImage, "data:") {
		actor, _ := middleware.ActorFromContext(r.Context())
		uploaded, err := c.fileService.UploadSignature(r.Context(), actor.WorkerID, req.SealImage)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		req.SealImage = uploaded.Path
	}

	companies, err := c.companyService.Save(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company saved", companies)
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.companyService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Company deleted", nil)
}

// EnsureDefault implements CompanyHandler.
func (c *CompanyHandlerImpl) EnsureDefault(w http.ResponseWriter, r *http.Request) {
	created, err := c.companyService.EnsureDefault(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]bool{"created": created})
}
