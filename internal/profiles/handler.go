package profiles

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/extract"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes profile endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.saveProfile)
	rg.POST("/profile/resume", h.uploadResume)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, profile)
}

func (h *Handler) saveProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var input UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid profile payload", nil)
		return
	}

	profile, err := h.Svc.Save(c.Request.Context(), userID, input)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, profile)
}

func (h *Handler) uploadResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read resume file", nil)
		return
	}
	defer f.Close()

	profile, err := h.Svc.IngestResume(c.Request.Context(), userID, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, ErrResumeTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "resume file too large", nil)
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "validation_error", "resume must be PDF or DOCX", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest resume", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, profile)
}
