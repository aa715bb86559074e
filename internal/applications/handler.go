package applications

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes application endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
	rg.POST("/applications/:id/stage", h.updateStage)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	apps, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list applications")
		return
	}
	if apps == nil {
		apps = []Application{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	app, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to fetch application")
		return
	}
	respond.JSON(c, http.StatusOK, app)
}

type stageRequest struct {
	Action string `json:"action"`
}

func (h *Handler) updateStage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	applicationID := c.Param("id")
	c.Set("applicationId", applicationID)

	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "action is required", nil)
		return
	}

	app, err := h.Svc.UpdateStage(c.Request.Context(), userID, applicationID, req.Action)
	if err != nil {
		respondError(c, err, "failed to update application stage")
		return
	}
	c.Set("stageTransition", req.Action+"->"+app.Status)
	respond.JSON(c, http.StatusOK, app)
}

func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "application not owned by caller", nil)
	case errors.Is(err, ErrUnknownAction):
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown stage action", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", "stage action not allowed from current status", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
