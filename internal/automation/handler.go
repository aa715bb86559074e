package automation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes automation config endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches automation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/automation/config", h.getConfig)
	rg.PUT("/automation/config", h.saveConfig)
}

func (h *Handler) getConfig(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	cfg, err := h.Svc.GetOrDefault(c.Request.Context(), userID)
	if err != nil {
		handlerError(c, err, "failed to fetch automation config")
		return
	}
	respond.JSON(c, http.StatusOK, cfg)
}

func (h *Handler) saveConfig(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// The payload is merged field by field; unknown or malformed fields
	// degrade to the stored values rather than failing the request.
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		raw = map[string]any{}
	}

	cfg, err := h.Svc.Save(c.Request.Context(), userID, raw)
	if err != nil {
		handlerError(c, err, "failed to save automation config")
		return
	}
	respond.JSON(c, http.StatusOK, cfg)
}

func handlerError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
