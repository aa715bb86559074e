package autoapply

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/quota"
	"jobmatch-backend/internal/roles"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes match and auto-apply endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the read-only match routes to the router
// group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/match/top", h.topMatches)
	rg.GET("/match/roles/:id", h.runMatch)
}

// RegisterRunRoutes attaches the run route. Registered separately so
// the caller can throttle it without touching the match reads.
func (h *Handler) RegisterRunRoutes(rg *gin.RouterGroup) {
	rg.POST("/auto-apply/run", h.run)
}

type runRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) run(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// Mode override is optional; an absent or unknown mode falls back
	// to the stored config.
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = runRequest{}
	}

	result, err := h.Svc.Run(c.Request.Context(), userID, req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, applications.ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate_application", "an application for one of these roles already exists", nil)
		case errors.Is(err, quota.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "daily application limit reached", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "auto-apply run failed", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) topMatches(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	count := 5
	if raw := c.Query("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			count = parsed
		}
	}
	if count > 50 {
		count = 50
	}

	matches, err := h.Svc.TopMatches(c.Request.Context(), userID, count)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute matches", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"matches": matches})
}

func (h *Handler) runMatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	roleID := c.Param("id")

	result, err := h.Svc.RunMatch(c.Request.Context(), userID, roleID)
	if err != nil {
		switch {
		case errors.Is(err, roles.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to score role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, result)
}
