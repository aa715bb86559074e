package roles

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes role catalog endpoints.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches role routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.list)
	rg.GET("/roles/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Repo.List(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list roles", nil)
		}
		return
	}
	if list == nil {
		list = []Role{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"roles": list})
}

func (h *Handler) get(c *gin.Context) {
	roleID := c.Param("id")
	if roleID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "role id is required", nil)
		return
	}
	role, err := h.Repo.GetByID(c.Request.Context(), roleID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "role not found", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch role", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, role)
}
