package quota

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// Handler exposes dev-only quota routes.
type Handler struct {
	Svc *Service
	Now func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, now func() time.Time) *Handler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Handler{Svc: svc, Now: now}
}

// RegisterDevRoutes attaches quota reset to the dev router group.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.POST("/quota/reset", h.reset)
}

func (h *Handler) reset(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	day := DayKey(h.Now())
	if err := h.Svc.Reset(c.Request.Context(), userID, day); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to reset quota", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true, "day": day})
}
