package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/applications"
	googleauth "jobmatch-backend/internal/auth"
	"jobmatch-backend/internal/autoapply"
	"jobmatch-backend/internal/automation"
	"jobmatch-backend/internal/dashboard"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/quota"
	"jobmatch-backend/internal/roles"
	"jobmatch-backend/internal/services/health"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/server/middleware"
	"jobmatch-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers for route registration.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	ProfileHandler     *profiles.Handler
	RoleHandler        *roles.Handler
	AutomationHandler  *automation.Handler
	AutoApplyHandler   *autoapply.Handler
	ApplicationHandler *applications.Handler
	DashboardHandler   *dashboard.Handler
	QuotaHandler       *quota.Handler
	GoogleAuth         *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	registerMeRoutes(api)

	deps.ProfileHandler.RegisterRoutes(api)
	deps.RoleHandler.RegisterRoutes(api)
	deps.AutomationHandler.RegisterRoutes(api)
	deps.ApplicationHandler.RegisterRoutes(api)
	deps.DashboardHandler.RegisterRoutes(api)
	deps.AutoApplyHandler.RegisterRoutes(api)

	// Each run can create up to a daily limit of applications, so
	// rapid-fire requests get throttled before the orchestrator is
	// invoked.
	runGroup := api.Group("")
	runGroup.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"RUN": {Rate: 0.2, Burst: 3},
		},
		DefaultGroup: "RUN",
	}))
	deps.AutoApplyHandler.RegisterRunRoutes(runGroup)

	if deps.Config.Env == "dev" && deps.QuotaHandler != nil {
		dev := api.Group("/dev")
		deps.QuotaHandler.RegisterDevRoutes(dev)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
