package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/applications"
	googleauth "jobmatch-backend/internal/auth"
	"jobmatch-backend/internal/autoapply"
	"jobmatch-backend/internal/automation"
	"jobmatch-backend/internal/dashboard"
	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/match"
	"jobmatch-backend/internal/notify"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/quota"
	"jobmatch-backend/internal/roles"
	"jobmatch-backend/internal/services/health"
	"jobmatch-backend/internal/shared/config"
	"jobmatch-backend/internal/shared/server"
	"jobmatch-backend/internal/shared/storage/db"
	"jobmatch-backend/internal/shared/storage/object"
	localstore "jobmatch-backend/internal/shared/storage/object/local"
	s3store "jobmatch-backend/internal/shared/storage/object/s3"
)

// App holds the wired application graph.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProfilesRepo     profiles.Repo
	RolesRepo        roles.Repo
	AutomationRepo   automation.Repo
	ApplicationsRepo applications.Repo
	EventsRepo       events.Repo

	ProfilesService     *profiles.Service
	AutomationService   *automation.Service
	ApplicationsService *applications.Service
	AutoApplyService    *autoapply.Service
	DashboardService    *dashboard.Service
	QuotaService        *quota.Service
	HealthService       *health.Service

	GoogleAuth *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	if cfg.SeedRoles {
		if err := roles.SeedDev(ctx, app.RolesRepo); err != nil {
			log.Printf("bootstrap: role seed failed: %v", err)
		}
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		Health:             app.HealthService,
		ProfileHandler:     profiles.NewHandler(app.ProfilesService),
		RoleHandler:        roles.NewHandler(app.RolesRepo),
		AutomationHandler:  automation.NewHandler(app.AutomationService),
		AutoApplyHandler:   autoapply.NewHandler(app.AutoApplyService),
		ApplicationHandler: applications.NewHandler(app.ApplicationsService),
		DashboardHandler:   dashboard.NewHandler(app.DashboardService),
		QuotaHandler:       quota.NewHandler(app.QuotaService, nil),
		GoogleAuth:         app.GoogleAuth,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	now := func() time.Time { return time.Now().UTC() }

	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.RolesRepo = &roles.PGRepo{DB: app.DB}
		app.AutomationRepo = &automation.PGRepo{DB: app.DB}
		app.EventsRepo = &events.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.QuotaService = quota.NewPostgresService(quota.NewPGStore(app.DB))
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.RolesRepo = roles.NewMemoryRepo()
		app.AutomationRepo = automation.NewMemoryRepo()
		app.EventsRepo = events.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo(app.EventsRepo)
		app.QuotaService = quota.NewService()
	}

	app.ProfilesService = &profiles.Service{
		Repo:   app.ProfilesRepo,
		Store:  app.Store,
		Events: app.EventsRepo,
		Now:    now,
	}
	app.AutomationService = automation.NewService(app.AutomationRepo, app.ProfilesService, app.EventsRepo, now)
	app.ApplicationsService = &applications.Service{
		Repo:       app.ApplicationsRepo,
		Events:     app.EventsRepo,
		Dispatcher: notify.LogDispatcher{},
		Now:        now,
	}
	app.AutoApplyService = autoapply.NewService(
		app.AutomationService,
		app.ProfilesService,
		app.RolesRepo,
		app.ApplicationsRepo,
		app.QuotaService,
		match.LexicalScorer{},
		now,
	)
	app.DashboardService = dashboard.NewService(app.ApplicationsRepo, app.EventsRepo)
	app.HealthService = health.NewService()

	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
