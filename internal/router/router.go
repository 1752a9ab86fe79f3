package router

import (
	"context"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/config"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/handler"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/infra"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/middleware"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/model"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/repository"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the long-lived collaborators built by the composition root.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Events   *infra.EventPublisher
	Notifier *session.Notifier
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// ctx bounds the background purge of the rate limiters.
func New(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, rdb := deps.DB, deps.Redis
	notifier := deps.Notifier
	if notifier == nil {
		notifier = session.NewNotifier()
	}

	apiLimiter := middleware.NewLimiter(1000, time.Minute) // 1000 req/min per IP
	loginLimiter := middleware.NewLimiter(20, time.Minute)
	apiLimiter.StartPurge(ctx)
	loginLimiter.StartPurge(ctx)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins...))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(apiLimiter))

	// ── Repositories ─────────────────────────────────────────────────────────
	tenantRepo := repository.NewTenantRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	justificationRepo := repository.NewJustificationRepository(db)
	rewardRepo := repository.NewRewardRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	sessions := service.NewSessionStore(rdb)
	rankingCache := service.NewRankingCache(rdb, time.Duration(cfg.RankingCacheTTLSeconds)*time.Second)

	// Post-commit ledger side effects; e-mails go through the worker pool
	effects := &service.SideEffects{
		Events:  deps.Events,
		Emails:  worker.NewDispatcher(rdb),
		Ranking: rankingCache,
	}

	authSvc := service.NewAuthService(credentialRepo, profileRepo, sessions, notifier, cfg)
	userSvc := service.NewUserService(credentialRepo, profileRepo, tenantRepo, rankingCache)
	tenantSvc := service.NewTenantService(tenantRepo)
	rewardSvc := service.NewRewardService(rewardRepo)
	justificationSvc := service.NewJustificationService(justificationRepo)
	ledgerSvc := service.NewLedgerService(profileRepo, assignmentRepo, redemptionRepo, rewardRepo, justificationRepo, effects)
	historySvc := service.NewHistoryService(profileRepo, assignmentRepo, redemptionRepo)
	rankingSvc := service.NewRankingService(profileRepo, rankingCache)
	reconcileSvc := service.NewReconcileService(profileRepo, assignmentRepo, redemptionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, notifier)
	tenantsH := handler.NewTenantsHandler(tenantSvc, userSvc)
	employeesH := handler.NewEmployeesHandler(userSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc, reconcileSvc)
	historyH := handler.NewHistoryHandler(historySvc)
	rankingH := handler.NewRankingHandler(rankingSvc)
	rewardsH := handler.NewRewardsHandler(rewardSvc)
	justificationsH := handler.NewJustificationsHandler(justificationSvc)
	opsH := handler.NewOpsHandler(worker.NewDeadLetters(rdb))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, deps.Events))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(loginLimiter), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	const (
		manager  = model.RoleManager
		admin    = model.RoleAdmin
		employee = model.RoleEmployee
	)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, sessions)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)
		v1.GET("/auth/events", authH.Events)

		tenants := v1.Group("/tenants", middleware.RequireRole(manager))
		{
			tenants.POST("", tenantsH.Create)
			tenants.GET("", tenantsH.List)
			tenants.GET("/:id", tenantsH.Get)
			tenants.PUT("/:id", tenantsH.Update)
			tenants.DELETE("/:id", tenantsH.Deactivate)
			tenants.POST("/:id/admins", tenantsH.CreateAdmin)
		}

		employees := v1.Group("/employees", middleware.RequireRole(admin))
		{
			employees.POST("", employeesH.Create)
			employees.GET("", employeesH.List)
			employees.PUT("/:id", employeesH.Update)
			employees.DELETE("/:id", employeesH.Deactivate)
			employees.PATCH("/:id/reactivar", employeesH.Reactivate)
		}

		ledger := v1.Group("/ledger")
		{
			ledger.POST("/assignments", middleware.RequireRole(admin), ledgerH.Assign)
			ledger.POST("/redemptions", middleware.RequireRole(employee), ledgerH.Redeem)
			ledger.GET("/audit", middleware.RequireRole(admin, manager), ledgerH.Audit)
		}

		// Per-employee scoping (own / same tenant / any) is enforced by the service
		history := v1.Group("/history")
		{
			history.GET("/employees/:id", historyH.Employee)
			history.GET("/employees/:id/statement.pdf", historyH.Statement)
			history.GET("/tenant", middleware.RequireRole(admin, manager), historyH.Tenant)
		}

		v1.GET("/ranking", rankingH.Top)

		v1.GET("/rewards", rewardsH.List)
		rewards := v1.Group("/rewards", middleware.RequireRole(admin))
		{
			rewards.POST("", rewardsH.Create)
			rewards.PUT("/:id", rewardsH.Update)
			rewards.DELETE("/:id", rewardsH.Deactivate)
		}

		justifications := v1.Group("/justifications", middleware.RequireRole(admin, manager))
		{
			justifications.GET("", justificationsH.List)
			justifications.POST("", justificationsH.Create)
			justifications.DELETE("/:id", justificationsH.Deactivate)
		}

		ops := v1.Group("/ops", middleware.RequireRole(manager))
		{
			ops.GET("/emails/parked", opsH.ParkedEmails)
			ops.POST("/emails/replay", opsH.ReplayEmails)
		}
	}

	// Swagger UI outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
