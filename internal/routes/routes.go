package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/auth"
	"github.com/BruksfildServices01/wedding-vendors/internal/config"
	"github.com/BruksfildServices01/wedding-vendors/internal/domain/user"
	"github.com/BruksfildServices01/wedding-vendors/internal/domain/vendor"
	"github.com/BruksfildServices01/wedding-vendors/internal/handlers"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/middleware"
	"github.com/BruksfildServices01/wedding-vendors/internal/models"
	"github.com/BruksfildServices01/wedding-vendors/internal/upload"
	ucAccount "github.com/BruksfildServices01/wedding-vendors/internal/usecase/account"
	ucVendor "github.com/BruksfildServices01/wedding-vendors/internal/usecase/vendor"
	"github.com/BruksfildServices01/wedding-vendors/internal/validators"
)

// Dependencies are the singletons built in main and shared by every route.
type Dependencies struct {
	Users         user.Repository
	Caterers      vendor.CatererRepository
	Photographers vendor.PhotographerRepository

	Audit     *audit.Dispatcher
	AuditLogs audit.Reader
	Tokens    *auth.TokenIssuer
	Limiter   auth.LoginLimiter
	Uploads   *upload.Handler

	// UploadDir is served under /uploads. Empty when files live in S3.
	UploadDir string
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// ======================================================
	// USE CASES
	// ======================================================
	var emailChecker *validators.EmailDomainChecker
	if cfg.CheckEmailDomain {
		emailChecker = validators.NewEmailDomainChecker(nil)
	}

	registerUC := ucAccount.NewRegister(
		deps.Users,
		deps.Tokens,
		emailChecker,
		deps.Audit,
	)

	loginUC := ucAccount.NewLogin(
		deps.Users,
		deps.Tokens,
		deps.Limiter,
	)

	registerCatererUC := ucVendor.NewRegisterCaterer(
		deps.Caterers,
		deps.Audit,
	)

	listCaterersUC := ucVendor.NewListApprovedCaterers(deps.Caterers)

	approveCatererUC := ucVendor.NewApproveCaterer(
		deps.Caterers,
		deps.Audit,
	)

	registerPhotographerUC := ucVendor.NewRegisterPhotographer(
		deps.Photographers,
		deps.Users,
		deps.Audit,
	)

	listPhotographersUC := ucVendor.NewListPhotographers(
		deps.Photographers,
		cfg.PublicBaseURL,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, cfg.TokenTTL, cfg.IsProduction())
	meHandler := handlers.NewMeHandler()

	catererHandler := handlers.NewCatererHandler(
		deps.Uploads,
		registerCatererUC,
		listCaterersUC,
		approveCatererUC,
	)

	photographerHandler := handlers.NewPhotographerHandler(
		deps.Uploads,
		registerPhotographerUC,
		listPhotographersUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogs)

	requireAuth := middleware.AuthMiddleware(deps.Tokens, deps.Users)
	optionalAuth := middleware.OptionalAuth(deps.Tokens, deps.Users)

	// ======================================================
	// STATIC
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.UploadDir != "" {
		r.Static("/"+upload.DefaultPrefix, deps.UploadDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
			authAPI.GET("/me", requireAuth, meHandler.GetMe)
		}

		// ------------------------------
		// CATERERS
		// ------------------------------
		catererAPI := api.Group("/caterer")
		{
			catererAPI.GET("/", catererHandler.List)
			catererAPI.POST("/register", requireAuth, catererHandler.Register)
			catererAPI.PATCH(
				"/:id/approve",
				requireAuth,
				middleware.Authorize(models.RoleAdmin),
				catererHandler.Approve,
			)
		}

		// ------------------------------
		// PHOTOGRAPHERS
		// ------------------------------
		photographerAPI := api.Group("/photographer")
		{
			photographerAPI.GET("/", photographerHandler.List)
			photographerAPI.POST("/register", optionalAuth, photographerHandler.Register)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		adminAPI := api.Group("/admin")
		adminAPI.Use(requireAuth, middleware.Authorize(models.RoleAdmin))
		{
			adminAPI.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		httperr.Respond(c, httperr.ErrNotFound("Route not found"))
	})
}
