package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swiftpark/parking-portal/internal/api/handler"
	"github.com/swiftpark/parking-portal/internal/api/middleware"
	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/service"
	"github.com/swiftpark/parking-portal/internal/infrastructure/config"
	mongodb "github.com/swiftpark/parking-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/swiftpark/parking-portal/internal/infrastructure/db/redis"
	"github.com/swiftpark/parking-portal/internal/web"
)

// NewRouter builds the Echo instance with every route group registered behind
// its access gate.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)
	flashStore := redisdb.NewFlashStore(rdb)

	authService := service.NewAuthService(userRepo, cfg.BcryptCost, log)
	sessions := service.NewSessionManager(sessionStore, userRepo, cfg.Session.Secret, cfg.Session.TTL, log)
	vehicleService := service.NewVehicleService(vehicleRepo, log)

	render := handler.NewPageRenderer(flashStore, log)
	authHandler := handler.NewAuthHandler(authService, sessions, render, cfg.Session.CookieSecure, log)
	pagesHandler := handler.NewPagesHandler(userRepo, render)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Session(sessions))

	requireAuth := middleware.RequireAuthenticated("/auth/login")

	// --- Public routes ---
	e.GET("/", pagesHandler.Home)
	e.StaticFS("/static", echo.MustSubFS(web.StaticFS, "static"))

	// --- Auth routes ---
	auth := e.Group("/auth")
	anonOnly := middleware.RequireAnonymous("/")
	auth.GET("/login", authHandler.ShowLogin, anonOnly)
	auth.POST("/login", authHandler.Login, anonOnly)
	auth.GET("/register", authHandler.ShowRegister, anonOnly)
	auth.POST("/register", authHandler.Register, anonOnly)
	auth.GET("/logout", authHandler.Logout, requireAuth)

	// --- Gated areas ---
	user := e.Group("/user", requireAuth,
		middleware.RequireRole("/user", domain.GroupRoles["/user"], flashStore, log))
	user.GET("", pagesHandler.UserDashboard)

	admin := e.Group("/admin", requireAuth,
		middleware.RequireRole("/admin", domain.GroupRoles["/admin"], flashStore, log))
	admin.GET("", pagesHandler.AdminUsers)

	// One CRUD group per category, each behind its own role gate.
	for _, cat := range domain.Categories {
		prefix := "/" + string(cat)
		g := e.Group(prefix, requireAuth,
			middleware.RequireRole(prefix, domain.GroupRoles[prefix], flashStore, log))
		handler.NewVehicleHandler(vehicleService, cat, render).Register(g)
	}

	// --- Operations endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
