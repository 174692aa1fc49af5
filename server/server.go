// Package server assembles the HTTP application from explicitly passed dependencies.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/meinhoongagan/portfolio-api/auth"
	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/controllers"
	"github.com/meinhoongagan/portfolio-api/middleware"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/meinhoongagan/portfolio-api/routes"
	"github.com/meinhoongagan/portfolio-api/storage"
	"github.com/meinhoongagan/portfolio-api/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Deps are created by the caller and outlive the app.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Mailer utils.Mailer
	Files  storage.FileStore
	// LimiterStorage shares rate limit counters; nil keeps them in memory.
	LimiterStorage fiber.Storage
	// Registry receives request metrics; nil creates a private one.
	Registry *prometheus.Registry
	// Now overrides the clock used for OTP and token expiry.
	Now func() time.Time
	// AccessLog enables per-request logging.
	AccessLog bool
}

// New builds the fiber app with every route mounted.
func New(d Deps) *fiber.App {
	cfg := d.Config

	app := fiber.New(fiber.Config{
		AppName:      "portfolio-api",
		ErrorHandler: utils.ErrorHandler,
		// room for the multipart envelope around a maximum size upload
		BodyLimit: int(cfg.MaxUploadSize) + 1<<20,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	app.Use(middleware.NewMetrics(registry).Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	app.Get("/health", controllers.Health(d.DB))

	if local, ok := d.Files.(*storage.Local); ok {
		app.Static(storage.URLPrefix, local.Dir())
	}

	routes.Setup(app, handlers(d))
	return app
}

func handlers(d Deps) *routes.Handlers {
	cfg := d.Config
	users := repository.NewUserRepository(d.DB)
	tokens := auth.NewTokenService(cfg)
	authService := auth.NewService(users, repository.NewOTPRepository(d.DB), tokens, d.Mailer, cfg)
	if d.Now != nil {
		authService.WithClock(d.Now)
	}

	deps := controllers.Deps{DB: d.DB, Files: d.Files, MaxUploadSize: cfg.MaxUploadSize}

	return &routes.Handlers{
		Auth:           controllers.NewAuthController(authService),
		Users:          controllers.NewUserController(deps),
		Blogs:          controllers.NewBlogController(deps),
		Comments:       controllers.NewCommentController(deps),
		Contacts:       controllers.NewContactController(deps),
		Projects:       controllers.NewProjectController(deps),
		Services:       controllers.NewServiceController(deps),
		ServiceDetails: controllers.NewServiceDetailController(deps),
		Testimonials:   controllers.NewTestimonialController(deps),

		Protected:  middleware.Protected(tokens.AccessSecret()),
		SuperAdmin: middleware.RequireRole(users, models.RoleSuperAdmin),
		Throttle:   middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow, d.LimiterStorage),
	}
}
