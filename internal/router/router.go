package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/sikhmentors/directory-api/internal/handlers"
	"github.com/sikhmentors/directory-api/internal/middleware"
	"github.com/sikhmentors/directory-api/internal/services"
	"github.com/sikhmentors/directory-api/pkg/jwt"
	"github.com/sikhmentors/directory-api/pkg/metrics"
)

// jsonBodyLimit caps every JSON request body
const jsonBodyLimit = 64 * 1024

// multipartOverhead is headroom on top of the image ceiling for form boundaries and headers
const multipartOverhead = 64 * 1024

// Options configures the HTTP surface
type Options struct {
	AllowedOrigins []string
	ServiceName    string
	UploadMaxBytes int64
	Development    bool
}

// Dependencies are the services and collaborators behind the routes
type Dependencies struct {
	Auth         services.AuthServiceInterface
	Mentors      services.MentorServiceInterface
	Uploads      services.UploadServiceInterface
	Contact      services.ContactServiceInterface
	TokenManager *jwt.TokenManager
	DB           handlers.Pinger
}

// New builds the gin engine. Rate limiter cleanup stops when ctx is done.
func New(ctx context.Context, opts Options, deps Dependencies) *gin.Engine {
	handlers.SetExposeInternalErrors(opts.Development)

	router := gin.New()

	router.Use(gin.Recovery())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := append([]string(nil), opts.AllowedOrigins...)
	if opts.Development {
		allowedOrigins = append(allowedOrigins, "http://127.0.0.1:3000")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	generalRateLimiter := middleware.NewRateLimiter(ctx, 50, 100)
	loginRateLimiter := middleware.NewRateLimiter(ctx, middleware.PerMinute(10), 5)
	contactRateLimiter := middleware.NewRateLimiter(ctx, middleware.PerMinute(6), 3)

	jsonLimit := middleware.BodySizeLimitMiddleware(jsonBodyLimit)
	guard := middleware.SessionGuard(deps.TokenManager)

	mentorHandler := handlers.NewMentorHandler(deps.Mentors)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	uploadHandler := handlers.NewUploadHandler(deps.Uploads)
	contactHandler := handlers.NewContactHandler(deps.Contact)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Public
	api.GET("/mentors", generalRateLimiter.Middleware(), mentorHandler.ListMentors)
	api.POST("/mentors/:id/contact", contactRateLimiter.Middleware(), jsonLimit, contactHandler.ContactMentor)
	api.POST("/admin/login", loginRateLimiter.Middleware(), jsonLimit, authHandler.Login)

	// Admin
	admin := api.Group("", guard)
	admin.POST("/admin/refresh", authHandler.Refresh)
	admin.GET("/admin/session", authHandler.Session)
	admin.GET("/admin/mentors", mentorHandler.ListMentorsAdmin)
	admin.POST("/mentors", jsonLimit, mentorHandler.CreateMentor)
	admin.PUT("/mentors/:id", jsonLimit, mentorHandler.UpdateMentor)
	admin.DELETE("/mentors/:id", mentorHandler.DeleteMentor)
	admin.POST("/upload", middleware.BodySizeLimitMiddleware(opts.UploadMaxBytes+multipartOverhead), uploadHandler.Upload)

	return router
}
