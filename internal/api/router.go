package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/technotes/notes-api/docs"
	"github.com/technotes/notes-api/internal/api/handler"
	"github.com/technotes/notes-api/internal/api/middleware"
	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/core/service"
	mongorepo "github.com/technotes/notes-api/internal/infrastructure/db/mongo"
	rediscache "github.com/technotes/notes-api/internal/infrastructure/db/redis"
	"github.com/technotes/notes-api/web"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Users ports.UserService
	Notes ports.NoteService
	Auth  ports.AuthService
}

// Options configures the HTTP surface.
type Options struct {
	// JWTSecret enables bearer-token checks on /users and /notes when non-empty.
	JWTSecret      string
	AllowedOrigins []string
	Logger         zerolog.Logger
	// Health is optional; probes are not mounted when nil.
	Health *handler.HealthDependenciesHandler
	// Registry receives the HTTP metrics. Defaults to the global Prometheus registry.
	Registry *prometheus.Registry
}

// NewServices wires repositories, the username cache and the password hasher
// into the use cases. A nil rdb disables the username cache.
func NewServices(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL, usernameTTL time.Duration, log zerolog.Logger) Services {
	users := mongorepo.NewUserRepository(db)
	notes := mongorepo.NewNoteRepository(db)
	hasher := service.NewBcryptHasher()

	var cache ports.UsernameCache = service.NopUsernameCache{}
	if rdb != nil {
		cache = rediscache.NewUsernameCache(rdb, usernameTTL)
	}

	return Services{
		Users: service.NewUserService(users, notes, hasher, cache, log.With().Str("component", "users").Logger()),
		Notes: service.NewNoteService(notes, users, cache, log.With().Str("component", "notes").Logger()),
		Auth:  service.NewAuthService(users, hasher, jwtSecret, tokenTTL),
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Outside the request logger so it sees the status the error handler wrote.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "technotes",
		Registerer: registerer,
	}))
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(middleware.CORS(opts.AllowedOrigins, opts.Logger))

	// --- Public routes ---
	root := handler.NewRootHandler(web.IndexHTML)
	e.GET("/", root.Index)
	e.GET("/index", root.Index)
	e.GET("/index.html", root.Index)

	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/auth", authHandler.Login)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness) // liveness  – is the process alive?
	if opts.Health != nil {
		e.GET("/health/ready", opts.Health.Readiness) // readiness – are dependencies up?
	}

	// --- Restricted routes ---
	users := e.Group("/users")
	notes := e.Group("/notes")
	if opts.JWTSecret != "" {
		auth := middleware.Auth(opts.JWTSecret)
		users.Use(auth, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
		notes.Use(auth)
	}

	userHandler := handler.NewUserHandler(svc.Users)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("", userHandler.Update)
	users.DELETE("", userHandler.Delete)

	noteHandler := handler.NewNoteHandler(svc.Notes)
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create)
	notes.PATCH("", noteHandler.Update)
	notes.DELETE("", noteHandler.Delete)

	return e
}
