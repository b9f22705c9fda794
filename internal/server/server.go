package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"backend-trafella/internal/config"
	"backend-trafella/internal/itinerary"
	"backend-trafella/internal/metrics"
	"backend-trafella/internal/planner"
	"backend-trafella/internal/poi"
	"backend-trafella/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var errDatabaseUnavailable = errors.New("postgres unavailable")

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Metrics *metrics.Metrics
	Log     *slog.Logger
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	m := metrics.New()

	s := &Server{
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Metrics: m,
		Log:     log,
		Stream:  stream.NewHub(redisClient, log, m),
	}
	s.App = fiber.New(fiber.Config{ErrorHandler: s.errorHandler})
	s.App.Use(recover.New())
	s.App.Use(logger.New())

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"postgres": s.DB != nil,
			"redis":    s.Redis != nil,
		})
	})
	if s.Cfg.MetricsEnabled {
		s.App.Get("/metrics", adaptor.HTTPHandler(s.Metrics.Handler()))
	}

	api := s.App.Group("/api")
	if s.Cfg.RateLimitPerSecond > 0 && s.Cfg.RateLimitBurst > 0 {
		api.Use(rateLimit(rate.NewLimiter(rate.Limit(s.Cfg.RateLimitPerSecond), s.Cfg.RateLimitBurst)))
	}

	var source itinerary.POISource = unavailablePOIs{}
	if s.DB != nil {
		poiSvc := poi.NewService(s.DB)
		poi.RegisterRoutes(api.Group("/pois"), poiSvc)
		source = poiSvc
	} else {
		s.Log.Warn("server.postgres_disabled", "detail", "POI routes not registered")
	}

	var (
		cache itinerary.Cache
		store planner.Store
	)
	plannerTTL := time.Duration(s.Cfg.PlannerTTLSeconds) * time.Second
	if s.Redis != nil {
		cache = itinerary.NewRedisCache(s.Redis)
		store = planner.NewRedisStore(s.Redis, plannerTTL)
	} else {
		cache = itinerary.NewMemoryCache()
		store = planner.NewMemoryStore(plannerTTL)
	}

	itinerarySvc := itinerary.NewService(source, cache, itinerary.Options{
		CapPerDay:   s.Cfg.CapPerDay,
		CacheTTL:    time.Duration(s.Cfg.CacheTTLSeconds) * time.Second,
		MaxTripDays: s.Cfg.MaxTripDays,
	}, s.Log, s.Metrics)
	itinerary.RegisterRoutes(api.Group("/itinerary"), itinerarySvc)

	planner.RegisterRoutes(api.Group("/planner"), planner.NewService(store, s.Stream, s.Log, s.Metrics))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// Close releases what the server owns. The pool and Redis client belong to
// the caller.
func (s *Server) Close() error {
	return s.Stream.Close()
}

func rateLimit(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}

var errorCodes = map[int]string{
	fiber.StatusBadRequest:          "INVALID_INPUT",
	fiber.StatusNotFound:            "NOT_FOUND",
	fiber.StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	fiber.StatusUpgradeRequired:     "UPGRADE_REQUIRED",
	fiber.StatusUnprocessableEntity: "VALIDATION_FAILED",
	fiber.StatusTooManyRequests:     "RATE_LIMITED",
}

// errorHandler renders every error as {code, message, details}. Messages of
// 5xx errors are logged and replaced.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		message = fe.Message
	}

	code, ok := errorCodes[status]
	switch {
	case status >= fiber.StatusInternalServerError:
		s.Log.Error("http.internal_error", "method", c.Method(), "path", c.Path(), "error", err)
		code, message = "INTERNAL_ERROR", "Unexpected error"
	case !ok:
		code = "ERROR"
	}
	return c.Status(status).JSON(fiber.Map{"code": code, "message": message, "details": nil})
}

type unavailablePOIs struct{}

func (unavailablePOIs) ByDestination(context.Context, string, []string) ([]poi.POI, error) {
	return nil, errDatabaseUnavailable
}
