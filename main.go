package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/config"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/consumer"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/events"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/handler"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/jobs"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/repository"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/database"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/metrics"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/rabbitmq"
)

const userEventsQueue = "storefront.user-events"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Remembered sessions survive restarts in postgres
	db, err := database.NewPostgresDB(cfg.DSN())
	if err != nil {
		zl.Fatal("connect database", zap.Error(err))
	}
	sessionRepo := repository.NewSessionRepository(db)

	// Workflow events: nil publisher = skip RabbitMQ
	var pub events.Publisher
	if cfg.EventsEnabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange, zl)
		if err != nil {
			zl.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer p.Close()
			pub = p
		}
	}
	emitter := events.NewEmitter(pub, zl)

	// Rental backend
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  zl,
	})
	if err != nil {
		zl.Fatal("build api client", zap.Error(err))
	}
	authAPI := apiclient.NewAuthAPI(client)
	vehicleAPI := apiclient.NewVehicleAPI(client)
	bookingAPI := apiclient.NewBookingAPI(client)
	paymentAPI := apiclient.NewPaymentAPI(client)
	userAPI := apiclient.NewUserAPI(client)

	// Sessions
	sessions := session.NewManager(session.Options{
		Auth:        authAPI,
		Users:       userAPI,
		Memory:      session.NewMemoryStore(),
		Durable:     session.NewDurableStore(sessionRepo),
		Events:      emitter,
		Logger:      zl,
		SessionTTL:  cfg.SessionTTL,
		RememberTTL: cfg.RememberTTL,
		Now:         now,
	})
	client.OnUnauthorized(sessions.Unauthorized)

	// Services
	vehicleSvc := service.NewVehicleService(vehicleAPI)
	bookingSvc := service.NewBookingService(vehicleAPI, bookingAPI, paymentAPI, emitter, now, zl)
	paymentSvc := service.NewPaymentService(bookingAPI, paymentAPI, emitter, zl)
	adminSvc := service.NewAdminService(vehicleAPI, bookingAPI, paymentAPI, userAPI)

	// Backend user events revoke sessions
	if cfg.EventsEnabled {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.Binding{
			Exchange:   cfg.UserEventsExchange,
			Queue:      userEventsQueue,
			RoutingKey: "user.*",
		}, zl)
		if err != nil {
			zl.Warn("user event consumer disabled", zap.Error(err))
		} else {
			defer mqConsumer.Close()
			msgs, err := mqConsumer.Consume()
			if err != nil {
				zl.Fatal("start consuming", zap.Error(err))
			}
			consumer.NewUserConsumer(sessions, zl).Start(msgs)
		}
	}

	// Housekeeping
	scheduler := jobs.NewScheduler(loc, zl)
	if err := scheduler.Add(cfg.PurgeSpec, jobs.NewSessionPurge(sessions, zl)); err != nil {
		zl.Fatal("schedule session purge", zap.Error(err))
	}
	scheduler.Start()

	// Echo
	cookies := middleware.Cookies{Name: cfg.CookieName, Secure: cfg.CookieSecure}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(zl, cookies)
	e.Validator = validation.New()
	e.Use(middleware.RequestLogger(zl))
	e.Use(echoMw.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.Session(sessions, cookies))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	handler.NewAuthHandler(sessions, cookies, middleware.LoginRateLimit(cfg.LoginAttemptsPerMinute), zl).RegisterRoutes(api)
	handler.NewVehicleHandler(vehicleSvc).RegisterRoutes(api)
	handler.NewBookingHandler(bookingSvc, paymentSvc).RegisterRoutes(api)
	handler.NewAdminHandler(adminSvc, vehicleSvc, bookingSvc, paymentSvc).RegisterRoutes(api)

	go func() {
		zl.Info("storefront starting", zap.String("port", cfg.ServerPort), zap.String("backend", cfg.BackendURL))
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(ctx)
	if err := e.Shutdown(ctx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("storefront stopped")
}
