package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/showcase-api/internal/cache"
	"github.com/dimitrije/showcase-api/internal/config"
	"github.com/dimitrije/showcase-api/internal/database"
	"github.com/dimitrije/showcase-api/internal/events"
	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/fallback"
	"github.com/dimitrije/showcase-api/internal/handlers"
	"github.com/dimitrije/showcase-api/internal/logging"
	authmw "github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/internal/retry"
	"github.com/dimitrije/showcase-api/internal/services"
	"github.com/dimitrije/showcase-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	local, err := fallback.Open(cfg.FallbackPath)
	if err != nil {
		return err
	}
	defer local.Close()

	opts := facade.Options{
		Local:    local,
		Cache:    cache.New(cfg.CacheSize, cfg.CacheTTL),
		Registry: events.NewRegistry(logger),
		Retry:    retry.Policy{MaxAttempts: cfg.Retry.MaxAttempts, Delay: cfg.Retry.Delay},
		Logger:   logger,
	}

	var db *database.DB
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, serving from the local fallback store only")
	} else {
		db, err = database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.Remote = remote.New(db)
	}

	data, err := facade.New(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("data access ready",
		zap.Stringer("backend", data.Mode()),
		zap.String("fallback", local.Path()))

	schema := &schemaBootstrap{db: db, logger: logger}
	schema.ensure(ctx, data.Mode())

	hub := sse.NewHub(logger)
	unsubscribe := data.Registry().Subscribe(events.Wildcard, hub.Publish)
	defer unsubscribe()

	notifier := services.NewInquiryNotifier(services.NewEmailService(cfg.SMTP), cfg.NotifyEmail, logger)
	unsubscribeNotifier := func() {}
	if notifier.Enabled() {
		unsubscribeNotifier = data.Registry().Subscribe(models.ResourceInquiries, notifier.Notify)
	} else {
		logger.Info("SMTP not configured, inquiry notices are disabled")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	adminService := services.NewAdminService(cfg.Admin.Email, cfg.Admin.Password, jwtService)
	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set, admin login is disabled")
	}

	contactHandler := handlers.NewContactHandler(data)
	productHandler := handlers.NewResourceHandler(data, models.ResourceProducts)
	newsHandler := handlers.NewResourceHandler(data, models.ResourceNews)
	inquiryHandler := handlers.NewInquiryHandler(data)
	statsHandler := handlers.NewStatsHandler(data)
	authHandler := handlers.NewAuthHandler(adminService, logger)
	healthHandler := handlers.NewHealthHandler(data)
	eventsHandler := handlers.NewEventsHandler(hub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		MaxAge:       86400,
	}))
	app.Use(authmw.RequestLogger(logger))
	app.Use(authmw.Metrics())
	app.Use(middleware.BodyParser())

	app.Post("/contact", contactHandler.Submit)
	app.Get("/products", productHandler.List)
	app.Get("/news", newsHandler.List)
	app.Post("/admin-login", authHandler.Login)
	app.Get("/health", healthHandler.Health)
	app.Get("/metrics", handlers.Metrics())

	protected := app.Group("")
	protected.Use(authmw.AdminAuth(adminService))

	protected.Post("/products", productHandler.Create)
	protected.Post("/products/bulk", productHandler.Replace)
	protected.Delete("/products/:id", productHandler.Delete)
	protected.Post("/news", newsHandler.Create)
	protected.Post("/news/bulk", newsHandler.Replace)
	protected.Delete("/news/:id", newsHandler.Delete)
	protected.Get("/inquiries", inquiryHandler.List)
	protected.Delete("/inquiries/:id", handlers.NewResourceHandler(data, models.ResourceInquiries).Delete)
	protected.Get("/stats", statsHandler.Get)
	protected.Get("/events", eventsHandler.Stream)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		if cfg.ProbeInterval <= 0 {
			return nil
		}
		ticker := time.NewTicker(cfg.ProbeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				schema.ensure(gctx, data.Recheck(gctx))
			}
		}
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-gctx.Done():
		logger.Info("shutting down server")
	case err = <-serverErr:
		logger.Error("http server stopped", zap.Error(err))
	}

	// stopping the hub closes client channels, which ends open event streams
	stop()
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if serr := srv.Shutdown(drainCtx); serr != nil {
		logger.Warn("http server shutdown incomplete", zap.Error(serr))
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	unsubscribeNotifier()
	if derr := notifier.Wait(drainCtx); derr != nil {
		logger.Warn("pending inquiry notices abandoned", zap.Error(derr))
	}
	if werr := g.Wait(); werr != nil {
		return werr
	}
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// schemaBootstrap creates the remote tables the first time the backend is
// seen reachable, which may be after startup.
type schemaBootstrap struct {
	db     *database.DB
	logger *zap.Logger
	done   bool
}

func (s *schemaBootstrap) ensure(ctx context.Context, mode facade.Mode) {
	if s.done || s.db == nil || mode != facade.ModeRemote {
		return
	}
	if err := s.db.Migrate(ctx); err != nil {
		s.logger.Warn("schema bootstrap failed", zap.Error(err))
		return
	}
	s.done = true
	s.logger.Info("schema ready")
}
