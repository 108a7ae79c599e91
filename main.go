package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mindmetrics/handlers"
	"mindmetrics/internal/config"
	"mindmetrics/internal/insights"
	"mindmetrics/internal/logger"
	"mindmetrics/internal/weather"
	"mindmetrics/middleware"
	"mindmetrics/services"

	_ "net/http/pprof"
)

var registerMetrics sync.Once

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "mindmetrics:", err)
		os.Exit(1)
	}
}

// Run starts the API and blocks until ctx is done or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(insights.ValidPeriod); err != nil {
		return err
	}

	log := logger.New(cfg.Env, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	stores, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	auth, err := authMiddleware(cfg, log)
	if err != nil {
		return err
	}

	registerMetrics.Do(func() {
		middleware.InitPrometheus(services.Collectors()...)
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	go limiter.Cleanup(ctx)

	handler, err := newRouter(routerDeps{
		cfg:     cfg,
		log:     log,
		backend: stores,
		auth:    auth,
		limiter: limiter,
	})
	if err != nil {
		return err
	}

	server := http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("addr", server.Addr),
			zap.String("store_backend", cfg.StoreBackend),
			zap.String("auth_provider", cfg.AuthProvider))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	log.Info("server shutdown complete")
	return nil
}

// backend is the selected store implementation.
type backend struct {
	logs   services.LogStore
	goals  services.GoalStore
	latest services.ContextProvider
	pinger services.Pinger
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*backend, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dbPool, err := openPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := services.EnsureSchema(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
		log.Info("connected to postgres")

		logStore := services.NewPGLogStore(dbPool)
		var ws services.WeatherSource
		if cfg.WeatherAPIKey != "" {
			ws = weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, cfg.UpstreamTimeout)
		} else {
			log.Warn("WEATHER_API_KEY not set, dashboard will carry no weather")
		}
		return &backend{
			logs:   logStore,
			goals:  services.NewPGGoalStore(dbPool),
			latest: services.NewLocalContextProvider(logStore, ws, log),
			pinger: logStore,
			close: func() {
				log.Info("closing database connection pool")
				dbPool.Close()
			},
		}, nil

	default:
		client := services.NewUpstreamClient(cfg.UpstreamURL, cfg.UpstreamTimeout, log)
		return &backend{
			logs:   client,
			goals:  client,
			latest: client,
			close:  func() {},
		}, nil
	}
}

func openPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbPool, nil
}

func authMiddleware(cfg *config.Config, log *zap.Logger) (mux.MiddlewareFunc, error) {
	switch cfg.AuthProvider {
	case config.AuthClerk:
		clerk.SetKey(cfg.ClerkSecretKey)
		log.Info("clerk initialized")
		return middleware.ClerkAuthMiddleware(log), nil
	case config.AuthJWT:
		return middleware.JWTAuthMiddleware([]byte(cfg.JWTSecret), log), nil
	}
	return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.AuthProvider)
}

type routerDeps struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *backend
	auth    mux.MiddlewareFunc
	limiter *middleware.RateLimiter
}

func newRouter(d routerDeps) (http.Handler, error) {
	rules := insights.DefaultRules()
	validate, err := handlers.NewValidator(rules)
	if err != nil {
		return nil, err
	}

	dashboardService := services.NewDashboardService(d.backend.logs, d.backend.goals, d.backend.latest,
		services.NewFetchGuard(), d.log,
		services.WithRules(rules),
		services.WithContextTimeout(d.cfg.ContextTimeout))
	dailyLogService := services.NewDailyLogService(d.backend.logs, d.log)
	goalService := services.NewGoalService(d.backend.goals, d.log)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, d.cfg.DefaultPeriod, d.log)
	dailyLogHandler := handlers.NewDailyLogHandler(dailyLogService, validate, d.log)
	goalHandler := handlers.NewGoalHandler(goalService, validate, d.log)
	healthHandler := handlers.NewHealthHandler(d.backend.pinger, d.log)

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()
	standardRouter.Use(d.limiter.Middleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(d.cfg.MetricsUser, d.cfg.MetricsPass)(promhttp.Handler()))
	if d.cfg.PprofSecret != "" {
		standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(d.cfg.PprofSecret)(http.DefaultServeMux))
	}
	standardRouter.HandleFunc("/health", healthHandler.Health).Methods("GET")

	api := standardRouter.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(d.auth)

	protected.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	protected.HandleFunc("/session/signout", dashboardHandler.SignOut).Methods("POST")

	protected.HandleFunc("/dailylogs", dailyLogHandler.ListLogs).Methods("GET")
	protected.HandleFunc("/dailylogs", dailyLogHandler.CreateLog).Methods("POST")
	protected.HandleFunc("/dailylogs/today", dailyLogHandler.GetToday).Methods("GET")
	protected.HandleFunc("/dailylogs/{id}", dailyLogHandler.GetLog).Methods("GET")
	protected.HandleFunc("/dailylogs/{id}", dailyLogHandler.UpdateLog).Methods("PUT")
	protected.HandleFunc("/dailylogs/{id}", dailyLogHandler.DeleteLog).Methods("DELETE")

	protected.HandleFunc("/goals", goalHandler.ListGoals).Methods("GET")
	protected.HandleFunc("/goals", goalHandler.CreateGoal).Methods("POST")
	protected.HandleFunc("/goals/{id}", goalHandler.GetGoal).Methods("GET")
	protected.HandleFunc("/goals/{id}", goalHandler.UpdateGoal).Methods("PUT")
	protected.HandleFunc("/goals/{id}", goalHandler.DeleteGoal).Methods("DELETE")

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
		gorilllaHandlers.AllowCredentials(),
	)
	return corsHandler(middleware.RequestLogger(d.log)(r)), nil
}
