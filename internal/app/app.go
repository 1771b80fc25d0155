// Package app assembles the service: configuration, logging, database,
// domain services, the assistant dispatcher and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Roof-ER21/roof-hr-sub000/internal/adapter/notify"
	"github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres"
	candidaterepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/candidate"
	confirmationrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/confirmation"
	contractrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/contract"
	documentrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/document"
	employeerepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/employee"
	ptorepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/pto"
	reviewrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/review"
	territoryrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/territory"
	toolrepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/tool"
	internalauth "github.com/Roof-ER21/roof-hr-sub000/internal/auth"
	"github.com/Roof-ER21/roof-hr-sub000/internal/config"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/assistant"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/auth"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/contract"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/document"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/employee"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/pto"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/recruiting"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/review"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/sweep"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/territory"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/tooling"
	"github.com/Roof-ER21/roof-hr-sub000/internal/transport/middleware"
	"github.com/Roof-ER21/roof-hr-sub000/internal/transport/rest"
	"github.com/Roof-ER21/roof-hr-sub000/migrations"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database, migrations.FS); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Repositories.
	employees := employeerepo.New(pool)
	candidates := candidaterepo.New(pool)
	ptoRequests := ptorepo.New(pool)
	tools := toolrepo.New(pool)
	territories := territoryrepo.New(pool)
	contracts := contractrepo.New(pool)
	reviews := reviewrepo.New(pool)
	documents := documentrepo.New(pool)
	pending := confirmationrepo.New(pool)

	notifier := notify.NewLogDispatcher(logger, cfg.Notify.FromAddress)
	txManager := postgres.NewTxManager(pool)

	// Services.
	jwtManager := internalauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	authSvc := auth.NewService(logger, employees, jwtManager)
	employeeSvc := employee.NewService(logger, employees, tools, notifier)
	recruitingSvc := recruiting.NewService(logger, candidates)
	ptoSvc := pto.NewService(logger, ptoRequests, employees, notifier, txManager)
	toolingSvc := tooling.NewService(logger, tools, employees)
	territorySvc := territory.NewService(logger, territories, employees)
	contractSvc := contract.NewService(logger, contracts)
	reviewSvc := review.NewService(logger, reviews, employees)
	documentSvc := document.NewService(logger, documents)

	assistantSvc := assistant.NewService(logger, assistant.Deps{
		Employees:   employees,
		Candidates:  candidates,
		Tools:       tools,
		Territories: territories,
		PTORequests: ptoRequests,
		Contracts:   contracts,

		EmployeeSvc:   employeeSvc,
		PTOSvc:        ptoSvc,
		RecruitingSvc: recruitingSvc,
		ToolingSvc:    toolingSvc,
		TerritorySvc:  territorySvc,
		ContractSvc:   contractSvc,
		ReviewSvc:     reviewSvc,
		DocumentSvc:   documentSvc,

		Pending: pending,
	}, cfg.Assistant)

	sweepSvc := sweep.NewService(logger, tools, employees, pending, notifier)
	if cfg.Sweep.Enabled {
		go sweepSvc.Run(ctx, cfg.Sweep.Interval)
	}

	// HTTP transport.
	healthHandler := rest.NewHealthHandler(pool, sweepSvc, BuildVersion())
	authHandler := rest.NewAuthHandler(authSvc, logger)
	assistantHandler := rest.NewAssistantHandler(assistantSvc, logger)
	opsHandler := rest.NewOpsHandler(sweepSvc, logger)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.Handle("POST /api/login", limiter.Limit(20)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/assistant/message", assistantHandler.Message)
	mux.HandleFunc("POST /api/assistant/confirm", assistantHandler.Confirm)
	mux.HandleFunc("GET /api/ops/sweep", opsHandler.SweepStatus)
	mux.HandleFunc("POST /api/ops/sweep/run", opsHandler.SweepRun)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(authSvc, employees),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
