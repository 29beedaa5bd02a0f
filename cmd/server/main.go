package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskdesk/backend/api/handler"
	"github.com/taskdesk/backend/internal/config"
	sqliteInfra "github.com/taskdesk/backend/internal/infrastructure/sqlite"
	"github.com/taskdesk/backend/internal/middleware"
	"github.com/taskdesk/backend/internal/router"
	"github.com/taskdesk/backend/internal/services/lifecycle"
	"github.com/taskdesk/backend/pkg/httpcontext"
	"github.com/taskdesk/backend/pkg/logger"
	sqliteRepo "github.com/taskdesk/backend/repository/sqlite"
	taskUC "github.com/taskdesk/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.Context(context.Background())
	defer stop()

	db, err := sqliteInfra.Open(cfg.Database)
	if err != nil {
		zapLogger.Fatal("opening task store failed", zap.Error(err))
	}
	manager.Register("sqlite", func(ctx context.Context) error {
		return db.Close()
	})

	if cfg.Migrations.Enabled {
		if err := sqliteInfra.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
	}

	taskRepo := sqliteRepo.NewTaskRepository(db)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(ctxAdapter, zapLogger),
	}

	r := router.New(handlers, zapLogger)
	cors := middleware.CORS(cfg.CORS.AllowedOrigins)

	server := &fasthttp.Server{
		Handler:      cors(r.Handler),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
