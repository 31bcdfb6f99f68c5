package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/archive"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/http/handler"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/repository"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/storage"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/workspace"
	"github.com/Chandan-Choubey/Export-Csv/internal/adapter/xlsx"
	"github.com/Chandan-Choubey/Export-Csv/internal/config"
	"github.com/Chandan-Choubey/Export-Csv/internal/usecase"
	"github.com/Chandan-Choubey/Export-Csv/pkg/logger"
	"go.uber.org/zap"

	apphttp "github.com/Chandan-Choubey/Export-Csv/internal/adapter/http"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting sheetpack API",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("work_dir", cfg.Export.BaseDir()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Рабочие директории запросов
	workspaces, err := workspace.NewManager(cfg.Export.BaseDir(), log)
	if err != nil {
		log.Fatal("Failed to prepare work dir", zap.Error(err))
	}

	// Копии архивов в S3 (необязательно)
	var archiveStorage usecase.ArchiveStorage
	if cfg.S3.Enabled {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatal("Failed to connect to S3", zap.Error(err))
		}
		archiveStorage = s3Storage
		log.Info("Connected to S3",
			zap.String("endpoint", cfg.S3.Endpoint),
			zap.String("bucket", cfg.S3.Bucket),
		)
	}

	// Журнал выгрузок в PostgreSQL (необязательно)
	var exportRepo usecase.ExportRepository
	if cfg.Database.Enabled {
		dbPool, err := repository.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer dbPool.Close()

		if err := repository.Migrate(ctx, dbPool); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
		exportRepo = repository.NewExportRepository(dbPool)
		log.Info("Connected to PostgreSQL")
	}

	// Инициализируем use cases
	exportUC := usecase.NewExportUseCase(
		xlsx.NewRenderer(log.Named("xlsx")),
		archive.NewZipArchiver(cfg.Export.CompressionLevel),
		archiveStorage,
		exportRepo,
		log,
	)

	// Инициализируем handlers
	exportHandler := handler.NewExportHandler(exportUC, workspaces, handler.Limits{
		MaxRequestSize: cfg.Export.MaxUploadSize,
		MaxFieldSize:   cfg.Export.MaxFieldSize,
	}, log)
	healthHandler := handler.NewHealthHandler()

	router := apphttp.NewRouter(exportHandler, healthHandler, cfg.CORS, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server starting",
			zap.String("addr", cfg.Server.Addr()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
