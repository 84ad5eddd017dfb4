package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"tvGuideBff/internal/config"
	favoritesusecase "tvGuideBff/internal/modules/favorites/application/usecase"
	favoritesinfra "tvGuideBff/internal/modules/favorites/infrastructure"
	favoritestransport "tvGuideBff/internal/modules/favorites/interface"
	metadatausecase "tvGuideBff/internal/modules/metadata/application/usecase"
	metadatainfra "tvGuideBff/internal/modules/metadata/infrastructure"
	metadatatransport "tvGuideBff/internal/modules/metadata/interface"
	"tvGuideBff/internal/modules/realtime/application/handler"
	realtimeusecase "tvGuideBff/internal/modules/realtime/application/usecase"
	realtimeinfra "tvGuideBff/internal/modules/realtime/infrastructure"
	realtimetransport "tvGuideBff/internal/modules/realtime/interface"
	scheduleusecase "tvGuideBff/internal/modules/schedule/application/usecase"
	scheduleinfra "tvGuideBff/internal/modules/schedule/infrastructure"
	scheduletransport "tvGuideBff/internal/modules/schedule/interface"
	"tvGuideBff/internal/platform/broker"
	"tvGuideBff/internal/platform/server"
	"tvGuideBff/internal/platform/upstream"
	"tvGuideBff/internal/shared/events"
	"tvGuideBff/internal/shared/logging"
	"tvGuideBff/internal/shared/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("adapter config resolved", slog.String("baseUrl", cfg.Adapter.BaseURL), slog.Duration("timeout", cfg.Adapter.Timeout), slog.String("timezone", cfg.Schedule.Location.String()))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID), slog.String("eventsTopic", cfg.Kafka.EventsTopic))

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(prometheus.DefaultRegisterer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Realtime
	hub := realtimeinfra.NewHub()
	broadcastUC := realtimeusecase.NewBroadcastUseCase(hub)
	publishers := events.Multi{broadcastUC}
	var kafkaPublisher *broker.KafkaPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher = broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, logger)
		publishers = append(publishers, kafkaPublisher)
	}

	registry := realtimeinfra.NewHandlerRegistry()
	for _, topic := range cfg.Kafka.NotificationTopics {
		registry.Register(handler.NewNotificationStreamHandler(topic, nil, broadcastUC))
	}
	consumers := broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID, registry.Topics(), logger)

	// Data service
	dataService := upstream.NewClient(cfg.Adapter.BaseURL, cfg.Adapter.Timeout, nil, m)

	sources := scheduleinfra.NewSourceRegistry(
		scheduleinfra.NewMediasetSource(m),
		scheduleinfra.NewRaiSource(cfg.Schedule.Location, m),
	)
	scheduleUC := scheduleusecase.NewScheduleUseCase(dataService, sources, scheduleinfra.NewStoredParser(m), publishers)
	metadataUC := metadatausecase.NewMetadataUseCase(dataService, metadatainfra.NewTMDBParser(cfg.Metadata.ImageBaseURL, m))
	favoritesUC := favoritesusecase.NewFavoritesUseCase(dataService, favoritesinfra.NewFavoriteParser(m), publishers)

	e := server.New(logger, m)
	e.Logger.SetOutput(log.Writer())
	scheduletransport.RegisterRoutes(e, scheduleUC)
	metadatatransport.RegisterRoutes(e, metadataUC)
	favoritestransport.RegisterRoutes(e, favoritesUC)
	realtimetransport.RegisterRoutes(e, hub, broadcastUC)

	go func() {
		slog.Info("http server listening", slog.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	cancel()
	consumers.Wait()
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			slog.Warn("kafka writer close error", slog.Any("error", err))
		}
	}
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
