package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"petshop/pets-service/internal/app/pets/config"
	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pets-service/internal/app/pets/handler"
	"petshop/pets-service/internal/app/pets/processor"
	"petshop/pets-service/internal/app/pets/repository"
	"petshop/pets-service/internal/app/pets/repository/memory"
	"petshop/pets-service/internal/app/pets/service"
	"petshop/pets-service/internal/app/pets/util"
	"petshop/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// exitCannotContinue - код выхода, если таблицу создать не удалось
const exitCannotContinue = 4

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initLogger(cfg.Log)
	printBanner()

	// === ХРАНИЛИЩЕ ===
	repo, closeDB, err := openRepository(cfg.Database)
	if err != nil {
		logger.Error().Err(err).Msg("Cannot continue")
		os.Exit(exitCannotContinue)
	}
	defer closeDB()

	// === REDIS КЕШ ===
	cache := newCache(cfg.Redis)
	defer cache.Close()

	// === KAFKA PRODUCER ===
	var publisher util.MessagePublisher = util.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka producer initialized")
	} else {
		logger.Info().Msg("KAFKA_BROKERS not set, pet events disabled")
	}
	defer publisher.Close()

	// === БИЗНЕС-ЛОГИКА И HTTP ===
	petService := service.NewPetService(repo, cache, publisher)
	petHandler := handler.NewPetHandler(petService)
	router := handler.SetupRoutes(petHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === CRON: pets_inventory ===
	scheduler := processor.NewCronScheduler(petService)
	if err := scheduler.Start(ctx, cfg.Inventory.Schedule); err != nil {
		return fmt.Errorf("failed to start cron scheduler: %w", err)
	}
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("Starting Pets Service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	logger.Info().Msg("Service initialized!")

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	logger.Info().Msg("Shutting down Pets Service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("Pets Service stopped gracefully")
	return nil
}

func initLogger(cfg config.LogConfig) {
	logger.Init(serviceName, cfg.Level)
	if cfg.LogstashAddr == "" {
		return
	}
	if err := logger.InitLogstash(cfg.LogstashAddr, serviceName, cfg.Level); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.LogstashAddr).Msg("Logstash unavailable, logging to stdout only")
	}
}

func printBanner() {
	line := strings.Repeat("*", 70)
	title := "  P E T   S T O R E   S E R V I C E  "
	pad := (70 - len(title)) / 2
	logger.Info().Msg(line)
	logger.Info().Msg(strings.Repeat("*", pad) + title + strings.Repeat("*", 70-pad-len(title)))
	logger.Info().Msg(line)
}

// openRepository выбирает хранилище по DATABASE_URI и создаёт таблицу pets
func openRepository(cfg config.DatabaseConfig) (repository.PetRepository, func(), error) {
	if cfg.InMemory() {
		logger.Info().Msg("Using in-memory pet store")
		return memory.NewPetRepository(), func() {}, nil
	}

	db, err := connectDB(cfg.URI)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if err := db.AutoMigrate(&entity.Pet{}); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to create pets table: %w", err)
	}
	logger.Info().Msg("Successfully connected to PostgreSQL")

	return repository.NewPetRepository(db), closeDB, nil
}

// newCache подключает Redis; без Redis сервис работает, просто без кеша
func newCache(cfg config.RedisConfig) util.PetCache {
	if !cfg.Enabled() {
		logger.Info().Msg("REDIS_ADDR not set, pet cache disabled")
		return util.NopCache{}
	}

	client, err := util.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, pet cache disabled")
		return util.NopCache{}
	}

	logger.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("Successfully connected to Redis")
	return client
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
// Retry logic для устойчивости при запуске в Docker
func connectDB(uri string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(uri), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}
