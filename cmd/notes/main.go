// Package main реализует точку входа службы заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	grpcadapter "elevennote/internal/notes/adapters/grpc"
	httpadapter "elevennote/internal/notes/adapters/http"
	"elevennote/internal/notes/adapters/memory"
	"elevennote/internal/notes/adapters/postgres"
	"elevennote/internal/notes/adapters/services"
	"elevennote/internal/notes/app"
	"elevennote/internal/notes/config"
	"elevennote/internal/notes/db"
	"elevennote/internal/notes/ports/repositories"
	portservices "elevennote/internal/notes/ports/services"
	"elevennote/pkg/db/redis"
	"elevennote/pkg/logger"
	"elevennote/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTES_LOGGER_MODE"
	EnvLoggerLevel = "NOTES_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitRedis            = "failed to initialize identity cache"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrStartHTTP            = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "note service started"
	LogServiceShutdownDone = "note service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing identity cache"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitGRPCServer      = "initializing gRPC server"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingGRPC        = "starting gRPC server"
	LogStartingHTTP        = "starting HTTP server"
	LogMemoryStorage       = "using in-memory storage, notes will be lost on restart"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("storage", cfg.Storage),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		var hooks []shutdown.Hook

		log.Info(ctx, LogInitRepo)
		var noteRepo repositories.NoteRepository
		switch cfg.Storage {
		case config.StorageMemory:
			log.Warn(ctx, LogMemoryStorage)
			noteRepo = memory.NewNoteRepository()
		default:
			database, err := db.New(ctx, &cfg.Postgres, cfg.Postgres.MigrationsDir)
			if err != nil {
				log.Error(ctx, ErrInitDB, zap.Error(err))
				exitCode = 1
				return
			}
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			})
			noteRepo = postgres.NewRepositoryFactory(database.Pool()).NoteRepository()
		}

		log.Info(ctx, LogInitServices)
		var identity portservices.IdentityProvider = services.NewJWTIdentity(cfg.JWT.SecretKey)
		if cfg.Redis.Enabled {
			redisClient, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrInitRedis, zap.Error(err))
				exitCode = 1
				return
			}
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			})
			identity = services.NewCachedIdentity(identity, redisClient, cfg.JWT.IdentityCacheTTL)
		}

		log.Info(ctx, LogInitUseCases)
		noteUseCase := app.NewNoteUseCase(noteRepo)

		log.Info(ctx, LogInitGRPCServer)
		grpcServer := grpcadapter.New(&cfg.GRPC,
			grpcadapter.LoggerUnaryInterceptor(log),
			grpcadapter.AuthUnaryInterceptor(identity),
		)
		grpcServer.RegisterService(grpcadapter.NewNoteHandler(noteUseCase).RegisterService)

		log.Info(ctx, LogStartingGRPC, zap.String("address", cfg.GRPC.GetAddress()))
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			exitCode = 1
			return
		}
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingGRPC)
			return grpcServer.Stop(ctx)
		})

		log.Info(ctx, LogInitHTTPServer)
		httpApp := httpadapter.NewApp(&cfg.HTTP)
		httpadapter.SetupRouter(httpApp, &cfg.HTTP, log, identity, noteUseCase)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := httpApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTP, zap.Error(err))
			}
		}()
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return httpApp.Shutdown()
		})

		// hooks выполняются в обратном порядке: сначала серверы, потом хранилища.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
