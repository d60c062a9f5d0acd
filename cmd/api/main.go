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

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/prasitsang/stockroom-api/internal/config"
	"github.com/prasitsang/stockroom-api/internal/handler"
	"github.com/prasitsang/stockroom-api/internal/repository"
	"github.com/prasitsang/stockroom-api/internal/usecase"
	"github.com/prasitsang/stockroom-api/shared/auth"
	"github.com/prasitsang/stockroom-api/shared/mailer"
	"github.com/prasitsang/stockroom-api/shared/registry"
	"github.com/prasitsang/stockroom-api/shared/storage"
	"github.com/prasitsang/stockroom-api/shared/validator"
)

const (
	sessionTTL      = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)
	productRepo := repository.NewProductMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.ServiceName, sessionTTL)
	mail := mailer.NewMailer(&logger)

	uploader, err := storage.NewDiskUploader(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize upload directory")
	}

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	accountUsecase := usecase.NewAccountUsecase(userRepo, jwtAuth)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, tokenRepo, mail, cfg.FrontendURL, cfg.EmailSender)
	productUsecase := usecase.NewProductUsecase(productRepo, uploader)
	contactUsecase := usecase.NewContactUsecase(userRepo, mail, cfg.SupportEmail, cfg.EmailSender)

	router := handler.NewRouter(handler.RouterParams{
		Logger:         &logger,
		FrontendURL:    cfg.FrontendURL,
		UploadDir:      cfg.UploadDir,
		JWTAuth:        jwtAuth,
		UserRepo:       userRepo,
		UserHandler:    handler.NewUserHandler(accountUsecase, resetUsecase, jwtAuth, validate, &logger),
		ProductHandler: handler.NewProductHandler(productUsecase, uploader, validate, &logger),
		ContactHandler: handler.NewContactHandler(contactUsecase, validate, &logger),
	})

	if cfg.ConsulAddr != "" {
		consulRegistry, err := registry.NewConsulRegistry(cfg.ConsulAddr)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create consul client")
		}

		if err := consulRegistry.Register(cfg.ServiceName, cfg.ServiceHost, cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("failed to register service with consul")
		}
		defer func() {
			if err := consulRegistry.Deregister(); err != nil {
				logger.Error().Err(err).Msg("failed to deregister service from consul")
			}
		}()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server is running")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server gracefully")
	}
}
