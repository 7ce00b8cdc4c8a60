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

	"github.com/wellnest/wellnest-api/internal/auth"
	"github.com/wellnest/wellnest-api/internal/config"
	"github.com/wellnest/wellnest-api/internal/database"
	"github.com/wellnest/wellnest-api/internal/handler"
	"github.com/wellnest/wellnest-api/internal/mailer"
	"github.com/wellnest/wellnest-api/internal/repository"
	"github.com/wellnest/wellnest-api/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, db, err := database.Connect(connectCtx, cfg.Mongo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from database")
		}
	}()

	userRepo := repository.NewUserMongoRepository(connectCtx, &logger, db)
	tokens := auth.NewTokenService(cfg.Token)
	smtpMailer := mailer.NewMailer(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokens)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, tokens, smtpMailer, cfg.Token)

	authHandler, err := handler.NewAuthHTTPHandler(authUsecase, passwordResetUsecase, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth handler")
	}

	router := handler.NewRouter(handler.RouterDeps{
		AuthHandler: authHandler,
		Tokens:      tokens,
		UserRepo:    userRepo,
		Logger:      &logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).With().Timestamp().Str("service", "wellnest-api").Logger()
}
