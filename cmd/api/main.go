package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"audito/internal/analysis"
	"audito/internal/capture"
	"audito/internal/http/handlers"
	httpapi "audito/internal/http/httpapi"
	"audito/internal/imaging"
	"audito/internal/infra"
	"audito/internal/providers/vision"
)

func main() {
	// Carrega .env (opcional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	visionClient, err := vision.NewClient(ctx, vision.Options{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init vision client")
	}

	images := imaging.NewProcessor(cfg.MaxFileSize, logger)
	resolver := capture.NewResolver(capture.Options{
		MaxSize: cfg.MaxFileSize,
		Logger:  logger,
	})
	analyzer := analysis.NewService(images, resolver, visionClient, logger)

	app := handlers.NewApp(cfg, logger, analyzer)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
