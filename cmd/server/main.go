package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"market_mcp/internal/app/di"
	"market_mcp/internal/app/router"
	toolhandler "market_mcp/internal/feature/marketdata/transport/handler"
	"market_mcp/internal/platform/config"
	"market_mcp/internal/platform/logger"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	// stdioモードではstdoutをプロトコルが使うため、ログは必ずstderrへ
	lg := logger.New(logger.Output(cfg.Server.Transport), cfg.Log.Level, cfg.Log.Format)

	// Repository
	market, err := di.NewMarket(cfg, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to create upstream provider")
	}

	// Usecase + Tools
	registry := di.NewToolRegistry(cfg, market, lg)
	mcpServer := di.NewMCPServer(cfg, registry)

	lg.Info().
		Str("server", cfg.Server.Name).
		Str("transport", cfg.Server.Transport).
		Str("provider", cfg.Upstream.Provider).
		Msg("starting")

	if cfg.Server.Transport == config.TransportStdio {
		if err := server.ServeStdio(mcpServer); err != nil {
			lg.Fatal().Err(err).Msg("stdio server stopped")
		}
		return
	}

	gin.SetMode(gin.ReleaseMode)
	sse := server.NewSSEServer(mcpServer, server.WithBaseURL(cfg.Server.BaseURL))
	engine := router.NewRouter(
		router.Info{Name: cfg.Server.Name, Version: cfg.Server.Version},
		sse,
		toolhandler.NewToolHandler(registry),
		lg,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sse.Shutdown(shutdownCtx); err != nil {
		lg.Warn().Err(err).Msg("sse shutdown")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}
}
