// Package main is the entry point for the buildmate-ai gateway.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hpn/buildmate-ai/internal/adapter"
	"github.com/hpn/buildmate-ai/internal/config"
	"github.com/hpn/buildmate-ai/internal/handler"
	"github.com/hpn/buildmate-ai/internal/security"
	"github.com/hpn/buildmate-ai/internal/ui"
)

func main() {
	// =========================================================================
	// 1. Load configuration (Singleton)
	// =========================================================================
	cfg, err := config.GetConfig()
	if err != nil {
		newLogger(os.Stderr, config.LoggingConfig{}).Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger with secret redaction
	// =========================================================================
	logger := newLogger(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	// =========================================================================
	// 3. Build the provider client and HTTP server
	// =========================================================================
	srv, client, err := newServer(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize ai provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	desc := client.Descriptor()
	logger.Info("configuration loaded",
		slog.String("address", srv.Addr),
		slog.String("provider", string(desc.Name)),
		slog.String("family", desc.Family.String()),
		slog.String("model", desc.Models.Chat),
		slog.Int("request_timeout_seconds", cfg.AI.RequestTimeoutSeconds),
	)

	// =========================================================================
	// 4. Start HTTP server with graceful shutdown
	// =========================================================================
	ui.PrintBanner()
	ui.PrintStartupInfo(ui.StartupInfo{
		Host:       cfg.Server.Host,
		Port:       cfg.Server.Port,
		Provider:   string(desc.Name),
		Model:      desc.Models.Chat,
		Configured: true,
	})

	go func() {
		logger.Info("server starting", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye()
}

// newServer builds the provider client, the router and the http.Server around them.
// A missing credential for the active provider is reported here, before listening.
func newServer(cfg *config.Configuration, logger *slog.Logger, opts ...adapter.Option) (*http.Server, *adapter.Client, error) {
	opts = append([]adapter.Option{adapter.WithLogger(logger)}, opts...)
	client, err := adapter.NewFromConfig(&cfg.AI, "", opts...)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	chat := handler.NewChatHandler(client,
		handler.WithLogger(logger),
		handler.WithRegistry(cfg.AI.Descriptors()),
		handler.WithRequestTimeout(time.Duration(cfg.AI.RequestTimeoutSeconds)*time.Second),
	)

	var extra []gin.HandlerFunc
	if cfg.Logging.Console {
		extra = append(extra, handler.ConsoleMiddleware())
	}
	router := handler.NewRouter(chat, logger, extra...)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	return srv, client, nil
}

// newLogger creates a structured logger whose output is passed through the secret redactor.
func newLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}

	var inner slog.Handler
	if lc.Format == "text" {
		inner = slog.NewTextHandler(w, opts)
	} else {
		inner = slog.NewJSONHandler(w, opts)
	}

	return slog.New(security.NewRedactedHandler(inner))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
