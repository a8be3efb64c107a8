package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/developer-mesh/slack-mcp/internal/api"
	"github.com/developer-mesh/slack-mcp/internal/config"
	"github.com/developer-mesh/slack-mcp/internal/tools"
	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/clients/slackapi"
	"github.com/developer-mesh/slack-mcp/pkg/clients/tokenservice"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := observability.NewStandardLoggerWithLevel("server", observability.ParseLogLevel(cfg.Logging.Level))

	metricsClient := observability.NewPrometheusMetricsClient("slack_mcp")
	defer metricsClient.Close()

	// Service lookups are skipped entirely when no token service is
	// configured; headers and fallback tokens still apply.
	var fetcher auth.TokenFetcher
	if cfg.TokenService.BaseURL != "" {
		fetcher = tokenservice.New(
			cfg.TokenService.BaseURL,
			cfg.TokenService.APIKey,
			cfg.TokenService.Timeout,
			logger.WithPrefix("tokenservice"),
		)
		logger.Info("token service client initialized", map[string]interface{}{
			"base_url": cfg.TokenService.BaseURL,
			"timeout":  cfg.TokenService.Timeout,
		})
	} else {
		logger.Warn("no token service configured - credential resolution limited to headers and fallback tokens", nil)
	}

	resolver := auth.NewResolver(fetcher, auth.FallbackTokens{
		Bot:  cfg.Slack.BotToken,
		User: cfg.Slack.UserToken,
	}, logger.WithPrefix("auth"), metricsClient)

	handler := tools.NewHandler(
		resolver,
		slackapi.NewFactory(cfg.Slack.RequestTimeout),
		logger.WithPrefix("tools"),
		metricsClient,
	)

	server := api.NewServer(cfg, handler, logger.WithPrefix("api"), metricsClient)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server failed", map[string]interface{}{"error": err.Error()})
		}
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
