package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/infographic/internal/api"
	"github.com/dgallion1/infographic/internal/config"
	"github.com/dgallion1/infographic/internal/extract"
	"github.com/dgallion1/infographic/internal/pipeline"
	"github.com/dgallion1/infographic/internal/session"
	"github.com/dgallion1/infographic/internal/settings"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the model client.
	parser, closeParser := newParser(cfg, log)
	stats := extract.NewLLMStats(time.Hour)

	// Initialize pipeline.
	gen := pipeline.NewGenerator(extract.Instrumented(parser, stats), pipeline.NewParseCache(cfg.ParseCacheTTL),
		cfg.ParseTimeout, pipeline.DefaultRetryPolicy, log)
	sessions := session.NewStore(cfg.SessionTTL)
	orch := pipeline.NewOrchestrator(cfg, gen, sessions, log)
	orch.Start(ctx)

	path := cfg.SettingsPath
	if path == "" {
		path = settings.DefaultPath()
	}
	prefs := settings.NewFileStore(path)

	// Initialize HTTP server.
	srv := api.NewServer(orch, sessions, stats, prefs, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		closeParser()
	}()

	log.Info("starting infographic server",
		"port", cfg.Port,
		"provider", cfg.LLMProvider,
		"model", cfg.ProviderModel(),
		"settings", prefs.Path(),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newParser builds the configured provider client. Without a key every
// generation reports a configuration error instead of failing startup.
func newParser(cfg config.Config, log *slog.Logger) (extract.Parser, func()) {
	if cfg.ProviderKey() == "" {
		log.Warn("no API key for provider; generation is disabled", "provider", cfg.LLMProvider)
		return extract.Misconfigured{}, func() {}
	}
	if cfg.LLMProvider == config.ProviderAnthropic {
		c := extract.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		return c, c.Close
	}
	c := extract.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	return c, c.Close
}
