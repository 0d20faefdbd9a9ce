package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/kirillkom/business-assistant/internal/adapters/http"
	"github.com/kirillkom/business-assistant/internal/bootstrap"
	"github.com/kirillkom/business-assistant/internal/config"
	"github.com/kirillkom/business-assistant/internal/observability/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup("business-assistant", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	handler := app.Metrics.Middleware("api",
		httpadapter.NewRouter(app.Assistant, app.Metrics.Handler()).Handler())
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Change events invalidate the in-process L1 tier, so the subscriber
	// has to run inside the API process.
	go func() {
		if err := app.RunEventSubscriber(ctx); err != nil {
			slog.Error("event subscriber stopped", "error", err)
		}
	}()

	go func() {
		slog.Info("api listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api shutdown error", "error", err)
	}
}
