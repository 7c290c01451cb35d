package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/rera-insights/analysis"
	"github.com/imkonsowa/rera-insights/config"
	"github.com/imkonsowa/rera-insights/llm"
	"github.com/imkonsowa/rera-insights/logger"
	"github.com/imkonsowa/rera-insights/metrics"
	"github.com/imkonsowa/rera-insights/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.LoadConfig()
	logger.Setup(cfg.Log)

	if err := run(cfg); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}

	slog.Info("shut down cleanly")
}

func run(cfg *config.Config) error {
	if logger.ParseLevel(cfg.Log.Level) != slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// not tied to ctx so in-flight requests can drain during shutdown
	pool := llm.NewPool(context.Background(), cfg.Pool.Workers, cfg.Pool.QueueSize)
	defer pool.Wait()
	defer pool.Stop()

	analyzer, err := analysis.FromConfig(ctx, cfg, pool, m)
	if err != nil {
		return err
	}

	srv := server.New(cfg, analyzer, m)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return srv.RunMetrics(gctx)
	})

	return g.Wait()
}
