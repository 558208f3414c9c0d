package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rroosshhaann/whisper-diarization/internal/app"
	"github.com/rroosshhaann/whisper-diarization/internal/app/common"
	"github.com/rroosshhaann/whisper-diarization/internal/config"
)

var (
	port            int
	shutdownTimeout time.Duration
)

// Cmd starts the HTTP job service
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the diarization job API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Initialize()
		if err != nil {
			return err
		}
		if port > 0 {
			cfg.Server.Port = port
		}

		logger, err := common.NewLogger(cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		return serve(cmd.Context(), cfg, logger)
	},
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "HTTP drain timeout on shutdown")
}

func serve(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := app.InitializeService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}

	if err := service.Inference.HealthCheck(ctx); err != nil {
		logger.Warn("inference sidecar not reachable yet", zap.String("url", cfg.Engine.BaseURL), zap.Error(err))
	}

	service.Scheduler.Start(ctx)
	serverErr := service.Server.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return <-serverErr
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := service.Server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown incomplete", zap.Error(err))
		}

		logger.Info("waiting for in-flight job to finish")
		service.Scheduler.Stop()
		return nil
	})

	return g.Wait()
}
