package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpHandler "github.com/anthanhphan/go-image-scrubber/internal/scrubber/adapter/inbound/http"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/adapter/outbound/diskstore"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/adapter/outbound/imageproc"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/config"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/service"
	"github.com/anthanhphan/go-image-scrubber/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
)

type App struct {
	cfg     *config.Config
	server  *httpHandler.Server
	service *service.ScrubServiceImpl
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Object store, rebuilds its index from whatever survived a restart
	store, err := diskstore.NewDiskStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init object store: %w", err)
	}

	// 4. Codec & Services
	codec := imageproc.NewCodec(cfg.App.JPEGQuality)
	svc := service.NewScrubService(cfg, store, codec, idgen.New())

	// 5. HTTP Server
	httpServer := httpHandler.NewServer(cfg, svc)

	return &App{
		cfg:     cfg,
		server:  httpServer,
		service: svc,
	}, nil
}

func (a *App) Run() error {
	// Start the reclamation sweeper
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go a.service.StartSweeper(sweepCtx)

	// Start HTTP
	logger.Infow("Scrubber service starting",
		"addr", a.cfg.Server.Addr,
		"data_dir", a.cfg.Storage.DataDir,
		"retention_seconds", a.cfg.App.RetentionSeconds)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("HTTP server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down scrubber service")
	stopSweeper()
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("Shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	return runErr
}
