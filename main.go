package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AI-Gajendra/traffic-backend/internal/config"
	"github.com/AI-Gajendra/traffic-backend/internal/controller"
	"github.com/AI-Gajendra/traffic-backend/internal/density"
	"github.com/AI-Gajendra/traffic-backend/internal/logging"
	"github.com/AI-Gajendra/traffic-backend/internal/signals"
	"github.com/AI-Gajendra/traffic-backend/internal/web"
)

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to parse environment variables")
	}

	lanes, err := config.LoadLanes(cfg.LaneFile)
	if err != nil {
		logger.With(zap.Error(err)).Fatal("Failed to load lane configuration")
	}

	logger.With(zap.Any("config", cfg), zap.Int("lanes", len(lanes))).Info("Starting traffic signal controller")
	logger.Info("Set DRIVER_TYPE to NOOP to run without GPIO hardware.")
	logger.Info("Set LANE_FILE to override the built-in four-lane installation.")
	logger.Info("POST /set_mode/{Automatic|Fixed|Blink} to start a program; GET /status for the current mode.")
	logger.Info("Press Ctrl+C to stop")

	var driver signals.Driver
	var closeDriver func() error
	switch cfg.DriverType {
	case "GPIO":
		gpio, err := signals.NewGPIO(lanes)
		if err != nil {
			logger.With(zap.Error(err)).Fatal("Failed to initialize GPIO (needs /dev/gpiomem access)")
		}
		driver = gpio
		closeDriver = gpio.Close
	case "NOOP":
		noop := signals.NewNoop(lanes)
		driver = noop
		closeDriver = noop.AllOff
	default:
		logger.Fatalf("unknown driver type: %v", cfg.DriverType)
	}

	sampler := density.NewScriptSampler(cfg.DetectCommand, cfg.SampleWindow, lanes)

	ctrlLanes := make([]controller.Lane, 0, len(lanes))
	for _, lane := range lanes {
		ctrlLanes = append(ctrlLanes, controller.Lane{
			ID:    lane.ID,
			Green: time.Duration(lane.GreenSeconds) * time.Second,
		})
	}

	ctrl := controller.New(controller.Config{
		Lanes:              ctrlLanes,
		Yellow:             cfg.YellowDuration,
		Blink:              cfg.BlinkInterval,
		Settle:             cfg.SettleInterval,
		ShutdownGrace:      cfg.ShutdownGrace,
		CycleBudgetSeconds: cfg.CycleBudgetSeconds,
		MinGreenSeconds:    cfg.MinGreenSeconds,
		MaxGreenSeconds:    cfg.MaxGreenSeconds,
	}, driver, sampler)

	if cfg.InitialMode != "" {
		mode, err := controller.ParseMode(cfg.InitialMode)
		if err != nil {
			logger.With(zap.Error(err)).Fatal("Invalid INITIAL_MODE")
		}
		if err := ctrl.RequestMode(mode); err != nil {
			logger.With(zap.Error(err)).Fatal("Failed to start initial mode")
		}
	}

	server := web.NewServer(cfg.ListenAddr, ctrl)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.With(zap.Error(err)).Fatal("Control plane failed")
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.With(zap.Error(err)).Error("Control plane shutdown failed")
	}
	if err := ctrl.Stop(); err != nil {
		logger.With(zap.Error(err)).Error("Failed to stop active program")
	}
	if err := closeDriver(); err != nil {
		logger.With(zap.Error(err)).Error("Driver cleanup failed")
	}
}
