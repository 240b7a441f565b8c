// Command dryersim serves a simulated dryer control server for local
// development of the dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filament_dryer/internal/config"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/server"
	"filament_dryer/internal/service"
	"filament_dryer/internal/simulator"
)

func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dev := simulator.NewDevice(service.DefaultProfiles(), log)
	go dev.Run(ctx, cfg.Simulator.Tick)

	h := simulator.NewHandler(dev, cfg.Simulator.DebugEndpoints, log)
	srv := &server.Server{}
	go func() {
		log.Infow("dryer simulator listening", "port", cfg.Simulator.Port, "debug_endpoints", cfg.Simulator.DebugEndpoints)
		if err := srv.Run(cfg.Simulator.Port, h.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down simulator...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("simulator forced to shutdown", "err", err)
	}
}
