package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "filament_dryer/docs"
	"filament_dryer/internal/channel"
	"filament_dryer/internal/config"
	"filament_dryer/internal/dashboard"
	"filament_dryer/internal/device"
	"filament_dryer/internal/handlers"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/metrics"
	"filament_dryer/internal/mirror"
	"filament_dryer/internal/repository"
	"filament_dryer/internal/server"
	"filament_dryer/internal/service"
)

const mirrorQueueSize = 64

// @title        Filament Dryer Dashboard API
// @version      1.0
// @description  Live readings, chart series and operator commands for a filament dryer.
// @BasePath     /
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()

	dev, err := device.NewClient(cfg.Device.BaseURL, cfg.Device.HTTPTimeout)
	if err != nil {
		log.Fatalw("invalid device base url", "err", err)
	}
	liveURL, err := device.LiveURL(cfg.Device.BaseURL)
	if err != nil {
		log.Fatalw("invalid device base url", "err", err)
	}

	repos := repository.NewRepository(cfg.Dashboard.EventLogSize)

	var sink dashboard.Mirror
	if cfg.MQTT.Enabled {
		sink = startMirror(ctx, cfg.MQTT, log)
	}

	controller := dashboard.NewController(dashboard.Options{
		MaxDataPoints: cfg.Dashboard.MaxDataPoints,
		Metrics:       m,
		Mirror:        sink,
		Events:        repos.EventRepo,
		Log:           log,
	})

	manager, err := channel.NewManager(channel.Options{
		URL:            liveURL,
		ReconnectDelay: cfg.Device.ReconnectDelay,
		Dialer:         channel.NewWSDialer(cfg.Device.HandshakeTimeout),
		Handler:        controller,
		Metrics:        m,
		Log:            log,
	})
	if err != nil {
		log.Fatalw("failed to init live channel", "err", err)
	}

	// wire dependencies
	services := service.NewService(repos, service.Deps{
		Device:    dev,
		Sender:    manager,
		Dashboard: controller,
		Metrics:   m,
		Log:       log,
	})
	// every open pulls one status snapshot over HTTP
	controller.SetOnOpen(func() { _ = services.Refresh(ctx) })

	loaded := services.Load(ctx)
	log.Infow("profiles_ready", "source", loaded.Source, "count", len(loaded.Profiles))
	go func() { _ = services.Refresh(ctx) }()
	go manager.Run(ctx)

	apiHandler := handlers.NewHandler(services, controller, m.Handler(), log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// startMirror connects to the broker and starts the publisher. A broker that
// cannot be reached disables the mirror instead of stopping the dashboard.
func startMirror(ctx context.Context, cfg config.MQTTConfig, log *logger.Logger) dashboard.Mirror {
	client, err := mirror.Connect(mirror.ClientConfig{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Username: cfg.Username,
		Password: cfg.Password,
	}, log)
	if err != nil {
		log.Errorw("mqtt mirror disabled", "err", err)
		return nil
	}
	pub := mirror.NewPublisher(client, cfg.Topic, mirrorQueueSize, log)
	go pub.Start(ctx)
	return pub
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("dashboard listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the live channel, mirror and other background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
