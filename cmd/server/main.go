// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pos-print-service/internal/compose"
	"pos-print-service/internal/config"
	"pos-print-service/internal/dispatch"
	"pos-print-service/internal/handler"
	"pos-print-service/internal/routes"
	"pos-print-service/internal/service"
	"pos-print-service/internal/transport"
	"pos-print-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server

	// Services
	printService *service.PrintService

	// Handlers kept outside the router for event wiring
	wsHandler *handler.WebSocketHandler
}

func main() {
	// Initialize application
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Start the application
	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create service logger
	serviceLogger := utils.NewServiceLogger(logger, "pos-print-service")
	serviceLogger.LogServiceStart(cfg.App.Version)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initializeServer(); err != nil {
		return nil, fmt.Errorf("failed to initialize server: %w", err)
	}

	return app, nil
}

// initializeServices wires the transport backends, dispatcher and print
// orchestration service
func (app *Application) initializeServices() error {
	platform := transport.NewPlatformAdapter(app.logger)

	// The native USB provider is probed ahead of the platform spooler
	// utilities and binds only when a printer-class device is attached.
	usbProvider := transport.NewUSBRawProvider(app.logger)

	spooler := transport.NewSpoolerBackend(app.logger, platform, usbProvider)
	network := transport.NewNetworkBackend(
		app.logger,
		app.config.Printer.Network.SendTimeout,
		app.config.Printer.Network.ProbeTimeout,
	)
	serialUsb := transport.NewSerialUsbBackend(app.logger, platform)

	dispatcher := dispatch.NewDispatcher(app.logger, spooler, network, serialUsb)
	composer := compose.NewComposer()

	app.printService = service.NewPrintService(
		app.logger,
		composer,
		dispatcher,
		spooler,
		serialUsb,
	)

	// Live job event feed over /ws/events
	app.wsHandler = handler.NewWebSocketHandler(app.logger)
	app.printService.SetEventPublisher(app.wsHandler)

	app.logger.Info("Services initialized successfully",
		zap.String("platform", platform.Name()),
	)
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() error {
	// Create router
	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.printService,
		app.wsHandler,
	)

	// Setup router with all routes
	router := routerManager.SetupRouter()

	// Create HTTP server
	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)

	return nil
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "pos-print-service")
	serviceLogger.LogServiceStop("shutdown signal received")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	// Flush logger
	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

func (app *Application) Start() error {
	// Start server in goroutine
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()

	return nil
}
