package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/server"
)

var (
	servePort string
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	RunE:  runServe,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
		cmd.Flags().BoolVar(&serveDev, "dev", false, "Development mode: colored debug logs")
	}
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.FromLevel(cfg.Logging.Level, cfg.Logging.Development))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("Failed to create server", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server error", zap.Error(err))
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if serveDev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	return cfg, cfg.Validate()
}

