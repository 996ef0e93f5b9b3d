package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jorkle/chatscreen/internal/app"
	"github.com/jorkle/chatscreen/internal/config"
	"github.com/jorkle/chatscreen/internal/logging"
	"github.com/jorkle/chatscreen/internal/version"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "chatscreen",
	Short: "Chat in the terminal with text, voice notes and photos",
	Long: `chatscreen is a single-screen chat. Type messages, record voice notes
from the microphone and send pictures taken with the camera. Every text
message gets an automatic reply.

Configuration is read from ~/.config/chatscreen/config.yaml (or --config)
and CHATSCREEN_* environment variables.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (default: ~/.config/chatscreen/config.yaml)")
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logCloser.Close()

	logger.Info("starting chatscreen", "version", version.Get().String())

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := application.Run(ctx)

	if err := application.Cleanup(); err != nil {
		logger.Error("error during cleanup", "error", err)
	}
	logger.Info("chatscreen stopped")

	return runErr
}
