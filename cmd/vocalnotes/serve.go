package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mklimuk/vocal-notes/pkg/api"
	"github.com/mklimuk/vocal-notes/pkg/integration/discord"
	"github.com/mklimuk/vocal-notes/pkg/integration/telegram"
	"github.com/mklimuk/vocal-notes/pkg/sync"
)

var (
	port      string
	vaultPath string
	vaultPush bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the chat capture bots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, slog.Default())
	},
}

func init() {
	serveCmd.Flags().StringVar(&port, "port", "8080", "HTTP Port")
	serveCmd.Flags().StringVar(&vaultPath, "vault", "", "Git working tree for markdown exports, empty to disable")
	serveCmd.Flags().BoolVar(&vaultPush, "vault-push", false, "Push vault exports to origin")
}

func serve(ctx context.Context, logger *slog.Logger) error {
	a, err := newApp(ctx, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	var ops api.OperationLister
	if a.repo != nil {
		ops = a.repo
	}
	var exporter api.VaultExporter
	if vaultPath != "" {
		g := sync.NewGitManager(vaultPath, logger)
		g.Push = vaultPush
		exporter = sync.NewExporter(g, "Notes")
		logger.Info("Vault export enabled", "path", vaultPath, "push", vaultPush)
	}
	router := api.NewRouter(a.notebook, ops, exporter, logger)

	// Discord Bot (Optional)
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		bot, err := discord.NewBot(token, a.notebook, logger)
		if err != nil {
			logger.Error("Failed to create Discord bot", "error", err)
		} else if err := bot.Start(ctx); err != nil {
			logger.Error("Failed to start Discord bot", "error", err)
		} else {
			defer bot.Stop()
		}
	}

	// Telegram Bot (Optional)
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		bot, err := telegram.NewBot(token, a.notebook, logger)
		if err != nil {
			logger.Error("Failed to create Telegram bot", "error", err)
		} else if err := bot.Start(ctx); err != nil {
			logger.Error("Failed to start Telegram bot", "error", err)
		} else {
			defer bot.Stop()
		}
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
