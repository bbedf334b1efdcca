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

	cli "github.com/urfave/cli/v3"

	"contentcal/internal/assistant"
	"contentcal/internal/logging"
	"contentcal/internal/server"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API and serve the frontend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address (overrides config)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := openApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.close()

			addr := a.cfg.Server.Addr
			if cmd.IsSet("addr") {
				addr = cmd.String("addr")
			}

			ai := assistant.New(a.cfg.Assistant(), logging.WithModule(a.logger, "assistant"))
			if !ai.Configured() {
				a.logger.Warn("GEMINI_API_KEY not set; AI endpoints return fallback messages")
			}

			srv := server.New(a.store, logging.WithModule(a.logger, "http"),
				server.WithAssistant(ai),
				server.WithYearPlan(a.cfg.YearPlan()),
				server.WithStaticDir(a.cfg.Server.StaticDir),
			)

			httpServer := &http.Server{
				Addr:    addr,
				Handler: srv.Handler(),
			}

			serveErr := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("storage", a.cfg.Storage.URL))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-serveErr:
				a.logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
				return fmt.Errorf("serve %s: %w", addr, err)
			case <-quit:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
			}

			a.logger.Info("server stopped")
			return nil
		},
	}
}
