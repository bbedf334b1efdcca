package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	cli "github.com/urfave/cli/v3"

	"contentcal/internal/config"
	"contentcal/internal/logging"
	"contentcal/internal/seed"
	"contentcal/internal/storage"
	"contentcal/internal/store"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "contentcal",
		Usage: "Content calendar for a social media agency",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("CONTENTCAL_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			newServeCommand(),
			newGenerateCommand(),
			newDashboardCommand(),
		},
	}
}

// app is the state every subcommand shares.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *store.Store
	out    io.Writer
	in     io.Reader
}

// openApp loads configuration, opens the configured storage and loads the
// collections, seeding anything that was never persisted.
func openApp(ctx context.Context, cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}

	logger := logging.New(cfg.Log.Level, nil)

	backend, err := storage.Open(ctx, cfg.Storage.URL, logging.WithModule(logger, "storage"))
	if err != nil {
		return nil, err
	}

	st := store.New(backend, logging.WithModule(logger, "store"), store.WithKeys(store.KeysFor(cfg.Storage.KeyVersion)))
	st.Load(ctx, seed.Data())

	root := cmd.Root()
	return &app{cfg: cfg, logger: logger, store: st, out: root.Writer, in: root.Reader}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", slog.String("error", err.Error()))
	}
}
