// cmd/scrape-console/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"scrape-console/internal/backend"
	"scrape-console/internal/config"
	"scrape-console/internal/console"
	"scrape-console/internal/logger"
	"scrape-console/internal/storage"
	"scrape-console/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "scrape-console",
		Usage: "operator console for the scraper backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "api-base",
				Usage: "HTTP base for the control and query channels",
			},
			&cli.StringFlag{
				Name:  "ws-base",
				Usage: "base for the telemetry stream",
			},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "scrape-console: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env"))
	if err != nil {
		return err
	}
	if base := cmd.String("api-base"); base != "" {
		cfg.APIBase = base
	}
	if base := cmd.String("ws-base"); base != "" {
		cfg.WSBase = base
	}

	logFile, err := logger.Setup(cfg.DataDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initialize run history: %w", err)
	}
	defer store.Close()

	client := backend.NewClient(backend.Config{
		APIBase: cfg.APIBase,
		WSBase:  cfg.WSBase,
		Timeout: 15 * time.Second,
	})

	markers := console.Markers{
		Success: cfg.SuccessMarker,
		Failure: cfg.FailureMarker,
	}

	slog.Info("starting console", "api_base", cfg.APIBase, "ws_base", cfg.WSBase)

	m := tui.NewModel(client, store, markers)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
