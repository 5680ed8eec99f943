package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/sidenote/internal/capture"
	"github.com/sandevgo/sidenote/internal/cards"
	"github.com/sandevgo/sidenote/internal/config"
	"github.com/sandevgo/sidenote/internal/core"
	"github.com/sandevgo/sidenote/internal/enrich"
	"github.com/sandevgo/sidenote/internal/providers/llm"
	"github.com/sandevgo/sidenote/internal/service/command"
	"github.com/sandevgo/sidenote/internal/session"
	"github.com/sandevgo/sidenote/internal/transport/cli"
	"github.com/sandevgo/sidenote/internal/transport/mcp"
	"github.com/sandevgo/sidenote/internal/transport/telegram"
	"github.com/sandevgo/sidenote/internal/transport/tui"
	"github.com/sandevgo/sidenote/pkg/log"
	"github.com/sandevgo/sidenote/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Card store with a fan-out hub; transports subscribe below
	hub := cards.NewHub()
	store := cards.NewStore(hub)

	// 3. AI Provider (nil means demo mode, the router handles it)
	aiProvider, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 4. Enrichment router
	router := enrich.NewRouter(aiProvider, store, enrich.Mode(appCfg.EnrichMode), appCfg.EnrichTimeout, appCfg.BatchTokenBudget)

	// 5. Capture source
	source, err := initCaptureSource(appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize capture source")
	}

	// 6. Session manager
	manager := session.NewManager(appCfg, router, store, hub, source)
	services = append(services, manager)

	// 7. Command router shared by the transports
	cmdRouter := command.New(command.NewCommands(manager))

	// 8. Transports
	transports, err := initTransports(ctx, appCfg, manager, cmdRouter, hub)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initCaptureSource(cfg *config.AppConfig) (core.CaptureSource, error) {
	switch cfg.CaptureSource {
	case "demo":
		return capture.NewScriptSource(cfg.DemoInterval), nil
	case "htmlfeed":
		return capture.NewHTMLFeedSource(cfg.HTMLFeedURL, cfg.HTMLFeedInterval), nil
	case "none":
		// transports feed fragments directly
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown capture source: %q", cfg.CaptureSource)
	}
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	coord core.Coordinator,
	cmdRouter core.CmdRouter,
	hub *cards.Hub,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, coord, cmdRouter)
		if err != nil {
			return nil, err
		}
		hub.Subscribe(bot)
		services = append(services, bot)
	}

	if cfg.EnableTUI {
		app := tui.NewApp(coord)
		hub.Subscribe(app)
		services = append(services, app)
	}

	// CLI and TUI fight over the terminal, TUI wins
	if cfg.EnableCLI && !cfg.EnableTUI {
		rl, err := cli.NewReadLine(coord, cmdRouter, cfg)
		if err != nil {
			return nil, err
		}
		hub.Subscribe(rl)
		services = append(services, rl)
	}

	if cfg.EnableMCP {
		services = append(services, mcp.NewServer(coord))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
