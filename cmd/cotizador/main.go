package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/cotizador/internal/catalog"
	"github.com/alexanderramin/cotizador/internal/cli"
	"github.com/alexanderramin/cotizador/internal/cli/formatter"
	"github.com/alexanderramin/cotizador/internal/config"
	"github.com/alexanderramin/cotizador/internal/db"
	"github.com/alexanderramin/cotizador/internal/domain"
	"github.com/alexanderramin/cotizador/internal/intelligence"
	"github.com/alexanderramin/cotizador/internal/llm"
	"github.com/alexanderramin/cotizador/internal/repository"
	"github.com/alexanderramin/cotizador/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Storage warnings always reach stderr; use-case records need cfg.Log.
	level := slog.LevelWarn
	if cfg.Log {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cat, err := catalog.NewLoader(nil).Load(ctx, cfg.Catalog)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	store, err := catalog.NewStore(cat)
	if err != nil {
		return err
	}

	// Wire repositories
	proposalRepo := repository.NewBlobProposalRepo(database, logger)
	localRepo := repository.NewBlobLocalServiceRepo(database, logger)
	chatRepo := repository.NewBlobChatHistoryRepo(database, logger)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.Log {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	ws, err := service.NewWorkspace(
		store,
		service.NewProposalService(proposalRepo, observers...),
		localRepo,
		chatRepo,
		service.WorkspaceConfig{
			PointPrice:    cfg.PointPrice,
			DefaultMargin: cfg.DefaultMargin,
			Mode:          domain.SaleMode(cfg.DefaultMode),
		},
		observers...,
	)
	if err != nil {
		return err
	}
	if err := ws.Open(ctx); err != nil {
		return fmt.Errorf("opening workspace: %w", err)
	}

	money, err := formatter.NewMoney(cfg.Locale, cfg.Currency, cfg.DisplayCurrency, cfg.ExchangeRate)
	if err != nil {
		return err
	}

	// The assistant client is always wired; a disabled client answers
	// ErrDisabled and recommendations fall back to catalog matching.
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	llmClient := llm.NewOllamaClient(llmCfg, observer)

	app := &cli.App{
		Workspace:   ws,
		Data:        service.NewDataService(repository.NewSQLiteCollectionRepo(database), uow, observers...),
		Recommender: intelligence.NewRecommendService(llmClient, store, llmCfg),
		Money:       money,
		Config:      cfg,
		ConfigPath:  config.DefaultPath(),
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
