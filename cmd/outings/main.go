package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/outings/internal/api"
	"github.com/alexanderramin/outings/internal/cli"
	"github.com/alexanderramin/outings/internal/config"
	"github.com/alexanderramin/outings/internal/db"
	"github.com/alexanderramin/outings/internal/intelligence"
	"github.com/alexanderramin/outings/internal/llm"
	"github.com/alexanderramin/outings/internal/preference"
	"github.com/alexanderramin/outings/internal/repository"
	"github.com/alexanderramin/outings/internal/service"
	"github.com/alexanderramin/outings/internal/taxonomy"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	ctx := context.Background()

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire preference model
	uow := db.NewSQLiteUnitOfWork(database)
	repo := repository.NewSQLitePreferenceRepo(database, uow, repository.DefaultStorageKey)
	vocab := taxonomy.MustDefaultVocabulary()
	engine := preference.NewEngine(ctx, vocab, preference.NewStore(repo, logger))

	// Wire provider with call logging and metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	observers := llm.MultiObserver{llm.NewMetricsObserver(registry)}
	if cfg.LLM.LogCalls {
		observers = append(observers, llm.NewLogObserver(os.Stderr))
	}
	provider := llm.NewBreakerProvider(
		llm.NewAnthropicClient(cfg.LLM, observers),
		cfg.LLM.BreakerFailures, cfg.LLM.BreakerCooldown(), logger)
	fetcher := intelligence.NewRecommendationService(
		provider,
		intelligence.WithRetryPolicy(intelligence.RetryPolicy{
			MaxAttempts: cfg.LLM.MaxAttempts,
			BaseDelay:   cfg.LLM.BackoffBase(),
		}),
		intelligence.WithWebSearchMaxUses(cfg.LLM.WebSearchMaxUses),
		intelligence.WithLogger(logger),
	)

	// Wire use cases
	useCaseLog := service.NewLogUseCaseObserver(logger)
	recommend := service.NewRecommendService(fetcher, engine, useCaseLog)
	feedback := service.NewFeedbackService(engine, useCaseLog)

	server := api.NewServer(recommend, feedback, registry, logger, api.Config{
		CORSOrigins:         cfg.Server.CORSOrigins,
		SearchRatePerMinute: cfg.Server.RateLimitPerMinute,
	})

	app := &cli.App{
		Recommend:   recommend,
		Feedback:    feedback,
		Vocab:       vocab,
		Serve:       server.ListenAndServe,
		DefaultAddr: cfg.Server.Addr,
	}

	// Detect interactive terminal for spinners and rating forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
