package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobhunt/internal/analysis"
	"github.com/jonathan/jobhunt/internal/config"
	"github.com/jonathan/jobhunt/internal/extraction"
	"github.com/jonathan/jobhunt/internal/jobsearch"
	"github.com/jonathan/jobhunt/internal/llm"
	"github.com/jonathan/jobhunt/internal/logging"
	"github.com/jonathan/jobhunt/internal/pipeline"
	"github.com/jonathan/jobhunt/internal/planner"
	"github.com/jonathan/jobhunt/internal/store"
	"github.com/jonathan/jobhunt/internal/tracker"
	"github.com/jonathan/jobhunt/internal/writing"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	client   llm.Client
	store    store.Store
	sessions store.Sessions
	service  *pipeline.Service
	tracker  *tracker.Tracker
	writer   *writing.Generator
}

type appOptions struct {
	// durable connects Postgres and Redis when configured; one-shot
	// commands run on memory stores.
	durable    bool
	withLLM    bool
	logOutput  io.Writer
	onProgress pipeline.ProgressCallback
}

// loadConfig reads configuration and applies the --log-level override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	return cfg, nil
}

// newApp wires every component from cfg. Missing credentials and
// unreachable stores degrade with a warning instead of failing.
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	if opts.logOutput != nil {
		logger.SetOutput(opts.logOutput)
	}

	a := &app{cfg: cfg, logger: logger}

	if err := extraction.CheckConverter(); err != nil {
		logger.WithError(err).Warn("PDF converter missing; resume uploads fail until poppler-utils is installed")
	}

	if opts.withLLM {
		client, err := llm.NewClient(ctx, cfg.LLMClientConfig())
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			logger.Warn("no LLM provider key configured; analysis and planning use fallbacks, generators are disabled")
		case err != nil:
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		default:
			a.client = client
			logger.WithField("provider", client.Provider()).Info("LLM client ready")
		}
	}

	a.store = a.openStore(ctx, opts.durable)
	sessions, err := a.openSessions(ctx, opts.durable)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.sessions = sessions

	a.service = pipeline.New(pipeline.Options{
		Extractor:  extraction.NewDocconvExtractor(),
		Analyzer:   analysis.NewAnalyzer(a.client, logger),
		Planner:    planner.New(a.client, logger),
		Aggregator: jobsearch.NewAggregator(cfg.ListingsProvider(), logger),
		Resumes:    a.store,
		Sessions:   a.sessions,
		OnProgress: opts.onProgress,
		Logger:     logger,
	})
	a.tracker = tracker.New(a.store, logger)
	a.writer = writing.New(a.client, logger)
	return a, nil
}

func (a *app) openStore(ctx context.Context, durable bool) store.Store {
	if !durable || a.cfg.Database.URL == "" {
		if durable {
			a.logger.Warn("DATABASE_URL not set; records are kept in memory")
		}
		return store.NewMemory()
	}
	pg, err := store.Connect(ctx, a.cfg.Database.URL)
	if err != nil {
		a.logger.WithError(err).Warn("database unreachable; records are kept in memory")
		return store.NewMemory()
	}
	a.logger.Info("connected to database")
	return pg
}

func (a *app) openSessions(ctx context.Context, durable bool) (store.Sessions, error) {
	ttl := store.DefaultSessionTTL
	if a.cfg.Sessions.TTL > 0 {
		ttl = time.Duration(a.cfg.Sessions.TTL)
	}
	if durable && a.cfg.Sessions.RedisURL != "" {
		rdb, err := store.NewRedisClient(ctx, a.cfg.Sessions.RedisURL)
		if err == nil {
			a.logger.Info("search sessions stored in redis")
			return store.NewRedisSessions(rdb, ttl), nil
		}
		a.logger.WithError(err).Warn("redis unreachable; search sessions are kept in memory")
	}
	return store.NewMemorySessions(ttl, a.logger)
}

// Close releases the stores and the LLM client.
func (a *app) Close() {
	if a.sessions != nil {
		if err := a.sessions.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close session store")
		}
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.client != nil {
		if err := a.client.Close(); err != nil {
			a.logger.WithError(err).Warn("failed to close LLM client")
		}
	}
}

// commandContext returns the command's context, or Background when run
// outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
