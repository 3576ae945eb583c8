// Package app wires configuration, storage, text generation and services
// together for the command line entry points.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"daily-word-bot/internal/cache"
	"daily-word-bot/internal/config"
	"daily-word-bot/internal/pkg/clock"
	"daily-word-bot/internal/pkg/db"
	"daily-word-bot/internal/repository"
	"daily-word-bot/internal/service"
	"daily-word-bot/internal/textgen"
)

// App holds the long-lived components built from a Config.
type App struct {
	Config *config.Config
	Store  repository.Store
	Clock  clock.Clock

	Accounts *service.AccountService
	Words    *service.WordOfDayService
	Hints    *service.HintBank
	Sessions *service.SessionService
	Catalog  *service.HintCatalogService
	Ranking  *service.RankingService

	closers []func()
}

// New connects to PostgreSQL, applies migrations and builds all services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{Config: cfg}
	a.closers = append(a.closers, pool.Close)

	if err := db.Migrate(ctx, pool.Pool); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	var hintCache service.HintCache
	if cfg.Redis.Enabled() {
		hc, err := cache.New(cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = hc.Close() })
		hintCache = hc
	} else {
		log.Info().Msg("Hint cache disabled")
	}

	gen, fallback, err := NewTextGen(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	loc, err := cfg.Game.Location()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.build(repository.NewPostgres(pool.Pool), clock.New(loc), gen, fallback, hintCache)

	if _, err := a.Catalog.SeedDefaults(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// NewWithStore builds the services over an existing store, without touching
// PostgreSQL or Redis.
func NewWithStore(cfg *config.Config, store repository.Store, clk clock.Clock, gen textgen.Generator, fallback textgen.FallbackSource) *App {
	a := &App{Config: cfg}
	a.build(store, clk, gen, fallback, nil)
	return a
}

func (a *App) build(store repository.Store, clk clock.Clock, gen textgen.Generator, fallback textgen.FallbackSource, hintCache service.HintCache) {
	rules := a.Config.Game.Rules()

	a.Store = store
	a.Clock = clk
	a.Accounts = service.NewAccountService(store)
	a.Hints = service.NewHintBank(store, gen, hintCache)
	a.Words = service.NewWordOfDayService(store, gen, fallback, a.Hints, clk, rules)
	a.Sessions = service.NewSessionService(store, a.Words, a.Hints, gen, rules)
	a.Catalog = service.NewHintCatalogService(store, clk)
	a.Ranking = service.NewRankingService(store, clk)
}

// Close releases connections in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// NewTextGen registers the available text backends and selects the configured
// one. The local generator is always registered and doubles as the fallback
// word source.
func NewTextGen(cfg *config.Config) (textgen.Generator, textgen.FallbackSource, error) {
	words := textgen.DefaultWords()
	if cfg.TextGen.WordsFile != "" {
		loaded, err := textgen.LoadWordList(cfg.TextGen.WordsFile)
		if err != nil {
			return nil, nil, err
		}
		words = loaded
	}
	local := textgen.NewLocal(words, cfg.Game.MaxWordLength)

	registry := textgen.NewRegistry()
	if err := registry.Register(local); err != nil {
		return nil, nil, err
	}

	if cfg.TextGen.APIKey != "" {
		oa, err := textgen.NewOpenAI(textgen.OpenAIConfig{
			APIKey:        cfg.TextGen.APIKey,
			BaseURL:       cfg.TextGen.BaseURL,
			Model:         cfg.TextGen.Model,
			Timeout:       cfg.TextGen.Timeout,
			MaxRetries:    cfg.TextGen.MaxRetries,
			MaxWordLength: cfg.Game.MaxWordLength,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := registry.Register(oa); err != nil {
			return nil, nil, err
		}
	}

	gen, err := registry.Lookup(cfg.TextGen.Provider)
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("provider", gen.Name()).
		Strs("available", registry.Names()).
		Int("fallback_words", len(words)).
		Msg("Text generator selected")

	return gen, local, nil
}
