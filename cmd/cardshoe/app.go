package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/cardshoe/internal/config"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/randutil"
	"github.com/lox/cardshoe/internal/report"
	"github.com/lox/cardshoe/internal/service"
	"github.com/lox/cardshoe/internal/store"
)

// Globals are the flags shared by every command. Set flags override the
// configuration file.
type Globals struct {
	Config   string `help:"Configuration file" default:"${config_file}" type:"path"`
	Store    string `help:"Snapshot file holding decks, players and games" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	Seed     *int64 `help:"Deterministic shuffle seed (optional)"`
	Plain    bool   `help:"Disable coloured output"`
}

// App is bound into every command's Run method.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	logger   *log.Logger
	services *service.Services
	out      *report.Printer
}

func (g *Globals) open(ctx context.Context, stdout io.Writer) (*App, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", g.Config, err)
	}
	if g.Store != "" {
		cfg.Store.Path = g.Store
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	if g.Seed != nil {
		cfg.Shuffle.Seed = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := cfg.NewLogger()
	if seed := cfg.Shuffle.Seed; seed != nil {
		logger.Debug("Using deterministic seed", "seed", *seed)
	}
	newRand := func() game.RandSource {
		return randutil.ForSeed(cfg.Shuffle.Seed)
	}

	st, err := store.Load(cfg.Store.Path, newRand)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded store", "path", cfg.Store.Path,
		"decks", st.Decks.Len(), "players", st.Players.Len(), "games", st.Games.Len())

	services := service.New(st,
		service.WithLogger(logger),
		service.WithRandFactory(newRand),
		service.WithDealing(cfg.Dealing.MaxCount, cfg.Dealing.StrictCapacity),
	)

	return &App{
		ctx:      ctx,
		cfg:      cfg,
		logger:   logger,
		services: services,
		out:      report.New(stdout, g.Plain),
	}, nil
}

// save persists the store after a command changed it.
func (a *App) save() error {
	if err := a.services.Save(a.cfg.Store.Path); err != nil {
		return err
	}
	a.logger.Debug("Saved store", "path", a.cfg.Store.Path)
	return nil
}
