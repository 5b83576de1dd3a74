package main

import (
	"github.com/lox/cardshoe/internal/simulator"
)

// SimulateCmd deals out shuffled shoes across independent games. Zero flags
// fall back to the simulation block of the configuration file.
type SimulateCmd struct {
	Games        int `help:"Number of games to simulate"`
	Decks        int `help:"Decks per shoe"`
	Players      int `help:"Players per game"`
	CardsPerDeal int `help:"Cards dealt per turn"`
	Workers      int `help:"Parallel workers"`
}

func (c *SimulateCmd) Run(app *App) error {
	defaults := app.cfg.Simulation
	cfg := simulator.Config{
		Games:        pick(c.Games, defaults.Games),
		Decks:        pick(c.Decks, defaults.Decks),
		Players:      pick(c.Players, defaults.Players),
		CardsPerDeal: pick(c.CardsPerDeal, defaults.CardsPerDeal),
		Workers:      pick(c.Workers, defaults.Workers),
		Seed:         app.cfg.Shuffle.Seed,
		Logger:       app.logger,
	}

	res, err := simulator.New(cfg).Run(app.ctx)
	if err != nil {
		return err
	}
	app.out.Simulation(cfg, res)
	return nil
}

func pick(flag, fallback int) int {
	if flag != 0 {
		return flag
	}
	return fallback
}
