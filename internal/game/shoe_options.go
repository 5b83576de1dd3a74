package game

import "github.com/lox/cardshoe/internal/randutil"

// RandSource picks uniform integers in [0, n). *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// GameDeckOption configures a GameDeck during creation.
type GameDeckOption func(*gameDeckConfig)

type gameDeckConfig struct {
	id  string
	rng RandSource
}

// WithRand sets the random source used by Shuffle. Tests pass a seeded
// source from randutil.New to make shuffles reproducible.
func WithRand(rng RandSource) GameDeckOption {
	return func(c *gameDeckConfig) {
		c.rng = rng
	}
}

// WithID fixes the identifier of the GameDeck instead of minting one.
func WithID(id string) GameDeckOption {
	return func(c *gameDeckConfig) {
		c.id = id
	}
}

func applyGameDeckOptions(opts []GameDeckOption) *gameDeckConfig {
	cfg := &gameDeckConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.NewEntropy()
	}
	return cfg
}
