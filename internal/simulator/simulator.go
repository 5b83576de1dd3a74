// Package simulator plays whole-shoe deals across many independent games in
// parallel and summarises how the hand values fall.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/randutil"
	"github.com/lox/cardshoe/internal/statistics"
)

// faceValuePerDeck is the sum of face values across one 52-card deck.
const faceValuePerDeck = 4 * (13 * 14 / 2)

// Config holds configuration for running simulations
type Config struct {
	Games        int
	Decks        int
	Players      int
	CardsPerDeal int
	Workers      int
	// Seed makes a run reproducible. Game i shuffles with Seed+i, so the
	// result does not depend on Workers.
	Seed   *int64
	Logger *log.Logger
}

// Validate validates the configuration
func (c Config) Validate() error {
	var errs []error
	if c.Games < 1 {
		errs = append(errs, fmt.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Decks < 1 {
		errs = append(errs, fmt.Errorf("decks must be positive, got %d", c.Decks))
	}
	if c.Players < 1 {
		errs = append(errs, fmt.Errorf("players must be positive, got %d", c.Players))
	}
	if c.CardsPerDeal < 1 {
		errs = append(errs, fmt.Errorf("cards per deal must be positive, got %d", c.CardsPerDeal))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// Result aggregates every simulated game
type Result struct {
	Games      int
	CardsDealt int
	// Deals counts deal requests; ShortDeals those cut off by an empty shoe.
	Deals      int
	ShortDeals int
	// SeatWins counts outright wins by seat. Games whose top total is
	// shared count towards Ties instead.
	SeatWins []int
	Ties     int

	// WinningTotal samples the top hand value of each game.
	WinningTotal statistics.Sample
	// SeatTotals samples each seat's final hand value.
	SeatTotals []statistics.Sample
}

func newResult(players int) *Result {
	return &Result{
		SeatWins:   make([]int, players),
		SeatTotals: make([]statistics.Sample, players),
	}
}

// Validate checks the per-game tallies agree with each other
func (r *Result) Validate() error {
	wins := r.Ties
	for _, w := range r.SeatWins {
		wins += w
	}
	if wins != r.Games {
		return fmt.Errorf("wins and ties (%d) do not match games (%d)", wins, r.Games)
	}
	if r.WinningTotal.Count != r.Games {
		return fmt.Errorf("winning totals (%d) do not match games (%d)", r.WinningTotal.Count, r.Games)
	}
	if err := r.WinningTotal.Validate(); err != nil {
		return fmt.Errorf("winning totals: %w", err)
	}
	for seat := range r.SeatTotals {
		if r.SeatTotals[seat].Count != r.Games {
			return fmt.Errorf("seat %d has %d totals for %d games", seat+1, r.SeatTotals[seat].Count, r.Games)
		}
	}
	return nil
}

func (r *Result) merge(o *Result) {
	r.Games += o.Games
	r.CardsDealt += o.CardsDealt
	r.Deals += o.Deals
	r.ShortDeals += o.ShortDeals
	r.Ties += o.Ties
	r.WinningTotal.Merge(o.WinningTotal)
	for seat := range o.SeatWins {
		r.SeatWins[seat] += o.SeatWins[seat]
		r.SeatTotals[seat].Merge(o.SeatTotals[seat])
	}
}

// outcome is what one game contributes to a Result.
type outcome struct {
	cardsDealt int
	deals      int
	shortDeals int
	winner     int // seat, or -1 on a tie
	topTotal   int
	totals     []int // by seat
}

func (r *Result) add(o outcome) {
	r.Games++
	r.CardsDealt += o.cardsDealt
	r.Deals += o.deals
	r.ShortDeals += o.shortDeals
	r.WinningTotal.Add(o.topTotal)
	if o.winner < 0 {
		r.Ties++
	} else {
		r.SeatWins[o.winner]++
	}
	for seat, total := range o.totals {
		r.SeatTotals[seat].Add(total)
	}
}

// Simulator runs whole-shoe deal simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every game and returns the combined result
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	workers := min(cfg.Workers, cfg.Games)
	perWorker := cfg.Games / workers
	remainder := cfg.Games % workers

	// Worker w plays a contiguous run of games and fills slot w, so merging
	// the slots in order sees the games in index order.
	g, ctx := errgroup.WithContext(ctx)
	slots := make([]*Result, workers)

	first := 0
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		start := first
		first += n

		g.Go(func() error {
			res, err := s.runWorker(ctx, start, n)
			if err != nil {
				return err
			}
			slots[w] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newResult(cfg.Players)
	for _, res := range slots {
		total.merge(res)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("simulation result validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "games", total.Games, "cards_dealt", total.CardsDealt,
		"ties", total.Ties, "mean_winning_total", total.WinningTotal.Mean())
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, start, n int) (*Result, error) {
	res := newResult(s.config.Players)
	for i := start; i < start+n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o, err := s.playGame(i)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}
		res.add(o)
	}
	return res, nil
}

// playGame shuffles a fresh shoe and deals it out round-robin until empty.
func (s *Simulator) playGame(index int) (outcome, error) {
	cfg := s.config

	var rng game.RandSource
	if cfg.Seed != nil {
		rng = randutil.New(*cfg.Seed + int64(index))
	} else {
		rng = randutil.NewEntropy()
	}

	g := game.NewGame("simulation-"+strconv.Itoa(index), game.WithRand(rng))
	for range cfg.Decks {
		g.AddDeck(deck.NewDeck("simulation"))
	}
	seats := make([]*game.Player, cfg.Players)
	seatOf := make(map[string]int, cfg.Players)
	for i := range seats {
		seats[i] = game.NewPlayer("seat-" + strconv.Itoa(i+1))
		seatOf[seats[i].ID()] = i
		g.AddPlayer(seats[i])
	}
	g.ShuffleGameDeck()

	var o outcome
	for seat := 0; g.UndealtCount() > 0; seat = (seat + 1) % len(seats) {
		n, err := g.DealCards(seats[seat], cfg.CardsPerDeal)
		if err != nil {
			return outcome{}, err
		}
		o.deals++
		o.cardsDealt += n
		if n < cfg.CardsPerDeal {
			o.shortDeals++
		}
	}

	if want := cfg.Decks * deck.CardsPerDeck; o.cardsDealt != want {
		return outcome{}, fmt.Errorf("dealt %d cards from a %d card shoe", o.cardsDealt, want)
	}
	sum := 0
	o.totals = make([]int, len(seats))
	for i, p := range seats {
		o.totals[i] = p.TotalValue()
		sum += o.totals[i]
	}
	if want := cfg.Decks * faceValuePerDeck; sum != want {
		return outcome{}, fmt.Errorf("hands total %d, shoe holds %d", sum, want)
	}

	ranked := g.PlayersWithTotalValue()
	o.topTotal = ranked[0].TotalValue()
	o.winner = seatOf[ranked[0].ID()]
	if len(ranked) > 1 && ranked[1].TotalValue() == o.topTotal {
		o.winner = -1
	}
	return o, nil
}
