// Package service fronts the card model with lookups by identifier,
// request-level validation and bookkeeping timestamps. It is the layer the
// command line talks to.
//
// Each aggregate root has a capability interface (DeckService,
// PlayerService, GameService) with one implementation backed by a
// store.Store. All operations are serialized: mutations take an exclusive
// lock, queries a shared one.
package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/ident"
	"github.com/lox/cardshoe/internal/store"
)

var (
	// ErrNotFound is returned when an identifier names no stored entity.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientCards is returned in strict capacity mode when a deal
	// asks for more cards than remain undealt.
	ErrInsufficientCards = fmt.Errorf("not enough undealt cards: %w", game.ErrInvalidArgument)

	// ErrPlayerInAnotherGame is returned when a player that already belongs
	// to a game is added to a different one.
	ErrPlayerInAnotherGame = fmt.Errorf("player is already in another game: %w", game.ErrInvalidArgument)
)

// DefaultMaxDealCount bounds a single deal request.
const DefaultMaxDealCount = deck.CardsPerDeck

// Option configures the services
type Option func(*backend)

// WithClock sets the clock used for created and updated timestamps
func WithClock(clock quartz.Clock) Option {
	return func(b *backend) {
		b.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(b *backend) {
		b.logger = logger
	}
}

// WithRandFactory sets how each new game's shoe gets its shuffle source
func WithRandFactory(newRand func() game.RandSource) Option {
	return func(b *backend) {
		b.newRand = newRand
	}
}

// WithDealing sets the deal request policy: the largest count one request may
// ask for, and whether a request larger than the undealt count is rejected
// (strict) or short-dealt.
func WithDealing(maxCount int, strictCapacity bool) Option {
	return func(b *backend) {
		b.maxDealCount = maxCount
		b.strictCapacity = strictCapacity
	}
}

// Services bundles the three capability interfaces over one store.
type Services struct {
	Decks   DeckService
	Players PlayerService
	Games   GameService

	backend *backend
}

// New creates the services over st
func New(st *store.Store, opts ...Option) *Services {
	b := &backend{
		store:        st,
		clock:        quartz.NewReal(),
		logger:       log.New(io.Discard),
		maxDealCount: DefaultMaxDealCount,
	}
	for _, opt := range opts {
		opt(b)
	}

	return &Services{
		Decks:   &deckService{backend: b, logger: b.logger.WithPrefix("decks")},
		Players: &playerService{backend: b, logger: b.logger.WithPrefix("players")},
		Games:   &gameService{backend: b, logger: b.logger.WithPrefix("games")},
		backend: b,
	}
}

// Save persists the store to path while no operation is in flight
func (s *Services) Save(path string) error {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	return s.backend.store.Save(path)
}

// backend is the state shared by the service implementations.
type backend struct {
	mu             sync.RWMutex
	store          *store.Store
	clock          quartz.Clock
	logger         *log.Logger
	newRand        func() game.RandSource
	maxDealCount   int
	strictCapacity bool
}

func (b *backend) now() time.Time {
	return b.clock.Now().UTC()
}

func (b *backend) gameDeckOptions() []game.GameDeckOption {
	if b.newRand == nil {
		return nil
	}
	return []game.GameDeckOption{game.WithRand(b.newRand())}
}

// checkID rejects identifiers that could never have been issued.
func checkID(kind, id string) error {
	if err := ident.Validate(id); err != nil {
		return fmt.Errorf("%s %q: %w: %w", kind, id, err, game.ErrInvalidArgument)
	}
	return nil
}

func (b *backend) deck(id string) (store.Record[*deck.Deck], error) {
	if err := checkID("deck", id); err != nil {
		return store.Record[*deck.Deck]{}, err
	}
	rec, ok := b.store.Decks.Get(id)
	if !ok {
		return rec, fmt.Errorf("deck %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (b *backend) player(id string) (store.Record[*game.Player], error) {
	if err := checkID("player", id); err != nil {
		return store.Record[*game.Player]{}, err
	}
	rec, ok := b.store.Players.Get(id)
	if !ok {
		return rec, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (b *backend) game(id string) (store.Record[*game.Game], error) {
	if err := checkID("game", id); err != nil {
		return store.Record[*game.Game]{}, err
	}
	rec, ok := b.store.Games.Get(id)
	if !ok {
		return rec, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

// touch stamps a record as updated and stores it back.
func touch[T store.Entity](repo *store.Repository[T], rec store.Record[T], at time.Time) store.Record[T] {
	rec.UpdatedAt = at
	repo.Put(rec)
	return rec
}

func validName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%s name must not be blank: %w", kind, game.ErrInvalidArgument)
	}
	return name, nil
}
