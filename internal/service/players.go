package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/store"
)

// PlayerService manages players independently of any game
type PlayerService interface {
	CreatePlayer(name string) (PlayerView, error)
	FindPlayer(id string) (PlayerView, error)
	ListPlayers() []PlayerView
	// DeletePlayer removes the player, first returning their hand to the
	// game they are in, if any.
	DeletePlayer(id string) error
	PlayerCards(id string) ([]CardView, error)
	PlayerTotalValue(id string) (int, error)
	// ClearPlayerCards empties the player's hand. Cards held from a game go
	// back to that game's shoe.
	ClearPlayerCards(id string) (PlayerView, error)
}

type playerService struct {
	*backend
	logger *log.Logger
}

func (s *playerService) CreatePlayer(name string) (PlayerView, error) {
	name, err := validName("player", name)
	if err != nil {
		return PlayerView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := store.Record[*game.Player]{Value: game.NewPlayer(name), CreatedAt: now, UpdatedAt: now}
	s.store.Players.Put(rec)

	s.logger.Info("Created player", "player", rec.ID(), "name", name)
	return playerView(rec), nil
}

func (s *playerService) FindPlayer(id string) (PlayerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.player(id)
	if err != nil {
		return PlayerView{}, err
	}
	return playerView(rec), nil
}

func (s *playerService) ListPlayers() []PlayerView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.store.Players.List()
	out := make([]PlayerView, len(recs))
	for i, rec := range recs {
		out[i] = playerView(rec)
	}
	return out
}

func (s *playerService) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.player(id)
	if err != nil {
		return err
	}
	if err := s.leaveGames(rec); err != nil {
		return err
	}
	s.store.Players.Delete(id)

	s.logger.Info("Deleted player", "player", id)
	return nil
}

func (s *playerService) PlayerCards(id string) ([]CardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.player(id)
	if err != nil {
		return nil, err
	}
	return cardViews(rec.Value.Cards()), nil
}

func (s *playerService) PlayerTotalValue(id string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.player(id)
	if err != nil {
		return 0, err
	}
	return rec.Value.TotalValue(), nil
}

func (s *playerService) ClearPlayerCards(id string) (PlayerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.player(id)
	if err != nil {
		return PlayerView{}, err
	}

	now := s.now()
	for _, gr := range s.store.GamesWithPlayer(rec.Value) {
		gr.Value.GameDeck().ReturnCards(rec.Value.Cards())
		touch(s.store.Games, gr, now)
	}
	rec.Value.RemoveAllCards()
	rec = touch(s.store.Players, rec, now)

	s.logger.Info("Cleared player cards", "player", id)
	return playerView(rec), nil
}

// leaveGames removes the player from every game holding them. Called with
// the write lock held.
func (b *backend) leaveGames(rec store.Record[*game.Player]) error {
	now := b.now()
	for _, gr := range b.store.GamesWithPlayer(rec.Value) {
		if err := gr.Value.RemovePlayer(rec.Value); err != nil {
			return fmt.Errorf("game %s: %w", gr.ID(), err)
		}
		touch(b.store.Games, gr, now)
	}
	return nil
}
