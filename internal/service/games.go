package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/store"
)

// GameService manages games, their shoes and their members
type GameService interface {
	CreateGame(name string) (GameView, error)
	FindGame(id string) (GameView, error)
	ListGames() []GameView
	// DeleteGame returns every member's hand to the shoe before dropping
	// the game, leaving its former players with empty hands.
	DeleteGame(id string) error

	AddDeckToGame(gameID, deckID string) (GameView, error)
	AddPlayerToGame(gameID, playerID string) (GameView, error)
	RemovePlayerFromGame(gameID, playerID string) (GameView, error)
	DealCardsToPlayer(gameID, playerID string, count int) (DealResult, error)
	ShuffleGameDeck(gameID string) (GameView, error)

	GamePlayers(gameID string) ([]PlayerView, error)
	PlayersWithTotalValues(gameID string) ([]PlayerScore, error)
	UndealtCardsBySuit(gameID string) (map[deck.Suit]int, error)
	UndealtCardsBySuitAndRank(gameID string) (map[string]int, error)
	// RemainingCards lists the undealt cards by suit, highest rank first.
	RemainingCards(gameID string) ([]CardView, error)
}

type gameService struct {
	*backend
	logger *log.Logger
}

func (s *gameService) CreateGame(name string) (GameView, error) {
	name, err := validName("game", name)
	if err != nil {
		return GameView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	g := game.NewGame(name, s.gameDeckOptions()...)
	rec := store.Record[*game.Game]{Value: g, CreatedAt: now, UpdatedAt: now}
	s.store.Games.Put(rec)

	s.logger.Info("Created game", "game", rec.ID(), "name", name)
	return gameView(rec), nil
}

func (s *gameService) FindGame(id string) (GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.game(id)
	if err != nil {
		return GameView{}, err
	}
	return gameView(rec), nil
}

func (s *gameService) ListGames() []GameView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.store.Games.List()
	out := make([]GameView, len(recs))
	for i, rec := range recs {
		out[i] = gameView(rec)
	}
	return out
}

func (s *gameService) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.game(id)
	if err != nil {
		return err
	}

	members := rec.Value.Players()
	rec.Value.Release()
	now := s.now()
	for _, p := range members {
		if pr, ok := s.store.Players.Get(p.ID()); ok {
			touch(s.store.Players, pr, now)
		}
	}
	s.store.Games.Delete(id)

	s.logger.Info("Deleted game", "game", id, "released_players", len(members))
	return nil
}

func (s *gameService) AddDeckToGame(gameID, deckID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gr, err := s.game(gameID)
	if err != nil {
		return GameView{}, err
	}
	dr, err := s.deck(deckID)
	if err != nil {
		return GameView{}, err
	}

	added := gr.Value.AddDeck(dr.Value)
	gr = touch(s.store.Games, gr, s.now())

	s.logger.Info("Added deck to game", "game", gameID, "deck", deckID,
		"added", added, "undealt", gr.Value.UndealtCount())
	return gameView(gr), nil
}

func (s *gameService) AddPlayerToGame(gameID, playerID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gr, err := s.game(gameID)
	if err != nil {
		return GameView{}, err
	}
	pr, err := s.player(playerID)
	if err != nil {
		return GameView{}, err
	}

	g, p := gr.Value, pr.Value
	if g.HasPlayer(p) {
		return gameView(gr), nil
	}
	for _, other := range s.store.GamesWithPlayer(p) {
		if other.ID() != gameID {
			return GameView{}, fmt.Errorf("player %s is in game %s: %w", playerID, other.ID(), ErrPlayerInAnotherGame)
		}
	}

	// A hand can only hold cards dealt from the game the player is in.
	p.RemoveAllCards()
	g.AddPlayer(p)

	now := s.now()
	touch(s.store.Players, pr, now)
	gr = touch(s.store.Games, gr, now)

	s.logger.Info("Added player to game", "game", gameID, "player", playerID)
	return gameView(gr), nil
}

func (s *gameService) RemovePlayerFromGame(gameID, playerID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gr, err := s.game(gameID)
	if err != nil {
		return GameView{}, err
	}
	pr, err := s.player(playerID)
	if err != nil {
		return GameView{}, err
	}

	if err := gr.Value.RemovePlayer(pr.Value); err != nil {
		return GameView{}, fmt.Errorf("game %s: %w", gameID, err)
	}

	now := s.now()
	touch(s.store.Players, pr, now)
	gr = touch(s.store.Games, gr, now)

	s.logger.Info("Removed player from game", "game", gameID, "player", playerID)
	return gameView(gr), nil
}

func (s *gameService) DealCardsToPlayer(gameID, playerID string, count int) (DealResult, error) {
	if count < 1 || count > s.maxDealCount {
		return DealResult{}, fmt.Errorf("deal count must be between 1 and %d, got %d: %w",
			s.maxDealCount, count, game.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gr, err := s.game(gameID)
	if err != nil {
		return DealResult{}, err
	}
	pr, err := s.player(playerID)
	if err != nil {
		return DealResult{}, err
	}

	g := gr.Value
	if !g.HasPlayer(pr.Value) {
		return DealResult{}, fmt.Errorf("game %s: deal to %s: %w", gameID, playerID, game.ErrPlayerNotInGame)
	}
	if remain := g.UndealtCount(); s.strictCapacity && count > remain {
		return DealResult{}, fmt.Errorf("game %s: requested %d, %d remain: %w",
			gameID, count, remain, ErrInsufficientCards)
	}

	dealt, err := g.Deal(pr.Value, count)
	if err != nil {
		return DealResult{}, fmt.Errorf("game %s: %w", gameID, err)
	}

	now := s.now()
	pr = touch(s.store.Players, pr, now)
	gr = touch(s.store.Games, gr, now)

	result := DealResult{
		Game:      gameView(gr),
		Player:    playerView(pr),
		Requested: count,
		Dealt:     cardViews(dealt),
	}
	if result.Short() {
		s.logger.Warn("Shoe exhausted during deal", "game", gameID, "player", playerID,
			"requested", count, "dealt", len(dealt))
	} else {
		s.logger.Debug("Dealt cards", "game", gameID, "player", playerID, "dealt", len(dealt))
	}
	return result, nil
}

func (s *gameService) ShuffleGameDeck(gameID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gr, err := s.game(gameID)
	if err != nil {
		return GameView{}, err
	}
	gr.Value.ShuffleGameDeck()
	gr = touch(s.store.Games, gr, s.now())

	s.logger.Debug("Shuffled game deck", "game", gameID, "cards", gr.Value.GameDeck().Len())
	return gameView(gr), nil
}

func (s *gameService) GamePlayers(gameID string) ([]PlayerView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gr, err := s.game(gameID)
	if err != nil {
		return nil, err
	}
	var out []PlayerView
	for _, p := range gr.Value.Players() {
		if pr, ok := s.store.Players.Get(p.ID()); ok {
			out = append(out, playerView(pr))
		}
	}
	return out, nil
}

func (s *gameService) PlayersWithTotalValues(gameID string) ([]PlayerScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gr, err := s.game(gameID)
	if err != nil {
		return nil, err
	}
	ranked := gr.Value.PlayersWithTotalValue()
	out := make([]PlayerScore, len(ranked))
	for i, p := range ranked {
		out[i] = PlayerScore{ID: p.ID(), Name: p.Name(), TotalValue: p.TotalValue(), CardCount: p.CardCount()}
	}
	return out, nil
}

func (s *gameService) UndealtCardsBySuit(gameID string) (map[deck.Suit]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gr, err := s.game(gameID)
	if err != nil {
		return nil, err
	}
	return gr.Value.UndealtCardsBySuit(), nil
}

func (s *gameService) UndealtCardsBySuitAndRank(gameID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gr, err := s.game(gameID)
	if err != nil {
		return nil, err
	}
	return gr.Value.UndealtCardsBySuitAndRank(), nil
}

func (s *gameService) RemainingCards(gameID string) ([]CardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gr, err := s.game(gameID)
	if err != nil {
		return nil, err
	}
	return cardViews(gr.Value.GameDeck().UndealtCardsSorted()), nil
}
