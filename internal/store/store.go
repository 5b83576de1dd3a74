package store

import (
	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
)

// Store groups the repositories of every aggregate root.
type Store struct {
	Decks   *Repository[*deck.Deck]
	Players *Repository[*game.Player]
	Games   *Repository[*game.Game]
}

// New creates an empty store
func New() *Store {
	return &Store{
		Decks:   newRepository[*deck.Deck](),
		Players: newRepository[*game.Player](),
		Games:   newRepository[*game.Game](),
	}
}

// GamesWithPlayer returns the games the player is currently a member of
func (s *Store) GamesWithPlayer(p *game.Player) []Record[*game.Game] {
	var out []Record[*game.Game]
	for _, rec := range s.Games.List() {
		if rec.Value.HasPlayer(p) {
			out = append(out, rec)
		}
	}
	return out
}
