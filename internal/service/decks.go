package service

import (
	"github.com/charmbracelet/log"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/store"
)

// DeckService manages deck templates
type DeckService interface {
	// CreateDeck creates a standard 52-card deck.
	CreateDeck(name string) (DeckView, error)
	FindDeck(id string) (DeckView, error)
	ListDecks() []DeckView
	DeleteDeck(id string) error
	// ReinitializeDeck replaces the deck's cards with 52 new ones. Shoes that
	// already took the old cards keep them.
	ReinitializeDeck(id string) (DeckView, error)
}

type deckService struct {
	*backend
	logger *log.Logger
}

func (s *deckService) CreateDeck(name string) (DeckView, error) {
	name, err := validName("deck", name)
	if err != nil {
		return DeckView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := store.Record[*deck.Deck]{Value: deck.NewDeck(name), CreatedAt: now, UpdatedAt: now}
	s.store.Decks.Put(rec)

	s.logger.Info("Created deck", "deck", rec.ID(), "name", name)
	return deckView(rec), nil
}

func (s *deckService) FindDeck(id string) (DeckView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, err := s.deck(id)
	if err != nil {
		return DeckView{}, err
	}
	return deckView(rec), nil
}

func (s *deckService) ListDecks() []DeckView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.store.Decks.List()
	out := make([]DeckView, len(recs))
	for i, rec := range recs {
		out[i] = deckView(rec)
	}
	return out
}

func (s *deckService) DeleteDeck(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deck(id); err != nil {
		return err
	}
	s.store.Decks.Delete(id)
	s.logger.Info("Deleted deck", "deck", id)
	return nil
}

func (s *deckService) ReinitializeDeck(id string) (DeckView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.deck(id)
	if err != nil {
		return DeckView{}, err
	}
	rec.Value.Initialize()
	rec = touch(s.store.Decks, rec, s.now())

	s.logger.Info("Reinitialized deck", "deck", id)
	return deckView(rec), nil
}
