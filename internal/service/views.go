package service

import (
	"time"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/store"
)

// Views are plain values copied out of the model, so callers never hold a
// reference that bypasses the services.

// CardView describes one card
type CardView struct {
	ID        string
	Suit      deck.Suit
	Rank      deck.Rank
	FaceValue int
}

// DeckView describes a deck template
type DeckView struct {
	ID        string
	Name      string
	CardCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerView describes a player and their hand
type PlayerView struct {
	ID         string
	Name       string
	Cards      []CardView
	TotalValue int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GameView summarises a game
type GameView struct {
	ID           string
	Name         string
	UndealtCount int
	PlayerCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerScore is one row of a game's ranking
type PlayerScore struct {
	ID         string
	Name       string
	TotalValue int
	CardCount  int
}

// DealResult reports the outcome of a deal request
type DealResult struct {
	Game      GameView
	Player    PlayerView
	Requested int
	Dealt     []CardView
}

// Short reports whether fewer cards were dealt than requested
func (r DealResult) Short() bool {
	return len(r.Dealt) < r.Requested
}

func cardView(c *deck.Card) CardView {
	return CardView{ID: c.ID(), Suit: c.Suit(), Rank: c.Rank(), FaceValue: c.FaceValue()}
}

func cardViews(cards []*deck.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = cardView(c)
	}
	return out
}

func deckView(rec store.Record[*deck.Deck]) DeckView {
	return DeckView{
		ID:        rec.Value.ID(),
		Name:      rec.Value.Name(),
		CardCount: rec.Value.Len(),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func playerView(rec store.Record[*game.Player]) PlayerView {
	p := rec.Value
	return PlayerView{
		ID:         p.ID(),
		Name:       p.Name(),
		Cards:      cardViews(p.Cards()),
		TotalValue: p.TotalValue(),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

func gameView(rec store.Record[*game.Game]) GameView {
	g := rec.Value
	return GameView{
		ID:           g.ID(),
		Name:         g.Name(),
		UndealtCount: g.UndealtCount(),
		PlayerCount:  g.PlayerCount(),
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
