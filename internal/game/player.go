package game

import (
	"maps"
	"slices"
	"strings"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/ident"
)

// Player holds the cards currently in a player's hand. A player can exist
// outside any game and be reused across games.
type Player struct {
	id    string
	name  string
	cards map[string]*deck.Card
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return RestorePlayer(ident.New(), name, nil)
}

// RestorePlayer rebuilds a player from persisted state.
func RestorePlayer(id, name string, cards []*deck.Card) *Player {
	p := &Player{
		id:    id,
		name:  name,
		cards: make(map[string]*deck.Card, len(cards)),
	}
	for _, c := range cards {
		p.AddCard(c)
	}
	return p
}

func (p *Player) ID() string { return p.id }

func (p *Player) Name() string { return p.name }

func (p *Player) SetName(name string) { p.name = name }

// AddCard puts a card in the hand. Adding a card already held is a no-op.
func (p *Player) AddCard(c *deck.Card) {
	p.cards[c.ID()] = c
}

// HasCard reports whether the card is in the hand
func (p *Player) HasCard(c *deck.Card) bool {
	_, ok := p.cards[c.ID()]
	return ok
}

// RemoveAllCards empties the hand
func (p *Player) RemoveAllCards() {
	clear(p.cards)
}

// CardCount returns the number of cards held
func (p *Player) CardCount() int {
	return len(p.cards)
}

// TotalValue sums the face value of every held card
func (p *Player) TotalValue() int {
	total := 0
	for _, c := range p.cards {
		total += c.FaceValue()
	}
	return total
}

// Cards returns a copy of the hand ordered by card ID
func (p *Player) Cards() []*deck.Card {
	out := slices.Collect(maps.Values(p.cards))
	slices.SortFunc(out, func(a, b *deck.Card) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return out
}
