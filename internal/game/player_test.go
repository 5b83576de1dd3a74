package game

import (
	"testing"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestPlayerHand(t *testing.T) {
	p := NewPlayer("alice")
	assert.Equal(t, "alice", p.Name())
	assert.Equal(t, 0, p.TotalValue())
	assert.Empty(t, p.Cards())

	king := deck.NewCard(deck.Spades, deck.King)
	ace := deck.NewCard(deck.Hearts, deck.Ace)
	p.AddCard(king)
	p.AddCard(ace)
	p.AddCard(king)

	assert.Equal(t, 2, p.CardCount(), "adding a held card is idempotent")
	assert.Equal(t, 14, p.TotalValue())
	assert.True(t, p.HasCard(ace))

	p.RemoveAllCards()
	assert.Equal(t, 0, p.CardCount())
	assert.Equal(t, 0, p.TotalValue())
}

func TestPlayerCardsReturnsCopy(t *testing.T) {
	p := NewPlayer("bob")
	p.AddCard(deck.NewCard(deck.Clubs, deck.Five))

	cards := p.Cards()
	cards[0] = nil

	assert.NotNil(t, p.Cards()[0])
	assert.Equal(t, 5, p.TotalValue())
}

func TestRestorePlayer(t *testing.T) {
	cards := deck.NewDeck("hand").Cards()[:3]
	p := RestorePlayer("player-1", "carol", cards)

	assert.Equal(t, "player-1", p.ID())
	assert.Equal(t, 1+2+3, p.TotalValue())
	assert.ElementsMatch(t, cardIDs(cards), cardIDs(p.Cards()))

	p.SetName("caroline")
	assert.Equal(t, "caroline", p.Name())
}
