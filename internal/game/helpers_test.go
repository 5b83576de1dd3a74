package game

import (
	"testing"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/randutil"
	"github.com/stretchr/testify/require"
)

// newTestShoe returns a seeded shoe holding the given number of fresh decks.
func newTestShoe(t *testing.T, decks int) *GameDeck {
	t.Helper()
	gd := NewGameDeck(nil, WithRand(randutil.New(42)))
	for range decks {
		gd.AddDeck(deck.NewDeck("test"))
	}
	require.Equal(t, decks*deck.CardsPerDeck, gd.Len())
	return gd
}

func cardIDs(cards []*deck.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}

func totals(players []*Player) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.TotalValue()
	}
	return out
}
