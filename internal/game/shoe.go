package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/ident"
)

// GameDeck is the shoe a game deals from. It keeps every card ever poured in,
// in deal order, plus the set of cards currently dealt. Undealt cards are
// never stored; they are whatever is in the sequence and not in the dealt set.
//
// Cards are never removed from the sequence. Dealing only marks a card and
// returning only unmarks it, so the dealt set is always a subset of the
// sequence. A card appears in the sequence at most once.
type GameDeck struct {
	id    string
	cards []*deck.Card
	index map[string]*deck.Card // every card in cards, by ID
	dealt map[string]*deck.Card
	rng   RandSource
}

// NewGameDeck creates a shoe holding the cards of initial (which may be nil)
// with nothing dealt. Repeated cards are kept once, at their first position.
func NewGameDeck(initial []*deck.Card, opts ...GameDeckOption) *GameDeck {
	cfg := applyGameDeckOptions(opts)
	id := cfg.id
	if id == "" {
		id = ident.New()
	}
	gd := &GameDeck{
		id:    id,
		cards: make([]*deck.Card, 0, len(initial)),
		index: make(map[string]*deck.Card, len(initial)),
		dealt: make(map[string]*deck.Card),
		rng:   cfg.rng,
	}
	gd.add(initial)
	return gd
}

// add appends the cards not already in the sequence and returns how many
// were appended.
func (gd *GameDeck) add(cards []*deck.Card) int {
	added := 0
	for _, c := range cards {
		if _, ok := gd.index[c.ID()]; ok {
			continue
		}
		gd.index[c.ID()] = c
		gd.cards = append(gd.cards, c)
		added++
	}
	return added
}

// RestoreGameDeck rebuilds a shoe from persisted state. Every dealt ID must
// name a card in the sequence.
func RestoreGameDeck(id string, cards []*deck.Card, dealtIDs []string, opts ...GameDeckOption) (*GameDeck, error) {
	gd := NewGameDeck(cards, append(opts, WithID(id))...)
	for _, dealtID := range dealtIDs {
		c, ok := gd.index[dealtID]
		if !ok {
			return nil, fmt.Errorf("dealt card %s is not in game deck %s: %w", dealtID, id, ErrInvalidArgument)
		}
		gd.dealt[dealtID] = c
	}
	return gd, nil
}

func (gd *GameDeck) ID() string { return gd.id }

// AddDeck appends the deck's cards to the end of the sequence and returns how
// many were added. Cards already in the shoe, such as those of a deck added
// before, are skipped. The dealt set is unchanged.
func (gd *GameDeck) AddDeck(d *deck.Deck) int {
	return gd.add(d.Cards())
}

// DealCard marks and returns the first undealt card in sequence order. It
// returns false once every card is dealt.
func (gd *GameDeck) DealCard() (*deck.Card, bool) {
	for _, c := range gd.cards {
		if _, dealt := gd.dealt[c.ID()]; !dealt {
			gd.dealt[c.ID()] = c
			return c, true
		}
	}
	return nil, false
}

// ReturnCards makes the given cards undealt again. Cards that are not
// currently dealt are ignored.
func (gd *GameDeck) ReturnCards(cards []*deck.Card) {
	for _, c := range cards {
		delete(gd.dealt, c.ID())
	}
}

// Shuffle permutes the whole sequence with Fisher-Yates. Which cards are dealt
// does not change, only the order future deals encounter undealt cards.
func (gd *GameDeck) Shuffle() {
	for i := len(gd.cards) - 1; i > 0; i-- {
		j := gd.rng.IntN(i + 1)
		gd.cards[i], gd.cards[j] = gd.cards[j], gd.cards[i]
	}
}

// Len returns the number of cards ever added to the shoe
func (gd *GameDeck) Len() int {
	return len(gd.cards)
}

// UndealtCount returns the number of cards still available to deal
func (gd *GameDeck) UndealtCount() int {
	return len(gd.cards) - len(gd.dealt)
}

// IsDealt reports whether the card is currently dealt from this shoe
func (gd *GameDeck) IsDealt(c *deck.Card) bool {
	_, ok := gd.dealt[c.ID()]
	return ok
}

// UndealtCardsBySuit counts undealt cards per suit. All four suits are
// always present, with zero when a suit is exhausted.
func (gd *GameDeck) UndealtCardsBySuit() map[deck.Suit]int {
	counts := make(map[deck.Suit]int, deck.NumSuits)
	for _, suit := range deck.Suits() {
		counts[suit] = 0
	}
	for _, c := range gd.cards {
		if !gd.IsDealt(c) {
			counts[c.Suit()]++
		}
	}
	return counts
}

// UndealtCardsBySuitAndRank counts undealt cards per "<SUIT>-<RANK>" key.
// Unlike UndealtCardsBySuit, combinations with no undealt card are omitted.
func (gd *GameDeck) UndealtCardsBySuitAndRank() map[string]int {
	counts := make(map[string]int)
	for _, c := range gd.cards {
		if !gd.IsDealt(c) {
			counts[c.Key()]++
		}
	}
	return counts
}

// UndealtCards returns the undealt cards in sequence order
func (gd *GameDeck) UndealtCards() []*deck.Card {
	out := make([]*deck.Card, 0, gd.UndealtCount())
	for _, c := range gd.cards {
		if !gd.IsDealt(c) {
			out = append(out, c)
		}
	}
	return out
}

// UndealtCardsSorted returns the undealt cards grouped by suit in deck order,
// highest rank first within a suit. Equal cards from different decks keep
// their sequence order.
func (gd *GameDeck) UndealtCardsSorted() []*deck.Card {
	out := gd.UndealtCards()
	slices.SortStableFunc(out, func(a, b *deck.Card) int {
		if a.Suit() != b.Suit() {
			return int(a.Suit()) - int(b.Suit())
		}
		return int(b.Rank()) - int(a.Rank())
	})
	return out
}

// Cards returns a copy of the full sequence, dealt cards included
func (gd *GameDeck) Cards() []*deck.Card {
	return slices.Clone(gd.cards)
}

// DealtCards returns the dealt cards in sequence order
func (gd *GameDeck) DealtCards() []*deck.Card {
	out := make([]*deck.Card, 0, len(gd.dealt))
	for _, c := range gd.cards {
		if gd.IsDealt(c) {
			out = append(out, c)
		}
	}
	return out
}

// DealtIDs returns the IDs of the dealt cards, sorted. The store persists
// the dealt set with it.
func (gd *GameDeck) DealtIDs() []string {
	return slices.Sorted(maps.Keys(gd.dealt))
}
